package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
)

// ProjectRepository provides persistence operations for projects.
type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `
id, user_id, name, coalesce(version, ''), coalesce(authors, '{}'), coalesce(keywords, '{}'),
coalesce(project_abstract, ''), coalesce(header_image_link, ''), hero_image,
publication, coalesce(user_rights, ''), coalesce(contact_email, ''),
contact_linkedin, contact_facebook, contact_homepage,
published, views, likes, quality_of_documentation, associated_project,
created_at, updated_at`

// sortColumn maps a sort key onto its order-by column. The listing order is
// decided here, in the query, never re-sorted in memory.
func sortColumn(sort domain.SortKey) string {
	switch sort {
	case domain.SortMostViewed:
		return "views"
	case domain.SortMostAppreciated:
		return "likes"
	case domain.SortQualityOfDocs:
		return "quality_of_documentation"
	default:
		return "created_at"
	}
}

// FetchProjects returns all published, non-deleted projects ordered by the
// sort key, descending.
func (r *ProjectRepository) FetchProjects(ctx context.Context, sort domain.SortKey) ([]domain.Project, error) {
	q := fmt.Sprintf(`
select %s
from projects
where deleted = false and published = true
order by %s desc;
`, projectColumns, sortColumn(sort))

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID returns a single non-deleted project.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	q := fmt.Sprintf(`
select %s
from projects
where id = $1 and deleted = false;
`, projectColumns)

	p, err := scanProject(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project. New projects start unpublished unless the
// payload says otherwise, with zeroed counters and score.
func (r *ProjectRepository) Create(ctx context.Context, p domain.Project) (int64, error) {
	const q = `
insert into projects (
  user_id, name, version, authors, keywords, project_abstract,
  header_image_link, hero_image, publication, user_rights,
  contact_email, contact_linkedin, contact_facebook, contact_homepage,
  published, views, likes, quality_of_documentation, associated_project, deleted
)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 0, 0, 0, $16, false)
returning id;
`
	var id int64
	err := r.db.QueryRow(ctx, q,
		p.UserID, p.Name, p.Version, p.Authors, p.Keywords, p.Abstract,
		p.CoverImage, p.HeroImage, p.Publication, p.UsageRights,
		p.ContactEmail, p.ContactLinkedin, p.ContactFacebook, p.ContactHomepage,
		p.Published, p.AssociatedProject,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}
	return id, nil
}

// Update patches the owner-editable metadata, scoped to the owning user and
// non-deleted state.
func (r *ProjectRepository) Update(ctx context.Context, userID int64, p domain.Project) error {
	const q = `
update projects
set name = $3, version = $4, authors = $5, keywords = $6,
    project_abstract = $7, header_image_link = $8, hero_image = $9,
    publication = $10, user_rights = $11, contact_email = $12,
    contact_linkedin = $13, contact_facebook = $14, contact_homepage = $15,
    published = $16, associated_project = $17, updated_at = now()
where id = $1 and user_id = $2 and deleted = false;
`
	ct, err := r.db.Exec(ctx, q,
		p.ID, userID, p.Name, p.Version, p.Authors, p.Keywords,
		p.Abstract, p.CoverImage, p.HeroImage,
		p.Publication, p.UsageRights, p.ContactEmail,
		p.ContactLinkedin, p.ContactFacebook, p.ContactHomepage,
		p.Published, p.AssociatedProject,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// UpdateAssociated sets the associated-project link, and the published flag
// when the caller supplied one.
func (r *ProjectRepository) UpdateAssociated(ctx context.Context, userID, projectID int64, associated *int64, published *bool) error {
	const q = `
update projects
set associated_project = $3,
    published = coalesce($4, published),
    updated_at = now()
where id = $1 and user_id = $2 and deleted = false;
`
	ct, err := r.db.Exec(ctx, q, projectID, userID, associated, published)
	if err != nil {
		return fmt.Errorf("update associated project: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// SoftDelete marks a project deleted; records are never removed.
func (r *ProjectRepository) SoftDelete(ctx context.Context, userID, projectID int64) (bool, error) {
	const q = `
update projects
set deleted = true, updated_at = now()
where id = $1 and user_id = $2 and deleted = false;
`
	ct, err := r.db.Exec(ctx, q, projectID, userID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// IncrementViews bumps the view counter of a published project. The counter
// is monotonic and never goes negative.
func (r *ProjectRepository) IncrementViews(ctx context.Context, projectID int64) error {
	const q = `
update projects
set views = views + 1
where id = $1 and deleted = false and published = true and views >= 0;
`
	_, err := r.db.Exec(ctx, q, projectID)
	return err
}

// SaveProjectScore writes a freshly computed quality-of-documentation score
// onto the project, scoped to non-deleted state.
func (r *ProjectRepository) SaveProjectScore(ctx context.Context, projectID int64, score int) error {
	const q = `
update projects
set quality_of_documentation = $2
where id = $1 and deleted = false;
`
	_, err := r.db.Exec(ctx, q, projectID, score)
	return err
}

func scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Version, &p.Authors, &p.Keywords,
		&p.Abstract, &p.CoverImage, &p.HeroImage,
		&p.Publication, &p.UsageRights, &p.ContactEmail,
		&p.ContactLinkedin, &p.ContactFacebook, &p.ContactHomepage,
		&p.Published, &p.Views, &p.Likes, &p.QualityOfDocumentation, &p.AssociatedProject,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Project{}, err
	}
	return p, nil
}
