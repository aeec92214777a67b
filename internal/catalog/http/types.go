package http

import (
	"strings"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
)

type projectPayload struct {
	ID                int64   `json:"id"`
	Title             string  `json:"project_title"`
	Version           string  `json:"version"`
	Authors           string  `json:"authors"`
	Keywords          string  `json:"keywords"`
	Abstract          string  `json:"project_abstract"`
	CoverImageKey     string  `json:"header_image_key"`
	HeroImageKey      *string `json:"hero_image_key"`
	Publication       *string `json:"publication"`
	UsageRights       string  `json:"usage_rights"`
	ContactEmail      string  `json:"contact_email"`
	ContactLinkedin   *string `json:"contact_linkedin"`
	ContactFacebook   *string `json:"contact_facebook"`
	ContactHomepage   *string `json:"contact_homepage"`
	Published         bool    `json:"published"`
	AssociatedProject *int64  `json:"associated_project"`
}

// toDomain maps the request payload onto the stored shape. Authors and
// keywords arrive as comma-separated strings from the editor.
func (p projectPayload) toDomain(userID int64) domain.Project {
	return domain.Project{
		ID:                p.ID,
		UserID:            userID,
		Name:              p.Title,
		Version:           p.Version,
		Authors:           splitCSV(p.Authors),
		Keywords:          splitCSV(p.Keywords),
		Abstract:          p.Abstract,
		CoverImage:        p.CoverImageKey,
		HeroImage:         p.HeroImageKey,
		Publication:       p.Publication,
		UsageRights:       p.UsageRights,
		ContactEmail:      p.ContactEmail,
		ContactLinkedin:   p.ContactLinkedin,
		ContactFacebook:   p.ContactFacebook,
		ContactHomepage:   p.ContactHomepage,
		Published:         p.Published,
		AssociatedProject: p.AssociatedProject,
	}
}

type associatedReq struct {
	ID                int64  `json:"id"`
	AssociatedProject *int64 `json:"associated_project"`
	Published         *bool  `json:"published"`
}

type incViewsReq struct {
	ID int64 `json:"id"`
}

type commentReq struct {
	ProjectID     int64  `json:"project_id"`
	UserID        int64  `json:"user_id"`
	Username      string `json:"username"`
	UserFirstname string `json:"user_firstname"`
	UserLastname  string `json:"user_lastname"`
	Comment       string `json:"comment"`
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
