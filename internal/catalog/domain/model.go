package domain

import "time"

// Project is a user-submitted scientific design project. CoverImage and
// HeroImage hold S3 object keys at rest; the link resolver swaps them for
// presigned URLs on the way out.
type Project struct {
	ID       int64    `json:"id"`
	UserID   int64    `json:"user_id"`
	Name     string   `json:"name"`
	Version  string   `json:"version,omitempty"`
	Authors  []string `json:"authors"`
	Keywords []string `json:"keywords"`
	Abstract string   `json:"project_abstract"`

	CoverImage string  `json:"header_image_link"`
	HeroImage  *string `json:"hero_image"`

	// Populated on detail views only, so a follow-up update can send the
	// raw keys back without re-deriving them from the signed URLs.
	CoverImageKey string `json:"header_image_key,omitempty"`
	HeroImageKey  string `json:"hero_image_key,omitempty"`

	Publication     *string `json:"publication"`
	UsageRights     string  `json:"usage_rights"`
	ContactEmail    string  `json:"contact_email"`
	ContactLinkedin *string `json:"contact_linkedin"`
	ContactFacebook *string `json:"contact_facebook"`
	ContactHomepage *string `json:"contact_homepage"`

	Published bool `json:"published"`
	Deleted   bool `json:"-"`

	Views                  int `json:"views"`
	Likes                  int `json:"likes"`
	QualityOfDocumentation int `json:"quality_of_documentation"`

	AssociatedProject *int64 `json:"associated_project"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Attachment is an uploaded file owned by exactly one project. Tags maps a
// category name ("Design", "Experiment") to the ordered labels filed under
// it; the classifier reads it, nothing mutates it after upload.
type Attachment struct {
	ID          int64               `json:"id"`
	ProjectID   int64               `json:"project_id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Type        string              `json:"type"`
	Tags        map[string][]string `json:"tags"`
	Deleted     bool                `json:"-"`
	CreatedAt   time.Time           `json:"created_at"`
}

// Comment is an append-only note on a project. It references its author by
// id plus display fields captured at write time.
type Comment struct {
	ID            int64     `json:"id"`
	ProjectID     int64     `json:"project_id"`
	UserID        int64     `json:"user_id"`
	Username      string    `json:"username"`
	UserFirstname string    `json:"user_firstname"`
	UserLastname  string    `json:"user_lastname"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

// SortKey selects the storage-side ordering for project listings.
type SortKey string

const (
	SortNewest          SortKey = "NEWEST"
	SortMostViewed      SortKey = "MOST_VIEWED"
	SortMostAppreciated SortKey = "MOST_APPRECIATED"
	SortQualityOfDocs   SortKey = "QUALITY_OF_DOCUMENTATION"
)

// ParseSortKey maps a caller-supplied sort name onto a known key. Anything
// unrecognised falls back to newest-first, it is never an error.
func ParseSortKey(s string) SortKey {
	switch s {
	case "MOST_VIEWED", "MOST VIEWED":
		return SortMostViewed
	case "MOST_APPRECIATED", "MOST APPRECIATIONS":
		return SortMostAppreciated
	case "QUALITY_OF_DOCUMENTATION", "QUALITY OF DOCUMENTATION":
		return SortQualityOfDocs
	default:
		return SortNewest
	}
}
