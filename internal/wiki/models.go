package wiki

// Category classifies an article in the rights library.
type Category string

const (
	CategoryPrivacy   Category = "Privacy"
	CategoryBilling   Category = "Billing"
	CategoryAccess    Category = "Access"
	CategoryConsent   Category = "Consent"
	CategoryQuality   Category = "Quality"
	CategoryInsurance Category = "Insurance"
)

func validCategory(c Category) bool {
	switch c {
	case CategoryPrivacy, CategoryBilling, CategoryAccess, CategoryConsent, CategoryQuality, CategoryInsurance:
		return true
	default:
		return false
	}
}

// Article is one entry in the legal content library.
//
// Articles are soft-deleted: Deleted rows stay in storage so the audit chain
// can still reference them, and list reads filter them out.
//
// AuthorObf is an obfuscated author handle; real identities are never stored
// with content.
type Article struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Category         Category `json:"category"`
	Summary          string   `json:"summary"`
	Content          string   `json:"content"`
	StatuteReference string   `json:"statuteReference,omitempty"`
	LastUpdated      string   `json:"lastUpdated"`
	AuthorObf        string   `json:"authorObf"`
	Deleted          bool     `json:"deleted,omitempty"`
}

// ArticleInput is the caller-editable subset of an Article.
type ArticleInput struct {
	Title            string   `json:"title"`
	Category         Category `json:"category"`
	Summary          string   `json:"summary"`
	Content          string   `json:"content"`
	StatuteReference string   `json:"statuteReference,omitempty"`
}
