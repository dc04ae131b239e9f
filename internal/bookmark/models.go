package bookmark

// Bookmark is one saved reference to a wiki article.
type Bookmark struct {
	ID           string `json:"id"`
	ArticleID    string `json:"articleId"`
	ArticleTitle string `json:"articleTitle"`
	Category     string `json:"category"`
	SavedAt      string `json:"savedAt"`
}
