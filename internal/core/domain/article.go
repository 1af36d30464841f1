package domain

import "time"

// Article is a short text post. Author holds the creator's username by value.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnedBy reports whether username is the article's author. The comparison is
// exact: no case folding or trimming.
func (a *Article) OwnedBy(username string) bool {
	return a != nil && username != "" && a.Author == username
}
