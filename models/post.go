package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID       string    `json:"_id"`
	User     string    `json:"user"`
	Text     string    `json:"text"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`
	Date     time.Time `json:"date"`
}

// NewPost builds a post owned by author, copying the author's current name
// and avatar onto it.
func NewPost(author *User, text string) (*Post, error) {
	if err := RequireText(text); err != nil {
		return nil, err
	}

	return &Post{
		ID:       uuid.NewString(),
		User:     author.ID,
		Text:     text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []Like{},
		Comments: []Comment{},
		Date:     time.Now().UTC(),
	}, nil
}

// Restamp replaces the text and refreshes the author snapshot. Likes,
// comments and date are left alone.
func (p *Post) Restamp(author *User, text string) error {
	if err := RequireText(text); err != nil {
		return err
	}
	p.Text = text
	p.Name = author.Name
	p.Avatar = author.Avatar
	p.User = author.ID
	return nil
}

func (p *Post) OwnedBy(userID string) bool {
	return p.User == userID
}

// Clone returns a deep copy, so callers can mutate likes and comments
// without touching the original.
func (p *Post) Clone() *Post {
	c := *p
	c.Likes = append(make([]Like, 0, len(p.Likes)), p.Likes...)
	c.Comments = append(make([]Comment, 0, len(p.Comments)), p.Comments...)
	return &c
}

// RequireText rejects empty or whitespace-only text.
func RequireText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ValidationErrors{{
			Value:    text,
			Msg:      "Text is required",
			Param:    "text",
			Location: "body",
		}}
	}
	return nil
}

// IsValidID reports whether id can name a stored document.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

type TextRequest struct {
	Text string `json:"text"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
}
