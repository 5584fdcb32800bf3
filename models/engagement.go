package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Like struct {
	ID   string `json:"_id"`
	User string `json:"user"`
}

type Comment struct {
	ID     string    `json:"_id"`
	User   string    `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

func (p *Post) LikedBy(userID string) bool {
	return lo.ContainsBy(p.Likes, func(l Like) bool { return l.User == userID })
}

// AddLike puts a like by userID at the front of the likes. It returns false
// when the user already likes the post.
func (p *Post) AddLike(userID string) bool {
	if p.LikedBy(userID) {
		return false
	}
	p.Likes = append([]Like{{ID: uuid.NewString(), User: userID}}, p.Likes...)
	return true
}

// RemoveLike drops the like left by userID, if any.
func (p *Post) RemoveLike(userID string) bool {
	_, idx, ok := lo.FindIndexOf(p.Likes, func(l Like) bool { return l.User == userID })
	if !ok {
		return false
	}
	p.Likes = append(p.Likes[:idx:idx], p.Likes[idx+1:]...)
	return true
}

// AddComment puts a new comment by author at the front of the comments.
func (p *Post) AddComment(author *User, text string) (Comment, error) {
	if err := RequireText(text); err != nil {
		return Comment{}, err
	}

	c := Comment{
		ID:     uuid.NewString(),
		User:   author.ID,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   time.Now().UTC(),
	}
	p.Comments = append([]Comment{c}, p.Comments...)
	return c, nil
}

// RemoveComment deletes the comment with commentID on behalf of userID.
// Only the comment author may remove it.
func (p *Post) RemoveComment(commentID, userID string) error {
	c, idx, ok := lo.FindIndexOf(p.Comments, func(c Comment) bool { return c.ID == commentID })
	if !ok {
		return ErrCommentNotFound
	}
	if c.User != userID {
		return ErrNotAuthorized
	}
	p.Comments = append(p.Comments[:idx:idx], p.Comments[idx+1:]...)
	return nil
}
