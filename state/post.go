package state

import (
	"github.com/samber/lo"

	"devconnector.com/social-network/models"
)

type PostState struct {
	Posts   []models.Post `json:"posts"`
	Post    *models.Post  `json:"post"`
	Loading bool          `json:"loading"`
	Error   *Failure      `json:"error,omitempty"`
}

func InitialPostState() PostState {
	return PostState{Posts: []models.Post{}, Loading: true}
}

// ReducePost returns the next post view state. Slices in s are never
// written to; changed collections are rebuilt.
func ReducePost(s PostState, a Action) PostState {
	switch a.Type {
	case GetPosts:
		posts, ok := a.Payload.([]models.Post)
		if !ok {
			return s
		}
		s.Posts = posts
	case GetPost:
		post, ok := a.Payload.(models.Post)
		if !ok {
			return s
		}
		s.Post = &post
	case AddPost:
		post, ok := a.Payload.(models.Post)
		if !ok {
			return s
		}
		s.Posts = append([]models.Post{post}, s.Posts...)
	case DeletePost:
		id, ok := a.Payload.(string)
		if !ok {
			return s
		}
		s.Posts = lo.Filter(s.Posts, func(p models.Post, _ int) bool { return p.ID != id })
	case UpdatePost:
		post, ok := a.Payload.(models.Post)
		if !ok {
			return s
		}
		s.Posts = lo.Map(s.Posts, func(p models.Post, _ int) models.Post {
			if p.ID == post.ID {
				return post
			}
			return p
		})
		if s.Post != nil && s.Post.ID == post.ID {
			s.Post = &post
		}
	case UpdateLikes:
		u, ok := a.Payload.(LikesUpdate)
		if !ok {
			return s
		}
		s.Posts = lo.Map(s.Posts, func(p models.Post, _ int) models.Post {
			if p.ID == u.ID {
				p.Likes = u.Likes
			}
			return p
		})
		if s.Post != nil && s.Post.ID == u.ID {
			post := *s.Post
			post.Likes = u.Likes
			s.Post = &post
		}
	case AddComment, RemoveComment:
		comments, ok := a.Payload.([]models.Comment)
		if !ok || s.Post == nil {
			return s
		}
		post := *s.Post
		post.Comments = comments
		s.Post = &post
	case PostError:
		f, ok := a.Payload.(Failure)
		if !ok {
			return s
		}
		s.Error = &f
	case PostEmpty:
		s.Error = &Failure{Msg: "Text is required"}
	default:
		return s
	}
	s.Loading = false
	return s
}
