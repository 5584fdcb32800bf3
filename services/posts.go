package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"devconnector.com/social-network/metrics"
	"devconnector.com/social-network/models"
	"devconnector.com/social-network/repository"
)

const notifyTimeout = 10 * time.Second

// PostService runs the post, like and comment operations on behalf of an
// authenticated user. Every mutation loads the post, changes it and saves
// the whole document back; concurrent writers are last-one-wins.
type PostService struct {
	posts    repository.PostRepository
	users    repository.UserRepository
	notifier Notifier
	logger   *slog.Logger

	// background runs notification work; tests swap it to run inline.
	background func(func())
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, notifier Notifier, logger *slog.Logger) *PostService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &PostService{
		posts:      posts,
		users:      users,
		notifier:   notifier,
		logger:     logger.With("component", "posts"),
		background: func(f func()) { go f() },
	}
}

func (s *PostService) Create(ctx context.Context, uid, text string) (*models.Post, error) {
	if err := models.RequireText(text); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}

	post, err := models.NewPost(author, text)
	if err != nil {
		return nil, err
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	metrics.PostMutation("create")
	return post, nil
}

func (s *PostService) ListAll(ctx context.Context) ([]*models.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	if !models.IsValidID(id) {
		return nil, models.ErrPostNotFound
	}
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) Delete(ctx context.Context, uid, id string) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !post.OwnedBy(uid) {
		return models.ErrNotAuthorized
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	metrics.PostMutation("delete")
	return nil
}

// Update replaces the text of the caller's own post and refreshes the
// author name and avatar from the caller's current account.
func (s *PostService) Update(ctx context.Context, uid, id, text string) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(uid) {
		return nil, models.ErrNotAuthorized
	}

	author, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}
	if err := post.Restamp(author, text); err != nil {
		return nil, err
	}
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	metrics.PostMutation("update")
	return post, nil
}

// Like adds the caller's like unless it is already there.
func (s *PostService) Like(ctx context.Context, uid, id string) ([]models.Like, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	added := post.AddLike(uid)
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	if added {
		metrics.PostMutation("like")
		s.notifyOwner(post, uid, "post_like", "%s liked your post", post.Text)
	}
	return post.Likes, nil
}

// Unlike removes the caller's like; it is a no-op when there is none.
func (s *PostService) Unlike(ctx context.Context, uid, id string) ([]models.Like, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	removed := post.RemoveLike(uid)
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	if removed {
		metrics.PostMutation("unlike")
	}
	return post.Likes, nil
}

func (s *PostService) AddComment(ctx context.Context, uid, id, text string) ([]models.Comment, error) {
	if err := models.RequireText(text); err != nil {
		return nil, err
	}

	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}

	if _, err := post.AddComment(author, text); err != nil {
		return nil, err
	}
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	metrics.PostMutation("comment")
	s.notifyOwner(post, uid, "post_comment", "%s commented on your post", text)
	return post.Comments, nil
}

// DeleteComment removes the comment named by commentID. Only its author
// may do so.
func (s *PostService) DeleteComment(ctx context.Context, uid, id, commentID string) ([]models.Comment, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := post.RemoveComment(commentID, uid); err != nil {
		return nil, err
	}
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	metrics.PostMutation("uncomment")
	return post.Comments, nil
}

// notifyOwner tells the post owner that actorID interacted with the post.
// It runs detached from the request; failures are only logged.
func (s *PostService) notifyOwner(post *models.Post, actorID, kind, titleFormat, body string) {
	if post.OwnedBy(actorID) {
		return
	}

	ownerID, postID := post.User, post.ID
	s.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		actorName := "Someone"
		actor, err := s.users.FindByID(ctx, actorID)
		switch {
		case err == nil:
			actorName = actor.Name
		case !errors.Is(err, models.ErrUserNotFound):
			s.logger.Warn("Failed to load actor for notification", "user", actorID, "error", err)
		}

		err = s.notifier.Notify(ctx, Notification{
			RecipientID: ownerID,
			Title:       fmt.Sprintf(titleFormat, actorName),
			Body:        preview(body),
			Data: map[string]string{
				"type":          kind,
				"post_id":       postID,
				"actor_id":      actorID,
				"post_owner_id": ownerID,
			},
		})
		if err != nil {
			s.logger.Error("Failed to send notification", "type", kind, "post", postID, "error", err)
		}
	})
}

func preview(text string) string {
	r := []rune(text)
	if len(r) <= 100 {
		return text
	}
	return string(r[:97]) + "..."
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
