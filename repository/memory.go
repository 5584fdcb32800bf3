package repository

import (
	"context"
	"slices"
	"sync"

	"devconnector.com/social-network/models"
)

var (
	_ PostRepository        = memoryPosts{}
	_ UserRepository        = memoryUsers{}
	_ DeviceTokenRepository = memoryTokens{}
)

// Memory implements every repository interface on top of maps. Values are
// copied on the way in and out, so callers never share state with the store.
type Memory struct {
	mu     sync.RWMutex
	posts  map[string]*models.Post
	users  map[string]*models.User
	tokens map[string][]string
}

func NewMemory() *Memory {
	return &Memory{
		posts:  map[string]*models.Post{},
		users:  map[string]*models.User{},
		tokens: map[string][]string{},
	}
}

func (m *Memory) Posts() PostRepository               { return memoryPosts{m} }
func (m *Memory) Users() UserRepository               { return memoryUsers{m} }
func (m *Memory) DeviceTokens() DeviceTokenRepository { return memoryTokens{m} }

type memoryPosts struct{ m *Memory }

func (r memoryPosts) Create(_ context.Context, post *models.Post) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	r.m.posts[post.ID] = post.Clone()
	return nil
}

func (r memoryPosts) List(_ context.Context) ([]*models.Post, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	posts := make([]*models.Post, 0, len(r.m.posts))
	for _, p := range r.m.posts {
		posts = append(posts, p.Clone())
	}
	slices.SortStableFunc(posts, func(a, b *models.Post) int {
		return b.Date.Compare(a.Date)
	})
	return posts, nil
}

func (r memoryPosts) FindByID(_ context.Context, id string) (*models.Post, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	p, ok := r.m.posts[id]
	if !ok {
		return nil, models.ErrPostNotFound
	}
	return p.Clone(), nil
}

func (r memoryPosts) Save(_ context.Context, post *models.Post) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.posts[post.ID]; !ok {
		return models.ErrPostNotFound
	}
	r.m.posts[post.ID] = post.Clone()
	return nil
}

func (r memoryPosts) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	delete(r.m.posts, id)
	return nil
}

type memoryUsers struct{ m *Memory }

func (r memoryUsers) Create(_ context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, u := range r.m.users {
		if u.Email == user.Email {
			return models.ErrUserExists
		}
	}
	u := *user
	r.m.users[user.ID] = &u
	return nil
}

func (r memoryUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	u, ok := r.m.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	email = models.NormalizeEmail(email)
	for _, u := range r.m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, models.ErrUserNotFound
}

type memoryTokens struct{ m *Memory }

func (r memoryTokens) SaveToken(_ context.Context, userID, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if !slices.Contains(r.m.tokens[userID], token) {
		r.m.tokens[userID] = append(r.m.tokens[userID], token)
	}
	return nil
}

func (r memoryTokens) TokensForUser(_ context.Context, userID string) ([]string, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	return slices.Clone(r.m.tokens[userID]), nil
}

func (r memoryTokens) DeleteToken(_ context.Context, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for userID, tokens := range r.m.tokens {
		r.m.tokens[userID] = slices.DeleteFunc(tokens, func(t string) bool { return t == token })
	}
	return nil
}
