package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnector.com/social-network/models"
	"devconnector.com/social-network/repository"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

type postFixture struct {
	svc      *PostService
	store    *repository.Memory
	notifier *recordingNotifier
	ada, bob *models.User
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()

	store := repository.NewMemory()
	notifier := &recordingNotifier{}
	svc := NewPostService(store.Posts(), store.Users(), notifier, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.background = func(f func()) { f() }

	f := &postFixture{
		svc:      svc,
		store:    store,
		notifier: notifier,
		ada:      models.NewUser("Ada", "ada@example.com", "x"),
		bob:      models.NewUser("Bob", "bob@example.com", "x"),
	}
	require.NoError(t, store.Users().Create(context.Background(), f.ada))
	require.NoError(t, store.Users().Create(context.Background(), f.bob))
	return f
}

func (f *postFixture) post(t *testing.T, author *models.User, text string) *models.Post {
	t.Helper()
	p, err := f.svc.Create(context.Background(), author.ID, text)
	require.NoError(t, err)
	return p
}

func TestCreateThenGet(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	created := f.post(t, f.ada, "hello")

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, f.ada.Avatar, got.Avatar)
	assert.Equal(t, f.ada.ID, got.User)
	assert.Empty(t, got.Likes)
	assert.Empty(t, got.Comments)
}

func TestCreateValidation(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Create(context.Background(), f.ada.ID, "  ")
	var verr models.ValidationErrors
	require.ErrorAs(t, err, &verr)

	posts, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGetNotFound(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, models.ErrPostNotFound)

	_, err = f.svc.Get(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, models.ErrPostNotFound)
}

func TestListAllNewestFirst(t *testing.T) {
	f := newPostFixture(t)

	first := f.post(t, f.ada, "first")
	second := f.post(t, f.bob, "second")
	p, err := f.store.Posts().FindByID(context.Background(), first.ID)
	require.NoError(t, err)
	p.Date = second.Date.Add(-1)
	require.NoError(t, f.store.Posts().Save(context.Background(), p))

	posts, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestDeleteOwnership(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := f.post(t, f.ada, "mine")

	assert.ErrorIs(t, f.svc.Delete(ctx, f.bob.ID, p.ID), models.ErrNotAuthorized)
	_, err := f.svc.Get(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, f.ada.ID, p.ID))
	_, err = f.svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, models.ErrPostNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.ada.ID, p.ID), models.ErrPostNotFound)
}

func TestUpdate(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := f.post(t, f.ada, "draft")

	_, err := f.svc.Like(ctx, f.bob.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.AddComment(ctx, f.bob.ID, p.ID, "nice")
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.bob.ID, p.ID, "hijack")
	assert.ErrorIs(t, err, models.ErrNotAuthorized)

	_, err = f.svc.Update(ctx, f.ada.ID, uuid.NewString(), "x")
	assert.ErrorIs(t, err, models.ErrPostNotFound)

	updated, err := f.svc.Update(ctx, f.ada.ID, p.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Text)
	assert.Len(t, updated.Likes, 1)
	assert.Len(t, updated.Comments, 1)
	assert.Equal(t, p.Date, updated.Date)

	_, err = f.svc.Update(ctx, f.ada.ID, p.ID, "")
	var verr models.ValidationErrors
	require.ErrorAs(t, err, &verr)

	stored, err := f.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", stored.Text)
}

func TestLikeIdempotent(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := f.post(t, f.ada, "hello")

	likes, err := f.svc.Like(ctx, f.bob.ID, p.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, f.bob.ID, likes[0].User)

	likes, err = f.svc.Like(ctx, f.bob.ID, p.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)

	stored, err := f.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Likes, 1)
}

func TestUnlikeLeavesOthers(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := f.post(t, f.ada, "hello")

	_, err := f.svc.Like(ctx, f.ada.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.Like(ctx, f.bob.ID, p.ID)
	require.NoError(t, err)

	likes, err := f.svc.Unlike(ctx, f.bob.ID, p.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, f.ada.ID, likes[0].User)

	likes, err = f.svc.Unlike(ctx, f.bob.ID, p.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
}

func TestLikeMissingPost(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Like(context.Background(), f.bob.ID, uuid.NewString())
	assert.ErrorIs(t, err, models.ErrPostNotFound)
	_, err = f.svc.Unlike(context.Background(), f.bob.ID, "junk")
	assert.ErrorIs(t, err, models.ErrPostNotFound)
}

func TestAddCommentValidation(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := f.post(t, f.ada, "hello")

	_, err := f.svc.AddComment(ctx, f.bob.ID, p.ID, "")
	var verr models.ValidationErrors
	require.ErrorAs(t, err, &verr)

	stored, err := f.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Comments)
}

func TestCommentsNewestFirst(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := f.post(t, f.ada, "hello")

	_, err := f.svc.AddComment(ctx, f.bob.ID, p.ID, "one")
	require.NoError(t, err)
	comments, err := f.svc.AddComment(ctx, f.ada.ID, p.ID, "two")
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "two", comments[0].Text)
	assert.Equal(t, "Ada", comments[0].Name)
	assert.Equal(t, "one", comments[1].Text)
	assert.Equal(t, "Bob", comments[1].Name)
}

func TestDeleteComment(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := f.post(t, f.ada, "hello")

	comments, err := f.svc.AddComment(ctx, f.bob.ID, p.ID, "older")
	require.NoError(t, err)
	older := comments[0]
	_, err = f.svc.AddComment(ctx, f.bob.ID, p.ID, "newer")
	require.NoError(t, err)

	_, err = f.svc.DeleteComment(ctx, f.ada.ID, p.ID, older.ID)
	assert.ErrorIs(t, err, models.ErrNotAuthorized)

	_, err = f.svc.DeleteComment(ctx, f.bob.ID, p.ID, uuid.NewString())
	assert.ErrorIs(t, err, models.ErrCommentNotFound)

	comments, err = f.svc.DeleteComment(ctx, f.bob.ID, p.ID, older.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "newer", comments[0].Text)
}

func TestNotifiesOwnerOfOthersActivity(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := f.post(t, f.ada, "hello")

	_, err := f.svc.Like(ctx, f.ada.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.AddComment(ctx, f.ada.ID, p.ID, "self")
	require.NoError(t, err)
	assert.Empty(t, f.notifier.sent, "own activity is silent")

	_, err = f.svc.Like(ctx, f.bob.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.Like(ctx, f.bob.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.AddComment(ctx, f.bob.ID, p.ID, strings.Repeat("a", 150))
	require.NoError(t, err)

	require.Len(t, f.notifier.sent, 2, "repeat like does not notify again")

	like := f.notifier.sent[0]
	assert.Equal(t, f.ada.ID, like.RecipientID)
	assert.Equal(t, "Bob liked your post", like.Title)
	assert.Equal(t, "post_like", like.Data["type"])
	assert.Equal(t, p.ID, like.Data["post_id"])

	comment := f.notifier.sent[1]
	assert.Equal(t, "Bob commented on your post", comment.Title)
	assert.Len(t, []rune(comment.Body), 100)
	assert.True(t, strings.HasSuffix(comment.Body, "..."))
}
