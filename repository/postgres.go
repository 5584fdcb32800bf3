package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"devconnector.com/social-network/models"
)

const uniqueViolation = pq.ErrorCode("23505")

var (
	_ PostRepository        = (*PostgresPosts)(nil)
	_ UserRepository        = (*PostgresUsers)(nil)
	_ DeviceTokenRepository = (*PostgresDeviceTokens)(nil)
)

type PostgresPosts struct {
	db *sql.DB
}

func NewPostgresPosts(db *sql.DB) *PostgresPosts {
	return &PostgresPosts{db: db}
}

func (r *PostgresPosts) Create(ctx context.Context, post *models.Post) error {
	likes, comments, err := marshalEngagement(post)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO posts (id, user_id, text, name, avatar, likes, comments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		post.ID, post.User, post.Text, post.Name, post.Avatar, likes, comments, post.Date)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostgresPosts) List(ctx context.Context) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, text, name, avatar, likes, comments, created_at
		FROM posts
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func (r *PostgresPosts) FindByID(ctx context.Context, id string) (*models.Post, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, text, name, avatar, likes, comments, created_at
		FROM posts
		WHERE id = $1`, id)

	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrPostNotFound
	}
	return p, err
}

func (r *PostgresPosts) Save(ctx context.Context, post *models.Post) error {
	likes, comments, err := marshalEngagement(post)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE posts
		SET user_id = $1, text = $2, name = $3, avatar = $4, likes = $5, comments = $6
		WHERE id = $7`,
		post.User, post.Text, post.Name, post.Avatar, likes, comments, post.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n == 0 {
		return models.ErrPostNotFound
	}
	return nil
}

func (r *PostgresPosts) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*models.Post, error) {
	var p models.Post
	var likes, comments []byte

	if err := s.Scan(&p.ID, &p.User, &p.Text, &p.Name, &p.Avatar, &likes, &comments, &p.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}

	p.Likes = []models.Like{}
	if err := json.Unmarshal(likes, &p.Likes); err != nil {
		return nil, fmt.Errorf("decode likes of post %s: %w", p.ID, err)
	}
	p.Comments = []models.Comment{}
	if err := json.Unmarshal(comments, &p.Comments); err != nil {
		return nil, fmt.Errorf("decode comments of post %s: %w", p.ID, err)
	}
	return &p, nil
}

func marshalEngagement(post *models.Post) ([]byte, []byte, error) {
	likes := post.Likes
	if likes == nil {
		likes = []models.Like{}
	}
	comments := post.Comments
	if comments == nil {
		comments = []models.Comment{}
	}

	l, err := json.Marshal(likes)
	if err != nil {
		return nil, nil, fmt.Errorf("encode likes: %w", err)
	}
	c, err := json.Marshal(comments)
	if err != nil {
		return nil, nil, fmt.Errorf("encode comments: %w", err)
	}
	return l, c, nil
}

type PostgresUsers struct {
	db *sql.DB
}

func NewPostgresUsers(db *sql.DB) *PostgresUsers {
	return &PostgresUsers{db: db}
}

func (r *PostgresUsers) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Name, u.Email, u.Password, u.Avatar, u.Date)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return models.ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PostgresUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *PostgresUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, models.NormalizeEmail(email))
}

func (r *PostgresUsers) findOne(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password, avatar, created_at FROM users `+where, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Avatar, &u.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

type PostgresDeviceTokens struct {
	db *sql.DB
}

func NewPostgresDeviceTokens(db *sql.DB) *PostgresDeviceTokens {
	return &PostgresDeviceTokens{db: db}
}

func (r *PostgresDeviceTokens) SaveToken(ctx context.Context, userID, token string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fcm_tokens (user_id, token, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id, token)
		DO UPDATE SET updated_at = NOW()`,
		userID, token)
	if err != nil {
		return fmt.Errorf("upsert device token: %w", err)
	}
	return nil
}

func (r *PostgresDeviceTokens) TokensForUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT token
		FROM fcm_tokens
		WHERE user_id = $1
		  AND token IS NOT NULL
		  AND token != ''`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan device token: %w", err)
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (r *PostgresDeviceTokens) DeleteToken(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM fcm_tokens WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete device token: %w", err)
	}
	return nil
}
