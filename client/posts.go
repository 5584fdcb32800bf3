package client

import (
	"context"

	"devconnector.com/social-network/models"
)

func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	res, err := c.r(ctx).
		SetResult(&[]models.Post{}).
		Get("/api/posts")
	if err != nil {
		return nil, err
	}
	if err := check(res); err != nil {
		return nil, err
	}

	return *res.Result().(*[]models.Post), nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*models.Post, error) {
	res, err := c.r(ctx).
		SetPathParam("id", id).
		SetResult(&models.Post{}).
		Get("/api/posts/{id}")
	if err != nil {
		return nil, err
	}
	if err := check(res); err != nil {
		return nil, err
	}

	return res.Result().(*models.Post), nil
}

func (c *Client) CreatePost(ctx context.Context, text string) (*models.Post, error) {
	res, err := c.r(ctx).
		SetBody(models.TextRequest{Text: text}).
		SetResult(&models.Post{}).
		Post("/api/posts")
	if err != nil {
		return nil, err
	}
	if err := check(res); err != nil {
		return nil, err
	}

	return res.Result().(*models.Post), nil
}

func (c *Client) UpdatePost(ctx context.Context, id, text string) (*models.Post, error) {
	res, err := c.r(ctx).
		SetPathParam("id", id).
		SetBody(models.TextRequest{Text: text}).
		SetResult(&models.Post{}).
		Put("/api/posts/{id}")
	if err != nil {
		return nil, err
	}
	if err := check(res); err != nil {
		return nil, err
	}

	return res.Result().(*models.Post), nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	res, err := c.r(ctx).
		SetPathParam("id", id).
		Delete("/api/posts/{id}")
	if err != nil {
		return err
	}
	return check(res)
}

func (c *Client) Like(ctx context.Context, id string) ([]models.Like, error) {
	return c.likes(ctx, "/api/posts/like/{id}", id)
}

func (c *Client) Unlike(ctx context.Context, id string) ([]models.Like, error) {
	return c.likes(ctx, "/api/posts/unlike/{id}", id)
}

func (c *Client) likes(ctx context.Context, path, id string) ([]models.Like, error) {
	res, err := c.r(ctx).
		SetPathParam("id", id).
		SetResult(&[]models.Like{}).
		Put(path)
	if err != nil {
		return nil, err
	}
	if err := check(res); err != nil {
		return nil, err
	}

	return *res.Result().(*[]models.Like), nil
}

func (c *Client) AddComment(ctx context.Context, id, text string) ([]models.Comment, error) {
	res, err := c.r(ctx).
		SetPathParam("id", id).
		SetBody(models.TextRequest{Text: text}).
		SetResult(&[]models.Comment{}).
		Post("/api/posts/comment/{id}")
	if err != nil {
		return nil, err
	}
	if err := check(res); err != nil {
		return nil, err
	}

	return *res.Result().(*[]models.Comment), nil
}

func (c *Client) DeleteComment(ctx context.Context, id, commentID string) ([]models.Comment, error) {
	res, err := c.r(ctx).
		SetPathParams(map[string]string{"id": id, "comment_id": commentID}).
		SetResult(&[]models.Comment{}).
		Delete("/api/posts/comment/{id}/{comment_id}")
	if err != nil {
		return nil, err
	}
	if err := check(res); err != nil {
		return nil, err
	}

	return *res.Result().(*[]models.Comment), nil
}
