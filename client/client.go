package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"devconnector.com/social-network/models"
)

const DefaultBaseURL = "http://localhost:5000"

// APIError is a non-2xx answer from the server, decoded from either the
// {"msg"} or the {"errors":[...]} body shape.
type APIError struct {
	Status int                 `json:"-"`
	Msg    string              `json:"msg"`
	Errors []models.FieldError `json:"errors"`
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%d: %s", e.Status, e.Msg)
	}
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Msg
	}
	return fmt.Sprintf("%d: %s", e.Status, strings.Join(msgs, "; "))
}

type Client struct {
	client *resty.Client
}

func New(baseURL, token string) *Client {
	client := resty.NewWithTransportSettings(&resty.TransportSettings{
		DialerTimeout:         5 * time.Second,
		DialerKeepAlive:       30 * time.Second,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
	}).
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json")
	if token != "" {
		client.SetAuthToken(token)
	}

	return &Client{client: client}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx)
}

func check(res *resty.Response) error {
	if !res.IsError() {
		return nil
	}

	apiErr := &APIError{Status: res.StatusCode()}
	body := res.String()
	if err := json.Unmarshal([]byte(body), apiErr); err != nil || (apiErr.Msg == "" && len(apiErr.Errors) == 0) {
		apiErr.Msg = strings.TrimSpace(body)
	}
	return apiErr
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	res, err := c.r(ctx).
		SetBody(req).
		SetResult(&models.TokenResponse{}).
		Post("/api/users")
	if err != nil {
		return "", err
	}
	if err := check(res); err != nil {
		return "", err
	}

	return res.Result().(*models.TokenResponse).Token, nil
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	res, err := c.r(ctx).
		SetBody(req).
		SetResult(&models.TokenResponse{}).
		Post("/api/auth")
	if err != nil {
		return "", err
	}
	if err := check(res); err != nil {
		return "", err
	}

	return res.Result().(*models.TokenResponse).Token, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	res, err := c.r(ctx).
		SetResult(&models.User{}).
		Get("/api/auth")
	if err != nil {
		return nil, err
	}
	if err := check(res); err != nil {
		return nil, err
	}

	return res.Result().(*models.User), nil
}

func (c *Client) RegisterDeviceToken(ctx context.Context, token string) error {
	res, err := c.r(ctx).
		SetBody(map[string]string{"token": token}).
		Post("/api/users/device-token")
	if err != nil {
		return err
	}
	return check(res)
}
