package users

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/samandr77/microservices/challenge/internal/entity"
	"github.com/samandr77/microservices/challenge/pkg/config"
	"github.com/samandr77/microservices/challenge/pkg/transport"
)

const defaultRetryWaitMax = time.Second * 5

// Client resolves users in the user directory service.
type Client struct {
	client *http.Client
	url    string
}

func NewClient(cfg config.UsersConfig) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryAttempts
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.HTTPClient.Transport = transport.NewLoggingRoundTripper(retryClient.HTTPClient.Transport)
	retryClient.Logger = nil

	return &Client{
		client: retryClient.StandardClient(),
		url:    cfg.URL,
	}
}

type UserResponse struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	IsBlocked bool   `json:"is_blocked"`
}

func (c *Client) UserByPhone(ctx context.Context, phone string) (entity.User, error) {
	u := c.url + "/internal/users?phone=" + url.QueryEscape(phone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.User{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.User{}, fmt.Errorf("send request: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.User{}, fmt.Errorf("read body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var data UserResponse

		if err := json.Unmarshal(body, &data); err != nil {
			return entity.User{}, fmt.Errorf("decode response: %w\n%s", err, body)
		}

		if data.IsBlocked {
			return entity.User{}, entity.ErrUserBlocked
		}

		userID, err := uuid.FromString(data.UserID)
		if err != nil {
			return entity.User{}, fmt.Errorf("decode user_id: %w", err)
		}

		return entity.User{
			ID:    userID,
			Name:  data.Name,
			Phone: data.Phone,
			Email: data.Email,
		}, nil
	case http.StatusNotFound:
		return entity.User{}, entity.ErrUserNotFound
	case http.StatusForbidden:
		return entity.User{}, entity.ErrUserBlocked
	case http.StatusGone:
		return entity.User{}, entity.ErrUserDeleted
	default:
		return entity.User{}, fmt.Errorf("unexpected code %d\n%s", resp.StatusCode, body)
	}
}
