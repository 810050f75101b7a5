package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/soulara/internal/client/models"
	"github.com/dmitrijs2005/soulara/internal/common"
	"github.com/dmitrijs2005/soulara/internal/logging"
)

const maxErrorBody = 1 << 20

type HTTPClient struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized UnauthorizedHandler
	logger         logging.Logger
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *HTTPClient) { c.onUnauthorized = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient returns a client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logging.Nop{},
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = c.logger.With("module", "apiclient")
	return c
}

// SetUnauthorizedHandler replaces the 401 hook. It must be called before the
// client is shared between goroutines.
func (c *HTTPClient) SetUnauthorizedHandler(h UnauthorizedHandler) {
	c.onUnauthorized = h
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp envelope[LoginResult]
	if err := c.do(ctx, http.MethodPost, "/users/login", false, LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	res := resp.Data
	if res.User.ID == "" || res.User.Email == "" || res.AccessToken == "" {
		return nil, fmt.Errorf("%w: login response lacks user id, email or token", ErrMalformedResponse)
	}
	res.User.Normalize()
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) error {
	var resp envelope[json.RawMessage]
	return c.do(ctx, http.MethodPost, "/users/register", false, req, &resp)
}

type userData struct {
	User models.User `json:"user"`
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.User, error) {
	return c.userCall(ctx, http.MethodGet, "/users/profile", nil)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	return c.userCall(ctx, http.MethodPut, "/users/profile", patch)
}

func (c *HTTPClient) UpdateLocation(ctx context.Context, loc models.Location) (*models.User, error) {
	return c.userCall(ctx, http.MethodPut, "/users/location", loc)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	var resp envelope[json.RawMessage]
	return c.do(ctx, http.MethodPut, "/users/change-password", true,
		ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}, &resp)
}

func (c *HTTPClient) Deactivate(ctx context.Context) error {
	var resp envelope[json.RawMessage]
	return c.do(ctx, http.MethodPut, "/users/deactivate", true, nil, &resp)
}

func (c *HTTPClient) userCall(ctx context.Context, method, path string, body any) (*models.User, error) {
	var resp envelope[userData]
	if err := c.do(ctx, method, path, true, body, &resp); err != nil {
		return nil, err
	}
	u := resp.Data.User
	if u.ID == "" {
		return nil, fmt.Errorf("%w: %s response lacks user", ErrMalformedResponse, path)
	}
	u.Normalize()
	return &u, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, auth bool, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if auth && c.tokens != nil {
		token, err := c.tokens(ctx)
		if err != nil {
			return fmt.Errorf("read access token: %w", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Warn(ctx, "api request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		c.logger.Debug(ctx, "api error", "method", method, "path", path, "status", resp.StatusCode, "message", apiErr.Message)
		if resp.StatusCode == http.StatusUnauthorized && auth && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Message: defaultErrorMessage}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body struct {
		Message any `json:"message"`
		Error   any `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		if text := http.StatusText(resp.StatusCode); text != "" {
			apiErr.Message = text
		}
		return apiErr
	}

	for _, v := range []any{body.Message, body.Error} {
		if s, ok := v.(string); ok && s != "" {
			apiErr.Message = s
			break
		}
	}
	return apiErr
}
