package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/soulara/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func staticToken(tok string) TokenSource {
	return func(context.Context) (string, error) { return tok, nil }
}

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "login is unauthenticated")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, LoginRequest{Email: "a@x.io", Password: "pw"}, req)

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Login successful",
			"data": map[string]any{
				"user": map[string]any{
					"_id": "u1", "firstName": "A", "lastName": "B", "email": "a@x.io",
					"gender": "robot", "privacy": "public",
				},
				"accessToken":         "tok1",
				"expiresAt":           "2026-12-01T00:00:00Z",
				"profileCompleteness": 40,
			},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/api/", WithTokenSource(staticToken("should-not-be-sent")))
	res, err := c.Login(context.Background(), "a@x.io", "pw")
	require.NoError(t, err)

	assert.Equal(t, "tok1", res.AccessToken)
	assert.Equal(t, 40, res.ProfileCompleteness)
	assert.Equal(t, "u1", res.User.ID)
	assert.Empty(t, res.User.Gender, "unknown enum value is dropped")
	assert.Equal(t, models.PrivacyPublic, res.User.Privacy)
}

func TestLogin_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing token", body: `{"success":true,"data":{"user":{"_id":"u1","email":"a@x.io"}}}`},
		{name: "missing id", body: `{"success":true,"data":{"user":{"email":"a@x.io"},"accessToken":"t"}}`},
		{name: "missing email", body: `{"success":true,"data":{"user":{"_id":"u1"},"accessToken":"t"}}`},
		{name: "not json", body: `<html>ok</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL).Login(context.Background(), "a@x.io", "pw")
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
	}{
		{name: "message field", status: 401, body: `{"success":false,"message":"Invalid credentials"}`, want: "Invalid credentials"},
		{name: "error field", status: 400, body: `{"error":"Bad email"}`, want: "Bad email"},
		{name: "message wins over error", status: 400, body: `{"message":"m","error":"e"}`, want: "m"},
		{name: "empty message falls back to error", status: 400, body: `{"message":"","error":"e"}`, want: "e"},
		{name: "neither", status: 500, body: `{"success":false}`, want: "An error occurred"},
		{name: "not json uses status text", status: 502, body: `<h1>Bad gateway</h1>`, want: "Bad Gateway"},
		{name: "unknown status without text", status: 599, body: `oops`, want: "An error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewHTTPClient(srv.URL).Register(context.Background(), RegisterRequest{Email: "a@x.io"})
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestUnauthorizedHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Token expired"})
	}))
	defer srv.Close()

	calls := 0
	c := NewHTTPClient(srv.URL,
		WithTokenSource(staticToken("stale")),
		WithUnauthorizedHandler(func(context.Context) { calls++ }))

	_, err := c.GetProfile(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Token expired", err.Error())
	assert.Equal(t, 1, calls)

	_, err = c.Login(context.Background(), "a@x.io", "bad")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, calls, "unauthenticated calls do not trigger the hook")
}

func TestAuthenticatedCalls(t *testing.T) {
	var gotAuth, gotPath, gotMethod string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotBody = nil
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"user": map[string]any{"_id": "u1", "email": "a@x.io", "bio": "hi"}},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, WithTokenSource(staticToken("tok1")))
	ctx := context.Background()

	u, err := c.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hi", u.Bio)
	assert.Equal(t, "Bearer tok1", gotAuth)
	assert.Equal(t, "/users/profile", gotPath)
	assert.Equal(t, http.MethodGet, gotMethod)

	bio := "new"
	_, err = c.UpdateProfile(ctx, models.UserPatch{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, map[string]any{"bio": "new"}, gotBody)

	_, err = c.UpdateLocation(ctx, models.Location{City: "Porto"})
	require.NoError(t, err)
	assert.Equal(t, "/users/location", gotPath)
	assert.Equal(t, map[string]any{"city": "Porto"}, gotBody)

	require.NoError(t, c.ChangePassword(ctx, "old", "new"))
	assert.Equal(t, "/users/change-password", gotPath)
	assert.Equal(t, map[string]any{"currentPassword": "old", "newPassword": "new"}, gotBody)

	require.NoError(t, c.Deactivate(ctx))
	assert.Equal(t, "/users/deactivate", gotPath)
	assert.Equal(t, http.MethodPut, gotMethod)
}

func TestNoTokenOmitsHeader(t *testing.T) {
	var hadHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadHeader = r.Header["Authorization"]
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, WithTokenSource(staticToken("")))
	require.NoError(t, c.Deactivate(context.Background()))
	assert.False(t, hadHeader)
}

func TestTokenSourceError(t *testing.T) {
	boom := errors.New("store locked")
	c := NewHTTPClient("http://127.0.0.1:1", WithTokenSource(func(context.Context) (string, error) { return "", boom }))
	err := c.Deactivate(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewHTTPClient(url).Register(context.Background(), RegisterRequest{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewHTTPClient(srv.URL).Login(ctx, "a@x.io", "pw")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
