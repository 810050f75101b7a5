package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/soulara/internal/client/client"
	"github.com/dmitrijs2005/soulara/internal/client/config"
	"github.com/dmitrijs2005/soulara/internal/client/models"
	"github.com/dmitrijs2005/soulara/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/soulara/internal/client/repositories/session"
	"github.com/dmitrijs2005/soulara/internal/client/repositories/storage"
	"github.com/dmitrijs2005/soulara/internal/client/services"
	"github.com/dmitrijs2005/soulara/internal/web/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "jane@x.com"
	testPassword = "Sunny-Day7"
	testToken    = "tok1"
)

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fakeAPI is a minimal Auth API that knows one member.
type fakeAPI struct {
	user        map[string]any
	deactivated atomic.Bool
	registered  atomic.Int32
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{user: map[string]any{
		"_id": "u1", "firstName": "Jane", "lastName": "Doe", "email": testEmail,
	}}
}

func (f *fakeAPI) handler() http.Handler {
	ok := func(w http.ResponseWriter, data any) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
	}
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+testToken {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Not authorized"})
				return
			}
			h(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		var req client.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != testEmail || req.Password != testPassword {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
			return
		}
		ok(w, map[string]any{"user": f.user, "accessToken": testToken})
	})
	mux.HandleFunc("POST /users/register", func(w http.ResponseWriter, r *http.Request) {
		f.registered.Add(1)
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "User registered"})
	})
	mux.HandleFunc("GET /users/profile", authed(func(w http.ResponseWriter, r *http.Request) {
		u := map[string]any{"bio": "Loves hiking", "profileCompleteness": 40}
		for k, v := range f.user {
			u[k] = v
		}
		ok(w, map[string]any{"user": u})
	}))
	mux.HandleFunc("PUT /users/profile", authed(func(w http.ResponseWriter, r *http.Request) {
		ok(w, map[string]any{"user": f.user})
	}))
	mux.HandleFunc("PUT /users/location", authed(func(w http.ResponseWriter, r *http.Request) {
		ok(w, map[string]any{"user": f.user})
	}))
	mux.HandleFunc("PUT /users/change-password", authed(func(w http.ResponseWriter, r *http.Request) {
		var req client.ChangePasswordRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.CurrentPassword != testPassword {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Current password is incorrect"})
			return
		}
		ok(w, nil)
	}))
	mux.HandleFunc("PUT /users/deactivate", authed(func(w http.ResponseWriter, r *http.Request) {
		f.deactivated.Store(true)
		ok(w, nil)
	}))
	return mux
}

type testEnv struct {
	app      *App
	api      *fakeAPI
	out      *bytes.Buffer
	sessions *session.DualRepository
}

// newTestEnv wires an App the way NewApp does, with in-memory storage, a
// fake Auth API and a web front-end that only runs the route guard.
func newTestEnv(t *testing.T, input *bufio.Reader) *testEnv {
	t.Helper()

	api := newFakeAPI()
	apiSrv := httptest.NewServer(api.handler())
	t.Cleanup(apiSrv.Close)

	page := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	webSrv := httptest.NewServer(guard.Middleware(guard.New(), nil)(page))
	t.Cleanup(webSrv.Close)

	st := storage.NewMemoryRepository()
	cs := cookies.NewMemoryStore()
	sessions := session.NewDualRepository(st, cs, session.DefaultCookieOptions(), nil)

	httpAPI := client.NewHTTPClient(apiSrv.URL, client.WithTokenSource(sessions.Token))
	auth := services.NewAuthService(httpAPI, sessions, services.NewStore(), nil)
	httpAPI.SetUnauthorizedHandler(auth.Expire)

	webBase, err := url.Parse(webSrv.URL)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	cfg := &config.Config{RequestTimeout: 5 * time.Second}
	app := newApp(cfg, auth, cs, webBase, input, out, nil)
	auth.Init(context.Background())

	return &testEnv{app: app, api: api, out: out, sessions: sessions}
}

// stubPasswords feeds getPassword from a queue.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(prompt string, w io.Writer) (string, error) {
		require.NotEmpty(t, pws, "unexpected password prompt %q", prompt)
		pw := pws[0]
		pws = pws[1:]
		return pw, nil
	}
}

func (e *testEnv) take() string {
	s := e.out.String()
	e.out.Reset()
	return s
}

func TestApp_LoginVisitLogout(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t, readerFromLines(testEmail))
	stubPasswords(t, testPassword)

	require.NoError(t, e.app.Visit(ctx, []string{"/profile"}))
	assert.Equal(t, "307 -> /login?redirect=%2Fprofile\n", e.take())

	require.NoError(t, e.app.Login(ctx))
	assert.Contains(t, e.take(), "Welcome back, Jane Doe!")
	assert.True(t, e.app.isLoggedIn())
	assert.Equal(t, "("+testEmail+")", e.app.getStatus())

	require.NoError(t, e.app.Visit(ctx, []string{"profile"}))
	assert.Equal(t, "200 OK\n", e.take())

	require.NoError(t, e.app.Visit(ctx, []string{"/login"}))
	assert.Equal(t, "307 -> /\n", e.take())

	require.NoError(t, e.app.Logout(ctx))
	assert.Equal(t, "Logged out\n", e.take())
	assert.False(t, e.app.isLoggedIn())
	assert.Equal(t, "", e.app.getStatus())

	require.NoError(t, e.app.Visit(ctx, []string{"/profile/42"}))
	assert.Equal(t, "307 -> /login?redirect=%2Fprofile%2F42\n", e.take())
}

func TestApp_LoginFailure(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t, readerFromLines(testEmail))
	stubPasswords(t, "wrong")

	require.Error(t, e.app.Login(ctx))
	assert.Equal(t, "Error: Invalid credentials\n", e.take())

	require.NoError(t, e.app.Status(ctx))
	assert.Equal(t, "Status: signed out\nLast error: Invalid credentials\n", e.take())

	require.NoError(t, e.app.ClearError(ctx))
	require.NoError(t, e.app.Status(ctx))
	assert.Equal(t, "Status: signed out\n", e.take())
}

func TestApp_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account without signing in", func(t *testing.T) {
		e := newTestEnv(t, readerFromLines("Jane", "Doe", testEmail, ""))
		stubPasswords(t, testPassword, testPassword)

		require.NoError(t, e.app.Signup(ctx))
		out := e.take()
		assert.Contains(t, out, "Password strength: Strong")
		assert.Contains(t, out, "Account created. Please log in.")
		assert.EqualValues(t, 1, e.api.registered.Load())
		assert.False(t, e.app.isLoggedIn())
	})

	t.Run("mismatched confirmation never reaches the API", func(t *testing.T) {
		e := newTestEnv(t, readerFromLines("Jane", "Doe", testEmail, ""))
		stubPasswords(t, testPassword, "Sunny-Day8")

		require.Error(t, e.app.Signup(ctx))
		assert.Contains(t, e.take(), "Error: passwords do not match")
		assert.EqualValues(t, 0, e.api.registered.Load())
	})
}

func TestApp_ProfileCommands(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t, readerFromLines(testEmail, "no", "yes"))
	stubPasswords(t, testPassword, "wrong", "Brand-New9", testPassword, "Brand-New9")

	require.NoError(t, e.app.Login(ctx))
	e.take()

	require.NoError(t, e.app.Profile(ctx))
	out := e.take()
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Loves hiking")
	assert.Contains(t, out, "40%")

	require.NoError(t, e.app.Set(ctx, []string{"bio", "Coffee", "and", "books"}))
	assert.Equal(t, "Profile updated\n", e.take())
	assert.Equal(t, "Coffee and books", e.app.auth.Store().State().User.Bio)

	require.NoError(t, e.app.Set(ctx, []string{"interests", "hiking, jazz,,"}))
	assert.Equal(t, []string{"hiking", "jazz"}, e.app.auth.Store().State().User.Interests)
	e.take()

	require.Error(t, e.app.Set(ctx, []string{"gender", "robot"}))
	assert.Contains(t, e.take(), `"robot" is not an accepted value`)

	require.NoError(t, e.app.Set(ctx, []string{"gender", "female"}))
	assert.Equal(t, models.Gender("female"), e.app.auth.Store().State().User.Gender)
	e.take()

	require.NoError(t, e.app.Set(ctx, []string{"nickname", "JD"}))
	assert.Contains(t, e.take(), "Unknown field: nickname")

	require.NoError(t, e.app.Set(ctx, []string{"bio"}))
	assert.Contains(t, e.take(), "Usage: set <field> <value>")

	require.NoError(t, e.app.Location(ctx, []string{"Riga", "Latvia"}))
	assert.Equal(t, "Location updated\n", e.take())
	loc := e.app.auth.Store().State().User.Location
	require.NotNil(t, loc)
	assert.Equal(t, "Riga", loc.City)
	assert.Equal(t, "Latvia", loc.Country)

	require.Error(t, e.app.Passwd(ctx))
	assert.Equal(t, "Error: Current password is incorrect\n", e.take())

	require.NoError(t, e.app.Passwd(ctx))
	assert.Equal(t, "Password changed\n", e.take())

	require.NoError(t, e.app.Deactivate(ctx))
	assert.Contains(t, e.take(), "Cancelled")
	assert.False(t, e.api.deactivated.Load())

	require.NoError(t, e.app.Deactivate(ctx))
	assert.Contains(t, e.take(), "Account deactivated")
	assert.True(t, e.api.deactivated.Load())
	assert.False(t, e.app.isLoggedIn())
}

func TestApp_CommandsNeedSession(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t, readerFromLines())

	require.Error(t, e.app.Profile(ctx))
	assert.Equal(t, "Please log in first\n", e.take())

	require.Error(t, e.app.Location(ctx, []string{"Riga"}))
	assert.Equal(t, "Please log in first\n", e.take())
}

func TestApp_ExpiredTokenSignsOut(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t, readerFromLines())

	u := &models.User{ID: "u1", FirstName: "Jane", LastName: "Doe", Email: testEmail}
	require.NoError(t, e.sessions.Save(ctx, u, "stale"))
	e.app.auth.Init(ctx)
	require.True(t, e.app.isLoggedIn())

	require.Error(t, e.app.Profile(ctx))
	assert.Equal(t, "Error: Not authorized\n", e.take())
	assert.False(t, e.app.isLoggedIn())

	require.NoError(t, e.app.Visit(ctx, []string{"/find-match"}))
	assert.Equal(t, "307 -> /login?redirect=%2Ffind-match\n", e.take())
}

func TestApp_RunRestoresSession(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t, readerFromLines("status", "exit"))

	u := &models.User{ID: "u1", FirstName: "Jane", LastName: "Doe", Email: testEmail}
	require.NoError(t, e.sessions.Save(ctx, u, testToken))

	require.NoError(t, e.app.Run(ctx))
	out := e.take()
	assert.Contains(t, out, "Signed in as Jane Doe <jane@x.com>")
	assert.Contains(t, out, "soulara (jane@x.com)> ")
	assert.Contains(t, out, "Status: signed in as Jane Doe <jane@x.com>")
	assert.Contains(t, out, "Bye!")
}
