package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/dmitrijs2005/soulara/internal/client/client"
	"github.com/dmitrijs2005/soulara/internal/client/config"
	"github.com/dmitrijs2005/soulara/internal/client/models"
	"github.com/dmitrijs2005/soulara/internal/client/repositories"
	"github.com/dmitrijs2005/soulara/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/soulara/internal/client/repositories/session"
	"github.com/dmitrijs2005/soulara/internal/client/services"
	"github.com/dmitrijs2005/soulara/internal/logging"
)

// authService is the part of services.AuthService the commands use.
type authService interface {
	Init(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, in services.SignupInput) error
	Logout(ctx context.Context)
	ClearError()
	FetchProfile(ctx context.Context) (*models.User, error)
	SaveProfile(ctx context.Context, patch models.UserPatch) (*models.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	UpdateLocation(ctx context.Context, loc models.Location) (*models.User, error)
	Deactivate(ctx context.Context) error
	Store() *services.Store
}

type App struct {
	config  *config.Config
	auth    authService
	web     *http.Client
	webBase *url.URL
	reader  *bufio.Reader
	out     io.Writer
	logger  logging.Logger
	close   func() error
}

// NewApp opens local storage and wires the session services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	webBase, err := url.Parse(c.WebBaseURL)
	if err != nil || webBase.Host == "" {
		return nil, fmt.Errorf("invalid web base url %q", c.WebBaseURL)
	}

	repos, err := repositories.Open(ctx, c.DatabaseFile)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	opts := session.DefaultCookieOptions()
	opts.Secure = c.SecureCookies
	sessions := session.NewDualRepository(repos.Storage, repos.Cookies, opts, logger)

	api := client.NewHTTPClient(c.APIBaseURL,
		client.WithTokenSource(sessions.Token),
		client.WithLogger(logger),
		client.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}))

	store := services.NewStore()
	auth := services.NewAuthService(api, sessions, store, logger)
	api.SetUnauthorizedHandler(auth.Expire)

	app := newApp(c, auth, repos.Cookies, webBase, bufio.NewReader(os.Stdin), os.Stdout, logger)
	app.close = repos.Close
	return app, nil
}

func newApp(c *config.Config, auth authService, jarStore cookies.Store, webBase *url.URL, r *bufio.Reader, w io.Writer, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &App{
		config:  c,
		auth:    auth,
		webBase: webBase,
		web: &http.Client{
			Jar:     cookies.NewJar(jarStore, webBase, logger),
			Timeout: c.RequestTimeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		reader: r,
		out:    w,
		logger: logger.With("module", "cli"),
		close:  func() error { return nil },
	}
}

// Run restores the stored session and serves the REPL until the user exits
// or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.close(); err != nil {
			a.logger.Error(ctx, "failed to close local storage", "error", err)
		}
	}()

	unsubscribe := a.auth.Store().Subscribe(func(s services.State) {
		a.logger.Debug(ctx, "session state", "authenticated", s.IsAuthenticated, "loading", s.Loading, "error", s.Error)
	})
	defer unsubscribe()

	a.auth.Init(ctx)

	fmt.Fprintln(a.out, "Welcome to Soulara (type 'help' for commands)")
	if u := a.auth.Store().State().User; u != nil {
		fmt.Fprintf(a.out, "Signed in as %s <%s>\n", u.FullName(), u.Email)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.auth.Store().State().IsAuthenticated
}

func (a *App) getStatus() string {
	s := a.auth.Store().State()
	if !s.IsAuthenticated || s.User == nil {
		return ""
	}
	return "(" + s.User.Email + ")"
}

// withTimeout bounds a single command by the configured request timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// report prints err in member-facing words and returns it.
func (a *App) report(err error) error {
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(a.out, "Error: the request timed out, please try again")
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Error: the server is unavailable, please try again later")
	case errors.Is(err, services.ErrNotAuthenticated):
		fmt.Fprintln(a.out, "Please log in first")
	default:
		fmt.Fprintln(a.out, "Error:", err.Error())
	}
	return err
}
