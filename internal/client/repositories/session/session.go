// Package session persists the signed-in session: the access token, the
// user record and the user id. Every write goes to durable storage (when
// one is available) and to the cookie store the web front-end reads.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/soulara/internal/client/models"
	"github.com/dmitrijs2005/soulara/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/soulara/internal/client/repositories/storage"
	"github.com/dmitrijs2005/soulara/internal/common"
	"github.com/dmitrijs2005/soulara/internal/logging"
)

// Repository is the session persistence contract used by the auth service.
type Repository interface {
	Save(ctx context.Context, user *models.User, token string) error
	// Load returns the stored session. Absent or corrupt data yields
	// ("", nil, nil); corrupt data is cleared first.
	Load(ctx context.Context) (string, *models.User, error)
	Clear(ctx context.Context) error
}

// CookieOptions are the attributes of every session cookie.
type CookieOptions struct {
	TTL      time.Duration
	Path     string
	SameSite http.SameSite
	Secure   bool
}

func DefaultCookieOptions() CookieOptions {
	return CookieOptions{
		TTL:      common.SessionCookieTTL,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
}

type DualRepository struct {
	storage storage.Repository
	cookies cookies.Store
	opts    CookieOptions
	logger  logging.Logger
	now     func() time.Time
}

var _ Repository = (*DualRepository)(nil)

// NewDualRepository builds a Repository over both backends. st may be nil
// when no durable storage exists; then only cookies are written and Load
// finds nothing.
func NewDualRepository(st storage.Repository, cs cookies.Store, opts CookieOptions, logger logging.Logger) *DualRepository {
	if logger == nil {
		logger = logging.Nop{}
	}
	if opts.Path == "" {
		opts.Path = "/"
	}
	return &DualRepository{
		storage: st,
		cookies: cs,
		opts:    opts,
		logger:  logger.With("module", "session"),
		now:     time.Now,
	}
}

func (r *DualRepository) Save(ctx context.Context, user *models.User, token string) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	var errs []error
	if r.storage != nil {
		err := r.storage.SetAll(ctx, map[string][]byte{
			common.KeyAuthToken: []byte(token),
			common.KeyUser:      data,
			common.KeyUserID:    []byte(user.ID),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	expires := r.now().Add(r.opts.TTL)
	values := map[string]string{
		common.KeyAuthToken: token,
		common.KeyUser:      url.QueryEscape(string(data)),
		common.KeyUserID:    user.ID,
	}
	for _, name := range common.SessionKeys {
		if err := r.cookies.Set(ctx, r.cookie(name, values[name], expires)); err != nil {
			errs = append(errs, fmt.Errorf("cookie %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (r *DualRepository) Load(ctx context.Context) (string, *models.User, error) {
	if r.storage == nil {
		return "", nil, nil
	}

	token, err := r.storage.Get(ctx, common.KeyAuthToken)
	if err != nil {
		return "", nil, fmt.Errorf("load session: %w", err)
	}
	raw, err := r.storage.Get(ctx, common.KeyUser)
	if err != nil {
		return "", nil, fmt.Errorf("load session: %w", err)
	}
	if len(raw) == 0 {
		return string(token), nil, nil
	}

	var user models.User
	err = json.Unmarshal(raw, &user)
	if err == nil {
		err = user.Validate()
	}
	if err != nil {
		r.logger.Warn(ctx, "stored user record is corrupt, clearing session", "error", err)
		if cerr := r.Clear(ctx); cerr != nil {
			r.logger.Error(ctx, "failed to clear corrupt session", "error", cerr)
		}
		return "", nil, nil
	}
	return string(token), &user, nil
}

func (r *DualRepository) Clear(ctx context.Context) error {
	var errs []error
	if r.storage != nil {
		if err := r.storage.DeleteAll(ctx, common.SessionKeys...); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	for _, name := range common.SessionKeys {
		if err := r.cookies.Delete(ctx, name, r.opts.Path); err != nil {
			errs = append(errs, fmt.Errorf("cookie %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Token returns the access token as the API layer sees it: read from the
// cookie store, like the front-end does.
func (r *DualRepository) Token(ctx context.Context) (string, error) {
	c, err := r.cookies.Get(ctx, common.KeyAuthToken, r.opts.Path)
	if err != nil || c == nil {
		return "", err
	}
	return c.Value, nil
}

func (r *DualRepository) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     r.opts.Path,
		Expires:  expires,
		SameSite: r.opts.SameSite,
		Secure:   r.opts.Secure,
	}
}

// DecodeUserCookie reverses the encoding Save applies to the user cookie.
func DecodeUserCookie(value string) (*models.User, error) {
	s, err := url.QueryUnescape(value)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal([]byte(s), &u); err != nil {
		return nil, err
	}
	return &u, nil
}
