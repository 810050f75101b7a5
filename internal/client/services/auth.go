package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/soulara/internal/client/client"
	"github.com/dmitrijs2005/soulara/internal/client/models"
	"github.com/dmitrijs2005/soulara/internal/client/repositories/session"
	"github.com/dmitrijs2005/soulara/internal/logging"
)

var ErrNotAuthenticated = errors.New("not signed in")

// SignupInput is the signup form.
type SignupInput struct {
	FirstName       string `validate:"required,max=50"`
	LastName        string `validate:"required,max=50"`
	Email           string `validate:"required,email"`
	Phone           string `validate:"omitempty,max=20"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// AuthService drives the session store: it restores the stored session,
// signs the member in and out, and keeps the persisted copy in step.
//
// Every method that reaches the Auth API honors ctx. A cancelled or timed
// out login ends in LoginFailure, so Loading never stays set.
type AuthService struct {
	api      client.Client
	sessions session.Repository
	store    *Store
	logger   logging.Logger
}

func NewAuthService(api client.Client, sessions session.Repository, store *Store, logger logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &AuthService{
		api:      api,
		sessions: sessions,
		store:    store,
		logger:   logger.With("module", "auth"),
	}
}

func (a *AuthService) Store() *Store {
	return a.store
}

// Init restores the persisted session. It runs once at start up and always
// ends with Loading cleared.
func (a *AuthService) Init(ctx context.Context) {
	defer a.store.Dispatch(InitComplete{})

	token, user, err := a.sessions.Load(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to restore session", "error", err)
	}
	if err == nil && token != "" && user != nil && user.ID != "" {
		a.store.Dispatch(LoginSuccess{User: user})
		return
	}
	a.store.Dispatch(Logout{})
}

// Login authenticates against the Auth API and persists the session. Any
// failure is recorded in the store and returned.
func (a *AuthService) Login(ctx context.Context, email, password string) error {
	a.store.Dispatch(LoginStart{})

	user, err := a.login(ctx, email, password)
	if err != nil {
		a.store.Dispatch(LoginFailure{Message: err.Error()})
		return err
	}

	a.store.Dispatch(LoginSuccess{User: user})
	a.logger.Info(ctx, "signed in", "user_id", user.ID)
	return nil
}

func (a *AuthService) login(ctx context.Context, email, password string) (*models.User, error) {
	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user := res.User.Clone()
	if user.Avatar == "" {
		user.Avatar = models.AvatarURL(email)
	}

	if err := a.sessions.Save(ctx, user, res.AccessToken); err != nil {
		// A partial save must not leave cookies the route guard would accept.
		if cerr := a.sessions.Clear(ctx); cerr != nil {
			a.logger.Warn(ctx, "failed to roll back partial session", "error", cerr)
		}
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return user, nil
}

// Signup registers a new member. It never signs the member in.
func (a *AuthService) Signup(ctx context.Context, in SignupInput) error {
	if err := ValidateSignup(in); err != nil {
		a.store.Dispatch(LoginFailure{Message: err.Error()})
		return err
	}

	a.store.Dispatch(LoginStart{})

	err := a.api.Register(ctx, client.RegisterRequest{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Password:  in.Password,
	})
	if err != nil {
		a.store.Dispatch(LoginFailure{Message: err.Error()})
		return err
	}

	a.store.Dispatch(ClearError{})
	a.store.Dispatch(InitComplete{})
	return nil
}

// Logout forgets the session locally. A failure to clear storage is logged;
// the store is signed out regardless.
func (a *AuthService) Logout(ctx context.Context) {
	if err := a.sessions.Clear(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear session", "error", err)
	}
	a.store.Dispatch(Logout{})
}

// Expire handles a 401 on an authenticated call: the stored session is
// dropped and the store returns to the signed-out state.
func (a *AuthService) Expire(ctx context.Context) {
	a.logger.Info(ctx, "session expired")
	a.Logout(ctx)
}

// UpdateProfile changes the in-memory user only.
func (a *AuthService) UpdateProfile(patch models.UserPatch) {
	a.store.Dispatch(UpdateProfile{Patch: patch})
}

func (a *AuthService) ClearError() {
	a.store.Dispatch(ClearError{})
}

func (a *AuthService) requireSession() error {
	if !a.store.State().IsAuthenticated {
		return ErrNotAuthenticated
	}
	return nil
}

// FetchProfile reads the member's profile from the Auth API and merges it
// into the in-memory user.
func (a *AuthService) FetchProfile(ctx context.Context) (*models.User, error) {
	if err := a.requireSession(); err != nil {
		return nil, err
	}
	u, err := a.api.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	a.store.Dispatch(UpdateProfile{Patch: PatchFrom(u)})
	return u, nil
}

// SaveProfile sends patch to the Auth API, then applies it in memory.
func (a *AuthService) SaveProfile(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	if err := a.requireSession(); err != nil {
		return nil, err
	}
	u, err := a.api.UpdateProfile(ctx, patch)
	if err != nil {
		return nil, err
	}
	a.store.Dispatch(UpdateProfile{Patch: patch})
	return u, nil
}

func (a *AuthService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	return a.api.ChangePassword(ctx, currentPassword, newPassword)
}

func (a *AuthService) UpdateLocation(ctx context.Context, loc models.Location) (*models.User, error) {
	if err := a.requireSession(); err != nil {
		return nil, err
	}
	u, err := a.api.UpdateLocation(ctx, loc)
	if err != nil {
		return nil, err
	}
	a.store.Dispatch(UpdateProfile{Patch: models.UserPatch{Location: &loc}})
	return u, nil
}

// Deactivate closes the account and signs out.
func (a *AuthService) Deactivate(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if err := a.api.Deactivate(ctx); err != nil {
		return err
	}
	a.Logout(ctx)
	return nil
}

// PatchFrom builds a patch that overwrites every profile field with u's.
func PatchFrom(u *models.User) models.UserPatch {
	c := u.Clone()
	return models.UserPatch{
		FirstName:           &c.FirstName,
		LastName:            &c.LastName,
		Email:               &c.Email,
		Phone:               &c.Phone,
		DOB:                 &c.DOB,
		Gender:              &c.Gender,
		Bio:                 &c.Bio,
		Interests:           c.Interests,
		ProfilePicture:      &c.ProfilePicture,
		Avatar:              nonEmpty(c.Avatar),
		Location:            c.Location,
		AgePreferences:      c.AgePreferences,
		SocialLinks:         c.SocialLinks,
		Privacy:             &c.Privacy,
		LookingFor:          &c.LookingFor,
		Height:              c.Height,
		Occupation:          &c.Occupation,
		Education:           &c.Education,
		Smoking:             &c.Smoking,
		Drinking:            &c.Drinking,
		RelationshipStatus:  &c.RelationshipStatus,
		Children:            &c.Children,
		Religion:            &c.Religion,
		Languages:           c.Languages,
		Subscription:        &c.Subscription,
		ProfileCompleteness: c.ProfileCompleteness,
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
