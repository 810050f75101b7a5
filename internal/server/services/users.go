// Package services implements the Auth API's member operations on top of
// the users repository.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	profile "github.com/dmitrijs2005/soulara/internal/client/models"
	"github.com/dmitrijs2005/soulara/internal/common"
	"github.com/dmitrijs2005/soulara/internal/cryptox"
	"github.com/dmitrijs2005/soulara/internal/logging"
	"github.com/dmitrijs2005/soulara/internal/server/auth"
	"github.com/dmitrijs2005/soulara/internal/server/models"
	"github.com/dmitrijs2005/soulara/internal/server/repositories/users"
)

type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Password  string `json:"password" validate:"required,min=8"`
}

type LoginResult struct {
	User        *profile.User
	AccessToken string
	ExpiresAt   time.Time
}

// ValidationError is a request the API refuses with 400. It matches
// common.ErrorValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == common.ErrorValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type UserService struct {
	repo      users.Repository
	jwtSecret []byte
	validity  time.Duration
	logger    logging.Logger
	now       func() time.Time
}

func NewUserService(repo users.Repository, secret []byte, validity time.Duration, logger logging.Logger) *UserService {
	return &UserService{
		repo:      repo,
		jwtSecret: secret,
		validity:  validity,
		logger:    logger.With("module", "users"),
		now:       time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*profile.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		IsActive:     true,
		Profile: profile.User{
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Phone:        strings.TrimSpace(in.Phone),
			Avatar:       profile.AvatarURL(in.Email),
			Privacy:      profile.PrivacyPublic,
			Subscription: profile.SubscriptionFree,
		},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("user with this email %w", common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "Registered", "id", user.ID)
	return user.Public(), nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidLogin
		}
		return nil, err
	}

	if err := cryptox.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, common.ErrorWrongPassword) {
			return nil, common.ErrorInvalidLogin
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, common.ErrorDeactivated
	}

	token, expires, err := auth.GenerateToken(user.ID, s.jwtSecret, s.validity)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	user.Profile.LastActive = s.now().UTC().Format(time.RFC3339)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &LoginResult{User: user.Public(), AccessToken: token, ExpiresAt: expires}, nil
}

// Authenticate resolves an access token to an active member id.
func (s *UserService) Authenticate(ctx context.Context, token string) (string, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return "", err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", err
	}
	if !user.IsActive {
		return "", common.ErrorDeactivated
	}
	return id, nil
}

func (s *UserService) Profile(ctx context.Context, id string) (*profile.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// UpdateProfile applies patch to the member's profile. Email and the
// subscription tier cannot be changed this way and enum values outside their
// sets are dropped.
func (s *UserService) UpdateProfile(ctx context.Context, id string, patch profile.UserPatch) (*profile.User, error) {
	patch.Email = nil
	patch.Subscription = nil
	patch.ProfileCompleteness = nil
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	return s.update(ctx, id, func(u *models.User) {
		p := u.Profile.Apply(patch)
		p.Normalize()
		u.Profile = *p
	})
}

func (s *UserService) UpdateLocation(ctx context.Context, id string, loc profile.Location) (*profile.User, error) {
	if err := validateLocation(loc); err != nil {
		return nil, err
	}

	return s.update(ctx, id, func(u *models.User) {
		l := loc
		u.Profile.Location = &l
	})
}

func (s *UserService) ChangePassword(ctx context.Context, id, current, next string) error {
	if current == "" {
		return invalid("current password is required")
	}
	if err := validate.Var(next, "required,min=8"); err != nil {
		return invalid("password must be at least 8 characters")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := cryptox.CheckPassword(user.PasswordHash, current); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	return s.repo.Update(ctx, user)
}

func (s *UserService) Deactivate(ctx context.Context, id string) error {
	_, err := s.update(ctx, id, func(u *models.User) { u.IsActive = false })
	if err == nil {
		s.logger.Info(ctx, "Deactivated", "id", id)
	}
	return err
}

func (s *UserService) update(ctx context.Context, id string, fn func(u *models.User)) (*profile.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(user)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.Public(), nil
}
