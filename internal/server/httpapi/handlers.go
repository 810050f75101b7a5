package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	profile "github.com/dmitrijs2005/soulara/internal/client/models"
	"github.com/dmitrijs2005/soulara/internal/common"
	"github.com/dmitrijs2005/soulara/internal/server/services"
)

type ctxKey string

const userIDKey ctxKey = "userID"

func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// requireAuth admits requests with a valid "Bearer <token>" of an active
// member.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeader)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		id, err := h.users.Authenticate(r.Context(), token)
		if err != nil {
			h.logger.Debug(r.Context(), "token rejected", "error", err)
			writeError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, id)))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	User                *profile.User `json:"user"`
	AccessToken         string        `json:"accessToken"`
	ExpiresAt           string        `json:"expiresAt"`
	ProfileCompleteness int           `json:"profileCompleteness"`
}

type userData struct {
	User *profile.User `json:"user"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if !decode(w, r, &in) {
		return
	}

	u, err := h.users.Register(r.Context(), in)
	if err != nil {
		h.fail(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Success: true, Message: "User registered successfully", Data: userData{User: u}})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if !decode(w, r, &in) {
		return
	}
	if in.Email == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	res, err := h.users.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		h.fail(r.Context(), w, err)
		return
	}

	data := loginData{
		User:        res.User,
		AccessToken: res.AccessToken,
		ExpiresAt:   res.ExpiresAt.UTC().Format(time.RFC3339),
	}
	if res.User.ProfileCompleteness != nil {
		data.ProfileCompleteness = *res.User.ProfileCompleteness
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Login successful", Data: data})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Profile(r.Context(), userIDFromContext(r.Context()))
	h.respondUser(w, r, u, err, "")
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var patch profile.UserPatch
	if !decode(w, r, &patch) {
		return
	}
	u, err := h.users.UpdateProfile(r.Context(), userIDFromContext(r.Context()), patch)
	h.respondUser(w, r, u, err, "Profile updated successfully")
}

func (h *Handler) updateLocation(w http.ResponseWriter, r *http.Request) {
	var loc profile.Location
	if !decode(w, r, &loc) {
		return
	}
	u, err := h.users.UpdateLocation(r.Context(), userIDFromContext(r.Context()), loc)
	h.respondUser(w, r, u, err, "Location updated successfully")
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var in changePasswordRequest
	if !decode(w, r, &in) {
		return
	}
	err := h.users.ChangePassword(r.Context(), userIDFromContext(r.Context()), in.CurrentPassword, in.NewPassword)
	if err != nil {
		h.fail(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Password changed successfully"})
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Deactivate(r.Context(), userIDFromContext(r.Context())); err != nil {
		h.fail(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Account deactivated successfully"})
}

func (h *Handler) respondUser(w http.ResponseWriter, r *http.Request, u *profile.User, err error, message string) {
	if err != nil {
		h.fail(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: userData{User: u}})
}
