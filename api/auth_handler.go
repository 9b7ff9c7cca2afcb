package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmuuo/portfolio-backend/config"
	"github.com/dmuuo/portfolio-backend/database"
	"github.com/dmuuo/portfolio-backend/errs"
	"github.com/dmuuo/portfolio-backend/models"
)

type authHandler struct {
	responder         Responder
	logger            zerolog.Logger
	userRepo          *database.UserRepo
	tokens            authMiddleware
	allowRegistration bool
}

func newAuthHandler(userRepo *database.UserRepo, cfg map[string]string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:         NewResponder(logger),
		logger:            logger,
		userRepo:          userRepo,
		tokens:            newAuthMiddleware(config.GetString(cfg, "JWT_SECRET", "")),
		allowRegistration: config.GetBool(cfg, "ALLOW_REGISTRATION", false),
	}
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register creates a user. Open registration is disabled unless
// ALLOW_REGISTRATION is set; the very first user becomes the admin.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		creds.Username = strings.TrimSpace(creds.Username)
		if creds.Username == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("username"))
			return
		}
		if creds.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if len(creds.Password) < 8 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("password", "must be at least 8 characters"))
			return
		}

		userCount, err := h.userRepo.Count()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "users", err))
			return
		}
		if userCount > 0 && !h.allowRegistration {
			h.responder.WriteError(w, errs.NewForbiddenError("registration is disabled"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to hash password"))
			return
		}

		role := models.RoleAuthor
		if userCount == 0 {
			role = models.RoleAdmin
		}

		user := models.User{
			Username:     creds.Username,
			Email:        creds.Email,
			PasswordHash: string(hash),
			Role:         role,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, user)
	}
}

// login verifies the password and issues a signed token carrying the user's
// ID and role.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		user, err := h.userRepo.FindByUsername(creds.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		// Same response whether the user is missing or the password is wrong
		if user == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		token, err := h.tokens.issueToken(user.ID, user.Username, user.Role)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to issue token"))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"token": token,
			"user":  user,
		})
	}
}

// getCurrentUser returns the authenticated caller's record.
func (h authHandler) getCurrentUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}
