package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/platform-accounts/internal/http/respond"
	"github.com/hongminglow/platform-accounts/internal/models"
	"github.com/hongminglow/platform-accounts/internal/models/dto"
	"github.com/hongminglow/platform-accounts/internal/service/account"
)

const maxBodyBytes = 1 << 20

// AccountService is the subset of account.Service the HTTP layer needs.
type AccountService interface {
	Signup(ctx context.Context, in account.SignupInput) (models.UserProfile, error)
	Login(ctx context.Context, email, password string) (account.LoginResult, error)
	SetPlatforms(ctx context.Context, userID int64, data map[string]*string) (models.User, error)
	GetPlatforms(ctx context.Context, userID int64) (models.PlatformProfile, error)
}

// AuthHandler owns the signup and login endpoints.
type AuthHandler struct {
	accounts AccountService
	logger   *slog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(accounts AccountService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{accounts: accounts, logger: logger}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /signup", h.handleSignup)
	mux.HandleFunc("POST /login", h.handleLogin)
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.accounts.Signup(r.Context(), account.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, "signup", err, "Server error")
		return
	}
	respond.JSON(w, http.StatusCreated, dto.SignupResponse{Success: true, User: user})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, "login", err, "Server error")
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Success: true, User: res.User, Token: res.Token})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

// writeServiceError maps account errors to statuses. Unexpected errors are
// logged and replaced with internalMsg.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, op string, err error, internalMsg string) {
	var verr *account.ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, account.ErrDuplicateEmail):
		respond.Error(w, http.StatusBadRequest, "Email already in use")
	case errors.Is(err, account.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, account.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "User not found")
	case errors.Is(err, account.ErrNoPlatformData):
		respond.Error(w, http.StatusBadRequest, "No platform data provided")
	default:
		logger.ErrorContext(r.Context(), op+" failed", "error", err, "path", r.URL.Path)
		respond.Error(w, http.StatusInternalServerError, internalMsg)
	}
}
