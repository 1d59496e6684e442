package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hongminglow/platform-accounts/internal/http/respond"
	"github.com/hongminglow/platform-accounts/internal/models/dto"
)

// PlatformHandler serves platform profile writes and reads.
type PlatformHandler struct {
	accounts AccountService
	logger   *slog.Logger
}

// NewPlatformHandler constructs the handler.
func NewPlatformHandler(accounts AccountService, logger *slog.Logger) *PlatformHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlatformHandler{accounts: accounts, logger: logger}
}

// Register attaches platform routes to the mux.
func (h *PlatformHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /setup-platforms", h.handleSetup)
	mux.HandleFunc("GET /user-platforms/{userId}", h.handleGet)
}

func (h *PlatformHandler) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req dto.SetupPlatformsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.accounts.SetPlatforms(r.Context(), int64(req.UserID), req.PlatformData)
	if err != nil {
		writeServiceError(w, r, h.logger, "setup platforms", err, "Server error during platform setup")
		return
	}
	respond.JSON(w, http.StatusOK, dto.SetupPlatformsResponse{
		Success: true,
		Message: "Platform setup completed successfully",
		User:    user,
	})
}

func (h *PlatformHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	profile, err := h.accounts.GetPlatforms(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, h.logger, "get platforms", err, "Server error")
		return
	}
	respond.JSON(w, http.StatusOK, dto.UserPlatformsResponse{
		Success:   true,
		Platforms: profile.Platforms,
		SetupAt:   profile.SetupAt,
	})
}
