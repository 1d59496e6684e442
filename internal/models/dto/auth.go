package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hongminglow/platform-accounts/internal/models"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	Success bool               `json:"success"`
	User    models.UserProfile `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool               `json:"success"`
	User    models.UserProfile `json:"user"`
	Token   string             `json:"token"`
}

type SetupPlatformsRequest struct {
	UserID       UserID             `json:"userId"`
	PlatformData map[string]*string `json:"platformData"`
}

type SetupPlatformsResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

type UserPlatformsResponse struct {
	Success   bool                  `json:"success"`
	Platforms models.PlatformFields `json:"platforms"`
	SetupAt   *time.Time            `json:"setupAt"`
}

// UserID accepts a JSON number or a numeric string; null, "", 0 and false decode to zero.
type UserID int64

func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "false", `""`:
		*id = 0
		return nil
	}
	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
	} else {
		raw = string(data)
	}
	if raw == "" {
		*id = 0
		return nil
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("userId must be an integer: %w", err)
	}
	*id = UserID(parsed)
	return nil
}
