package models

import "time"

// User captures the persisted account plus its optional platform handles.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`

	WhatsApp     *string `json:"whatsapp"`
	LinkedInPost *string `json:"linkedin_post"`
	Discord      *string `json:"discord"`
	Slack        *string `json:"slack"`
	Facebook     *string `json:"facebook"`
	Instagram    *string `json:"instagram"`
	Twitter      *string `json:"twitter"`
	PDF          *string `json:"pdf"`

	PlatformsSetupAt *time.Time `json:"platforms_setup_at"`
}

// PlatformField returns a pointer to the struct field backing p, or nil for an unknown platform.
func (u *User) PlatformField(p Platform) **string {
	switch p {
	case WhatsApp:
		return &u.WhatsApp
	case LinkedInPost:
		return &u.LinkedInPost
	case Discord:
		return &u.Discord
	case Slack:
		return &u.Slack
	case Facebook:
		return &u.Facebook
	case Instagram:
		return &u.Instagram
	case Twitter:
		return &u.Twitter
	case PDF:
		return &u.PDF
	}
	return nil
}

// Platforms returns the non-empty platform values keyed by wire name.
func (u User) Platforms() PlatformFields {
	out := make(PlatformFields)
	for _, p := range Platforms {
		if v := *u.PlatformField(p); v != nil && *v != "" {
			out[p] = *v
		}
	}
	return out
}

// ApplyPlatforms overwrites the fields present in fields and leaves the rest alone.
func (u *User) ApplyPlatforms(fields PlatformFields) {
	for p, v := range fields {
		if ptr := u.PlatformField(p); ptr != nil {
			value := v
			*ptr = &value
		}
	}
}

// Profile is the public view of a user without platform data.
func (u User) Profile() UserProfile {
	return UserProfile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// UserProfile is what signup and login hand back to callers.
type UserProfile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// PlatformProfile is the read model served by the platform lookup endpoint.
type PlatformProfile struct {
	Platforms PlatformFields `json:"platforms"`
	SetupAt   *time.Time     `json:"setupAt"`
}
