package models

// Platform names one of the optional handles a user can attach to their account.
// The string value doubles as the JSON key and the database column.
type Platform string

const (
	WhatsApp     Platform = "whatsapp"
	LinkedInPost Platform = "linkedin_post"
	Discord      Platform = "discord"
	Slack        Platform = "slack"
	Facebook     Platform = "facebook"
	Instagram    Platform = "instagram"
	Twitter      Platform = "twitter"
	PDF          Platform = "pdf"
)

// Platforms lists every supported platform in column order.
var Platforms = []Platform{WhatsApp, LinkedInPost, Discord, Slack, Facebook, Instagram, Twitter, PDF}

// ParsePlatform reports whether name is a supported platform.
func ParsePlatform(name string) (Platform, bool) {
	for _, p := range Platforms {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// PlatformFields is a partial set of platform values keyed by platform.
type PlatformFields map[Platform]string

// FilterPlatformData keeps only recognized platforms with non-empty values.
// Unknown keys and null or empty values are dropped.
func FilterPlatformData(raw map[string]*string) PlatformFields {
	out := make(PlatformFields)
	for key, value := range raw {
		p, ok := ParsePlatform(key)
		if !ok || value == nil || *value == "" {
			continue
		}
		out[p] = *value
	}
	return out
}
