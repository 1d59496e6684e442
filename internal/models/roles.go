package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RoleAssigner decides the initial role for a new account from an email allowlist.
type RoleAssigner struct {
	admins map[string]struct{}
}

// NewRoleAssigner builds an assigner that promotes exactly the given addresses.
// Matching is case-sensitive, like the stored email.
func NewRoleAssigner(adminEmails []string) RoleAssigner {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if email != "" {
			admins[email] = struct{}{}
		}
	}
	return RoleAssigner{admins: admins}
}

// RoleFor returns RoleAdmin for allowlisted emails and RoleUser otherwise.
func (r RoleAssigner) RoleFor(email string) string {
	if _, ok := r.admins[email]; ok {
		return RoleAdmin
	}
	return RoleUser
}

// ValidRole reports whether role is one the service may store.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
