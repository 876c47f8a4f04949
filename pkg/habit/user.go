package habit

import "tableflip.dev/habit/pkg/badge"

// User mirrors the service's account document. It is always replaced
// wholesale from an authenticate or profile response, never patched
// field by field.
type User struct {
	ID          string        `json:"id"`
	Username    string        `json:"username"`
	Email       string        `json:"email"`
	TotalPoints int           `json:"totalPoints"`
	Badges      []badge.Badge `json:"badges"`
}
