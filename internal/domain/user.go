package domain

import (
	"time"
)

type Role string

const (
	RoleReadOnly  Role = "readonly"
	RolePerformer Role = "performer"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

// Rank places a role in the fixed hierarchy readonly < performer < manager <
// admin. Unknown roles rank below readonly so they never satisfy a check.
func (r Role) Rank() int {
	switch r {
	case RoleReadOnly:
		return 0
	case RolePerformer:
		return 1
	case RoleManager:
		return 2
	case RoleAdmin:
		return 3
	default:
		return -1
	}
}

func (r Role) Valid() bool {
	return r.Rank() >= 0
}

type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	PhotoURL  string     `json:"photoURL,omitempty"`
	Role      Role       `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
