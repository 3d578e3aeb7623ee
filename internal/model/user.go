package model

import "time"

// Role determines a user's transition rights and coarse capabilities.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleTeamLead   Role = "TEAM_LEAD"
	RoleAccountant Role = "ACCOUNTANT"
	RoleIntern     Role = "INTERN"
)

// AllRoles lists every defined role.
var AllRoles = []Role{RoleAdmin, RoleTeamLead, RoleAccountant, RoleIntern}

// Valid reports whether r is one of the four defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeamLead, RoleAccountant, RoleIntern:
		return true
	}
	return false
}

// User is a staff member of the accounting team.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Identity is the minimal caller identity the core operates on.
// Authentication establishes it; the engine only consumes it.
type Identity struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
