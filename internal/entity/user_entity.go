package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleAdmin            UserRole = "admin"
	UserRoleComplianceExpert UserRole = "compliance_expert"
	UserRoleAnalyst          UserRole = "analyst"
	UserRoleViewer           UserRole = "viewer"

	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

func ValidRole(r UserRole) bool {
	switch r {
	case UserRoleAdmin, UserRoleComplianceExpert, UserRoleAnalyst, UserRoleViewer:
		return true
	}
	return false
}

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string // nil for identities provisioned via OAuth
	FullName     string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRefreshToken backs the remember-me session flow. The raw token never
// touches the database, only its sha256 hash.
type UserRefreshToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	IpAddress string
	UserAgent string
}

// UserProvider links a local user to an external identity provider account.
type UserProvider struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ProviderName   string
	ProviderUserId string
	CreatedAt      time.Time
}
