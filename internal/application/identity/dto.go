package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains the input for landlord registration
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// LoginInput contains the input for landlord login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	Landlord              LandlordInfo
}

// LandlordInfo contains basic account information returned after login
type LandlordInfo struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	Phone        string
	BusinessName string
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for logout
type LogoutInput struct {
	LandlordID uuid.UUID
	TokenJTI   string // JWT ID for blacklisting (optional)
	TokenTTL   time.Duration
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	LandlordID  uuid.UUID
	OldPassword string
	NewPassword string
}

// UpdateProfileInput contains the input for profile updates
type UpdateProfileInput struct {
	LandlordID   uuid.UUID
	FullName     string
	Phone        string
	BusinessName string
}
