package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/proptraka/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// LandlordStatus represents the status of a landlord account
type LandlordStatus string

const (
	LandlordStatusActive      LandlordStatus = "active"      // Normal active status
	LandlordStatusLocked      LandlordStatus = "locked"      // Locked due to failed login attempts
	LandlordStatusDeactivated LandlordStatus = "deactivated" // Manually deactivated
)

// Password cost for bcrypt
const bcryptCost = 12

// Landlord is the account that owns everything else in the system.
// Every property, tenant, tenancy and transaction is scoped to exactly
// one landlord; the landlord ID is the OwnerID on those aggregates.
type Landlord struct {
	shared.BaseAggregateRoot
	Email          string
	PasswordHash   string
	FullName       string
	Phone          string
	BusinessName   string
	Status         LandlordStatus
	LastLoginAt    *time.Time
	LastLoginIP    string
	FailedAttempts int
	LockedUntil    *time.Time
}

// NewLandlord creates a new active landlord account
func NewLandlord(email, password, fullName string) (*Landlord, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	landlord := &Landlord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
		FullName:          fullName,
		Status:            LandlordStatusActive,
	}

	landlord.AddDomainEvent(NewLandlordRegisteredEvent(landlord))

	return landlord, nil
}

// UpdateProfile changes the editable profile fields
func (l *Landlord) UpdateProfile(fullName, phone, businessName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	l.FullName = fullName
	l.Phone = strings.TrimSpace(phone)
	l.BusinessName = strings.TrimSpace(businessName)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// ChangePassword changes the password after verifying the current one
func (l *Landlord) ChangePassword(oldPassword, newPassword string) error {
	if !l.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return l.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one
func (l *Landlord) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	l.PasswordHash = passwordHash
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (l *Landlord) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(password))
	return err == nil
}

// Deactivate deactivates the account
func (l *Landlord) Deactivate() error {
	if l.Status == LandlordStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "Account is already deactivated")
	}

	l.Status = LandlordStatusDeactivated
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// Unlock clears a lock and resets the failed-attempt counter
func (l *Landlord) Unlock() error {
	if l.Status != LandlordStatusLocked {
		return shared.NewDomainError("NOT_LOCKED", "Account is not locked")
	}

	l.Status = LandlordStatusActive
	l.FailedAttempts = 0
	l.LockedUntil = nil
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// RecordLoginSuccess records a successful login
func (l *Landlord) RecordLoginSuccess(ip string) {
	now := time.Now()
	l.LastLoginAt = &now
	l.LastLoginIP = ip
	l.FailedAttempts = 0
	l.UpdatedAt = now
	l.IncrementVersion()
}

// RecordLoginFailure records a failed login attempt.
// Returns true if the account was locked as a result.
func (l *Landlord) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	l.FailedAttempts++
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	if l.FailedAttempts >= maxAttempts {
		l.Status = LandlordStatusLocked
		if lockDuration > 0 {
			lockedUntil := time.Now().Add(lockDuration)
			l.LockedUntil = &lockedUntil
		}
		return true
	}

	return false
}

// IsLocked returns true if the account is locked and the lock has not expired
func (l *Landlord) IsLocked() bool {
	if l.Status != LandlordStatusLocked {
		return false
	}
	if l.LockedUntil != nil && time.Now().After(*l.LockedUntil) {
		return false
	}
	return true
}

// CanLogin returns true if the account can log in
func (l *Landlord) CanLogin() bool {
	return l.Status != LandlordStatusDeactivated && !l.IsLocked()
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
