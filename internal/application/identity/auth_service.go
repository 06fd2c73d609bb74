package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/identity"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock the account afterwards
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles landlord authentication operations
type AuthService struct {
	landlordRepo identity.LandlordRepository
	jwtService   *auth.JWTService
	blacklist    auth.TokenBlacklist
	config       AuthServiceConfig
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// AuthServiceOption configures optional service dependencies
type AuthServiceOption func(*AuthService)

// WithAuthEventPublisher wires an event publisher for account lifecycle events
func WithAuthEventPublisher(publisher shared.EventPublisher) AuthServiceOption {
	return func(s *AuthService) {
		s.publisher = publisher
	}
}

// NewAuthService creates a new authentication service
func NewAuthService(
	landlordRepo identity.LandlordRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
	opts ...AuthServiceOption,
) *AuthService {
	s := &AuthService{
		landlordRepo: landlordRepo,
		jwtService:   jwtService,
		blacklist:    blacklist,
		config:       config,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new landlord account
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*LandlordInfo, error) {
	exists, err := s.landlordRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register account")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	landlord, err := identity.NewLandlord(input.Email, input.Password, input.FullName)
	if err != nil {
		return nil, err
	}

	if err := s.landlordRepo.Save(ctx, landlord); err != nil {
		s.logger.Error("Failed to save new landlord", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register account")
	}

	if err := shared.PublishRecorded(ctx, s.publisher, landlord); err != nil {
		s.logger.Warn("Failed to publish registration event", zap.Error(err))
	}

	s.logger.Info("Landlord registered",
		zap.String("landlord_id", landlord.ID.String()),
		zap.String("email", landlord.Email))

	return &LandlordInfo{
		ID:       landlord.ID,
		Email:    landlord.Email,
		FullName: landlord.FullName,
	}, nil
}

// Login authenticates a landlord and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	landlord, err := s.landlordRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Account not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !landlord.CanLogin() {
		if landlord.IsLocked() {
			s.logger.Warn("Login attempt for locked account", zap.String("email", input.Email))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later")
		}
		s.logger.Warn("Login attempt for deactivated account", zap.String("email", input.Email))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !landlord.VerifyPassword(input.Password) {
		locked := landlord.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.landlordRepo.Save(ctx, landlord); err != nil {
			s.logger.Error("Failed to persist login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("email", input.Email),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		LandlordID: landlord.ID,
		Email:      landlord.Email,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	landlord.RecordLoginSuccess(input.IP)
	if err := s.landlordRepo.Save(ctx, landlord); err != nil {
		// Don't fail the login, just log it
		s.logger.Error("Failed to persist login success", zap.Error(err))
	}

	s.logger.Info("Landlord logged in",
		zap.String("landlord_id", landlord.ID.String()),
		zap.String("email", landlord.Email))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		Landlord: LandlordInfo{
			ID:           landlord.ID,
			Email:        landlord.Email,
			FullName:     landlord.FullName,
			Phone:        landlord.Phone,
			BusinessName: landlord.BusinessName,
		},
	}, nil
}

// RefreshToken issues a new token pair from a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	invalidated, err := s.blacklist.IsLandlordTokenInvalidated(ctx, claims.LandlordID, claims.IssuedAt.Time)
	if err != nil {
		s.logger.Error("Failed to check token invalidation", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh tokens")
	}
	if invalidated {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token has been revoked")
	}

	// Refuse refresh for accounts that can no longer log in
	landlordID, err := claims.GetLandlordUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid")
	}
	landlord, err := s.landlordRepo.FindByID(ctx, landlordID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Account no longer exists")
	}
	if !landlord.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account is not active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Failed to refresh tokens")
	}

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout blacklists the current token
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI != "" && input.TokenTTL > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			s.logger.Error("Failed to blacklist token on logout", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
		}
	}

	s.logger.Info("Landlord logged out", zap.String("landlord_id", input.LandlordID.String()))
	return nil
}

// ChangePassword changes the account password and revokes existing sessions
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	landlord, err := s.landlordRepo.FindByID(ctx, input.LandlordID)
	if err != nil {
		return shared.ErrNotFound
	}

	if err := landlord.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.landlordRepo.Save(ctx, landlord); err != nil {
		s.logger.Error("Failed to save password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to change password")
	}

	// All outstanding tokens predate the change and must die with it
	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddLandlordTokensToBlacklist(ctx, landlord.ID.String(), ttl); err != nil {
		s.logger.Error("Failed to revoke sessions after password change", zap.Error(err))
	}

	s.logger.Info("Password changed", zap.String("landlord_id", landlord.ID.String()))
	return nil
}

// GetProfile returns the account profile
func (s *AuthService) GetProfile(ctx context.Context, landlordID uuid.UUID) (*LandlordInfo, error) {
	landlord, err := s.landlordRepo.FindByID(ctx, landlordID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	return &LandlordInfo{
		ID:           landlord.ID,
		Email:        landlord.Email,
		FullName:     landlord.FullName,
		Phone:        landlord.Phone,
		BusinessName: landlord.BusinessName,
	}, nil
}

// UpdateProfile updates the editable profile fields
func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*LandlordInfo, error) {
	landlord, err := s.landlordRepo.FindByID(ctx, input.LandlordID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := landlord.UpdateProfile(input.FullName, input.Phone, input.BusinessName); err != nil {
		return nil, err
	}

	if err := s.landlordRepo.Save(ctx, landlord); err != nil {
		s.logger.Error("Failed to save profile update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	return &LandlordInfo{
		ID:           landlord.ID,
		Email:        landlord.Email,
		FullName:     landlord.FullName,
		Phone:        landlord.Phone,
		BusinessName: landlord.BusinessName,
	}, nil
}
