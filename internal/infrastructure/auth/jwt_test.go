package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-access-tokens",
		RefreshSecret:          "test-secret-key-for-refresh-tokens",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "proptraka-test",
		MaxRefreshCount:        3,
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := testJWTService()
	landlordID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		LandlordID: landlordID,
		Email:      "jane@proptraka.co.ke",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, landlordID.String(), claims.LandlordID)
	assert.Equal(t, "jane@proptraka.co.ke", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	parsed, err := claims.GetLandlordUUID()
	require.NoError(t, err)
	assert.Equal(t, landlordID, parsed)
}

func TestJWTService_TokenTypeMismatch(t *testing.T) {
	svc := testJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{LandlordID: uuid.New()})
	require.NoError(t, err)

	// A refresh token is not an access token and vice versa
	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)
	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := testJWTService()

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with a different secret
	other := NewJWTService(config.JWTConfig{
		Secret:                 "a-completely-different-secret-key",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "proptraka-test",
		MaxRefreshCount:        3,
	})
	pair, err := other.GenerateTokenPair(GenerateTokenInput{LandlordID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := testJWTService()
	landlordID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{LandlordID: landlordID, Email: "jane@proptraka.co.ke"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, landlordID.String(), claims.LandlordID)

	refreshClaims, err := svc.ValidateRefreshToken(refreshed.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
}

func TestJWTService_MaxRefreshExceeded(t *testing.T) {
	svc := testJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{LandlordID: uuid.New()})
	require.NoError(t, err)

	current := pair.RefreshToken
	for i := 0; i < 3; i++ {
		refreshed, err := svc.RefreshTokenPair(current)
		require.NoError(t, err, "refresh %d should succeed", i+1)
		current = refreshed.RefreshToken
	}

	_, err = svc.RefreshTokenPair(current)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryTokenBlacklist()

	blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))
	blacklisted, err = bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, blacklisted)

	// Expired entries fall out
	require.NoError(t, bl.AddToBlacklist(ctx, "jti-2", -time.Second))
	blacklisted, err = bl.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}

func TestInMemoryTokenBlacklist_LandlordInvalidation(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryTokenBlacklist()
	landlordID := uuid.New().String()

	issuedBefore := time.Now().Add(-time.Minute)
	require.NoError(t, bl.AddLandlordTokensToBlacklist(ctx, landlordID, time.Hour))

	invalidated, err := bl.IsLandlordTokenInvalidated(ctx, landlordID, issuedBefore)
	require.NoError(t, err)
	assert.True(t, invalidated, "token issued before invalidation must be rejected")

	issuedAfter := time.Now().Add(time.Minute)
	invalidated, err = bl.IsLandlordTokenInvalidated(ctx, landlordID, issuedAfter)
	require.NoError(t, err)
	assert.False(t, invalidated)

	invalidated, err = bl.IsLandlordTokenInvalidated(ctx, uuid.New().String(), issuedBefore)
	require.NoError(t, err)
	assert.False(t, invalidated, "other accounts unaffected")
}
