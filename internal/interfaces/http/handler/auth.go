package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/proptraka/backend/internal/application/identity"
	"github.com/proptraka/backend/internal/infrastructure/config"
	"github.com/proptraka/backend/internal/interfaces/http/dto"
	"github.com/proptraka/backend/internal/interfaces/http/middleware"
)

const refreshCookieName = "proptraka_refresh_token"

// AuthHandler exposes account and session endpoints
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	cookieCfg   config.CookieConfig
	// credentialGuard rate-limits the endpoints that accept credentials
	credentialGuard []gin.HandlerFunc
}

// NewAuthHandler creates an auth handler. Optional guards are applied to
// the register and login endpoints only.
func NewAuthHandler(authService *identity.AuthService, cookieCfg config.CookieConfig, credentialGuard ...gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{authService: authService, cookieCfg: cookieCfg, credentialGuard: credentialGuard}
}

// RegisterRoutes registers auth routes on the versioned API group
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.guarded(h.Register)...)
		auth.POST("/login", h.guarded(h.Login)...)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/change-password", h.ChangePassword)
		auth.GET("/profile", h.Profile)
		auth.PUT("/profile", h.UpdateProfile)
	}
}

func (h *AuthHandler) guarded(final gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(h.credentialGuard)+1)
	chain = append(chain, h.credentialGuard...)
	return append(chain, final)
}

// Register creates a landlord account
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	info, err := h.authService.Register(c.Request.Context(), identity.RegisterInput{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
		FullName: strings.TrimSpace(req.FullName),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toLandlordResponse(info))
}

// Login authenticates a landlord and issues a token pair. The refresh token
// is additionally set as an httpOnly cookie for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, int(time.Until(result.RefreshTokenExpiresAt).Seconds()))

	h.Success(c, dto.LoginResponse{
		TokenResponse: dto.TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
		Landlord: toLandlordResponse(&result.Landlord),
	})
}

// Refresh exchanges a refresh token for a fresh pair. The token is read from
// the body, falling back to the refresh cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	// Body is optional when the cookie is present
	_ = c.ShouldBindJSON(&req)

	refreshToken := req.RefreshToken
	if refreshToken == "" {
		refreshToken, _ = c.Cookie(refreshCookieName)
	}
	if refreshToken == "" {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "missing refresh token")
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), identity.RefreshTokenInput{
		RefreshToken: refreshToken,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, int(time.Until(result.RefreshTokenExpiresAt).Seconds()))

	h.Success(c, dto.TokenResponse{
		AccessToken:           result.AccessToken,
		RefreshToken:          result.RefreshToken,
		AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
		TokenType:             result.TokenType,
	})
}

// Logout revokes the current access token and clears the refresh cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	landlordID, ok := h.landlordID(c)
	if !ok {
		return
	}

	input := identity.LogoutInput{LandlordID: landlordID}
	if claims, ok := middleware.GetJWTClaims(c); ok {
		input.TokenJTI = claims.ID
		input.TokenTTL = claims.GetRemainingTTL()
	}

	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	h.NoContent(c)
}

// ChangePassword changes the account password and invalidates every token
// issued before the change
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	landlordID, ok := h.landlordID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), identity.ChangePasswordInput{
		LandlordID:  landlordID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	h.NoContent(c)
}

// Profile returns the authenticated landlord's account
func (h *AuthHandler) Profile(c *gin.Context) {
	landlordID, ok := h.landlordID(c)
	if !ok {
		return
	}

	info, err := h.authService.GetProfile(c.Request.Context(), landlordID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toLandlordResponse(info))
}

// UpdateProfile updates the authenticated landlord's account details
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	landlordID, ok := h.landlordID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	info, err := h.authService.UpdateProfile(c.Request.Context(), identity.UpdateProfileInput{
		LandlordID:   landlordID,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        strings.TrimSpace(req.Phone),
		BusinessName: strings.TrimSpace(req.BusinessName),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toLandlordResponse(info))
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(parseSameSite(h.cookieCfg.SameSite))
	c.SetCookie(refreshCookieName, token, maxAge, h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(parseSameSite(h.cookieCfg.SameSite))
	c.SetCookie(refreshCookieName, "", -1, h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func parseSameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func toLandlordResponse(info *identity.LandlordInfo) dto.LandlordResponse {
	return dto.LandlordResponse{
		ID:           info.ID.String(),
		Email:        info.Email,
		FullName:     info.FullName,
		Phone:        info.Phone,
		BusinessName: info.BusinessName,
	}
}
