package v1

import (
	"net/http"

	"tvet-connect-backend/config"
	"tvet-connect-backend/internal/delivery/http/response"
	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const authCookieName = "auth_token"

type AuthHandler struct {
	authUC domain.AuthUsecase
	userUC domain.UserUsecase
	cfg    *config.Config
}

func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, userUC domain.UserUsecase, loginLimiter gin.HandlerFunc, cfg *config.Config) {
	handler := &AuthHandler{authUC: authUC, userUC: userUC, cfg: cfg}

	auth := public.Group("/auth")
	{
		auth.POST("/signup/individual", loginLimiter, handler.SignupIndividual)
		auth.POST("/signup/private-sector", loginLimiter, handler.SignupPrivateSector)
		auth.POST("/login", loginLimiter, handler.Login)
		auth.POST("/logout", handler.Logout)
	}

	protected.GET("/auth/me", handler.Me)
}

// SignupIndividual godoc
// @Summary      Sign up as an individual
// @Description  Creates an approved individual account and signs it in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SignupIndividualRequest  true  "Signup payload"
// @Success      201      {object}  response.Response{data=domain.AuthResult}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /auth/signup/individual [post]
func (h *AuthHandler) SignupIndividual(c *gin.Context) {
	var req domain.SignupIndividualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result, err := h.authUC.SignupIndividual(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	h.setSessionCookie(c, result)
	response.Success(c, http.StatusCreated, "Account created", result)
}

// SignupPrivateSector godoc
// @Summary      Sign up as a private sector organisation
// @Description  Creates a company account that can sign in once a TVET administrator approves it
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SignupPrivateSectorRequest  true  "Signup payload"
// @Success      201      {object}  response.Response{data=domain.AuthResult}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /auth/signup/private-sector [post]
func (h *AuthHandler) SignupPrivateSector(c *gin.Context) {
	var req domain.SignupPrivateSectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result, err := h.authUC.SignupPrivateSector(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Account created and awaiting approval", result)
}

// Login godoc
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Credentials"
// @Success      200      {object}  response.Response{data=domain.AuthResult}
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response  "Account pending approval"
// @Failure      429      {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), req, domain.LoginMeta{
		IP:        c.ClientIP(),
		RequestID: response.RequestID(c),
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.setSessionCookie(c, result)
	response.Success(c, http.StatusOK, "Login successful", result)
}

// Logout godoc
// @Summary      Clear the session cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, "", -1, "/", "", h.cfg.IsProduction(), true)
	response.Success(c, http.StatusOK, "Logged out", nil)
}

// Me godoc
// @Summary      Current user
// @Description  Returns the caller's own profile with every field
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.UserProfile}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.userUC.Me(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, result *domain.AuthResult) {
	if result == nil || result.Token == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, result.Token, int(h.cfg.JWTExpiresIn.Seconds()), "/", "", h.cfg.IsProduction(), true)
}
