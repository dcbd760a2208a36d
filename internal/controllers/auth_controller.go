package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-momo-api/internal/auth"
	"github.com/franciscosanchezn/gin-momo-api/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService services.AuthService
	userService services.UserService
	sessions    *auth.SessionManager
}

func NewAuthController(authService services.AuthService, userService services.UserService, sessions *auth.SessionManager) *AuthController {
	return &AuthController{
		authService: authService,
		userService: userService,
		sessions:    sessions,
	}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp godoc
// @Summary Create an account
// @Description Registers a customer (or an admin when the email is allow-listed) and starts a session
// @Tags auth
// @Accept json
// @Produce json
// @Param body body signUpRequest true "Account details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/auth/signup [post]
func (ac *AuthController) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	user, err := ac.authService.SignUp(c.Request.Context(), services.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		respondError(c, err, "Unable to create account")
		return
	}

	token, err := ac.sessions.Issue(user)
	if err != nil {
		respondError(c, err, "Unable to create account")
		return
	}
	ac.sessions.SetCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"user": user.Public()})
}

// SignIn godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body signInRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Router /api/auth/signin [post]
func (ac *AuthController) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	user, err := ac.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Unable to sign in")
		return
	}

	token, err := ac.sessions.Issue(user)
	if err != nil {
		respondError(c, err, "Unable to sign in")
		return
	}
	ac.sessions.SetCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}

// SignOut godoc
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/auth/signout [post]
func (ac *AuthController) SignOut(c *gin.Context) {
	ac.sessions.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me godoc
// @Summary Current identity
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Router /api/auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	user, err := ac.userService.GetUserByID(c.Request.Context(), a.UserID)
	if err != nil {
		respondError(c, err, "Unable to load user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Always answers ok so that registered emails cannot be probed
// @Tags auth
// @Accept json
// @Produce json
// @Param body body object{email=string} true "Email"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} models.APIError
// @Router /api/auth/forgot-password [post]
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if err := ac.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Unable to send reset email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ResetPassword godoc
// @Summary Reset a password with an emailed token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body object{token=string,password=string} true "Token and new password"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} models.APIError
// @Router /api/auth/reset-password [post]
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if err := ac.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, err, "Unable to reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
