package handlers

import (
	"context"
	"net/http"

	"fotoproof-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// Authenticator is the Supabase Auth surface the API forwards to.
type Authenticator interface {
	SignUp(ctx context.Context, email, password string, data map[string]interface{}) (*models.AuthSession, error)
	SignIn(ctx context.Context, email, password string) (*models.AuthSession, error)
	VerifyEmail(ctx context.Context, tokenHash, verificationType string) (*models.AuthSession, error)
}

type AuthHandler struct {
	auth Authenticator
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignUp godoc
// @Summary     Register a photographer
// @Description Creates an account. When email confirmation is enabled the response carries no access token until the email is verified.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.SignUpRequest true "Credentials"
// @Success     201 {object} models.AuthSession
// @Failure     400 {object} models.ErrorResponse
// @Router      /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	data := map[string]interface{}{}
	if req.FirstName != "" {
		data["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		data["last_name"] = req.LastName
	}

	session, err := h.auth.SignUp(c.Request.Context(), req.Email, req.Password, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "sign up failed",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// SignIn godoc
// @Summary     Sign in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.SignInRequest true "Credentials"
// @Success     200 {object} models.AuthSession
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "invalid email or password",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, session)
}

// Verify godoc
// @Summary     Confirm an email address
// @Description Redeems the token hash from the confirmation link and returns a session.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.VerifyEmailRequest true "Token hash and type"
// @Success     200 {object} models.AuthSession
// @Failure     400 {object} models.ErrorResponse
// @Router      /auth/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	var req models.VerifyEmailRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.auth.VerifyEmail(c.Request.Context(), req.Token, req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "verification failed",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, session)
}
