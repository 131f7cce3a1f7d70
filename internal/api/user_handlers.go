package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/axellelanca/shortlinks/internal/auth"
	"github.com/axellelanca/shortlinks/internal/models"
	"github.com/axellelanca/shortlinks/internal/services"
)

// RegisterRequest is the JSON body of POST /auth/.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=64"`
	FirstName string `json:"firstname" binding:"max=100"`
	LastName  string `json:"lastname" binding:"max=100"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role" binding:"omitempty,oneof=user admin"`
}

// LoginRequest is the form body of POST /auth/token.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse is returned by POST /auth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ChangePasswordRequest is the JSON body of PUT /users/password.
type ChangePasswordRequest struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ProfileResponse is returned by GET /users/.
type ProfileResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// RegisterHandler creates a new account.
func RegisterHandler(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		user, err := userService.Register(c.Request.Context(), services.RegisterInput{
			Email:     req.Email,
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Password:  req.Password,
			Role:      req.Role,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, profileResponse(user))
	}
}

// LoginHandler exchanges form-encoded credentials for a bearer token.
func LoginHandler(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			badRequest(c, err)
			return
		}

		token, err := userService.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: auth.TokenType})
	}
}

// ProfileHandler returns the caller's account.
func ProfileHandler(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := userService.Profile(c.Request.Context(), identityFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profileResponse(user))
	}
}

// ChangePasswordHandler replaces the caller's password.
func ChangePasswordHandler(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		if err := userService.ChangePassword(c.Request.Context(), identityFrom(c), req.Password, req.NewPassword); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	}
}

func profileResponse(user *models.User) ProfileResponse {
	return ProfileResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Role:      string(user.Role),
	}
}
