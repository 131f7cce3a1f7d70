package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	customerrors "github.com/axellelanca/shortlinks/internal/errors"
)

const unauthorizedMessage = "could not validate user"

// respondError maps service errors to HTTP responses. Unknown errors are
// logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, customerrors.ErrUnauthorized):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMessage})
	case errors.Is(err, customerrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, customerrors.ErrShortCodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No such short URL found"})
	case errors.Is(err, customerrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no such user"})
	case errors.Is(err, customerrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, customerrors.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "username or email already registered"})
	case errors.Is(err, customerrors.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL format"})
	case errors.Is(err, customerrors.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be 'user' or 'admin'"})
	case errors.Is(err, customerrors.ErrShortCodeGenerationFailed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Unable to generate unique short code. Please try again later."})
	default:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
}
