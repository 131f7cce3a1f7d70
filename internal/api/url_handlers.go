package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/axellelanca/shortlinks/internal/services"
)

// URLRequest is the JSON body of POST /urls/ and PUT /urls/:shortCode.
type URLRequest struct {
	LongURL string `json:"long_url" binding:"required,url"`
}

// ResolveResponse is returned by the public resolution route.
type ResolveResponse struct {
	URL string `json:"url"`
}

// ListURLsHandler returns the caller's short URLs.
func ListURLsHandler(urlService *services.URLService) gin.HandlerFunc {
	return func(c *gin.Context) {
		shortURLs, err := urlService.List(c.Request.Context(), identityFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, shortURLs)
	}
}

// CreateURLHandler shortens a URL for the caller. Asking twice for the same
// URL returns the same record; both answers are 201.
func CreateURLHandler(urlService *services.URLService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req URLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		shortURL, err := urlService.Create(c.Request.Context(), identityFrom(c), req.LongURL)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, shortURL)
	}
}

// ResolveHandler returns the long URL behind a short code and counts the access.
// No credential is needed.
func ResolveHandler(urlService *services.URLService) gin.HandlerFunc {
	return func(c *gin.Context) {
		shortCode := c.Param("shortCode")

		shortURL, err := urlService.Resolve(c.Request.Context(), shortCode)
		if err != nil {
			respondError(c, err)
			return
		}

		log.Printf("Short code %s resolved (access count %d)", shortCode, shortURL.AccessCount)
		c.JSON(http.StatusOK, ResolveResponse{URL: shortURL.URL})
	}
}

// UpdateURLHandler points one of the caller's short codes at a new URL.
func UpdateURLHandler(urlService *services.URLService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req URLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		shortURL, err := urlService.Update(c.Request.Context(), identityFrom(c), c.Param("shortCode"), req.LongURL)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, shortURL)
	}
}

// DeleteURLHandler removes one of the caller's short codes.
func DeleteURLHandler(urlService *services.URLService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := urlService.Delete(c.Request.Context(), identityFrom(c), c.Param("shortCode")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted successfully"})
	}
}
