package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/axellelanca/shortlinks/internal/services"
)

// AdminListUsersHandler returns every account.
func AdminListUsersHandler(adminService *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := adminService.ListUsers(c.Request.Context(), adminGrantFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// AdminDeleteUserHandler deletes an account together with its short URLs.
func AdminDeleteUserHandler(adminService *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("id"), 10, 0)
		if err != nil || userID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		if err := adminService.DeleteUser(c.Request.Context(), adminGrantFrom(c), uint(userID)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
	}
}

// AdminListURLsHandler returns every short URL of every owner.
func AdminListURLsHandler(adminService *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		shortURLs, err := adminService.ListURLs(c.Request.Context(), adminGrantFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, shortURLs)
	}
}

// AdminDeleteURLHandler deletes any short URL.
func AdminDeleteURLHandler(adminService *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := adminService.DeleteURL(c.Request.Context(), adminGrantFrom(c), c.Param("shortCode")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "url deleted successfully"})
	}
}
