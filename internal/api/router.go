package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/axellelanca/shortlinks/internal/auth"
	"github.com/axellelanca/shortlinks/internal/services"
)

// Dependencies groups what the handlers need.
type Dependencies struct {
	Tokens *auth.TokenManager
	URLs   *services.URLService
	Users  *services.UserService
	Admin  *services.AdminService
}

// SetupRoutes configures all Gin API routes and injects necessary dependencies.
// Management routes sit behind RequireIdentity; GET /urls/:code stays public.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	requireIdentity := RequireIdentity(deps.Tokens)

	router.GET("/health", HealthCheckHandler)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/", RegisterHandler(deps.Users))
		authGroup.POST("/token", LoginHandler(deps.Users))
	}

	users := router.Group("/users", requireIdentity)
	{
		users.GET("/", ProfileHandler(deps.Users))
		users.PUT("/password", ChangePasswordHandler(deps.Users))
	}

	urls := router.Group("/urls")
	{
		urls.GET("/", requireIdentity, ListURLsHandler(deps.URLs))
		urls.POST("/", requireIdentity, CreateURLHandler(deps.URLs))
		urls.GET("/:shortCode", ResolveHandler(deps.URLs))
		urls.PUT("/:shortCode", requireIdentity, UpdateURLHandler(deps.URLs))
		urls.DELETE("/:shortCode", requireIdentity, DeleteURLHandler(deps.URLs))
	}

	admin := router.Group("/admin", requireIdentity, RequireAdmin())
	{
		admin.GET("/users", AdminListUsersHandler(deps.Admin))
		admin.DELETE("/users/:id", AdminDeleteUserHandler(deps.Admin))
		admin.GET("/urls", AdminListURLsHandler(deps.Admin))
		admin.DELETE("/urls/:shortCode", AdminDeleteURLHandler(deps.Admin))
	}
}

// HealthCheckHandler handles the /health route to verify service status
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
