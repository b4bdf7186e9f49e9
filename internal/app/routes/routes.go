// Package routes wires controllers onto the gin router
package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itcommunity/platform/internal/app/controllers"
	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/middleware"
)

// Controllers bundles every controller the router needs
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Project    *controllers.ProjectController
	Event      *controllers.EventController
	Job        *controllers.JobController
	Suggestion *controllers.SuggestionController
	CareerPath *controllers.CareerPathController
	Dashboard  *controllers.DashboardController
	Admin      *controllers.AdminController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c *Controllers,
	authMiddleware *middleware.AuthMiddleware,
	limiter *middleware.RedisLimiter,
	rateLimitRequests int,
	rateLimitWindow time.Duration,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	// Only the credential endpoints are rate limited.
	auth := v1.Group("/auth")
	if limiter != nil {
		auth.Use(middleware.RateLimit(limiter, rateLimitRequests, rateLimitWindow))
	}
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.Refresh)
		auth.POST("/logout", c.Auth.Logout)
	}

	// --- Public browse routes ---
	// Optional auth so logged-in callers get ownership aware listings
	// and per-viewer fields like isRegistered and votedByMe.
	browse := v1.Group("")
	browse.Use(authMiddleware.OptionalJWTAuth())
	{
		browse.GET("/projects", c.Project.List)
		browse.GET("/projects/:id", c.Project.Get)
		browse.GET("/projects/:id/feedback", c.Project.ListFeedback)

		browse.GET("/events", c.Event.List)
		browse.GET("/events/stats/overview", c.Event.StatsOverview)
		browse.GET("/events/:id", c.Event.Get)

		browse.GET("/jobs", c.Job.List)
		browse.GET("/jobs/:id", c.Job.Get)

		browse.GET("/suggestions", c.Suggestion.List)
		browse.GET("/suggestions/:id", c.Suggestion.Get)

		browse.GET("/career-paths", c.CareerPath.List)
		browse.GET("/career-paths/:id", c.CareerPath.Get)

		browse.GET("/users/:id", c.User.GetUser)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Token probe used by clients on startup
		authenticated.GET("/auth/profile", c.User.GetMe)

		profile := authenticated.Group("/profile")
		{
			profile.GET("", c.User.GetMe)
			profile.PATCH("/me", c.User.UpdateMe)
			profile.POST("/avatar", c.User.UploadAvatar)
			profile.POST("/change-password", c.User.ChangePassword)
			profile.PATCH("/settings", c.User.UpdateNotificationSettings)
		}

		projects := authenticated.Group("/projects")
		{
			projects.POST("", c.Project.Create)
			projects.PATCH("/:id", c.Project.Update)
			projects.DELETE("/:id", c.Project.Delete)
			projects.POST("/:id/feedback", c.Project.AddFeedback)
		}

		events := authenticated.Group("/events")
		{
			events.POST("", c.Event.Create)
			events.PATCH("/:id", c.Event.Update)
			events.PATCH("/:id/status", c.Event.UpdateStatus)
			events.DELETE("/:id", c.Event.Delete)
			events.POST("/:id/register", c.Event.Register)
			events.DELETE("/:id/register", c.Event.Unregister)
			events.GET("/:id/attendees", c.Event.Attendees)
		}

		jobs := authenticated.Group("/jobs")
		{
			jobs.POST("", c.Job.Create)
			jobs.PATCH("/:id", c.Job.Update)
			jobs.PATCH("/:id/status", c.Job.UpdateStatus)
			jobs.DELETE("/:id", c.Job.Delete)
			jobs.POST("/:id/apply", c.Job.Apply)
			jobs.GET("/:id/applications", c.Job.ListApplications)
			jobs.GET("/download-resume/:filename", c.Job.DownloadResume)
		}

		applications := authenticated.Group("/applications")
		{
			applications.GET("", c.Job.MyApplications)
			applications.PATCH("/:id/status", c.Job.UpdateApplicationStatus)
		}

		suggestions := authenticated.Group("/suggestions")
		{
			suggestions.POST("", c.Suggestion.Create)
			suggestions.POST("/:id/vote", c.Suggestion.Vote)
			suggestions.DELETE("/:id", c.Suggestion.Delete)
		}

		authenticated.GET("/dashboard", c.Dashboard.Stats)
		authenticated.GET("/activities/recent", c.Dashboard.Activities)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth())
	admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		admin.GET("/dashboard/stats", c.Dashboard.Stats)
		admin.GET("/dashboard/activities", c.Dashboard.Activities)

		admin.GET("/users", c.User.ListUsers)
		admin.PATCH("/users/:id/role", c.Admin.UpdateUserRole)
		admin.PATCH("/users/:id/status", c.Admin.UpdateUserStatus)
		admin.DELETE("/users/:id", c.Admin.DeleteUser)
		admin.PATCH("/users/bulk/status", c.Admin.BulkUpdateUserStatus)

		admin.PATCH("/projects/:id/status", c.Project.UpdateStatus)
		admin.PATCH("/projects/:id/approve", c.Project.Approve)
		admin.PATCH("/projects/:id/reject", c.Project.Reject)
		admin.PATCH("/projects/bulk/status", c.Admin.BulkUpdateProjectStatus)
		admin.DELETE("/projects/bulk", c.Admin.BulkDeleteProjects)

		admin.PATCH("/events/bulk/status", c.Admin.BulkUpdateEventStatus)
		admin.DELETE("/events/bulk", c.Admin.BulkDeleteEvents)

		admin.PATCH("/jobs/bulk/status", c.Admin.BulkUpdateJobStatus)
		admin.DELETE("/jobs/bulk", c.Admin.BulkDeleteJobs)

		admin.PATCH("/suggestions/:id/status", c.Suggestion.UpdateStatus)
		admin.DELETE("/suggestions/bulk", c.Admin.BulkDeleteSuggestions)

		admin.POST("/career-paths", c.CareerPath.Create)
		admin.PATCH("/career-paths/:id", c.CareerPath.Update)
		admin.DELETE("/career-paths/:id", c.CareerPath.Delete)
	}
}
