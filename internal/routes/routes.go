package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/handlers"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
	stageHandler *handlers.StageHandler,
	commentHandler *handlers.CommentHandler,
	notificationHandler *handlers.NotificationHandler,
	activityHandler *handlers.ActivityHandler,
	aiHandler *handlers.AIHandler,
	reportHandler *handlers.ReportHandler,
	wsHandler *handlers.WSHandler,
) *gin.Engine {

	// ---- public
	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	// websocket handshake authenticates itself from ?token=
	r.GET("/ws", wsHandler.Serve)

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))

	// USERS
	users := r.Group("/users")
	{
		users.GET("/", userHandler.List)
		users.GET("/me", userHandler.Me)
		users.PUT("/me", userHandler.UpdateProfile)
		users.GET("/me/stats", userHandler.Stats)
	}

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.POST("/", taskHandler.Create)
		tasks.GET("/", taskHandler.List)
		tasks.POST("/nlp", taskHandler.CreateFromNLP)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.POST("/:id/status", taskHandler.ChangeStage)
		tasks.POST("/:id/assign", taskHandler.Assign)
		tasks.GET("/:id/risk", taskHandler.Risk)

		tasks.POST("/:id/subtasks", taskHandler.AddSubtask)
		tasks.PUT("/:id/subtasks/:subId", taskHandler.UpdateSubtask)
		tasks.DELETE("/:id/subtasks/:subId", taskHandler.DeleteSubtask)

		tasks.GET("/:id/comments", commentHandler.ListForTask)
		tasks.POST("/:id/comments", commentHandler.Add)
		tasks.GET("/:id/activities", activityHandler.ForTask)
	}

	// COMMENTS
	comments := r.Group("/comments")
	{
		comments.PUT("/:id", commentHandler.Update)
		comments.DELETE("/:id", commentHandler.Delete)
	}

	// WORKFLOW STAGES
	stages := r.Group("/workflow-stages")
	{
		stages.GET("/", stageHandler.List)
		stages.POST("/", stageHandler.Create)
		stages.PUT("/reorder", stageHandler.Reorder)
		stages.PUT("/:id", stageHandler.Update)
		stages.DELETE("/:id", stageHandler.Delete)
	}

	// NOTIFICATIONS
	notifications := r.Group("/notifications")
	{
		notifications.GET("/", notificationHandler.List)
		notifications.PUT("/read-all", notificationHandler.MarkAllRead)
		notifications.PUT("/:id/read", notificationHandler.MarkRead)
	}

	// ACTIVITY FEED
	r.GET("/activities", activityHandler.Feed)

	// AI
	ai := r.Group("/ai")
	{
		ai.POST("/enhance-task", aiHandler.EnhanceTask)
		ai.POST("/suggest-subtasks", aiHandler.SuggestSubtasks)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/board", reportHandler.BoardSummary)
		reports.GET("/board/pdf", reportHandler.BoardPDF)
	}

	return r
}
