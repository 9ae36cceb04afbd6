package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/notesapp/notes-api/internal/auth"
	"github.com/notesapp/notes-api/internal/repository"
	"github.com/notesapp/notes-api/internal/transport/http/handler"
	"github.com/notesapp/notes-api/internal/transport/http/middleware"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	noteHandler *handler.NoteHandler,
	tokens *auth.TokenIssuer,
	users repository.UserRepository,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Healthy"})
	})

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/token", authHandler.Login)

	authMW := middleware.Auth(tokens, users, logger)

	r.GET("/users/me", authMW, authHandler.Me)

	notes := r.Group("/notes", authMW)
	notes.POST("", noteHandler.Create)
	notes.GET("", noteHandler.List)
	notes.GET("/:id", noteHandler.GetByID)
	notes.PATCH("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)

	return r
}
