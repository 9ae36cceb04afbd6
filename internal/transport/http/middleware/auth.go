package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/notesapp/notes-api/internal/auth"
	"github.com/notesapp/notes-api/internal/domain"
	"github.com/notesapp/notes-api/internal/repository"
)

// CurrentUserKey is the gin context key holding the resolved *domain.User.
const CurrentUserKey = "currentUser"

const errUnauthenticated = "Could not validate credentials"

// Auth validates the Bearer token, resolves the user it names, and stores
// the user in the gin context. Every failure mode — missing header, bad
// signature, expired token, unknown subject — produces the same 401 with
// a bearer challenge, so callers cannot probe account existence.
func Auth(tokens *auth.TokenIssuer, users repository.UserRepository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			challenge(c)
			return
		}

		subject, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			challenge(c)
			return
		}

		user, err := users.FindByUsername(c.Request.Context(), subject)
		if err != nil {
			// A vanished user fails identically to a bad token.
			if !errors.Is(err, domain.ErrUserNotFound) {
				logger.ErrorContext(c.Request.Context(), "resolve token subject", "error", err)
			}
			challenge(c)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

func challenge(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthenticated})
}

// CurrentUser fetches the user placed in the context by Auth.
func CurrentUser(c *gin.Context) *domain.User {
	user, _ := c.MustGet(CurrentUserKey).(*domain.User)
	return user
}
