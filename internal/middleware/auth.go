package middleware

import (
	"net/http"

	"ideaforge/internal/db"
	"ideaforge/internal/models"
	"ideaforge/internal/observability"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CheckUserKey  = "user"
	SessionUserID = "user_id"
)

// AuthRequired rejects requests without a logged-in user. LoadUser must run first.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// LoadUser retrieves user from session and sets to context
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(SessionUserID)

		if userID != nil {
			var user models.User
			// avatar_base64 can be large; profile and avatar endpoints load it themselves
			result := db.DB.WithContext(c.Request.Context()).
				Select("id", "name", "email", "credits", "created_at", "updated_at").
				First(&user, userID)
			if result.Error == nil {
				c.Set(CheckUserKey, &user)
				ctx := observability.WithUserID(c.Request.Context(), user.ID)
				c.Request = c.Request.WithContext(ctx)
			} else {
				// account is gone, drop the stale session
				session.Delete(SessionUserID)
				_ = session.Save()
			}
		}
		c.Next()
	}
}

// CurrentUser returns the logged-in user, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CheckUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// CurrentUserID returns the logged-in user's id, or 0.
func CurrentUserID(c *gin.Context) uint {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}
