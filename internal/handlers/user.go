package handlers

import (
	"net/http"

	"ideaforge/internal/apperr"
	"ideaforge/internal/middleware"
	"ideaforge/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type renameRequest struct {
	Name string `json:"name"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

type avatarRequest struct {
	AvatarBase64 string `json:"avatarBase64"`
}

func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req renameRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Rename(c.Request.Context(), middleware.CurrentUserID(c), req.Name)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req passwordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAccount removes the caller's account and ends the session.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	var req deleteAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.users.Delete(c.Request.Context(), middleware.CurrentUserID(c), req.Password); err != nil {
		RespondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		RespondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) SetAvatar(c *gin.Context) {
	var req avatarRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.users.SetAvatar(c.Request.Context(), middleware.CurrentUserID(c), req.AvatarBase64); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) RemoveAvatar(c *gin.Context) {
	if err := h.users.RemoveAvatar(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Avatar returns any user's avatar URL: the uploaded image or a Gravatar identicon.
func (h *UserHandler) Avatar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	url, err := h.users.AvatarURL(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Header("Cache-Control", "private, max-age=300")
	c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
}
