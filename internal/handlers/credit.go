package handlers

import (
	"net/http"

	"ideaforge/internal/middleware"
	"ideaforge/internal/services"
	"ideaforge/internal/utils"

	"github.com/gin-gonic/gin"
)

type CreditHandler struct {
	credits *services.CreditService
}

func NewCreditHandler() *CreditHandler {
	return &CreditHandler{credits: services.NewCreditService()}
}

func (h *CreditHandler) Balance(c *gin.Context) {
	balance, err := h.credits.Balance(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"credits": balance})
}

func (h *CreditHandler) History(c *gin.Context) {
	limit := utils.ClampInt(c.Query("limit"), services.DefaultHistoryLimit, 1, services.MaxHistoryLimit)
	logs, err := h.credits.History(c.Request.Context(), middleware.CurrentUserID(c), limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": logs})
}
