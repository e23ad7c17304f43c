package handlers

import (
	"net/http"

	"ideaforge/internal/middleware"
	"ideaforge/internal/services"

	"github.com/gin-gonic/gin"
)

type AdHandler struct {
	ads     *services.AdService
	credits *services.CreditService
}

func NewAdHandler() *AdHandler {
	return &AdHandler{
		ads:     services.NewAdService(),
		credits: services.NewCreditService(),
	}
}

// Draw serves one banner and up to two squares, each costing the ad one view.
func (h *AdHandler) Draw(c *gin.Context) {
	ads, err := h.ads.Draw(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ads": ads})
}

// Create buys an ad with the caller's credits.
func (h *AdHandler) Create(c *gin.Context) {
	var req services.AdInput
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)
	ad, err := h.ads.Create(ctx, userID, req)
	if err != nil {
		RespondError(c, err)
		return
	}

	balance, err := h.credits.Balance(ctx, userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ad": ad, "credits": balance})
}
