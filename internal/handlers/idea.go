package handlers

import (
	"net/http"

	"ideaforge/internal/middleware"
	"ideaforge/internal/services"
	"ideaforge/internal/utils"

	"github.com/gin-gonic/gin"
)

type IdeaHandler struct {
	ideas *services.IdeaService
	votes *services.VoteService
}

func NewIdeaHandler() *IdeaHandler {
	return &IdeaHandler{
		ideas: services.NewIdeaService(),
		votes: services.NewVoteService(),
	}
}

type voteRequest struct {
	VoteType string `json:"voteType"`
}

func (h *IdeaHandler) List(c *gin.Context) {
	limit := utils.ClampInt(c.Query("limit"), services.DefaultIdeaLimit, 1, services.MaxIdeaLimit)
	ideas, err := h.ideas.List(c.Request.Context(), middleware.CurrentUserID(c), c.Query("sortBy"), limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ideas})
}

func (h *IdeaHandler) Create(c *gin.Context) {
	var req services.IdeaInput
	if !bindJSON(c, &req) {
		return
	}

	idea, err := h.ideas.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, idea)
}

func (h *IdeaHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	idea, err := h.ideas.Get(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, idea)
}

func (h *IdeaHandler) Vote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req voteRequest
	if !bindJSON(c, &req) {
		return
	}
	voteType, err := services.ParseVoteType(req.VoteType)
	if err != nil {
		RespondError(c, err)
		return
	}

	result, err := h.votes.CastIdeaVote(c.Request.Context(), id, middleware.CurrentUserID(c), voteType)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
