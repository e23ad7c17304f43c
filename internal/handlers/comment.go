package handlers

import (
	"net/http"

	"ideaforge/internal/middleware"
	"ideaforge/internal/services"
	"ideaforge/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
	votes    *services.VoteService
}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{
		comments: services.NewCommentService(),
		votes:    services.NewVoteService(),
	}
}

type editCommentRequest struct {
	Body string `json:"texto"`
}

// List returns a flat page by default, or the whole thread with ?view=tree.
func (h *CommentHandler) List(c *gin.Context) {
	ideaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	viewerID := middleware.CurrentUserID(c)

	if c.Query("view") == "tree" {
		tree, err := h.comments.Thread(ctx, ideaID, viewerID, c.Query("sort"))
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"comments": tree})
		return
	}

	limit := utils.ClampInt(c.Query("limit"), services.DefaultCommentLimit, 1, services.MaxCommentLimit)
	skip := utils.ClampInt(c.Query("skip"), 0, 0, 1<<30)
	page, err := h.comments.List(ctx, ideaID, viewerID, limit, skip)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CommentHandler) Create(c *gin.Context) {
	ideaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.CommentInput
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), ideaID, middleware.CurrentUserID(c), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Edit(c *gin.Context) {
	ideaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	commentID, ok := paramID(c, "commentId")
	if !ok {
		return
	}
	var req editCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.comments.Edit(c.Request.Context(), ideaID, commentID, middleware.CurrentUserID(c), req.Body)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	ideaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	commentID, ok := paramID(c, "commentId")
	if !ok {
		return
	}

	comment, err := h.comments.Delete(c.Request.Context(), ideaID, commentID, middleware.CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Vote(c *gin.Context) {
	ideaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	commentID, ok := paramID(c, "commentId")
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

	result, err := h.votes.CastCommentVote(c.Request.Context(), ideaID, commentID, middleware.CurrentUserID(c), voteType)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
