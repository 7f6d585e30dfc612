package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/agrifeed/internal/api/middleware"
	"github.com/d60-Lab/agrifeed/pkg/response"
)

type addCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// ToggleLike 点赞/取消赞的幂等翻转
// @Summary 点赞翻转
// @Tags 社区
// @Param post_id path string true "帖子ID"
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post_id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	postID := c.Param("post_id")
	userID := middleware.CurrentUserID(c)
	liked, count, err := h.interactions.ToggleLike(c.Request.Context(), postID, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"is_liked": liked, "like_count": count})
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags 社区
// @Accept json
// @Param post_id path string true "帖子ID"
// @Param request body addCommentRequest true "评论内容"
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post_id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	postID := c.Param("post_id")
	userID := middleware.CurrentUserID(c)
	comment, err := h.interactions.AddComment(c.Request.Context(), postID, userID, req.Content)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, comment)
}

// ListComments 评论分页（信息流前 5 条之外）
// @Summary 评论分页
// @Tags 社区
// @Param post_id path string true "帖子ID"
// @Param offset query int false "偏移" default(0)
// @Param limit query int false "条数" default(20)
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{post_id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	postID := c.Param("post_id")
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	comments, err := h.interactions.Comments(c.Request.Context(), postID, offset, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"offset": offset, "limit": limit, "comments": comments})
}

// DeleteComment 删除评论（评论作者或帖子作者）
// @Summary 删除评论
// @Tags 社区
// @Param comment_id path string true "评论ID"
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/comments/{comment_id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	commentID := c.Param("comment_id")
	callerID := middleware.CurrentUserID(c)
	if err := h.interactions.DeleteComment(c.Request.Context(), commentID, callerID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
