package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/agrifeed/internal/api/middleware"
	"github.com/d60-Lab/agrifeed/pkg/response"
)

type createPostRequest struct {
	Content *string `json:"content" binding:"omitempty,max=2000"`
	Image   *string `json:"image" binding:"omitempty,url"`
}

// CreatePost 发帖
// @Summary 发布帖子
// @Tags 社区
// @Accept json
// @Produce json
// @Param request body createPostRequest true "帖子内容"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	userID := middleware.CurrentUserID(c)
	post, err := h.posts.Create(c.Request.Context(), userID, req.Content, req.Image)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// GlobalFeed 全站信息流（匿名可读，isLiked 恒为 false）
// @Summary 全站信息流
// @Tags 社区
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) GlobalFeed(c *gin.Context) {
	viewerID := middleware.CurrentUserID(c)
	views, err := h.posts.GlobalFeed(c.Request.Context(), viewerID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, views)
}

// UserPosts 指定作者的帖子
// @Summary 用户帖子列表
// @Tags 社区
// @Param user_id path string true "用户ID"
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/users/{user_id}/posts [get]
func (h *Handler) UserPosts(c *gin.Context) {
	targetID := c.Param("user_id")
	viewerID := middleware.CurrentUserID(c)
	views, err := h.posts.UserPosts(c.Request.Context(), targetID, viewerID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, views)
}

// DeletePost 删帖（仅作者，连带评论/点赞/通知）
// @Summary 删除帖子
// @Tags 社区
// @Param post_id path string true "帖子ID"
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post_id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	postID := c.Param("post_id")
	callerID := middleware.CurrentUserID(c)
	if err := h.posts.Delete(c.Request.Context(), postID, callerID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
