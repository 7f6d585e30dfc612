package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/agrifeed/internal/api/middleware"
	"github.com/d60-Lab/agrifeed/pkg/response"
)

// ListNotifications 当前用户的通知，未读在前
// @Summary 通知列表
// @Tags 通知
// @Param offset query int false "偏移" default(0)
// @Param limit query int false "条数" default(20)
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, err := h.notifications.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	unread, err := h.notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"unread": unread, "notifications": items})
}

// MarkNotificationsRead 全部标记已读
// @Summary 通知标记已读
// @Tags 通知
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/notifications/read [post]
func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if err := h.notifications.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
