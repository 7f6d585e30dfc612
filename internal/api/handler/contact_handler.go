package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/agrifeed/internal/model"
	"github.com/d60-Lab/agrifeed/pkg/response"
)

type contactRequest struct {
	Name    string  `json:"name" binding:"required,max=64"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=32"`
	Subject string  `json:"subject" binding:"required,max=128"`
	Message string  `json:"message" binding:"required,max=4000"`
}

// SubmitContact 联系我们表单
// @Summary 提交留言
// @Tags 联系
// @Accept json
// @Param request body contactRequest true "留言"
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/contact [post]
func (h *Handler) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	msg := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.contacts.Submit(c.Request.Context(), msg); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, msg)
}

// ListContactMessages 留言列表（运营侧）
// @Summary 留言列表
// @Tags 联系
// @Param offset query int false "偏移" default(0)
// @Param limit query int false "条数" default(50)
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/contact [get]
func (h *Handler) ListContactMessages(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.contacts.List(c.Request.Context(), offset, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, items)
}
