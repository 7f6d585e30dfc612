package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/agrifeed/internal/aiclient"
	"github.com/d60-Lab/agrifeed/internal/service"
	"github.com/d60-Lab/agrifeed/pkg/response"
)

// Handler 聚合全部 HTTP handler 的依赖
type Handler struct {
	posts         service.PostService
	interactions  service.InteractionService
	notifications service.NotificationService
	contacts      service.ContactService

	disease    *aiclient.PredictClient
	fertilizer *aiclient.PredictClient
	text       *aiclient.TextClient
}

func New(
	posts service.PostService,
	interactions service.InteractionService,
	notifications service.NotificationService,
	contacts service.ContactService,
	disease, fertilizer *aiclient.PredictClient,
	text *aiclient.TextClient,
) *Handler {
	return &Handler{
		posts:         posts,
		interactions:  interactions,
		notifications: notifications,
		contacts:      contacts,
		disease:       disease,
		fertilizer:    fertilizer,
		text:          text,
	}
}

// writeServiceError 把 service 层错误映射到统一返回码
func writeServiceError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
