package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/agrifeed/internal/aiclient"
	"github.com/d60-Lab/agrifeed/pkg/response"
)

type fertilizerRequest struct {
	Nitrogen    float64 `json:"nitrogen" binding:"min=0"`
	Phosphorous float64 `json:"phosphorous" binding:"min=0"`
	Potassium   float64 `json:"potassium" binding:"min=0"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity" binding:"min=0,max=100"`
	Moisture    float64 `json:"moisture" binding:"min=0,max=100"`
	SoilType    string  `json:"soil_type" binding:"required"`
	CropType    string  `json:"crop_type" binding:"required"`
}

type promptRequest struct {
	Message string `json:"message" binding:"required"`
}

type adviceRequest struct {
	Season   string `json:"season" binding:"required"`
	Location string `json:"location" binding:"required"`
	Crop     string `json:"crop"`
}

// CropDisease 作物病害识别（图片透传到托管模型）
// @Summary 病害识别
// @Tags AI
// @Accept multipart/form-data
// @Param image formData file true "作物图片"
// @Produce json
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /api/v1/ai/crop-disease [post]
func (h *Handler) CropDisease(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}
	defer file.Close()
	result, err := h.disease.PredictImage(c.Request.Context(), file, header.Filename)
	if err != nil {
		response.BadGateway(c, "disease model unavailable")
		return
	}
	response.Success(c, gin.H{"result": result})
}

// Fertilizer 肥料推荐
// @Summary 肥料推荐
// @Tags AI
// @Accept json
// @Param request body fertilizerRequest true "土壤与作物特征"
// @Produce json
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /api/v1/ai/fertilizer [post]
func (h *Handler) Fertilizer(c *gin.Context) {
	var req fertilizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.fertilizer.PredictJSON(c.Request.Context(), req)
	if err != nil {
		response.BadGateway(c, "fertilizer model unavailable")
		return
	}
	response.Success(c, gin.H{"result": result})
}

// SeasonalAdvice 季节性种植建议（生成式文本）
// @Summary 季节建议
// @Tags AI
// @Accept json
// @Param request body adviceRequest true "季节与地区"
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/ai/seasonal-advice [post]
func (h *Handler) SeasonalAdvice(c *gin.Context) {
	var req adviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	prompt := fmt.Sprintf(
		"You are an agricultural advisor. Give concise seasonal farming advice for the %s season in %s.",
		req.Season, req.Location)
	if req.Crop != "" {
		prompt += fmt.Sprintf(" Focus on %s.", req.Crop)
	}
	h.generate(c, prompt)
}

// Chatbot 农事问答
// @Summary 农事问答
// @Tags AI
// @Accept json
// @Param request body promptRequest true "用户消息"
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/ai/chatbot [post]
func (h *Handler) Chatbot(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.generate(c, req.Message)
}

func (h *Handler) generate(c *gin.Context, prompt string) {
	text, err := h.text.Generate(c.Request.Context(), prompt)
	if err != nil {
		switch {
		case errors.Is(err, aiclient.ErrEmptyPrompt):
			response.BadRequest(c, err.Error())
		case errors.Is(err, aiclient.ErrQuotaExceeded), errors.Is(err, aiclient.ErrContentBlocked):
			response.BadGateway(c, err.Error())
		default:
			response.BadGateway(c, "text api unavailable")
		}
		return
	}
	response.Success(c, gin.H{"text": text})
}
