// api/handlers/ai_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DitoluT/malackathon2025/api/models"
	"github.com/DitoluT/malackathon2025/internal/analysis"
	"github.com/DitoluT/malackathon2025/internal/insight"
)

// AIHandler serves the analysis endpoints.
type AIHandler struct {
	service   *analysis.Service
	generator *insight.Generator
	model     string
}

func NewAIHandler(service *analysis.Service, generator *insight.Generator, model string) *AIHandler {
	return &AIHandler{service: service, generator: generator, model: model}
}

// Analyze handles POST /ai/analyze.
func (h *AIHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	report, err := h.service.Analyze(c.Request.Context(), analysis.Request{
		Query:    req.Query,
		Params:   req.Params,
		Limit:    req.Limit,
		Question: req.UserQuestion,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Health handles GET /ai/health.
func (h *AIHandler) Health(c *gin.Context) {
	resp := models.AIHealthResponse{
		Status:    "disabled",
		Message:   "GEMINI_API_KEY is not configured",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.generator.Enabled() {
		resp.Status = "enabled"
		resp.Enabled = true
		resp.Model = h.model
		resp.Message = "AI insights are available"
	}
	c.JSON(http.StatusOK, resp)
}
