// api/handlers/statistics_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DitoluT/malackathon2025/internal/core"
	"github.com/DitoluT/malackathon2025/internal/storage"
)

// StatisticsHandler serves the fixed aggregate metrics.
type StatisticsHandler struct {
	repo *storage.StatsRepo
}

func NewStatisticsHandler(repo *storage.StatsRepo) *StatisticsHandler {
	return &StatisticsHandler{repo: repo}
}

// GetMetric handles GET /statistics/:metric.
func (h *StatisticsHandler) GetMetric(c *gin.Context) {
	slug := c.Param("metric")

	result, err := h.compute(c, slug)
	if err != nil {
		_ = c.Error(err)
		return
	}
	customLog.Debugf("Handler: Served statistic '%s'", slug)
	c.JSON(http.StatusOK, result)
}

func (h *StatisticsHandler) compute(c *gin.Context, slug string) (any, error) {
	ctx := c.Request.Context()
	switch slug {
	case "diagnoses":
		return h.repo.Diagnoses(ctx)
	case "age":
		return h.repo.AgeDistribution(ctx)
	case "sex":
		return h.repo.SexDistribution(ctx)
	case "admission-type":
		return h.repo.AdmissionTypes(ctx)
	case "monthly-trend":
		year, ok, err := core.ParseYear(c.Request.URL.Query())
		if err != nil {
			return nil, err
		}
		if !ok {
			return h.repo.MonthlyTrend(ctx, nil)
		}
		return h.repo.MonthlyTrend(ctx, &year)
	case "stay-duration":
		return h.repo.StayDuration(ctx)
	case "regions":
		return h.repo.Regions(ctx)
	case "services":
		return h.repo.Services(ctx)
	default:
		return nil, fmt.Errorf("statistic '%s': %w", slug, core.ErrNotFound)
	}
}
