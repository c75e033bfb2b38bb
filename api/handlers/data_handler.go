// api/handlers/data_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DitoluT/malackathon2025/internal/core"
	"github.com/DitoluT/malackathon2025/internal/storage"
)

// DataHandler serves paginated raw listings.
type DataHandler struct {
	repo *storage.ListingRepo
}

func NewDataHandler(repo *storage.ListingRepo) *DataHandler {
	return &DataHandler{repo: repo}
}

// List handles GET /data/:entity?skip=&limit=.
func (h *DataHandler) List(c *gin.Context) {
	entity := c.Param("entity")

	opts, err := core.ParseListQueryOptions(c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}

	page, err := h.repo.List(c.Request.Context(), entity, *opts)
	if err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Handler: Listed %d %s (skip %d, limit %d)", page.Count, entity, page.Skip, page.Limit)
	c.JSON(http.StatusOK, page)
}
