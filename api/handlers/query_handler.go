// api/handlers/query_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DitoluT/malackathon2025/api/models"
	"github.com/DitoluT/malackathon2025/internal/dataset"
	"github.com/DitoluT/malackathon2025/internal/dialect"
	"github.com/DitoluT/malackathon2025/internal/gateway"
	"github.com/DitoluT/malackathon2025/internal/storage"
)

// QueryHandler serves the ad-hoc query endpoints.
type QueryHandler struct {
	gateway  *gateway.Gateway
	schema   *storage.SchemaRepo
	examples []dataset.Example
}

func NewQueryHandler(gw *gateway.Gateway, schema *storage.SchemaRepo, mapping dataset.Mapping, d dialect.Dialect) *QueryHandler {
	return &QueryHandler{gateway: gw, schema: schema, examples: dataset.Examples(mapping, d)}
}

// Execute handles POST /query/execute.
func (h *QueryHandler) Execute(c *gin.Context) {
	var req models.ExecuteQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	result, err := h.gateway.Execute(c.Request.Context(), gateway.CandidateQuery{
		Query:  req.Query,
		Params: req.Params,
		Limit:  req.Limit,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Handler: Query returned %d rows", result.RowsReturned)
	c.JSON(http.StatusOK, models.ExecuteQueryResponse{
		Success:       true,
		RowsReturned:  result.RowsReturned,
		Columns:       result.Columns,
		Data:          result.Data,
		QueryExecuted: result.QueryExecuted,
		Message:       result.Message,
	})
}

// Examples handles GET /query/examples.
func (h *QueryHandler) Examples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"examples": h.examples})
}

// Schema handles GET /query/schema.
func (h *QueryHandler) Schema(c *gin.Context) {
	schema, err := h.schema.TableSchema(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, schema)
}
