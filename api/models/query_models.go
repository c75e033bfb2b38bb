// api/models/query_models.go
package models

// ExecuteQueryRequest is the body of POST /query/execute.
type ExecuteQueryRequest struct {
	Query  string         `json:"query" binding:"required,min=10,max=5000"`
	Params map[string]any `json:"params"`
	// Limit 0 means the default (100).
	Limit int `json:"limit" binding:"omitempty,min=1,max=10000"`
}

// AnalyzeRequest is the body of POST /ai/analyze.
type AnalyzeRequest struct {
	Query        string         `json:"query" binding:"required,min=10,max=5000"`
	Params       map[string]any `json:"params"`
	UserQuestion string         `json:"user_question" binding:"max=1000"`
	Limit        int            `json:"limit" binding:"omitempty,min=1,max=1000"`
}

// ExecuteQueryResponse is the body returned by POST /query/execute.
type ExecuteQueryResponse struct {
	Success       bool             `json:"success"`
	RowsReturned  int              `json:"rows_returned"`
	Columns       []string         `json:"columns"`
	Data          []map[string]any `json:"data"`
	QueryExecuted string           `json:"query_executed"`
	Message       *string          `json:"message,omitempty"`
}

// AIHealthResponse is the body of GET /ai/health.
type AIHealthResponse struct {
	Status    string `json:"status"`
	Enabled   bool   `json:"enabled"`
	Model     string `json:"model,omitempty"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
