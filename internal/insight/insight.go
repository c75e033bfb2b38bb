// Package insight turns query results into an LLM-written narrative. A
// failed or unavailable model never fails the caller: every path ends in text.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/DitoluT/malackathon2025/internal/core"
	"github.com/DitoluT/malackathon2025/internal/logger"
	"github.com/DitoluT/malackathon2025/internal/metrics"
)

var (
	customLog = logger.NewLogger()
)

// Outcome classifies how an Insight was produced.
type Outcome string

const (
	OutcomeGenerated Outcome = "generated"
	OutcomeDisabled  Outcome = "disabled"
	OutcomeEmpty     Outcome = "empty"
	OutcomeError     Outcome = "error"
)

// DisabledMessage is returned when no model credential is configured.
const DisabledMessage = `AI analysis is not available.

To enable Gemini insights:

1. Create an API key at https://aistudio.google.com/app/apikey
2. Set GEMINI_API_KEY in the backend .env file
3. Restart the backend

The statistics above are computed from the data and remain valid.`

// EmptyMessage is returned when the model answers with no text.
const EmptyMessage = "Could not generate an analysis. Please try again with different parameters."

// ErrorMessage formats the fallback for a failed model call.
func ErrorMessage(err error) string {
	return fmt.Sprintf(`AI analysis failed.

Error: %v

Possible causes:
- invalid or expired API key
- rate limit reached (wait a few seconds)
- connection problem with the AI provider

The statistics above are computed from the data and remain valid.`, err)
}

// Insight is the narrative attached to an analysis.
type Insight struct {
	Text    string
	Outcome Outcome
}

// Generated reports whether Text came from the model.
func (i Insight) Generated() bool { return i.Outcome == OutcomeGenerated }

// Input is what a prompt is built from.
type Input struct {
	Query    string
	Records  []core.Record
	Summary  core.Summary
	Question string
}

// Generator produces insights. A nil completer disables the model.
type Generator struct {
	completer Completer
}

func NewGenerator(c Completer) *Generator {
	return &Generator{completer: c}
}

// Enabled reports whether a model is configured.
func (g *Generator) Enabled() bool { return g.completer != nil }

// Generate makes at most one model call.
func (g *Generator) Generate(ctx context.Context, in Input) Insight {
	insight := g.generate(ctx, in)
	metrics.RecordInsight(string(insight.Outcome))
	return insight
}

func (g *Generator) generate(ctx context.Context, in Input) Insight {
	if g.completer == nil {
		return Insight{Text: DisabledMessage, Outcome: OutcomeDisabled}
	}

	prompt := BuildPrompt(in)
	customLog.Infof("Insight: Generating analysis (prompt %d chars)", len(prompt))

	text, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		customLog.Errorf("Insight: Model call failed: %v", err)
		return Insight{Text: ErrorMessage(err), Outcome: OutcomeError}
	}
	if strings.TrimSpace(text) == "" {
		customLog.Warnln("Insight: Empty response from model")
		return Insight{Text: EmptyMessage, Outcome: OutcomeEmpty}
	}
	return Insight{Text: text, Outcome: OutcomeGenerated}
}
