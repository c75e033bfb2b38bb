package insight

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/DitoluT/malackathon2025/internal/core"
)

// MaxSampleRecords bounds the rows embedded in a prompt.
const MaxSampleRecords = 10

// temporalMarkers flag a query as time-oriented (case-insensitive substring).
var temporalMarkers = []string{"FECHA", "DATE", "MONTH", "MES", "YEAR", "ANIO", "EXTRACT", "TEMPORAL"}

// IsTemporal reports whether query references date/month/year-like identifiers.
func IsTemporal(query string) bool {
	upper := strings.ToUpper(query)
	for _, m := range temporalMarkers {
		if strings.Contains(upper, m) {
			return true
		}
	}
	return false
}

const trendInstructions = `Provide a PREDICTIVE analysis in Markdown:

## Temporal patterns
Clear monthly or yearly trends in the data, with specific figures.

## Seasonality
Months with the highest and lowest activity and likely causes.

## Forecast
Based on the historical pattern, project the next 3 to 6 months.
- Give numeric ranges (for example "a 15-20% increase")
- Use bullet lists

## Risk periods
Critical periods that need extra resources.

## Recommendations
Numbered, concrete actions to plan resources.

## Indicators to monitor
Metrics that would confirm or correct the forecast.

Use bold for key figures. Answer in at most 500 words.`

const patternInstructions = `Provide an analysis in Markdown:

## Main patterns
A concise description of the patterns found, with specific figures.

## Clinical insights
Three insights relevant to mental-health professionals, each backed by a figure.

## Actionable recommendations
Three numbered, specific recommendations.

## Priority concerns
Issues that call for immediate attention.

## Trends worth investigating
Aspects that merit further study.

Use bold for key figures. Answer in at most 400 words.`

func formatMetric(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g", *v)
}

// BuildPrompt assembles the prompt for one analysis.
func BuildPrompt(in Input) string {
	var b strings.Builder
	b.WriteString("You are an expert mental-health data analyst. Analyse the information below and give valuable, actionable insights.\n\n")

	b.WriteString("QUERY CONTEXT:\n")
	fmt.Fprintf(&b, "SQL query: %s\n\n", in.Query)

	b.WriteString("KEY STATISTICS:\n")
	fmt.Fprintf(&b, "- Total records: %d\n", in.Summary.TotalRecords)
	fmt.Fprintf(&b, "- Distinct values: %d\n", in.Summary.UniqueCategories)

	if m := in.Summary.Metrics; m.Mean != nil {
		b.WriteString("\nSTATISTICAL METRICS:\n")
		fmt.Fprintf(&b, "- Mean: %s\n", formatMetric(m.Mean))
		fmt.Fprintf(&b, "- Median: %s\n", formatMetric(m.Median))
		fmt.Fprintf(&b, "- Standard deviation: %s\n", formatMetric(m.StdDev))
		fmt.Fprintf(&b, "- Range: %s - %s\n", formatMetric(m.Min), formatMetric(m.Max))
	}

	sample := in.Records
	if len(sample) > MaxSampleRecords {
		sample = sample[:MaxSampleRecords]
	}
	if sample == nil {
		sample = []core.Record{}
	}
	encoded, err := json.Marshal(sample)
	if err != nil {
		encoded = []byte(fmt.Sprint(sample))
	}
	fmt.Fprintf(&b, "\nDATA SAMPLE (first %d records):\n%s\n\n", len(sample), encoded)

	if q := strings.TrimSpace(in.Question); q != "" {
		fmt.Fprintf(&b, "USER QUESTION:\n%s\n\n", q)
	}

	if IsTemporal(in.Query) {
		b.WriteString(trendInstructions)
	} else {
		b.WriteString(patternInstructions)
	}
	return b.String()
}
