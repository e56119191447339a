package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const reportPrompt = `You are a careful clinical nurse assistant. Read the attached medical report and explain it to the patient in plain language.

Respond with a single JSON object and nothing else, using exactly this shape:
{
  "summary": "one or two sentence overview",
  "analysis": "a few short paragraphs explaining the findings",
  "metrics": [
    {
      "name": "test name",
      "value": "measured value",
      "unit": "unit of measure",
      "status": "normal | warning | critical",
      "reference_range": "normal range as printed on the report",
      "interpretation": "what this value means for the patient"
    }
  ],
  "recommendations": ["short actionable recommendation"]
}

If a field is unknown use an empty string. Do not give a diagnosis.`

// ======================================================
// TYPES
// ======================================================

type Metric struct {
	Name           string     `json:"name"`
	Value          FlexString `json:"value"`
	Unit           FlexString `json:"unit"`
	Status         string     `json:"status"`
	ReferenceRange FlexString `json:"reference_range"`
	Interpretation string     `json:"interpretation"`
}

type ReportAnalysis struct {
	Summary         string   `json:"summary"`
	Analysis        string   `json:"analysis"`
	Metrics         []Metric `json:"metrics"`
	Recommendations []string `json:"recommendations"`
	FileName        string   `json:"file_name"`
}

// FlexString accepts a JSON string, number or bool. Models often emit
// numeric lab values unquoted.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err == nil || string(b) == "true" || string(b) == "false" {
		*f = FlexString(b)
		return nil
	}
	return fmt.Errorf("unsupported value %s", b)
}

// ======================================================
// ANALYZE
// ======================================================

// AnalyzeReport never returns an error; failures become fixed payloads.
func (g *Gateway) AnalyzeReport(ctx context.Context, fileName string, att Attachment) ReportAnalysis {
	if !g.Enabled() {
		return notConfiguredReport(fileName)
	}

	text, err := g.call(ctx, g.opts.ReportModel, reportPrompt, &att)
	if err != nil {
		log.Warn().Err(err).Str("file_name", fileName).Msg("report analysis failed")
		return degradedReport(fileName, err)
	}

	out, tier := ParseReport(text)
	log.Debug().Str("tier", tier.String()).Str("file_name", fileName).Msg("report parsed")

	out.FileName = fileName
	return out
}

func notConfiguredReport(fileName string) ReportAnalysis {
	return ReportAnalysis{
		Summary:         "AI analysis is not configured.",
		Analysis:        "Report analysis requires an AI provider API key. Please ask an administrator to configure GEMINI_API_KEY, or discuss the report with your healthcare provider.",
		Metrics:         []Metric{},
		Recommendations: []string{},
		FileName:        fileName,
	}
}

func degradedReport(fileName string, err error) ReportAnalysis {
	return ReportAnalysis{
		Summary:         "The report could not be analyzed right now.",
		Analysis:        fmt.Sprintf("The AI service was unable to process %q (%v). Please try again later or discuss the report with your healthcare provider.", fileName, err),
		Metrics:         []Metric{},
		Recommendations: []string{"Try again in a few minutes.", "Share the report with your doctor."},
		FileName:        fileName,
	}
}

// ======================================================
// PARSE
// ======================================================

type Tier int

const (
	TierFenced Tier = iota
	TierBraces
	TierRaw
)

func (t Tier) String() string {
	switch t {
	case TierFenced:
		return "fenced"
	case TierBraces:
		return "braces"
	default:
		return "raw"
	}
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")

// ParseReport extracts the report object from a model reply. It tries a
// fenced code block, then the first balanced brace span, then falls back to
// the whole reply as analysis text.
func ParseReport(text string) (ReportAnalysis, Tier) {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		if out, ok := decodeReport(m[1]); ok {
			return out, TierFenced
		}
	}

	if span, ok := firstObject(text); ok {
		if out, ok := decodeReport(span); ok {
			return out, TierBraces
		}
	}

	return ReportAnalysis{
		Analysis:        strings.TrimSpace(text),
		Metrics:         []Metric{},
		Recommendations: []string{},
	}, TierRaw
}

// firstObject returns the span from the first "{" to its matching "}".
// Braces inside JSON strings do not count.
func firstObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// decodeReport fails on anything that does not carry at least one report
// field, so a bare null or {} falls through to the next tier.
func decodeReport(s string) (ReportAnalysis, bool) {
	var out ReportAnalysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &out); err != nil {
		return ReportAnalysis{}, false
	}
	if out.Summary == "" && out.Analysis == "" && len(out.Metrics) == 0 && len(out.Recommendations) == 0 {
		return ReportAnalysis{}, false
	}

	if out.Metrics == nil {
		out.Metrics = []Metric{}
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}
	for i := range out.Metrics {
		out.Metrics[i].Status = normalizeStatus(out.Metrics[i].Status)
	}
	return out, true
}

// normalizeStatus folds model wording onto normal, warning or critical.
// Anything unrecognized is flagged as warning.
func normalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "ok", "within range", "good":
		return "normal"
	case "critical", "severe", "danger", "urgent":
		return "critical"
	default:
		return "warning"
	}
}
