package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/careflow-api/internal/httperr"
)

const termPrompt = `Explain the medical term %q to a patient with no medical background.
Write two or three short sentences of plain prose. Avoid markdown, headings and bullet points.`

type TermResult struct {
	Term       string   `json:"term"`
	Definition string   `json:"definition"`
	Examples   []string `json:"examples"`
}

type glossaryEntry struct {
	definition string
	examples   []string
}

var glossary = []struct {
	term  string
	entry glossaryEntry
}{
	{"hypertension", glossaryEntry{
		definition: "Hypertension, also known as high blood pressure, is a condition where the force of blood against artery walls is consistently too high. This can lead to serious health complications if left untreated.",
		examples: []string{
			"Common usage: 'The patient was diagnosed with hypertension during routine screening'",
			"Related terms: cardiovascular disease, systolic pressure, diastolic pressure",
			"When to seek help: If you experience persistent headaches, shortness of breath, or nosebleeds",
		},
	}},
	{"diabetes", glossaryEntry{
		definition: "Diabetes is a metabolic disorder characterized by high blood sugar levels over a prolonged period. It occurs when the pancreas doesn't produce enough insulin or when the body cannot effectively use the insulin it produces.",
		examples: []string{
			"Common usage: 'Type 2 diabetes can often be managed with lifestyle changes and medication'",
			"Related terms: insulin resistance, glucose monitoring, HbA1c levels",
			"When to seek help: If you experience excessive thirst, frequent urination, or unexplained weight loss",
		},
	}},
	{"cholesterol", glossaryEntry{
		definition: "Cholesterol is a waxy, fat-like substance found in your blood. While your body needs cholesterol to build healthy cells, high levels of cholesterol can increase your risk of heart disease.",
		examples: []string{
			"Common usage: 'High cholesterol levels were detected in the lipid panel test'",
			"Related terms: LDL (bad cholesterol), HDL (good cholesterol), triglycerides",
			"When to seek help: Regular screening is recommended, especially if you have a family history",
		},
	}},
}

// SearchTerm explains query in plain language. Only an empty query is an
// error; model failures fall back to the built-in glossary.
func (g *Gateway) SearchTerm(ctx context.Context, query string) (TermResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return TermResult{}, httperr.ErrInvalidRequest
	}

	term := CleanTermText(query)
	if term == "" {
		term = query
	}

	if !g.Enabled() {
		return fallbackTerm(term), nil
	}

	key := strings.ToLower(query)
	if cached, ok := g.cacheGet(ctx, key); ok {
		return cached, nil
	}

	text, err := g.call(ctx, g.opts.TermModel, fmt.Sprintf(termPrompt, query), nil)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("term lookup failed")
		return fallbackTerm(term), nil
	}

	def := CleanTermText(text)
	if def == "" {
		return fallbackTerm(term), nil
	}

	out := TermResult{Term: term, Definition: def, Examples: []string{}}
	g.cacheSet(ctx, key, out)
	return out, nil
}

func fallbackTerm(term string) TermResult {
	lower := strings.ToLower(term)
	for _, g := range glossary {
		if strings.Contains(lower, g.term) || strings.Contains(g.term, lower) {
			return TermResult{
				Term:       term,
				Definition: g.entry.definition,
				Examples:   append([]string(nil), g.entry.examples...),
			}
		}
	}

	return TermResult{
		Term:       term,
		Definition: fmt.Sprintf("%s refers to a medical condition or health-related concept. A detailed explanation is not available right now, so please ask your healthcare provider about it.", term),
		Examples:   []string{},
	}
}

func (g *Gateway) cacheGet(ctx context.Context, key string) (TermResult, bool) {
	if g.opts.Cache == nil {
		return TermResult{}, false
	}
	b, ok := g.opts.Cache.Get(ctx, key)
	if !ok {
		return TermResult{}, false
	}
	var out TermResult
	if err := json.Unmarshal(b, &out); err != nil {
		return TermResult{}, false
	}
	return out, true
}

func (g *Gateway) cacheSet(ctx context.Context, key string, v TermResult) {
	if g.opts.Cache == nil || g.opts.CacheTTL <= 0 {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	g.opts.Cache.Set(ctx, key, b, g.opts.CacheTTL)
}

// ======================================================
// CLEANING
// ======================================================

var sectionLabel = regexp.MustCompile(`(?i)^(?:(?:DEFINITION|EXAMPLES)\s*:\s*)+`)

// CleanTermText strips markdown emphasis and section labels from model
// prose and collapses runs of blank lines.
func CleanTermText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "_", "")

	var out []string
	blank := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = sectionLabel.ReplaceAllString(line, "")

		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
