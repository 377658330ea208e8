// Package prompt builds the Japanese generation prompts from assessment
// state. Builders are pure functions of their inputs: the same input always
// produces the same string.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"careplan-assistant/internal/assessment"
	"careplan-assistant/internal/reference"
)

//go:embed category_prompt.md
var categoryPrompt string

//go:embed integrated_prompt.md
var integratedPrompt string

// MaxIntegratedEntries caps how many result objects the integrated prompt
// asks for. All compressed categories are still listed in the prompt; the
// cap only limits the requested output size.
const MaxIntegratedEntries = 5

type categoryPromptData struct {
	ServiceTypeName string
	CategoryName    string
	Issues          string
	Detail          string
}

type integratedPromptData struct {
	ServiceTypeName string
	CategoryInfo    string
	OutputCount     int
}

// Compressed is one category block surviving the token-budget reduction.
type Compressed struct {
	Category string
	Issues   []string
	Detail   string
}

// BuildCategoryPrompt renders the single-category prompt. Checked items are
// joined with a full-width comma, and the detail line is omitted when empty.
func BuildCategoryPrompt(cat reference.AssessmentCategory, a assessment.CategoryAssessment, serviceTypeName string) (string, error) {
	tmpl, err := template.New("category").Parse(categoryPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, categoryPromptData{
		ServiceTypeName: serviceTypeName,
		CategoryName:    cat.Name,
		Issues:          strings.Join(a.CheckedItems, "、"),
		Detail:          a.DetailText,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Compress drops every entry with no checked items and no detail text,
// preserving the relative order of the rest. This is the token-budget
// reduction step for the integrated prompt.
func Compress(entries []assessment.CheckedEntry) []Compressed {
	var compressed []Compressed
	for _, e := range entries {
		if e.Assessment.IsEmpty() {
			continue
		}
		compressed = append(compressed, Compressed{
			Category: e.Category.Name,
			Issues:   e.Assessment.CheckedItems,
			Detail:   e.Assessment.DetailText,
		})
	}
	return compressed
}

// BuildIntegratedPrompt renders the all-categories prompt. It requests a
// JSON array of min(len(compressed), MaxIntegratedEntries) objects.
func BuildIntegratedPrompt(entries []assessment.CheckedEntry, serviceTypeName string) (string, error) {
	compressed := Compress(entries)
	if len(compressed) == 0 {
		return "", fmt.Errorf("no categories with assessment data")
	}

	var info strings.Builder
	for i, c := range compressed {
		if i > 0 {
			info.WriteString("\n")
		}
		fmt.Fprintf(&info, "%d. %s", i+1, c.Category)
		if len(c.Issues) > 0 {
			fmt.Fprintf(&info, "\n   課題: %s", strings.Join(c.Issues, "、"))
		}
		if c.Detail != "" {
			fmt.Fprintf(&info, "\n   詳細: %s", c.Detail)
		}
	}

	outputCount := len(compressed)
	if outputCount > MaxIntegratedEntries {
		outputCount = MaxIntegratedEntries
	}

	tmpl, err := template.New("integrated").Parse(integratedPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, integratedPromptData{
		ServiceTypeName: serviceTypeName,
		CategoryInfo:    info.String(),
		OutputCount:     outputCount,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
