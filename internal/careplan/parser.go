package careplan

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Placeholder texts substituted when generation output cannot be recovered.
// Degrading to a generic entry keeps the author moving instead of showing an
// error screen.
const (
	fallbackNeeds          = "課題の把握が必要である"
	fallbackLongTermGoal   = "適切なケアを受けて安心して生活できる"
	fallbackShortTermGoal  = "日常生活の課題を改善できる"
	fallbackServiceContent = "個別のケアプランに基づくサービス提供"
)

// ParseResult carries the recovered entries. Fallback is true when the raw
// text contained no usable structured data and the fixed placeholder record
// was substituted, so callers can tell a degraded result from a real one.
type ParseResult struct {
	Items    []Item
	Fallback bool
}

var (
	jsonFenceRe = regexp.MustCompile("(?i)```json\\s*")
	fenceRe     = regexp.MustCompile("```\\s*")
)

// ParseResponse extracts a JSON array or object from arbitrary generation
// output. Code fences are stripped first, then the first balanced-looking
// array is tried, then the first object. Any failure yields the fallback
// record instead of an error.
func ParseResponse(raw string) ParseResult {
	cleaned := fenceRe.ReplaceAllString(jsonFenceRe.ReplaceAllString(raw, ""), "")
	cleaned = strings.TrimSpace(cleaned)

	if fragment, ok := extract(cleaned, '[', ']'); ok {
		var items []rawItem
		if err := json.Unmarshal([]byte(fragment), &items); err == nil {
			// A valid empty array means "nothing to add", not a failure.
			result := ParseResult{}
			for _, it := range items {
				result.Items = append(result.Items, it.toItem())
			}
			return result
		}
		return fallbackResult()
	}

	if fragment, ok := extract(cleaned, '{', '}'); ok {
		var item rawItem
		if err := json.Unmarshal([]byte(fragment), &item); err == nil {
			return ParseResult{Items: []Item{item.toItem()}}
		}
	}

	return fallbackResult()
}

// rawItem is the untrusted shape coming back from the generator. All four
// content fields are required by the schema; missing ones get padded with
// the per-field placeholder rather than trusting arbitrary JSON.
type rawItem struct {
	CategoryName   string `json:"categoryName"`
	Needs          string `json:"needs"`
	LongTermGoal   string `json:"longTermGoal"`
	ShortTermGoal  string `json:"shortTermGoal"`
	ServiceContent string `json:"serviceContent"`
}

func (r rawItem) toItem() Item {
	item := Item{
		CategoryName:   r.CategoryName,
		Needs:          r.Needs,
		LongTermGoal:   r.LongTermGoal,
		ShortTermGoal:  r.ShortTermGoal,
		ServiceContent: r.ServiceContent,
	}
	if item.Needs == "" {
		item.Needs = fallbackNeeds
	}
	if item.LongTermGoal == "" {
		item.LongTermGoal = fallbackLongTermGoal
	}
	if item.ShortTermGoal == "" {
		item.ShortTermGoal = fallbackShortTermGoal
	}
	if item.ServiceContent == "" {
		item.ServiceContent = fallbackServiceContent
	}
	return item
}

// extract returns the text between the first opening delimiter and the last
// closing one, mirroring a greedy bracket match.
func extract(text string, open, closing byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start == -1 {
		return "", false
	}
	end := strings.LastIndexByte(text, closing)
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func fallbackResult() ParseResult {
	return ParseResult{
		Items: []Item{{
			Needs:          fallbackNeeds,
			LongTermGoal:   fallbackLongTermGoal,
			ShortTermGoal:  fallbackShortTermGoal,
			ServiceContent: fallbackServiceContent,
		}},
		Fallback: true,
	}
}
