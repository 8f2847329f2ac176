// Package match scores how well a resume covers the keywords of a job
// posting. The scorer is a pure function over two pieces of text and
// static keyword configuration; identical inputs always produce an
// identical Result.
package match

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// JobFields are the posting's free-text fields considered by the scorer.
type JobFields struct {
	Position     string
	JobType      string
	Description  string
	Requirements string
	Notes        string
}

// CategoryBreakdown reports coverage of one keyword category.
type CategoryBreakdown struct {
	Matched []string `json:"matched"`
	Total   int      `json:"total"`
	Percent int      `json:"percent"`
}

// Result is the derived match outcome. It is never persisted.
type Result struct {
	Percentage  int                            `json:"percentage"`
	Matched     []string                       `json:"matched"`
	Missing     []string                       `json:"missing"`
	Suggestions []string                       `json:"suggestions"`
	Breakdown   map[Category]CategoryBreakdown `json:"breakdown"`
	Estimated   bool                           `json:"estimated"`
}

const maxSuggestions = 5

// Score computes the weighted keyword overlap between resume text and
// the posting's text fields. Empty resume text or an empty posting
// yields a zero result with empty sets: no data, no opinion.
func Score(resumeText string, job JobFields) Result {
	result := Result{
		Matched:     []string{},
		Missing:     []string{},
		Suggestions: []string{},
		Breakdown:   map[Category]CategoryBreakdown{},
	}

	jobText := strings.Join([]string{
		job.Position, job.JobType, job.Description, job.Requirements, job.Notes,
	}, " ")

	resumeNorm := normalize(resumeText)
	jobNorm := normalize(jobText)
	if strings.TrimSpace(resumeNorm) == "" || strings.TrimSpace(jobNorm) == "" {
		return result
	}

	jobKeywords := extractKeywords(jobNorm)

	// Resume keywords form one flat set: a keyword counts as covered no
	// matter which category it was found under.
	resumeSet := make(map[string]bool)
	for _, set := range extractKeywords(resumeNorm) {
		for kw := range set {
			resumeSet[kw] = true
		}
	}

	var weightedSum, weightTotal float64
	for cat, jobSet := range jobKeywords {
		if len(jobSet) == 0 {
			continue
		}

		matched := make([]string, 0, len(jobSet))
		for kw := range jobSet {
			if resumeSet[kw] {
				matched = append(matched, kw)
			} else {
				result.Missing = append(result.Missing, kw)
			}
		}
		sort.Strings(matched)
		result.Matched = append(result.Matched, matched...)

		ratio := float64(len(matched)) / float64(len(jobSet))
		weight := categoryWeights[cat]
		weightedSum += weight * ratio
		weightTotal += weight

		result.Breakdown[cat] = CategoryBreakdown{
			Matched: matched,
			Total:   len(jobSet),
			Percent: int(math.Round(ratio * 100)),
		}
	}

	if weightTotal > 0 {
		result.Percentage = int(math.Round(weightedSum / weightTotal * 100))
	}

	sort.Strings(result.Matched)
	rankByFrequency(result.Missing, jobNorm)

	n := len(result.Missing)
	if n > maxSuggestions {
		n = maxSuggestions
	}
	result.Suggestions = append(result.Suggestions, result.Missing[:n]...)

	return result
}

// normalize lowercases text and replaces punctuation with spaces,
// keeping dots and dashes so terms like node.js and mid-level survive
// tokenization. Leading and trailing dots/dashes are trimmed per token.
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func tokenize(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".-")
		if len([]rune(f)) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// extractKeywords classifies tokens against the category lists and
// checks multi-word phrases by substring on the normalized text.
func extractKeywords(normalized string) map[Category]map[string]bool {
	found := map[Category]map[string]bool{
		CategoryTechnical:  {},
		CategoryDatabase:   {},
		CategorySoft:       {},
		CategoryExperience: {},
	}

	for _, tok := range tokenize(normalized) {
		if cat, ok := keywordCategory[tok]; ok {
			found[cat][tok] = true
		}
	}
	for phrase, cat := range categoryPhrases {
		if strings.Contains(normalized, phrase) {
			found[cat][phrase] = true
		}
	}
	return found
}

// rankByFrequency orders keywords by how often they occur in the job
// text, most frequent first. Ties break alphabetically so the ordering
// is deterministic.
func rankByFrequency(keywords []string, jobNorm string) {
	counts := make(map[string]int, len(keywords))
	tokens := tokenize(jobNorm)
	for _, kw := range keywords {
		if strings.Contains(kw, " ") {
			counts[kw] = strings.Count(jobNorm, kw)
			continue
		}
		for _, tok := range tokens {
			if tok == kw {
				counts[kw]++
			}
		}
	}

	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})
}
