package engine

import (
	"encoding/json"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/brandeval/brandeval/internal/model"
)

// Alternate key names accepted for each requested score field. External
// assessors do not reliably echo the requested schema, so every scorer
// tolerates legacy and generic spellings of its field.
var (
	subjectKeys    = []string{"subjectScore", "subject_score", "subject", "score"}
	creativityKeys = []string{"creativityScore", "creativity_score", "creativity"}
	moodKeys       = []string{"moodScore", "mood_score", "mood"}
)

// ExtractScore recovers a numeric score from an untrusted model reply.
// The extraction chain, first match wins:
//
//  1. a recognized key in a JSON object, in the order given by keys;
//  2. any numeric-coercible value in the object (keys visited in sorted
//     order, so extraction is deterministic);
//  3. the first run of decimal digits anywhere in the raw text;
//  4. the caller's documented fallback.
//
// Every path clamps the result to [0, 100]. ExtractScore never fails: a
// deviant external response degrades the score, it does not abort the run.
func ExtractScore(raw string, keys []string, fallback int) int {
	if obj, ok := parseObject(raw); ok {
		for _, k := range keys {
			if v, ok := coerceNumber(obj[k]); ok {
				return model.ClampScore(v)
			}
		}
		for _, k := range slices.Sorted(maps.Keys(obj)) {
			if v, ok := coerceNumber(obj[k]); ok {
				return model.ClampScore(v)
			}
		}
	}
	if v, ok := firstNumber(raw); ok {
		return model.ClampScore(v)
	}
	return model.ClampScore(float64(fallback))
}

// parseObject tries to interpret raw as a JSON object. Model replies often
// wrap the object in prose or markdown fences, so if the whole string does
// not parse, the region between the first '{' and the last '}' is retried.
func parseObject(raw string) (map[string]any, bool) {
	var obj map[string]any
	trimmed := strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
		return obj, true
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// coerceNumber converts a decoded JSON value to a float64 where possible.
// Numeric strings count; booleans and structures do not.
func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// firstNumber scans free text for the first decimal number.
func firstNumber(raw string) (float64, bool) {
	match := numberPattern.FindString(raw)
	if match == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
