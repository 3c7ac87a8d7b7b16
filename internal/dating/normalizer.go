package dating

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrMalformedResponse is reported when ranking output is not a usable JSON
// match list.
var ErrMalformedResponse = errors.New("malformed ranking response")

const codeFence = "```"

// Normalize extracts ranked matches from free-form completion text. It never
// fails: anything unusable yields an empty list.
func Normalize(raw string) []MatchResult {
	matches, _ := normalize(raw)
	return matches
}

// normalize is Normalize with the reason for an empty result, for logging.
func normalize(raw string) ([]MatchResult, error) {
	text := stripCodeFence(raw)
	if text == "" {
		return []MatchResult{}, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()

	var parsed any
	if err := decoder.Decode(&parsed); err != nil {
		return []MatchResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	// anything after the JSON value other than whitespace is rejected
	var trailing json.RawMessage
	if err := decoder.Decode(&trailing); !errors.Is(err, io.EOF) {
		return []MatchResult{}, fmt.Errorf("%w: trailing data after JSON value", ErrMalformedResponse)
	}

	items, ok := matchArray(parsed)
	if !ok {
		return []MatchResult{}, fmt.Errorf("%w: expected an array of matches, got %s", ErrMalformedResponse, describe(parsed))
	}

	matches := make([]MatchResult, 0, len(items))
	for _, item := range items {
		if m, ok := toMatchResult(item); ok {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// stripCodeFence removes a leading ``` or ```json marker and a trailing ```.
func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, codeFence) {
		text = text[len(codeFence):]
		if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
			text = text[4:]
		}
	}
	text = strings.TrimSpace(text)

	if strings.HasSuffix(text, codeFence) {
		text = text[:len(text)-len(codeFence)]
	}
	return strings.TrimSpace(text)
}

// matchArray accepts a bare array, or an object holding the array under
// "matches" or, failing that, the first array-valued key in sorted order.
func matchArray(parsed any) ([]any, bool) {
	switch v := parsed.(type) {
	case []any:
		return v, true
	case map[string]any:
		if items, ok := v["matches"].([]any); ok {
			return items, true
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if items, ok := v[key].([]any); ok {
				return items, true
			}
		}
	}
	return nil, false
}

func toMatchResult(item any) (MatchResult, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return MatchResult{}, false
	}

	uid := strings.TrimSpace(scalarString(obj["uid"]))
	if uid == "" {
		return MatchResult{}, false
	}

	return MatchResult{
		UID:    uid,
		Name:   plainString(obj["name"]),
		Reason: plainString(obj["reason"]),
	}, true
}

// scalarString accepts strings and numbers, since models sometimes emit
// numeric identifiers.
func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	}
	return ""
}

func plainString(v any) string {
	s, _ := v.(string)
	return s
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object without an array field"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	}
	return fmt.Sprintf("%T", v)
}

// snippet shortens raw model output for log lines
func snippet(raw string, limit int) string {
	raw = strings.TrimSpace(raw)
	if len(raw) <= limit {
		return raw
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(raw[cut]) {
		cut--
	}
	return raw[:cut] + "..."
}
