package dating

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultCatalog is the questionnaire shipped with the app
var DefaultCatalog = Catalog{
	{
		Field:       "age",
		Prompt:      "Hey! How young are you feeling these days?",
		Placeholder: "Enter your age...",
		Parser:      ParserInteger,
	},
	{
		Field:       "city",
		Prompt:      "Where do you call home? (City)",
		Placeholder: "City name...",
	},
	{
		Field:       "orientation",
		Prompt:      "Who are you interested in? (straight/gay/bi/anyone)",
		Placeholder: "e.g. 'anyone'",
	},
	{
		Field:       "gender",
		Prompt:      "How do you identify?",
		Placeholder: "e.g. female, male, non-binary",
	},
	{
		Field:       "interests",
		Prompt:      "Got any fun hobbies or passions?",
		Placeholder: "e.g. cooking, gaming, reading",
		Parser:      ParserStringList,
	},
	{
		Field:       "favoriteFood",
		Prompt:      "What's your go-to comfort food?",
		Placeholder: "Pizza, sushi, etc.",
	},
	{
		Field:       "funFact",
		Prompt:      "Tell us one fun fact about you!",
		Placeholder: "I can solve a Rubik's Cube in 30s",
	},
	{
		Field:       "relationshipGoals",
		Prompt:      "What are you looking for right now?",
		Placeholder: "Serious, casual, friendship...",
	},
	{
		Field:       "occupation",
		Prompt:      "What do you do for a living?",
		Placeholder: "Software engineer, chef...",
	},
	{
		Field:       "education",
		Prompt:      "What's your education background?",
		Placeholder: "Bachelor's, self-taught...",
	},
	{
		Field:       "hobbies",
		Prompt:      "How do you spend your weekends?",
		Placeholder: "e.g. hiking, yoga, photography",
		Parser:      ParserStringList,
	},
	{
		Field:       "favoriteMovie",
		Prompt:      "Which movie could you watch again and again?",
		Placeholder: "Inception",
	},
}

// Fields returns the field keys in catalog order
func (c Catalog) Fields() []string {
	fields := make([]string, 0, len(c))
	for _, q := range c {
		fields = append(fields, q.Field)
	}
	return fields
}

var leadingInteger = regexp.MustCompile(`^[+-]?\d+`)

// ParseAnswer converts raw wizard input into the value stored for a field.
// Integer input that does not start with a number yields nil.
func ParseAnswer(kind ParserKind, raw string) any {
	switch kind {
	case ParserInteger:
		return parseInteger(raw)
	case ParserStringList:
		return parseStringList(raw)
	default:
		return raw
	}
}

// Parse applies the question's parser to raw input
func (q Question) Parse(raw string) any {
	return ParseAnswer(q.Parser, raw)
}

func parseInteger(raw string) any {
	digits := leadingInteger.FindString(strings.TrimSpace(raw))
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return n
}

func parseStringList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// coerceAnswer restores the parsed shape of an answer after a JSON round trip
func coerceAnswer(kind ParserKind, value any) any {
	switch kind {
	case ParserInteger:
		if f, ok := value.(float64); ok {
			return int(f)
		}
	case ParserStringList:
		if items, ok := value.([]any); ok {
			out := make([]string, 0, len(items))
			for _, item := range items {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return value
}
