package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseFailure marks a model reply that could not be normalized into the
// expected JSON shape. It is a value, not a raised error: callers apply
// their own fallback policy on it.
type ParseFailure struct {
	Raw   string
	Cause error
}

func (f *ParseFailure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("unparseable model reply: %v", f.Cause)
	}
	return "unparseable model reply"
}

// ExtractArray extracts the first JSON array embedded in free-form text.
// Strategy: strip markdown fences, try a direct parse, then rescue the first
// balanced [...] substring. Never panics; returns a ParseFailure instead.
func ExtractArray(text string) ([]any, *ParseFailure) {
	cleaned := CleanJSONBlock(text)

	var arr []any
	if err := json.Unmarshal([]byte(cleaned), &arr); err == nil {
		return arr, nil
	}

	candidate := firstBalanced(cleaned, '[', ']')
	if candidate == "" {
		return nil, &ParseFailure{Raw: text, Cause: fmt.Errorf("no JSON array found")}
	}
	if err := json.Unmarshal([]byte(candidate), &arr); err != nil {
		return nil, &ParseFailure{Raw: text, Cause: err}
	}
	return arr, nil
}

// ExtractObject extracts the first JSON object embedded in free-form text.
func ExtractObject(text string) (map[string]any, *ParseFailure) {
	cleaned := CleanJSONBlock(text)

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err == nil {
		return obj, nil
	}

	candidate := firstBalanced(cleaned, '{', '}')
	if candidate == "" {
		return nil, &ParseFailure{Raw: text, Cause: fmt.Errorf("no JSON object found")}
	}
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, &ParseFailure{Raw: text, Cause: err}
	}
	return obj, nil
}

// listWrapperKeys are the object keys models use when they wrap a list
// instead of returning a bare array.
var listWrapperKeys = []string{"tags", "competencies", "questions"}

// StringList normalizes a reply into the canonical list-of-strings shape.
// Accepts a bare JSON array or a wrapper object like {"tags": [...]};
// non-string elements are dropped. A deliberate empty list is a valid,
// non-failure result.
func StringList(text string) ([]string, *ParseFailure) {
	if arr, fail := ExtractArray(text); fail == nil {
		return stringElems(arr), nil
	}

	obj, fail := ExtractObject(text)
	if fail != nil {
		return nil, fail
	}
	for _, key := range listWrapperKeys {
		if arr, ok := obj[key].([]any); ok {
			return stringElems(arr), nil
		}
	}
	return nil, &ParseFailure{Raw: text, Cause: fmt.Errorf("object reply has no list field")}
}

func stringElems(arr []any) []string {
	out := make([]string, 0, len(arr))
	for _, elem := range arr {
		if s, ok := elem.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// firstBalanced returns the first balanced open...close substring of text,
// ignoring brackets inside JSON string literals.
func firstBalanced(text string, open, close byte) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
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
			if depth > 0 {
				inString = true
			}
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			if depth > 0 {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return ""
}

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
