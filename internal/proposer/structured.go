package proposer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSON pulls the first balanced JSON object or array out of raw
// model text and unmarshals it into T. Models wrap output in markdown
// fences and prose despite instructions not to, so both are stripped.
func extractJSON[T any](raw string) (T, error) {
	var zero T

	cleaned := stripCodeFences(raw)
	block := balancedBlock(cleaned)
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return result, nil
}

// stripCodeFences removes markdown code fences (```json ... ``` or ``` ... ```).
func stripCodeFences(s string) string {
	var out []string
	inFence := false
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// balancedBlock finds the first balanced {...} or [...] block in the text,
// whichever opens first, respecting string literals and escapes.
func balancedBlock(s string) string {
	start := -1
	var open, close byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			start = i
			open = s[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
