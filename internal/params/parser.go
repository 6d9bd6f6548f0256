package params

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseArgs converts raw command-line values into bind parameters.
func ParseArgs(raw []string) ([]any, error) {
	result := make([]any, 0, len(raw))
	for i, s := range raw {
		v, err := ParseArg(s)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		result = append(result, v)
	}
	return result, nil
}

// ParseArg converts a single value. See the package documentation for the
// rules.
func ParseArg(s string) (any, error) {
	if unquoted, ok, err := unquote(s); ok {
		return unquoted, err
	}

	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, "null") {
		return nil, nil
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !isSpecialFloat(trimmed) {
		return f, nil
	}
	return s, nil
}

// unquote strips one pair of matching quotes. ok reports whether s was
// quoted at all.
func unquote(s string) (value string, ok bool, err error) {
	if len(s) < 1 {
		return "", false, nil
	}
	first := s[0]
	if first != '\'' && first != '"' {
		return "", false, nil
	}
	if len(s) < 2 || s[len(s)-1] != first {
		return "", true, fmt.Errorf("unterminated quote in %q", s)
	}
	return s[1 : len(s)-1], true, nil
}

// isSpecialFloat rejects spellings ParseFloat accepts that are not numbers
// a user would type on purpose, such as "inf" or "NaN".
func isSpecialFloat(s string) bool {
	lower := strings.ToLower(strings.TrimLeft(s, "+-"))
	return strings.HasPrefix(lower, "inf") || lower == "nan"
}
