package gen

import (
	"go/token"
	"strings"
)

// upperCamel converts a snake_case proto identifier to UpperCamelCase for
// exported Go names. Letters after underscores and the first letter are
// capitalized; nothing else is touched.
func upperCamel(s string) string {
	if s == "" {
		return s
	}
	out := make([]byte, 0, len(s))
	upperNext := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			if c >= 'a' && c <= 'z' {
				c = c - 'a' + 'A'
			}
			upperNext = false
		}
		out = append(out, c)
	}
	return string(out)
}

// lowerCamel converts snake_case to lowerCamelCase for unexported storage
// fields, appending an underscore when the result is a Go keyword.
func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	// Fast path: no underscore
	if !strings.ContainsRune(s, '_') {
		if s[0] >= 'A' && s[0] <= 'Z' {
			s = string(s[0]-'A'+'a') + s[1:]
		}
		return keywordSafe(s)
	}
	out := make([]byte, 0, len(s))
	upperNext := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			upperNext = true
			continue
		}
		if len(out) == 0 {
			// first rune lowercased
			if c >= 'A' && c <= 'Z' {
				c = c - 'A' + 'a'
			}
			out = append(out, c)
			upperNext = false
			continue
		}
		if upperNext {
			if c >= 'a' && c <= 'z' {
				c = c - 'a' + 'A'
			}
			upperNext = false
		}
		out = append(out, c)
	}
	return keywordSafe(string(out))
}

func keywordSafe(s string) string {
	if token.IsKeyword(s) {
		return s + "_"
	}
	return s
}

// outputFileName maps a .proto file name to its generated Go file name.
func outputFileName(protoName string) string {
	return strings.TrimSuffix(protoName, ".proto") + ".sp.go"
}
