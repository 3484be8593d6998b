package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '.', '/', ' ', '[', ']', ',', '*':
		return true
	}
	return false
}

// Words splits s into words.
// Example: "user_profile" -> ["user", "profile"]
// Example: "APIClient" -> ["API", "Client"]
func Words(s string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsLower(prev), unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				// last capital of an initialism starts the next word
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// ToPascalCase converts a string to PascalCase. Initialisms are kept.
// Example: "user_profile" -> "UserProfile"
// Example: "api-client" -> "ApiClient"
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(ToTitleCase(w))
	}
	return b.String()
}

// ToCamelCase converts a string to camelCase.
// Like PascalCase but with the first word lowercase.
// Example: "user_profile" -> "userProfile"
// Example: "APIClient" -> "apiClient"
func ToCamelCase(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(lower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(ToTitleCase(w))
	}
	return b.String()
}

// ToSnakeCase converts a string to snake_case.
// Example: "UserProfile" -> "user_profile"
// Example: "APIClient" -> "api_client"
func ToSnakeCase(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = lower(w)
	}
	return strings.Join(words, "_")
}

// ToKebabCase converts a string to kebab-case.
// Like snake_case but with hyphens instead of underscores.
// Example: "UserProfile" -> "user-profile"
func ToKebabCase(s string) string {
	return strings.ReplaceAll(ToSnakeCase(s), "_", "-")
}

// ToTitleCase upper-cases the first letter of s and leaves the rest as is.
// Example: "über" -> "Über"
// Example: "API" -> "API"
func ToTitleCase(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}

// lower lowercases with Unicode case mapping rules. Casers are stateful, so
// one is created per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
