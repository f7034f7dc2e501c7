// Package naming canonicalizes free-form identifiers into the casing
// conventions used across blueprint processing and code generation.
// Every transform is total over alphanumeric/hyphen/underscore input and
// idempotent: normalizing an already-normalized string is a no-op.
package naming

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// Pascal converts a name to PascalCase (OrderItem).
func Pascal(s string) string {
	words := splitWords(s)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(title(w))
	}
	return b.String()
}

// Camel converts a name to camelCase (orderItem).
func Camel(s string) string {
	words := splitWords(s)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		b.WriteString(title(w))
	}
	return b.String()
}

// Kebab converts a name to kebab-case (order-item).
func Kebab(s string) string {
	return strings.Join(lowerWords(s), "-")
}

// Snake converts a name to snake_case (order_item).
func Snake(s string) string {
	return strings.Join(lowerWords(s), "_")
}

// UpperSnake converts a name to UPPER_SNAKE_CASE (ORDER_ITEM).
func UpperSnake(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}
	return strings.Join(words, "_")
}

// Plural returns the plural form of a name, pluralizing only its final
// word so camelCase and PascalCase inputs keep their shape
// (orderCategory becomes orderCategories).
func Plural(s string) string {
	if s == "" {
		return s
	}
	return inflect.Pluralize(s)
}

// JavaPackage joins the given segments into a lowercase dotted package
// path, dropping empty segments (["com.acme", "Billing"] becomes
// "com.acme.billing").
func JavaPackage(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		for _, sub := range strings.Split(seg, ".") {
			words := lowerWords(sub)
			if len(words) == 0 {
				continue
			}
			parts = append(parts, strings.Join(words, ""))
		}
	}
	return strings.Join(parts, ".")
}

// title lowercases a word and uppercases its first rune.
func title(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func lowerWords(s string) []string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}

// splitWords breaks an identifier into its constituent words. Separators
// (hyphen, underscore, space, any other non-alphanumeric rune) and case
// boundaries both split; an uppercase run stays one word until a lowercase
// rune follows it (HTTPServer splits into HTTP, Server). Digits never
// start a new word, which keeps address2 a single word.
func splitWords(s string) []string {
	runes := []rune(s)
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if !isWordRune(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(current) > 0 {
			prev := runes[i-1]
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			switch {
			case unicode.IsLower(prev) || unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(prev) && unicode.IsLower(next):
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
