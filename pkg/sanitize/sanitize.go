// Package sanitize neutralizes inbound form input before validation.
// Every transform escapes the HTML-significant characters first, then
// applies a field-specific character allow-list.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxMessageLength caps free-text fields after escaping.
const MaxMessageLength = 10000

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

var (
	emailDisallowed      = regexp.MustCompile(`[^a-zA-Z0-9@._-]`)
	phoneDisallowed      = regexp.MustCompile(`[^0-9\-()\s]`)
	fileNameDisallowed   = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)
	repeatedUnderscore   = regexp.MustCompile(`_{2,}`)
	edgeUnderscore       = regexp.MustCompile(`^_|_$`)
	identifierDisallowed = regexp.MustCompile(`[^a-zA-Z0-9\-_.:]`)
	csvDangerousPrefix   = regexp.MustCompile(`^[=@+\-]`)
)

// SanitizeString escapes the six HTML-significant characters and trims
// surrounding whitespace.
func SanitizeString(input string) string {
	return strings.TrimSpace(htmlEscaper.Replace(input))
}

// SanitizeEmail escapes, then strips every character that cannot appear
// in a mail address.
func SanitizeEmail(email string) string {
	return emailDisallowed.ReplaceAllString(SanitizeString(email), "")
}

// SanitizePhone escapes, then keeps only digits, spaces, hyphens and parentheses.
func SanitizePhone(phone string) string {
	return phoneDisallowed.ReplaceAllString(SanitizeString(phone), "")
}

// SanitizeMessage escapes, rewrites embedded newlines as the literal
// two-character sequence `\n`, and truncates to MaxMessageLength runes.
func SanitizeMessage(message string) string {
	sanitized := SanitizeString(message)
	sanitized = strings.ReplaceAll(sanitized, "\n", `\n`)

	if runes := []rune(sanitized); len(runes) > MaxMessageLength {
		sanitized = string(runes[:MaxMessageLength])
	}
	return sanitized
}

// SanitizeFormData applies the field-aware transform to every entry of a
// decoded JSON payload. String values are routed by key name, booleans and
// numbers pass through unchanged, and anything else is stringified and
// escaped. No key is ever dropped. The function is pure and never fails.
func SanitizeFormData(data map[string]interface{}) map[string]interface{} {
	sanitized := make(map[string]interface{}, len(data))

	for key, value := range data {
		switch v := value.(type) {
		case string:
			switch key {
			case "email":
				sanitized[key] = SanitizeEmail(v)
			case "phone":
				sanitized[key] = SanitizePhone(v)
			case "message", "requests":
				sanitized[key] = SanitizeMessage(v)
			default:
				sanitized[key] = SanitizeString(v)
			}
		case bool, float64, int, int64:
			sanitized[key] = v
		default:
			sanitized[key] = SanitizeString(fmt.Sprintf("%v", v))
		}
	}

	return sanitized
}

// SanitizeFileName keeps only filesystem-safe characters, collapses repeated
// underscores, and caps the length at 255.
func SanitizeFileName(filename string) string {
	s := fileNameDisallowed.ReplaceAllString(filename, "_")
	s = repeatedUnderscore.ReplaceAllString(s, "_")
	s = edgeUnderscore.ReplaceAllString(s, "")
	if len(s) > 255 {
		s = s[:255]
	}
	return s
}

// SanitizeCSVField prefixes values that would be interpreted as formulas
// by spreadsheet software.
func SanitizeCSVField(field string) string {
	if csvDangerousPrefix.MatchString(field) {
		return "'" + field
	}
	return SanitizeString(field)
}

// SanitizeIdentifier restricts rate-limit keys and similar identifiers to a
// safe character set, capped at 100 characters.
func SanitizeIdentifier(identifier string) string {
	s := identifierDisallowed.ReplaceAllString(identifier, "")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
