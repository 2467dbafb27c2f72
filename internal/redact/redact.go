// Package redact provides utilities for redacting sensitive information
// from strings before they are logged or returned in error responses. It
// prevents accidental leakage of connection strings, file paths, and SQL
// fragments that database and dictionary-loading errors tend to carry.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
)

// Precompiled regex patterns
var (
	// Database connection strings
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|db|database|connection)://[^@]+@`)

	// Passwords embedded in error text
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)

	// File paths, e.g. from failed dictionary CSV loads
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
	winPathRegex  = regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`)

	// SQL queries and fragments
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP|GRANT)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|DATABASE|SCHEMA|VIEW)(?:[\s\w,*()='"]+)?`,
	)

	// Hostnames with optional ports
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)

	patterns = []*regexp.Regexp{
		dbConnRegex, passwordRegex, unixPathRegex, winPathRegex, sqlRegex, hostPortRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		dbConnRegex:   RedactedCredentialPlaceholder,
		passwordRegex: RedactedCredentialPlaceholder,
		unixPathRegex: RedactedPathPlaceholder,
		winPathRegex:  RedactedPathPlaceholder,
		sqlRegex:      "[REDACTED_SQL]",
		hostPortRegex: "[REDACTED_HOST]",
	}
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		result = pattern.ReplaceAllString(result, patternPlaceholders[pattern])
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
