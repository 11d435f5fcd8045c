package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/EmilStenstrom/gamecache/schema"
	"github.com/fatih/color"
)

// Severity label constants.
const (
	PassValue = "OK"
	WarnValue = "WARN"
	FailValue = "FAIL"
)

// Color variables for console output.
var (
	PassColor = color.New(color.FgGreen)           // passColor represents a healthy check.
	WarnColor = color.New(color.FgYellow)          // warnColor represents standard caution, not bold.
	FailColor = color.New(color.FgRed, color.Bold) // failColor represents a blocking problem.
)

// GetPlainLabel returns a plain text label for an outcome severity.
// This is the core logic used for JSON and table printing.
func GetPlainLabel(sev schema.Severity) string {
	switch sev {
	case schema.SeverityPass:
		return PassValue
	case schema.SeverityWarn:
		return WarnValue
	default:
		return FailValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(sev schema.Severity) string {
	text := GetPlainLabel(sev)

	switch text {
	case PassValue:
		return PassColor.Sprint(text)
	case WarnValue:
		return WarnColor.Sprint(text)
	default: // "FAIL"
		return FailColor.Sprint(text)
	}
}

// Snippet truncates a response body to SnippetLimit bytes for inclusion in
// outcome messages, keeping the excerpt on one line and valid UTF-8.
func Snippet(body []byte) string {
	s := string(body)
	if len(s) > SnippetLimit {
		s = s[:SnippetLimit]
		for !utf8.ValidString(s) {
			s = s[:len(s)-1]
		}
	}
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the
// BGG response cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gamecache_cache.db"
	}
	return filepath.Join(homeDir, ".gamecache_cache.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
