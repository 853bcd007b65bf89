package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/acqscore/schema"
)

// Attractiveness label constants.
const (
	PrimeValue    = "Prime"    // Prime value
	StrongValue   = "Strong"   // Strong value
	ModerateValue = "Moderate" // Moderate value
	WeakValue     = "Weak"     // Weak value
)

// Color variables for console output.
var (
	PrimeColor    = color.New(color.FgGreen, color.Bold) // PrimeColor marks the most attractive targets.
	StrongColor   = color.New(color.FgCyan, color.Bold)  // StrongColor marks solid candidates.
	ModerateColor = color.New(color.FgYellow)            // ModerateColor represents standard caution, not bold.
	WeakColor     = color.New(color.FgRed)               // WeakColor marks targets unlikely to be worth pursuing.

	PositiveColor = color.New(color.FgGreen)
	NeutralColor  = color.New(color.FgWhite)
	WarningColor  = color.New(color.FgYellow)
)

// GetColorLabel returns a colored text label for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score int) string {
	text := schema.GetPlainLabel(score)

	switch text {
	case PrimeValue:
		return PrimeColor.Sprint(text)
	case StrongValue:
		return StrongColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Weak"
		return WeakColor.Sprint(text)
	}
}

// SignalMarker returns a one-character marker for a signal kind.
func SignalMarker(kind schema.SignalKind) string {
	switch kind {
	case schema.PositiveSignal:
		return "+"
	case schema.WarningSignal:
		return "!"
	default:
		return "~"
	}
}

// FormatSignal renders a signal with its marker, colored when useColors is set.
func FormatSignal(s schema.Signal, useColors bool) string {
	text := SignalMarker(s.Kind) + " " + s.Text
	if !useColors {
		return text
	}
	switch s.Kind {
	case schema.PositiveSignal:
		return PositiveColor.Sprint(text)
	case schema.WarningSignal:
		return WarningColor.Sprint(text)
	default:
		return NeutralColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the enrichment cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".acqscore_cache.db"
	}
	return filepath.Join(homeDir, ".acqscore_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for scoring history.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".acqscore_history.db"
	}
	return filepath.Join(homeDir, ".acqscore_history.db")
}

// TruncateName truncates a name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the "..." suffix and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
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
