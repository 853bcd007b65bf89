package outwriter

import (
	"os"

	"github.com/huangsam/acqscore/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for company names in table output
// based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Score + Label with borders/padding
	baseWidth := 25

	// Signals column
	baseWidth += 45

	if cfg.Detail {
		baseWidth += 45 // Industry + Revenue + Asking + Multiple
	}
	if cfg.Explain {
		baseWidth += 35
	}

	// Table borders, separators and padding
	baseWidth += 10

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 40 {
		return 40
	}
	return available
}
