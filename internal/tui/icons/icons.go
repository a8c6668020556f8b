// ABOUTME: Icons with Nerd Font detection and a plain Unicode fallback
// ABOUTME: READS_NERD_FONTS=1 or =0 overrides terminal detection

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("READS_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	// Check for terminals known to commonly have Nerd Fonts
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// iTerm2, Alacritty, WezTerm, Kitty typically have Nerd Fonts
	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	// Check for common Nerd Font environment indicators
	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}

	// Default to Unicode fallback for maximum compatibility
	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Sections
	Dashboard = Icon{"󰕮", "▦"} // nf-md-view_dashboard
	Learn     = Icon{"󰂺", "▤"} // nf-md-book_open_variant
	Wallet    = Icon{"󰖄", "◎"} // nf-md-wallet
	Profile   = Icon{"󰀄", "☺"} // nf-md-account
	Admin     = Icon{"󰒃", "⛊"} // nf-md-shield_check
	SignIn    = Icon{"󰍂", "→"} // nf-md-login

	// Learning
	Lesson = Icon{"󰈙", "▢"} // nf-md-file_document
	Quiz   = Icon{"󰘥", "?"} // nf-md-help_circle
	Video  = Icon{"󰕧", "▶"} // nf-md-video
	Token  = Icon{"󰆬", "◉"} // nf-md-circle_multiple
	Trophy = Icon{"󰔸", "★"} // nf-md-trophy

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Admin actions
	Upload = Icon{"󰕒", "⇪"} // nf-md-upload
	Delete = Icon{"󰆴", "⌫"} // nf-md-delete

	// Application
	App = Icon{"󰂺", "◈"} // nf-md-book_open_variant
)
