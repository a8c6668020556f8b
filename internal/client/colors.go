// ABOUTME: Fixed category-to-color mapping for lesson categories
// ABOUTME: Unmapped categories fall back to a neutral default color

package client

import "strings"

// DefaultCategoryColor is used for any category without a fixed color
const DefaultCategoryColor = "#6B7280"

var categoryColors = map[string]string{
	"JAMB":      "#3B82F6",
	"WAEC":      "#10B981",
	"NECO":      "#F59E0B",
	"POST-UTME": "#EC4899",
	"CRYPTO":    "#8B5CF6",
	"WEB3":      "#06B6D4",
}

// CategoryColor returns the display color for a category name.
// Matching ignores case and surrounding whitespace.
func CategoryColor(name string) string {
	if color, ok := categoryColors[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return color
	}
	return DefaultCategoryColor
}
