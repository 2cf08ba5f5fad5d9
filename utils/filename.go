package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	extRegex     = regexp.MustCompile(`(?i)\.(png|jpe?g|webp|gif)$`)
	nonSlugRegex = regexp.MustCompile(`[^a-z0-9]+`)
)

// SlugFileName turns an uploaded file name into a safe ".jpg" name.
// Example: "Frappé Caramelo (1).PNG" -> "frappe-caramelo-1.jpg"
func SlugFileName(filename string) string {
	name := extRegex.ReplaceAllString(strings.TrimSpace(filename), "")

	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(stripAccents, name); err == nil {
		name = folded
	}

	name = nonSlugRegex.ReplaceAllString(strings.ToLower(name), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "imagen"
	}
	if len(name) > 80 {
		name = strings.TrimRight(name[:80], "-")
	}
	return name + ".jpg"
}

// ValidateUploadFolder checks the destination folder of an admin upload
func ValidateUploadFolder(folder string) error {
	switch folder {
	case "productos", "banners", "logos":
		return nil
	default:
		return fmt.Errorf("invalid folder %q: expected productos, banners or logos", folder)
	}
}
