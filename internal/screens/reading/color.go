package reading

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalizeColor lower-cases with Unicode rules so "XÁM XỊT" and "Xám Xịt"
// match. A Caser is stateful, so each call gets its own.
func normalizeColor(name string) string {
	return strings.TrimSpace(cases.Lower(language.Und).String(name))
}
