package services

import (
	"strconv"
	"strings"
)

// analyzerOutput builds analyzer stdout around a table with the given rows.
// Each row is name, architecture, alignment, status.
func analyzerOutput(total int, compliance string, rows ...[4]string) string {
	var b strings.Builder
	b.WriteString("🔍 Checking 16KB page size alignment\n")
	b.WriteString("Extracting /tmp/scan_1/app.apk ...\n\n")
	b.WriteString("┌──────────────────────────┬──────────────┬───────────┬──────────┐\n")
	b.WriteString("│ Library                  │ Architecture │ Alignment │ Status   │\n")
	b.WriteString("├──────────────────────────┼──────────────┼───────────┼──────────┤\n")
	for _, r := range rows {
		b.WriteString("│ " + r[0] + " │ " + r[1] + " │ " + r[2] + " │ " + r[3] + " │\n")
	}
	b.WriteString("└──────────────────────────┴──────────────┴───────────┴──────────┘\n\n")
	if total >= 0 {
		b.WriteString("📊 Total libraries scanned: ")
		b.WriteString(strconv.Itoa(total))
		b.WriteString("\n")
	}
	if compliance != "" {
		b.WriteString("Google Play Compliance: " + compliance + "\n")
	}
	return b.String()
}
