package main

import (
	"fmt"

	"github.com/ochairo/alignscan/internal/domain/entities"
)

func displayReport(report *entities.ComplianceReport) {
	fmt.Printf("📊 Native Libraries\n")
	fmt.Printf("   Total: %d\n", report.TotalLibraries)
	fmt.Printf("   Aligned: %d\n", report.AlignedLibraries)
	fmt.Printf("   Unaligned: %d\n", report.UnalignedLibraries)
	if report.CriticalFailures > 0 {
		fmt.Printf("   🔴 Critical (64-bit): %d\n", report.CriticalFailures)
	}
	if report.IsFlutterApp {
		fmt.Printf("   Flutter app: yes\n")
	}

	if len(report.Libraries) == 0 {
		return
	}

	fmt.Printf("\n   Libraries:\n")
	for _, lib := range report.Libraries {
		fmt.Printf("   %s %s [%s] %s\n", formatAlignment(lib), lib.Name, lib.Architecture, lib.Alignment)
	}
}

func formatAlignment(lib entities.LibraryEntry) string {
	switch {
	case lib.Status == entities.Aligned:
		return "✅"
	case lib.IsCritical:
		return "🔴"
	default:
		return "🟡"
	}
}
