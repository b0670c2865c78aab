package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"aimlmend/internal/census"
	"aimlmend/internal/heal"
	"aimlmend/internal/watch"
)

// Semantic colors, shared across the report renderers.
var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7a828e"))
)

func renderHealReport(before heal.ValidationSummary, sum heal.Summary, after heal.ValidationSummary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Heal summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  files processed: %d\n", sum.FilesProcessed)
	fmt.Fprintf(&b, "  files healed:    %s\n", okStyle.Render(fmt.Sprintf("%d", sum.FilesHealed)))
	fmt.Fprintf(&b, "  total fixes:     %d\n", sum.TotalFixes)
	if sum.FilesFailed > 0 {
		fmt.Fprintf(&b, "  files failed:    %s\n", errStyle.Render(fmt.Sprintf("%d", sum.FilesFailed)))
	} else {
		fmt.Fprintf(&b, "  files failed:    0\n")
	}
	fmt.Fprintf(&b, "  acceptable:      %d/%d before, %d/%d after\n",
		before.ValidFiles, before.TotalFiles, after.ValidFiles, after.TotalFiles)
	return b.String()
}

func renderValidationReport(sum heal.ValidationSummary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Validation summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  total files:   %d\n", sum.TotalFiles)
	fmt.Fprintf(&b, "  valid files:   %s\n", okStyle.Render(fmt.Sprintf("%d", sum.ValidFiles)))
	if sum.InvalidFiles > 0 {
		fmt.Fprintf(&b, "  invalid files: %s\n", errStyle.Render(fmt.Sprintf("%d", sum.InvalidFiles)))
	} else {
		fmt.Fprintf(&b, "  invalid files: 0\n")
	}
	return b.String()
}

func renderCensusReport(r census.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tag census"))
	fmt.Fprintf(&b, " %s\n", mutedStyle.Render(fmt.Sprintf("(%d files)", r.FilesScanned)))
	for _, t := range r.Tags {
		marker := "  "
		name := t.Name
		if !t.Known {
			marker = warnStyle.Render("? ")
			name = warnStyle.Render(name)
		}
		fmt.Fprintf(&b, "  %s%-16s %6d\n", marker, name, t.Count)
	}
	if unknown := r.Unknown(); len(unknown) > 0 {
		fmt.Fprintf(&b, "  %s\n", warnStyle.Render(fmt.Sprintf("%d tags outside the known vocabulary", len(unknown))))
	}
	return b.String()
}

func renderWatchReport(st watch.Stats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Watch summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  files seen:   %d\n", st.FilesSeen)
	fmt.Fprintf(&b, "  files healed: %s\n", okStyle.Render(fmt.Sprintf("%d", st.FilesHealed)))
	if st.Errors > 0 {
		fmt.Fprintf(&b, "  errors:       %s\n", errStyle.Render(fmt.Sprintf("%d", st.Errors)))
	}
	if st.LastEventPath != "" {
		fmt.Fprintf(&b, "  last file:    %s\n", mutedStyle.Render(st.LastEventPath))
	}
	return b.String()
}
