package presentation

import (
	"fmt"
	"io"
	"strings"

	"fq/internal/domain"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(0, 1)

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#85DCB0"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E8A87C"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

// PrintCopyLog decodes the TOML log and renders it inside a panel.
func (p Printer) PrintCopyLog(log domain.CopyLog) error {
	doc, err := log.Render()
	if err != nil {
		return fmt.Errorf("render copy log: %w", err)
	}
	body, err := renderLogDocument(string(doc))
	if err != nil {
		return err
	}
	content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("FASTQ Copy Log"), "", body)
	fmt.Fprintln(p.Writer, panelStyle.Render(content))
	fmt.Fprintln(p.Writer, summaryLine(log, false))
	return nil
}

func (p Printer) PrintDryRun(log domain.CopyLog) {
	fmt.Fprintln(p.Writer, "Would copy:")
	fmt.Fprintln(p.Writer)
	for _, line := range p.formatCopyLines(log.Copied) {
		fmt.Fprintln(p.Writer, line)
	}

	if len(log.Skipped) > 0 {
		fmt.Fprintln(p.Writer)
		fmt.Fprintln(p.Writer, "Already processed:")
		for _, file := range log.Skipped {
			fmt.Fprintln(p.Writer, file.Source.Name())
		}
	}

	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, summaryLine(log, true))
}

func renderLogDocument(doc string) (string, error) {
	if strings.TrimSpace(doc) == "" {
		return dimStyle.Render("No files copied or skipped."), nil
	}

	var decoded map[string]any
	meta, err := toml.Decode(doc, &decoded)
	if err != nil {
		return "", fmt.Errorf("decode copy log: %w", err)
	}

	var b strings.Builder
	if updated, ok := decoded[domain.UpdatedSection].(map[string]any); ok {
		b.WriteString(sectionStyle.Render(domain.UpdatedSection))
		b.WriteString("\n")
		for _, key := range meta.Keys() {
			if len(key) != 2 || key[0] != domain.UpdatedSection {
				continue
			}
			fmt.Fprintf(&b, "  %v -> %s\n", updated[key[1]], key[1])
		}
	}
	if skipped, ok := decoded[domain.SkippedSection].(map[string]any); ok {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(domain.SkippedSection))
		b.WriteString("\n")
		names, _ := skipped[domain.SkippedKey].([]any)
		for _, name := range names {
			fmt.Fprintf(&b, "  %v %s\n", name, dimStyle.Render("(already processed)"))
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (p Printer) formatCopyLines(files []domain.ReadFile) []string {
	lines := make([]string, 0, len(files))
	for _, file := range files {
		lines = append(lines, fmt.Sprintf("Copy %s  -> %s", file.Source.Path, file.DestinationName()))
	}

	if p.Verbose || len(lines) <= 4 {
		return lines
	}
	head := lines[:2]
	tail := lines[len(lines)-2:]
	return append(append(head, "..."), tail...)
}

func summaryLine(log domain.CopyLog, dryRun bool) string {
	verb := "Copied"
	if dryRun {
		verb = "Would copy"
	}
	return fmt.Sprintf("%s %d FASTQ files for %d samples; skipped %d already processed.",
		verb, len(log.Copied), len(log.AddedSamples()), len(log.Skipped))
}
