package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"fq/internal/domain"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseScanning Phase = iota
	PhaseCopying
	PhaseDone
	PhaseError
)

// Messages sent by the copy job running alongside the program.
type (
	PlanReadyMsg struct {
		Plan domain.CopyPlan
	}
	CopyProgressMsg struct {
		Current int
		Total   int
		File    string
	}
	CopyDoneMsg struct {
		Log     domain.CopyLog
		LogPath string
	}
	ErrorMsg struct {
		Err error
	}
	tickMsg time.Time
)

type Config struct {
	SourceDir string
	DestDir   string
	DryRun    bool
}

// Model is the interactive progress view for one copy run.
type Model struct {
	config       Config
	Phase        Phase
	Plan         domain.CopyPlan
	Log          domain.CopyLog
	LogPath      string
	Err          error
	Quitting     bool
	spinner      spinner.Model
	progress     progress.Model
	copyProgress int
	copyTotal    int
	currentFile  string
	width        int
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseScanning,
		spinner:  s,
		progress: p,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case "enter":
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case PlanReadyMsg:
		m.Plan = msg.Plan
		m.Phase = PhaseCopying
		m.copyTotal = len(msg.Plan.Files)
		return m, tickCmd()

	case CopyProgressMsg:
		m.copyProgress = msg.Current
		m.copyTotal = msg.Total
		m.currentFile = msg.File
		return m, nil

	case CopyDoneMsg:
		m.Phase = PhaseDone
		m.Log = msg.Log
		m.LogPath = msg.LogPath
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseScanning || m.Phase == PhaseCopying {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase == PhaseCopying {
			var cmds []tea.Cmd
			if m.copyTotal > 0 {
				cmds = append(cmds, m.progress.SetPercent(float64(m.copyProgress)/float64(m.copyTotal)))
			}
			cmds = append(cmds, tickCmd(), m.spinner.Tick)
			return m, tea.Batch(cmds...)
		}
	}

	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseScanning:
		b.WriteString(fmt.Sprintf("%s Scanning for FASTQ files...", m.spinner.View()))
	case PhaseCopying:
		b.WriteString(m.renderCopying())
	case PhaseDone:
		b.WriteString(m.renderDone())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("fq"),
		subtitleStyle.Render("Copy and rename FASTQ files"),
		"",
		dimStyle.Render(fmt.Sprintf("%s Source: %s", iconFolder, shortenPath(m.config.SourceDir))),
		dimStyle.Render(fmt.Sprintf("%s Target: %s", iconFolder, shortenPath(m.config.DestDir))),
	)
}

func (m Model) renderCopying() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Copying Files"))
	b.WriteString("\n\n")

	percent := 0.0
	if m.copyTotal > 0 {
		percent = float64(m.copyProgress) / float64(m.copyTotal)
	}
	b.WriteString(fmt.Sprintf("  %s Copying...\n\n", m.spinner.View()))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		statValueStyle.Render(fmt.Sprintf("%d/%d files", m.copyProgress, m.copyTotal)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))
	if m.currentFile != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, fileNameStyle.Render(m.currentFile)))
	}
	return b.String()
}

func (m Model) renderDone() string {
	var b strings.Builder
	title := "Copy Complete"
	if m.config.DryRun {
		title = "Dry Run Complete"
	}
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n\n")

	for _, line := range formatFileList(m.Log.Copied, 4) {
		b.WriteString(fmt.Sprintf("  %s %s\n", successStyle.Render(iconSuccess), line))
	}
	for i, file := range m.Log.Skipped {
		if i >= 4 {
			b.WriteString(fmt.Sprintf("  ... and %d more\n", len(m.Log.Skipped)-4))
			break
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", warningStyle.Render(iconSkipped), dimStyle.Render(file.Source.Name())))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Files copied:"), statValueStyle.Render(fmt.Sprintf("%d", len(m.Log.Copied)))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Samples added:"), statValueStyle.Render(fmt.Sprintf("%d", len(m.Log.AddedSamples())))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Already processed:"), dimStyle.Render(fmt.Sprintf("%d", len(m.Log.Skipped)))))
	if m.LogPath != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Copy log:"), fileNameStyle.Render(m.LogPath)))
	}
	return b.String()
}

func (m Model) renderError() string {
	msg := errorStyle.Render(fmt.Sprintf("Error: %s", m.Err.Error()))
	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(fmt.Sprintf("%s %s", errorStyle.Render(iconError), msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseScanning:
		help = "Press q to quit"
	case PhaseCopying:
		help = "Copying files... Please wait"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

// formatFileList shows the first and last entries when there are more than maxItems.
func formatFileList(files []domain.ReadFile, maxItems int) []string {
	if len(files) <= maxItems {
		lines := make([]string, 0, len(files))
		for _, file := range files {
			lines = append(lines, formatFileItem(file))
		}
		return lines
	}

	half := maxItems / 2
	lines := make([]string, 0, maxItems+1)
	for _, file := range files[:half] {
		lines = append(lines, formatFileItem(file))
	}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("... %d more files ...", len(files)-maxItems)))
	for _, file := range files[len(files)-half:] {
		lines = append(lines, formatFileItem(file))
	}
	return lines
}

func formatFileItem(file domain.ReadFile) string {
	return fmt.Sprintf("%s %s %s", dimStyle.Render(file.Source.Name()), iconArrow, fileNameStyle.Render(file.DestinationName()))
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
