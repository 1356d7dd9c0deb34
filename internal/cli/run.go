package cli

import (
	"bytes"
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"fq/internal/app"
	"fq/internal/config"
	"fq/internal/domain"
	appErrors "fq/internal/errors"
	"fq/internal/infra/fs"
	"fq/internal/logging"
	"fq/internal/presentation"
	"fq/internal/record"
	"fq/internal/tui"
)

// Run copies the configured samples, then writes the copy log, updates the
// sample registry and prints the summary.
func Run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	runID := uuid.NewString()
	logger := logging.New(stderr, cfg.Verbose).With("run_id", runID)
	filesystem := fs.NewOS()

	if _, err := filesystem.Stat(cfg.SeqPath); err != nil {
		return appErrors.Wrap(appErrors.NotFound, "stat", cfg.SeqPath, err)
	}

	if cfg.TUI && isTerminal(stdout) {
		return runInteractive(ctx, cfg, filesystem, runID, stdout, stderr)
	}

	copier := app.Copier{FS: filesystem, Logger: logger}
	log, err := copier.Run(ctx, options(cfg))
	if err != nil {
		return err
	}

	printer := presentation.Printer{Writer: stderr, Verbose: cfg.Verbose}
	if cfg.DryRun {
		printer.Writer = stdout
		printer.PrintDryRun(log)
		return nil
	}

	logPath, err := persist(filesystem, cfg, log)
	if err != nil {
		return err
	}
	logger.Verbosef("Wrote copy log %s", logPath)

	return printer.PrintCopyLog(log)
}

func options(cfg config.Config) app.Options {
	return app.Options{
		Samples:   cfg.Samples,
		SourceDir: cfg.SeqPath,
		DestDir:   cfg.DestDir(),
		Prefix:    cfg.Prefix,
		Paired:    cfg.Paired(),
		DryRun:    cfg.DryRun,
	}
}

func persist(filesystem fs.AferoFS, cfg config.Config, log domain.CopyLog) (string, error) {
	logPath, err := record.WriteCopyLog(filesystem, cfg.DestDir(), log)
	if err != nil {
		return "", appErrors.Wrap(appErrors.IOFailure, "write log", cfg.DestDir(), err)
	}
	if err := record.AppendSamples(filesystem, cfg.RegistryPath(), log.AddedSamples()); err != nil {
		return "", appErrors.Wrap(appErrors.IOFailure, "registry", cfg.RegistryPath(), err)
	}
	return logPath, nil
}

// runInteractive drives the copy from a goroutine while the TUI renders its
// progress. Quitting the TUI cancels the copy before the next file. Log output
// is held back until the TUI has released the terminal.
func runInteractive(ctx context.Context, cfg config.Config, filesystem fs.AferoFS, runID string, out, errOut io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var logBuf bytes.Buffer
	logger := logging.New(&logBuf, cfg.Verbose).With("run_id", runID)

	program := tea.NewProgram(tui.NewModel(tui.Config{
		SourceDir: cfg.SeqPath,
		DestDir:   cfg.DestDir(),
		DryRun:    cfg.DryRun,
	}), tea.WithOutput(out), tea.WithContext(ctx))

	done := make(chan error, 1)
	go func() {
		done <- copyWithProgress(ctx, cfg, filesystem, logger, program.Send)
	}()

	_, runErr := program.Run()
	interrupted := ctx.Err() != nil
	cancel()
	jobErr := <-done

	if _, err := logBuf.WriteTo(errOut); err != nil {
		logger.Warnf("Could not flush log output: %v", err)
	}
	if runErr != nil && !interrupted {
		return appErrors.Wrap(appErrors.Internal, "tui", "", runErr)
	}
	return jobErr
}

func copyWithProgress(ctx context.Context, cfg config.Config, filesystem fs.AferoFS, logger logging.Logger, send func(tea.Msg)) error {
	opts := options(cfg)
	planner := app.Planner{FS: filesystem, Logger: logger, Exclude: []string{opts.DestDir}}
	plan, err := planner.Plan(ctx, opts.Samples, opts.SourceDir, opts.Prefix, opts.Paired)
	if err != nil {
		send(tui.ErrorMsg{Err: err})
		return err
	}
	send(tui.PlanReadyMsg{Plan: plan})

	executor := app.Executor{
		FS:     filesystem,
		Logger: logger,
		DryRun: opts.DryRun,
		OnProgress: func(current, total int, name string) {
			send(tui.CopyProgressMsg{Current: current, Total: total, File: name})
		},
	}
	log, err := executor.Execute(ctx, plan, opts.DestDir)
	if err != nil {
		send(tui.ErrorMsg{Err: err})
		return err
	}

	var logPath string
	if !cfg.DryRun {
		if logPath, err = persist(filesystem, cfg, log); err != nil {
			send(tui.ErrorMsg{Err: err})
			return err
		}
		logger.Verbosef("Wrote copy log %s", logPath)
	}
	send(tui.CopyDoneMsg{Log: log, LogPath: logPath})
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
