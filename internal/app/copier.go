package app

import (
	"context"

	"fq/internal/domain"
	"fq/internal/logging"
)

type Options struct {
	Samples   []string
	SourceDir string
	DestDir   string
	Prefix    string
	Paired    bool
	DryRun    bool
}

// Copier plans a run and executes it. Validation failures surface before any
// file is copied.
type Copier struct {
	FS         FileSystem
	Logger     logging.Logger
	OnProgress ProgressFunc
}

func (c *Copier) Run(ctx context.Context, opts Options) (domain.CopyLog, error) {
	planner := Planner{FS: c.FS, Logger: c.Logger, Exclude: []string{opts.DestDir}}
	plan, err := planner.Plan(ctx, opts.Samples, opts.SourceDir, opts.Prefix, opts.Paired)
	if err != nil {
		return domain.CopyLog{}, err
	}

	executor := Executor{
		FS:         c.FS,
		Logger:     c.Logger,
		OnProgress: c.OnProgress,
		DryRun:     opts.DryRun,
	}
	log, err := executor.Execute(ctx, plan, opts.DestDir)
	if err != nil {
		return log, err
	}
	verb := "Copied"
	if opts.DryRun {
		verb = "Would copy"
	}
	c.Logger.Infof("%s %d files, skipped %d already processed", verb, len(log.Copied), len(log.Skipped))
	return log, nil
}
