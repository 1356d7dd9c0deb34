package app

import (
	"context"
	"errors"

	"fq/internal/domain"
	appErrors "fq/internal/errors"
	"fq/internal/logging"
)

// ProgressFunc is called after each file is checked or copied.
type ProgressFunc func(current, total int, name string)

type Executor struct {
	FS         FileSystem
	Logger     logging.Logger
	OnProgress ProgressFunc
	// DryRun classifies files without copying them.
	DryRun bool
}

// Execute copies the plan's files into destDir in plan order, one at a time,
// stopping at the first copy failure. Files copied before a failure stay in place.
func (e *Executor) Execute(ctx context.Context, plan domain.CopyPlan, destDir string) (domain.CopyLog, error) {
	if e.FS == nil {
		return domain.CopyLog{}, errors.New("executor requires FS")
	}

	stop := e.Logger.Measure("Copying files")
	defer stop()

	var log domain.CopyLog
	total := len(plan.Files)
	for i, file := range plan.Files {
		select {
		case <-ctx.Done():
			return log, ctx.Err()
		default:
		}

		var outcome domain.Outcome
		var err error
		if e.DryRun {
			outcome, err = file.Check(e.FS, destDir)
		} else {
			outcome, err = file.CheckAndCopy(e.FS, destDir)
		}
		if err != nil {
			return log, &appErrors.AppError{
				Kind:   appErrors.IOFailure,
				Op:     "copy",
				Path:   file.DestinationPath(destDir),
				Sample: file.Sample(),
				Err:    err,
			}
		}

		switch outcome {
		case domain.Skipped:
			e.Logger.Verbosef("Skipping %s, %s already present", file.Source.Name(), file.DestinationName())
			log.Skipped = append(log.Skipped, file)
		default:
			e.Logger.Verbosef("Copied %s to %s", file.Source.Path, file.DestinationName())
			log.Copied = append(log.Copied, file)
		}

		if e.OnProgress != nil {
			e.OnProgress(i+1, total, file.DestinationName())
		}
	}
	return log, nil
}
