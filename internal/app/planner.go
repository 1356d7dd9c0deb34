package app

import (
	"context"
	"errors"
	"sort"

	"fq/internal/domain"
	"fq/internal/logging"
)

type Planner struct {
	FS     FileSystem
	Logger logging.Logger
	// Exclude lists directories left out of discovery.
	Exclude []string
}

// Plan discovers and validates the samples' files under sourceDir and returns
// them as ReadFiles, samples in sorted order and files in orientation order.
// No file is written.
func (p *Planner) Plan(ctx context.Context, samples []string, sourceDir, prefix string, paired bool) (domain.CopyPlan, error) {
	if p.FS == nil {
		return domain.CopyPlan{}, errors.New("planner requires FS")
	}
	if err := ctx.Err(); err != nil {
		return domain.CopyPlan{}, err
	}

	stop := p.Logger.Measure("Planning copy")
	defer stop()

	names := domain.NormalizeSamples(samples)
	if len(names) == 0 {
		return domain.CopyPlan{}, errors.New("no sample names given")
	}

	scanner := NewScanner(p.FS, p.Logger, names)
	scanner.Exclude = p.Exclude
	index, err := BuildIndex(ctx, scanner, sourceDir, names, paired)
	if err != nil {
		return domain.CopyPlan{}, err
	}

	sampleOrder := make([]string, 0, len(index))
	for sample := range index {
		sampleOrder = append(sampleOrder, sample)
	}
	sort.Strings(sampleOrder)

	var files []domain.ReadFile
	for _, sample := range sampleOrder {
		for n, source := range index[sample] {
			files = append(files, domain.ReadFile{Source: source, Index: n + 1, Prefix: prefix})
		}
	}
	p.Logger.Verbosef("Planned %d files for %d samples from %s", len(files), len(sampleOrder), sourceDir)

	return domain.CopyPlan{
		Samples: names,
		Files:   files,
		Prefix:  prefix,
		Paired:  paired,
	}, nil
}
