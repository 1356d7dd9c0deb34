package app

import (
	"context"
	"fmt"
	"slices"

	"fq/internal/domain"
	appErrors "fq/internal/errors"
)

// SampleIndex maps each sample to its files, ordered by orientation then path.
type SampleIndex map[string][]domain.SourceFile

// BuildIndex scans dir and validates that every requested sample has one file
// (single-end) or two files (paired-end).
func BuildIndex(ctx context.Context, scanner *Scanner, dir string, samples []string, paired bool) (SampleIndex, error) {
	index := SampleIndex{}
	for file, err := range scanner.Scan(ctx, dir) {
		if err != nil {
			return nil, err
		}
		index[file.Sample] = append(index[file.Sample], file)
	}
	for _, files := range index {
		slices.SortFunc(files, domain.CompareSourceFiles)
	}
	if err := index.Validate(samples, paired); err != nil {
		return nil, err
	}
	return index, nil
}

// Validate checks every requested sample, in sorted order, so the first
// reported failure is deterministic.
func (idx SampleIndex) Validate(samples []string, paired bool) error {
	expected, mode := 1, "single"
	if paired {
		expected, mode = 2, "paired"
	}
	for _, sample := range domain.NormalizeSamples(samples) {
		found := len(idx[sample])
		if found == 0 {
			return appErrors.ForSample(appErrors.SampleNotFound, "validate", sample,
				fmt.Errorf("found 0 FASTQ files"))
		}
		if found != expected {
			return appErrors.ForSample(appErrors.PairingMismatch, "validate", sample,
				fmt.Errorf("found %d FASTQ files, expected %d in %s-end mode", found, expected, mode))
		}
	}
	return nil
}
