package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// Orientation is the read direction inferred from a FASTQ file name.
type Orientation int

const (
	Unpaired Orientation = iota
	Forward
	Reverse
)

func (o Orientation) String() string {
	switch o {
	case Forward:
		return "R1"
	case Reverse:
		return "R2"
	default:
		return "unpaired"
	}
}

// SourceFile is one FASTQ file discovered under the scan directory.
type SourceFile struct {
	Path        string
	Sample      string
	Orientation Orientation
}

func (f SourceFile) Name() string {
	return filepath.Base(f.Path)
}

// CompareSourceFiles orders by orientation, then path.
func CompareSourceFiles(a, b SourceFile) int {
	if a.Orientation != b.Orientation {
		return int(a.Orientation) - int(b.Orientation)
	}
	return strings.Compare(a.Path, b.Path)
}

// NormalizeSamples trims, deduplicates and sorts sample names. Empty names are dropped.
func NormalizeSamples(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name != "" {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

var fastqSuffixes = []string{".fastq.gz", ".fq.gz"}

// IsFastqName reports whether name carries a recognised compressed FASTQ suffix.
func IsFastqName(name string) bool {
	return FastqStem(name) != name
}

// FastqStem strips the FASTQ suffix from name. Names without one are returned unchanged.
func FastqStem(name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range fastqSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}
