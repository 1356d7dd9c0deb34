package domain

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const DestinationSuffix = ".fastq.gz"

type Outcome int

const (
	Copied Outcome = iota
	Skipped
)

func (o Outcome) String() string {
	if o == Skipped {
		return "skipped"
	}
	return "copied"
}

// Store is the filesystem surface a ReadFile needs to copy itself.
type Store interface {
	Exists(path string) (bool, error)
	CopyFile(src, dst string) error
}

// ReadFile is a validated source file at its 1-based position within its sample.
type ReadFile struct {
	Source SourceFile
	Index  int
	Prefix string
}

func (r ReadFile) Sample() string {
	return r.Source.Sample
}

// DestinationName is {prefix_}{sample}_R{n}.fastq.gz.
func (r ReadFile) DestinationName() string {
	name := fmt.Sprintf("%s_R%d%s", r.Source.Sample, r.Index, DestinationSuffix)
	if r.Prefix != "" {
		name = r.Prefix + "_" + name
	}
	return name
}

func (r ReadFile) DestinationPath(destDir string) string {
	return filepath.Join(destDir, r.DestinationName())
}

// Check reports the outcome CheckAndCopy would have without writing anything.
func (r ReadFile) Check(store Store, destDir string) (Outcome, error) {
	exists, err := store.Exists(r.DestinationPath(destDir))
	if err != nil {
		return Copied, err
	}
	if exists {
		return Skipped, nil
	}
	return Copied, nil
}

// CheckAndCopy copies the source into destDir unless a file with the
// destination name is already there.
func (r ReadFile) CheckAndCopy(store Store, destDir string) (Outcome, error) {
	outcome, err := r.Check(store, destDir)
	if err != nil || outcome == Skipped {
		return outcome, err
	}
	if err := store.CopyFile(r.Source.Path, r.DestinationPath(destDir)); err != nil {
		return Copied, err
	}
	return Copied, nil
}

// LogEntry renders the UpdatedFileNames line for this file. Entries are keyed
// by destination name, which is unique within a run; source names are not.
func (r ReadFile) LogEntry() (string, error) {
	line, err := toml.Marshal(map[string]string{r.DestinationName(): r.Source.Name()})
	if err != nil {
		return "", err
	}
	return string(line), nil
}
