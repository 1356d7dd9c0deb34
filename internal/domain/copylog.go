package domain

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
)

const (
	UpdatedSection = "UpdatedFileNames"
	SkippedSection = "SkippedFileNames"
	SkippedKey     = "already_processed"
)

// CopyLog records the outcome of one run, in processing order.
type CopyLog struct {
	Copied  []ReadFile
	Skipped []ReadFile
}

type skippedTable struct {
	AlreadyProcessed []string `toml:"already_processed"`
}

func (l CopyLog) Empty() bool {
	return len(l.Copied) == 0 && len(l.Skipped) == 0
}

// AddedSamples returns the sorted, distinct samples with at least one copied file.
func (l CopyLog) AddedSamples() []string {
	names := make([]string, 0, len(l.Copied))
	for _, file := range l.Copied {
		names = append(names, file.Sample())
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Render encodes the log as a TOML document. Empty sections are omitted and
// UpdatedFileNames keeps processing order.
func (l CopyLog) Render() ([]byte, error) {
	var b bytes.Buffer
	if len(l.Copied) > 0 {
		fmt.Fprintf(&b, "[%s]\n", UpdatedSection)
		for _, file := range l.Copied {
			line, err := file.LogEntry()
			if err != nil {
				return nil, err
			}
			b.WriteString(line)
		}
	}
	if len(l.Skipped) > 0 {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		names := make([]string, 0, len(l.Skipped))
		for _, file := range l.Skipped {
			names = append(names, file.Source.Name())
		}
		enc := toml.NewEncoder(&b)
		enc.Indent = ""
		if err := enc.Encode(map[string]skippedTable{SkippedSection: {AlreadyProcessed: names}}); err != nil {
			return nil, err
		}
	}
	return b.Bytes(), nil
}

func (l CopyLog) String() string {
	data, err := l.Render()
	if err != nil {
		return ""
	}
	return string(data)
}
