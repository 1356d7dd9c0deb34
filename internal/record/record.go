// Package record persists the outcome of a copy run: a numbered TOML copy
// log per run and the registry of samples that received new files.
package record

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"fq/internal/domain"
)

const (
	logPrefix    = "copy-log-"
	logSuffix    = ".toml"
	RegistryName = "samples.txt"
)

type Store interface {
	ReadDir(path string) ([]iofs.FileInfo, error)
	CreateExclusive(path string, data []byte) error
	AppendFile(path string, data []byte) error
}

// WriteCopyLog writes log to seqDir/copy-log-{N}.toml, where N is one more
// than the number of existing logs. Existing logs are never overwritten; N is
// bumped until a free name is found.
func WriteCopyLog(store Store, seqDir string, log domain.CopyLog) (string, error) {
	existing, err := countLogs(store, seqDir)
	if err != nil {
		return "", err
	}

	data, err := log.Render()
	if err != nil {
		return "", fmt.Errorf("render copy log: %w", err)
	}
	for n := existing + 1; ; n++ {
		path := filepath.Join(seqDir, fmt.Sprintf("%s%d%s", logPrefix, n, logSuffix))
		err := store.CreateExclusive(path, data)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, iofs.ErrExist) {
			return "", fmt.Errorf("write copy log %s: %w", path, err)
		}
	}
}

func countLogs(store Store, seqDir string) (int, error) {
	entries, err := store.ReadDir(seqDir)
	if errors.Is(err, iofs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("list copy logs in %s: %w", seqDir, err)
	}
	count := 0
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, logPrefix) && strings.HasSuffix(name, logSuffix) {
			count++
		}
	}
	return count, nil
}

// AppendSamples adds one line per sample to the registry at path.
func AppendSamples(store Store, path string, samples []string) error {
	if len(samples) == 0 {
		return nil
	}
	data := strings.Join(samples, "\n") + "\n"
	if err := store.AppendFile(path, []byte(data)); err != nil {
		return fmt.Errorf("append samples to %s: %w", path, err)
	}
	return nil
}
