package app

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"

	"fq/internal/domain"
	appErrors "fq/internal/errors"
	"fq/internal/logging"
)

// Scanner walks a directory tree for FASTQ files belonging to the requested samples.
// It holds no state between calls to Scan.
type Scanner struct {
	FS     FileSystem
	Logger logging.Logger
	// Exclude lists directories that are never entered, such as the copy
	// destination when it lies inside the scanned tree.
	Exclude []string
	matcher Matcher
}

func NewScanner(fsys FileSystem, logger logging.Logger, samples []string) *Scanner {
	return &Scanner{FS: fsys, Logger: logger, matcher: NewMatcher(samples)}
}

// Scan lazily yields every matching file under root. Directories, including
// symlinked ones, are entered once per resolved real path. The sequence ends
// after the first error, or once ctx is done.
func (s *Scanner) Scan(ctx context.Context, root string) iter.Seq2[domain.SourceFile, error] {
	return func(yield func(domain.SourceFile, error) bool) {
		if !filepath.IsAbs(root) {
			abs, err := filepath.Abs(root)
			if err != nil {
				yield(domain.SourceFile{}, appErrors.Wrap(appErrors.NotFound, "scan", root, err))
				return
			}
			root = abs
		}
		info, err := s.FS.Stat(root)
		if err != nil {
			yield(domain.SourceFile{}, appErrors.Wrap(appErrors.NotFound, "scan", root, err))
			return
		}
		if !info.IsDir() {
			yield(domain.SourceFile{}, appErrors.Wrap(appErrors.NotFound, "scan", root, fs.ErrInvalid))
			return
		}
		visited := s.excluded()
		s.walk(ctx, root, visited, yield)
	}
}

// excluded resolves Exclude to real paths. A directory that does not exist
// yet is kept by its cleaned absolute path.
func (s *Scanner) excluded() map[string]bool {
	dirs := make(map[string]bool, len(s.Exclude))
	for _, dir := range s.Exclude {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if resolved, err := s.FS.RealPath(dir); err == nil {
			dir = resolved
		}
		dirs[filepath.Clean(dir)] = true
	}
	return dirs
}

func (s *Scanner) walk(ctx context.Context, dir string, visited map[string]bool, yield func(domain.SourceFile, error) bool) bool {
	if err := ctx.Err(); err != nil {
		yield(domain.SourceFile{}, err)
		return false
	}
	resolved, err := s.FS.RealPath(dir)
	if err != nil {
		return yield(domain.SourceFile{}, appErrors.Wrap(appErrors.IOFailure, "scan", dir, err))
	}
	if visited[resolved] {
		s.Logger.Verbosef("Skipping %s, %s is excluded or already visited", dir, resolved)
		return true
	}
	visited[resolved] = true

	entries, err := s.FS.ReadDir(dir)
	if err != nil {
		return yield(domain.SourceFile{}, appErrors.Wrap(appErrors.IOFailure, "scan", dir, err))
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info := entry
		if entry.Mode()&fs.ModeSymlink != 0 {
			info, err = s.FS.Stat(path)
			if err != nil {
				s.Logger.Verbosef("Ignoring broken link %s", path)
				continue
			}
		}

		if info.IsDir() {
			if !s.walk(ctx, path, visited, yield) {
				return false
			}
			continue
		}
		if !info.Mode().IsRegular() || !domain.IsFastqName(entry.Name()) {
			continue
		}

		sample, orientation, ok, err := s.matcher.Match(entry.Name())
		if err != nil {
			return yield(domain.SourceFile{}, err)
		}
		if !ok {
			continue
		}
		file := domain.SourceFile{Path: path, Sample: sample, Orientation: orientation}
		if !yield(file, nil) {
			return false
		}
	}
	return true
}
