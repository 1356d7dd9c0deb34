package app

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"fq/internal/domain"
	appErrors "fq/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingFS struct {
	failOn string
	copied []string
}

func (m *failingFS) ReadDir(path string) ([]fs.FileInfo, error) { return nil, nil }
func (m *failingFS) Stat(path string) (fs.FileInfo, error)      { return nil, fs.ErrNotExist }
func (m *failingFS) RealPath(path string) (string, error)       { return path, nil }
func (m *failingFS) Exists(path string) (bool, error)           { return false, nil }
func (m *failingFS) MkdirAll(path string, perm fs.FileMode) error {
	return nil
}

func (m *failingFS) CopyFile(src, dst string) error {
	if src == m.failOn {
		return errors.New("no space left on device")
	}
	m.copied = append(m.copied, dst)
	return nil
}

func TestExecuteStopsAtFirstCopyFailure(t *testing.T) {
	plan := domain.CopyPlan{Files: []domain.ReadFile{
		{Source: domain.SourceFile{Path: "/in/A_R1.fastq.gz", Sample: "A"}, Index: 1},
		{Source: domain.SourceFile{Path: "/in/A_R2.fastq.gz", Sample: "A"}, Index: 2},
		{Source: domain.SourceFile{Path: "/in/B_R1.fastq.gz", Sample: "B"}, Index: 1},
	}}
	mock := &failingFS{failOn: "/in/A_R2.fastq.gz"}
	executor := Executor{FS: mock}

	log, err := executor.Execute(context.Background(), plan, "/out")
	require.Error(t, err)
	assert.Equal(t, appErrors.IOFailure, appErrors.KindOf(err))
	assert.Contains(t, appErrors.UserMessage(err), "sample A")
	assert.Equal(t, []string{"/out/A_R1.fastq.gz"}, mock.copied)
	assert.Len(t, log.Copied, 1)
}

func TestExecuteRequiresFS(t *testing.T) {
	executor := Executor{}
	_, err := executor.Execute(context.Background(), domain.CopyPlan{}, "/out")
	require.Error(t, err)
}
