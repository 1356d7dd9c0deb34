package presentation

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"fq/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(name, sample string, index int) domain.ReadFile {
	return domain.ReadFile{Source: domain.SourceFile{Path: "/in/" + name, Sample: sample}, Index: index}
}

func TestFormatCopyLinesTruncates(t *testing.T) {
	files := make([]domain.ReadFile, 0, 6)
	for i := 0; i < 6; i++ {
		files = append(files, file(fmt.Sprintf("S%d_R1.fastq.gz", i), fmt.Sprintf("S%d", i), 1))
	}

	lines := Printer{}.formatCopyLines(files)
	require.Len(t, lines, 5)
	assert.Equal(t, "...", lines[2])

	lines = Printer{Verbose: true}.formatCopyLines(files)
	assert.Len(t, lines, 6)
}

func TestPrintCopyLogShowsBothSections(t *testing.T) {
	var buf bytes.Buffer
	log := domain.CopyLog{
		Copied:  []domain.ReadFile{file("A_1.fq.gz", "A", 1), file("A_2.fq.gz", "A", 2)},
		Skipped: []domain.ReadFile{file("B_R1.fastq.gz", "B", 1)},
	}

	require.NoError(t, Printer{Writer: &buf}.PrintCopyLog(log))
	output := buf.String()

	assert.Contains(t, output, "FASTQ Copy Log")
	assert.Contains(t, output, "A_1.fq.gz -> A_R1.fastq.gz")
	assert.Contains(t, output, "SkippedFileNames")
	assert.Contains(t, output, "B_R1.fastq.gz")
	assert.Contains(t, output, "Copied 2 FASTQ files for 1 samples; skipped 1 already processed.")
	assert.Less(t, strings.Index(output, "A_1.fq.gz"), strings.Index(output, "A_2.fq.gz"))
}

func TestPrintCopyLogRepeatedSourceName(t *testing.T) {
	var buf bytes.Buffer
	log := domain.CopyLog{Copied: []domain.ReadFile{
		{Source: domain.SourceFile{Path: "/in/run1/S1_R1.fastq.gz", Sample: "S1"}, Index: 1},
		{Source: domain.SourceFile{Path: "/in/run2/S1_R1.fastq.gz", Sample: "S1"}, Index: 2},
	}}

	require.NoError(t, Printer{Writer: &buf}.PrintCopyLog(log))
	output := buf.String()
	assert.Contains(t, output, "S1_R1.fastq.gz -> S1_R1.fastq.gz")
	assert.Contains(t, output, "S1_R1.fastq.gz -> S1_R2.fastq.gz")
}

func TestPrintCopyLogEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Printer{Writer: &buf}.PrintCopyLog(domain.CopyLog{}))
	assert.Contains(t, buf.String(), "No files copied or skipped.")
}

func TestPrintDryRun(t *testing.T) {
	var buf bytes.Buffer
	log := domain.CopyLog{
		Copied:  []domain.ReadFile{file("S1_R1.fastq.gz", "S1", 1)},
		Skipped: []domain.ReadFile{file("S1_R2.fastq.gz", "S1", 2)},
	}
	Printer{Writer: &buf}.PrintDryRun(log)
	output := buf.String()

	assert.Contains(t, output, "Would copy:")
	assert.Contains(t, output, "Copy /in/S1_R1.fastq.gz  -> S1_R1.fastq.gz")
	assert.Contains(t, output, "Already processed:")
	assert.Contains(t, output, "Would copy 1 FASTQ files")
}
