package domain

import (
	"errors"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	existing map[string]bool
	copies   map[string]string
	err      error
}

func (s *fakeStore) Exists(path string) (bool, error) {
	return s.existing[path], nil
}

func (s *fakeStore) CopyFile(src, dst string) error {
	if s.err != nil {
		return s.err
	}
	if s.copies == nil {
		s.copies = map[string]string{}
	}
	s.copies[dst] = src
	return nil
}

func readFile(path, sample string, index int, prefix string) ReadFile {
	return ReadFile{Source: SourceFile{Path: path, Sample: sample}, Index: index, Prefix: prefix}
}

func TestDestinationName(t *testing.T) {
	assert.Equal(t, "sampleA_R1.fastq.gz", readFile("/in/a.fq.gz", "sampleA", 1, "").DestinationName())
	assert.Equal(t, "run7_sampleA_R2.fastq.gz", readFile("/in/a.fq.gz", "sampleA", 2, "run7").DestinationName())
	assert.Equal(t, "/out/run7_sampleA_R2.fastq.gz", readFile("/in/a.fq.gz", "sampleA", 2, "run7").DestinationPath("/out"))
}

func TestCheckAndCopySkipsExisting(t *testing.T) {
	store := &fakeStore{existing: map[string]bool{"/out/S1_R1.fastq.gz": true}}

	outcome, err := readFile("/in/S1_R1.fastq.gz", "S1", 1, "").CheckAndCopy(store, "/out")
	require.NoError(t, err)
	assert.Equal(t, Skipped, outcome)
	assert.Empty(t, store.copies)

	outcome, err = readFile("/in/S1_R2.fastq.gz", "S1", 2, "").CheckAndCopy(store, "/out")
	require.NoError(t, err)
	assert.Equal(t, Copied, outcome)
	assert.Equal(t, "/in/S1_R2.fastq.gz", store.copies["/out/S1_R2.fastq.gz"])
}

func TestCheckAndCopyPropagatesCopyError(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	_, err := readFile("/in/S1_R1.fastq.gz", "S1", 1, "").CheckAndCopy(store, "/out")
	require.EqualError(t, err, "disk full")
}

func TestNormalizeSamples(t *testing.T) {
	assert.Equal(t, []string{"A1", "A10", "B"}, NormalizeSamples([]string{"B", " A10", "A1", "B", "", "A1 "}))
}

func TestCompareSourceFilesOrdersByOrientationThenPath(t *testing.T) {
	r2 := SourceFile{Path: "/a/x_R2.fastq.gz", Orientation: Reverse}
	r1 := SourceFile{Path: "/b/x_R1.fastq.gz", Orientation: Forward}
	r1b := SourceFile{Path: "/c/x_R1.fastq.gz", Orientation: Forward}
	assert.Negative(t, CompareSourceFiles(r1, r2))
	assert.Negative(t, CompareSourceFiles(r1, r1b))
	assert.Zero(t, CompareSourceFiles(r1, r1))
}

func TestIsFastqName(t *testing.T) {
	assert.True(t, IsFastqName("S1_R1.fastq.gz"))
	assert.True(t, IsFastqName("S1_1.FQ.GZ"))
	assert.False(t, IsFastqName("S1_R1.fastq"))
	assert.False(t, IsFastqName("S1.bam"))
	assert.Equal(t, "S1_R1", FastqStem("S1_R1.fastq.gz"))
}

func TestCopyLogRendersValidTOML(t *testing.T) {
	log := CopyLog{
		Copied: []ReadFile{
			readFile("/in/sampleA_S3_L001_R1_001.fastq.gz", "sampleA", 1, ""),
			readFile("/in/sampleA_S3_L001_R2_001.fastq.gz", "sampleA", 2, ""),
		},
		Skipped: []ReadFile{
			readFile("/in/B_1.fq.gz", "B", 1, ""),
		},
	}

	var decoded struct {
		UpdatedFileNames map[string]string
		SkippedFileNames struct {
			AlreadyProcessed []string `toml:"already_processed"`
		}
	}
	_, err := toml.Decode(log.String(), &decoded)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"sampleA_R1.fastq.gz": "sampleA_S3_L001_R1_001.fastq.gz",
		"sampleA_R2.fastq.gz": "sampleA_S3_L001_R2_001.fastq.gz",
	}, decoded.UpdatedFileNames)
	assert.Equal(t, []string{"B_1.fq.gz"}, decoded.SkippedFileNames.AlreadyProcessed)
}

func TestCopyLogSameSourceNameInTwoFolders(t *testing.T) {
	log := CopyLog{Copied: []ReadFile{
		readFile("/in/run1/S1_R1.fastq.gz", "S1", 1, ""),
		readFile("/in/run2/S1_R1.fastq.gz", "S1", 2, ""),
	}}

	var decoded map[string]map[string]string
	_, err := toml.Decode(log.String(), &decoded)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"S1_R1.fastq.gz": "S1_R1.fastq.gz",
		"S1_R2.fastq.gz": "S1_R1.fastq.gz",
	}, decoded[UpdatedSection])
}

func TestCopyLogOmitsEmptySections(t *testing.T) {
	log := CopyLog{Copied: []ReadFile{readFile("/in/S1_R1.fastq.gz", "S1", 1, "")}}
	out := log.String()
	assert.Equal(t, "[UpdatedFileNames]\n\"S1_R1.fastq.gz\" = \"S1_R1.fastq.gz\"\n", out)
	assert.NotContains(t, out, SkippedSection)
	assert.Empty(t, CopyLog{}.String())
}

func TestCopyLogQuotesSpecialCharacters(t *testing.T) {
	log := CopyLog{Skipped: []ReadFile{readFile(`/in/we"ird\name_R1.fastq.gz`, "name", 1, "")}}
	var decoded map[string]map[string][]string
	_, err := toml.Decode(log.String(), &decoded)
	require.NoError(t, err)
	assert.Equal(t, []string{`we"ird\name_R1.fastq.gz`}, decoded[SkippedSection][SkippedKey])
}

func TestAddedSamples(t *testing.T) {
	log := CopyLog{Copied: []ReadFile{
		readFile("/in/b_R1.fastq.gz", "b", 1, ""),
		readFile("/in/a_R1.fastq.gz", "a", 1, ""),
		readFile("/in/a_R2.fastq.gz", "a", 2, ""),
	}}
	assert.Equal(t, []string{"a", "b"}, log.AddedSamples())
}
