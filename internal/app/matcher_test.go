package app

import (
	"testing"

	"fq/internal/domain"
	appErrors "fq/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherRespectsTokenBoundaries(t *testing.T) {
	m := NewMatcher([]string{"S1"})

	cases := []struct {
		name  string
		match bool
	}{
		{"S1_R1.fastq.gz", true},
		{"run-S1.R2.fq.gz", true},
		{"S1.fastq.gz", true},
		{"S10_R1.fastq.gz", false},
		{"XS1_R1.fastq.gz", false},
		{"S1x_R1.fastq.gz", false},
		{"AS10_S1_L001_R1_001.fastq.gz", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sample, _, ok, err := m.Match(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.match, ok)
			if tc.match {
				assert.Equal(t, "S1", sample)
			}
		})
	}
}

func TestMatcherPrefersLongestSample(t *testing.T) {
	m := NewMatcher([]string{"A", "A_1"})

	sample, orientation, ok, err := m.Match("A_1_R2.fastq.gz")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "A_1", sample)
	assert.Equal(t, domain.Reverse, orientation)

	sample, orientation, ok, err = m.Match("A_R1.fastq.gz")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "A", sample)
	assert.Equal(t, domain.Forward, orientation)
}

func TestMatcherRejectsEqualLengthClaims(t *testing.T) {
	m := NewMatcher([]string{"A1", "B2"})
	_, _, ok, err := m.Match("A1_B2_R1.fastq.gz")
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, appErrors.Is(err, appErrors.AmbiguousMatch))
	assert.Contains(t, err.Error(), "A1, B2")
}

func TestMatcherOrientation(t *testing.T) {
	m := NewMatcher([]string{"sampleA"})

	cases := map[string]domain.Orientation{
		"sampleA_R1.fastq.gz":             domain.Forward,
		"sampleA_R2.fastq.gz":             domain.Reverse,
		"sampleA_S3_L001_R1_001.fastq.gz": domain.Forward,
		"sampleA_S3_L001_R2_001.fastq.gz": domain.Reverse,
		"sampleA_1.fq.gz":                 domain.Forward,
		"sampleA_2.fq.gz":                 domain.Reverse,
		"sampleA.fastq.gz":                domain.Unpaired,
		"sampleA_L001.fastq.gz":           domain.Unpaired,
		"lane_2_sampleA_r1.fastq.gz":      domain.Forward,
	}
	for name, want := range cases {
		_, got, ok, err := m.Match(name)
		require.NoError(t, err, name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestMatcherIgnoresUnrequestedSamples(t *testing.T) {
	m := NewMatcher([]string{"S1"})
	_, _, ok, err := m.Match("other_R1.fastq.gz")
	require.NoError(t, err)
	assert.False(t, ok)
}
