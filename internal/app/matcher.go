package app

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"fq/internal/domain"
	appErrors "fq/internal/errors"
)

// Matcher assigns FASTQ file names to requested samples.
//
// A sample claims a name when it occurs in the name's stem with each
// neighbour being either a non-alphanumeric rune or the stem boundary, so
// "A1" claims "A1_R1.fastq.gz" but not "A10_R1.fastq.gz". When several
// samples claim one name the longest wins; equally long claims are an
// ambiguous_match error.
type Matcher struct {
	samples []string
}

func NewMatcher(samples []string) Matcher {
	ordered := domain.NormalizeSamples(samples)
	slices.SortStableFunc(ordered, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})
	return Matcher{samples: ordered}
}

type match struct {
	sample string
	start  int
}

// Match returns the claiming sample for a file name and the inferred orientation.
func (m Matcher) Match(name string) (string, domain.Orientation, bool, error) {
	stem := domain.FastqStem(name)

	var best []match
	for _, sample := range m.samples {
		if len(best) > 0 && len(sample) < len(best[0].sample) {
			break
		}
		if start := boundedIndex(stem, sample); start >= 0 {
			best = append(best, match{sample: sample, start: start})
		}
	}

	switch len(best) {
	case 0:
		return "", domain.Unpaired, false, nil
	case 1:
		found := best[0]
		rest := stem[:found.start] + " " + stem[found.start+len(found.sample):]
		return found.sample, orientationOf(rest), true, nil
	default:
		claimants := make([]string, 0, len(best))
		for _, found := range best {
			claimants = append(claimants, found.sample)
		}
		return "", domain.Unpaired, false, &appErrors.AppError{
			Kind: appErrors.AmbiguousMatch,
			Op:   "match",
			Path: name,
			Err:  fmt.Errorf("file %s is claimed by samples %s", name, strings.Join(claimants, ", ")),
		}
	}
}

// boundedIndex returns the first delimited occurrence of token in s, or -1.
func boundedIndex(s, token string) int {
	if token == "" {
		return -1
	}
	for offset := 0; offset <= len(s)-len(token); {
		i := strings.Index(s[offset:], token)
		if i < 0 {
			return -1
		}
		start := offset + i
		end := start + len(token)
		if isBoundary(s[:start], true) && isBoundary(s[end:], false) {
			return start
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		offset = start + size
	}
	return -1
}

func isBoundary(side string, before bool) bool {
	if side == "" {
		return true
	}
	var r rune
	if before {
		r, _ = utf8.DecodeLastRuneInString(side)
	} else {
		r, _ = utf8.DecodeRuneInString(side)
	}
	return !isAlnum(r)
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// orientationOf reads R1/R2 tokens, falling back to bare 1/2 tokens. The last
// marker of the winning kind decides.
func orientationOf(rest string) domain.Orientation {
	explicit := domain.Unpaired
	bare := domain.Unpaired
	for _, token := range strings.FieldsFunc(rest, func(r rune) bool { return !isAlnum(r) }) {
		switch strings.ToUpper(token) {
		case "R1":
			explicit = domain.Forward
		case "R2":
			explicit = domain.Reverse
		case "1":
			bare = domain.Forward
		case "2":
			bare = domain.Reverse
		}
	}
	if explicit != domain.Unpaired {
		return explicit
	}
	return bare
}
