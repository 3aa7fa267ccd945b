package util

import (
	"fmt"
	"regexp"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schoolCodePattern = regexp.MustCompile(`^JM-[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}$`)

func TestSchoolCodeCandidateFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := SchoolCodeCandidate()
		assert.Regexp(t, schoolCodePattern, code)
		assert.NotContains(t, code[3:], "0")
		assert.NotContains(t, code[3:], "O")
		assert.NotContains(t, code[3:], "1")
		assert.NotContains(t, code[3:], "I")
	}
}

func TestGenerateSchoolCode(t *testing.T) {
	t.Run("returns first free candidate", func(t *testing.T) {
		calls := 0
		code, err := GenerateSchoolCode(func(string) (bool, error) {
			calls++
			return calls < 3, nil // first two candidates taken
		})
		require.NoError(t, err)
		assert.Regexp(t, schoolCodePattern, code)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after bounded attempts", func(t *testing.T) {
		calls := 0
		_, err := GenerateSchoolCode(func(string) (bool, error) {
			calls++
			return true, nil // everything taken
		})
		assert.ErrorIs(t, err, ErrIDSpaceExhausted)
		assert.Equal(t, MaxIDAttempts, calls)
	})

	t.Run("propagates probe errors", func(t *testing.T) {
		probeErr := fmt.Errorf("connection lost")
		_, err := GenerateSchoolCode(func(string) (bool, error) {
			return false, probeErr
		})
		assert.ErrorIs(t, err, probeErr)
	})
}

func TestSchoolAbbrev(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"multi word takes initials", "City High School", "CHS"},
		{"initials capped at four", "One Two Three Four Five", "OTTF"},
		{"single word takes prefix", "Greenwood", "GREE"},
		{"short single word kept whole", "Elm", "ELM"},
		{"empty name falls back", "", "JM"},
		{"lowercase input upcased", "sunrise public school", "SPS"},
		{"accented initials decode whole runes", "École Les Amis", "ÉLA"},
		{"accented single word stays valid utf-8", "École", "ÉCOL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SchoolAbbrev(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestAccessIDCandidateFormat(t *testing.T) {
	year := time.Now().Year()
	pattern := regexp.MustCompile(fmt.Sprintf(`^CHS-%d-[0-9A-F]{4}$`, year))
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, AccessIDCandidate("City High School"))
	}
}

func TestGenerateAccessIDs(t *testing.T) {
	t.Run("batch is unique among itself and storage", func(t *testing.T) {
		stored := map[string]bool{}
		ids, err := GenerateAccessIDs("City High School", 25, func(id string) (bool, error) {
			return stored[id], nil
		})
		require.NoError(t, err)
		require.Len(t, ids, 25)

		seen := map[string]bool{}
		for _, id := range ids {
			assert.False(t, seen[id], "duplicate id %s in batch", id)
			seen[id] = true
		}
	})

	t.Run("gives up when storage rejects everything", func(t *testing.T) {
		_, err := GenerateAccessIDs("City High School", 1, func(string) (bool, error) {
			return true, nil
		})
		assert.ErrorIs(t, err, ErrIDSpaceExhausted)
	})

	t.Run("propagates probe errors", func(t *testing.T) {
		probeErr := fmt.Errorf("connection lost")
		_, err := GenerateAccessIDs("City High School", 1, func(string) (bool, error) {
			return false, probeErr
		})
		assert.ErrorIs(t, err, probeErr)
	})

	t.Run("zero count returns empty batch", func(t *testing.T) {
		ids, err := GenerateAccessIDs("City High School", 0, func(string) (bool, error) {
			return false, nil
		})
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}
