package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Alphabet for generated codes; ambiguous glyphs (0/O, 1/I) are excluded so
// codes survive being read aloud or written on paper.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const passwordAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

// MaxIDAttempts caps the candidate loops below. Generation never spins
// unbounded under collision pressure; callers get ErrIDSpaceExhausted and
// decide what to do.
const MaxIDAttempts = 20

func randomFrom(alphabet string, n int) string {
	var b strings.Builder
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// nothing sensible to do but stop.
			panic(err)
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String()
}

// SchoolCodeCandidate produces one candidate school code, JM-XXXX-YYYY.
func SchoolCodeCandidate() string {
	return fmt.Sprintf("JM-%s-%s", randomFrom(codeAlphabet, 4), randomFrom(codeAlphabet, 4))
}

// GenerateSchoolCode returns a school code not currently in use. exists is
// the storage existence probe; the loop is bounded by MaxIDAttempts.
func GenerateSchoolCode(exists func(code string) (bool, error)) (string, error) {
	for i := 0; i < MaxIDAttempts; i++ {
		code := SchoolCodeCandidate()
		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrIDSpaceExhausted
}

// GenerateSchoolPassword returns a 10-character initial password for a
// newly registered school account.
func GenerateSchoolPassword() string {
	return randomFrom(passwordAlphabet, 10)
}

// SchoolAbbrev derives the access-ID prefix from a school name: first
// letter of each word, or the first four letters for single-word names.
// Letters are runes, not bytes, so accented school names stay valid UTF-8.
func SchoolAbbrev(schoolName string) string {
	words := strings.Fields(schoolName)
	if len(words) == 0 {
		return "JM"
	}
	if len(words) == 1 {
		runes := []rune(words[0])
		if len(runes) > 4 {
			runes = runes[:4]
		}
		return strings.ToUpper(string(runes))
	}
	var b strings.Builder
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(r)
	}
	abbrev := []rune(b.String())
	if len(abbrev) > 4 {
		abbrev = abbrev[:4]
	}
	return strings.ToUpper(string(abbrev))
}

// AccessIDCandidate produces one candidate student access ID,
// ABBREV-YEAR-HEX4 (e.g. CHS-2026-A9B2).
func AccessIDCandidate(schoolName string) string {
	hex := strings.ToUpper(strings.SplitN(uuid.New().String(), "-", 2)[0][:4])
	return fmt.Sprintf("%s-%d-%s", SchoolAbbrev(schoolName), time.Now().Year(), hex)
}

// GenerateAccessIDs returns count access IDs unique among themselves and
// against storage. Each slot gets a bounded number of attempts.
func GenerateAccessIDs(schoolName string, count int, exists func(id string) (bool, error)) ([]string, error) {
	ids := make([]string, 0, count)
	seen := make(map[string]bool, count)

	for len(ids) < count {
		var id string
		found := false
		for i := 0; i < MaxIDAttempts; i++ {
			id = AccessIDCandidate(schoolName)
			if seen[id] {
				continue
			}
			taken, err := exists(id)
			if err != nil {
				return nil, err
			}
			if !taken {
				found = true
				break
			}
		}
		if !found {
			return nil, ErrIDSpaceExhausted
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids, nil
}
