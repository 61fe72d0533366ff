package redemption

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

var ErrInvalidCode = errors.New("invalid redemption code")

// CodeAlphabet omits characters that are easy to misread (0/O, 1/I).
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const CodeLength = 12

// Code is a normalised redemption code.
type Code struct {
	value string
}

// GenerateCode draws CodeLength characters from CodeAlphabet using crypto/rand.
func GenerateCode() (Code, error) {
	max := big.NewInt(int64(len(CodeAlphabet)))
	b := make([]byte, CodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return Code{}, err
		}
		b[i] = CodeAlphabet[n.Int64()]
	}
	return Code{value: string(b)}, nil
}

// ParseCode accepts user input such as "abcd-efgh-jkmn" and returns the
// canonical form, or ErrInvalidCode.
func ParseCode(s string) (Code, error) {
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ', '\t':
			return -1
		}
		return r
	}, strings.ToUpper(strings.TrimSpace(s)))

	if len(normalized) != CodeLength {
		return Code{}, ErrInvalidCode
	}
	for _, r := range normalized {
		if !strings.ContainsRune(CodeAlphabet, r) {
			return Code{}, ErrInvalidCode
		}
	}
	return Code{value: normalized}, nil
}

func (c Code) String() string {
	return c.value
}

// Display groups the code in blocks of four for emails and admin output.
func (c Code) Display() string {
	if len(c.value) != CodeLength {
		return c.value
	}
	return c.value[0:4] + "-" + c.value[4:8] + "-" + c.value[8:12]
}

// Redacted keeps only the first four characters, for logs.
func (c Code) Redacted() string {
	if len(c.value) < 4 {
		return "****"
	}
	return c.value[:4] + "********"
}
