package redemption

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidKind     = errors.New("invalid redemption kind")
	ErrInvalidResource = errors.New("invalid resource")
)

type Kind string

const (
	KindDownload Kind = "download"
	KindCall     Kind = "call"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindDownload, KindCall:
		return true
	default:
		return false
	}
}

func NewKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// DefaultCallResource is used when a call code is requested without naming one.
const DefaultCallResource = "free-call"

var resourceRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._/-]{0,127}$`)

// Resource names what a token unlocks: an object key for downloads, a call
// type for calls.
type Resource struct {
	value string
}

func NewResource(s string) (Resource, error) {
	s = strings.TrimSpace(s)
	if !resourceRegex.MatchString(s) || strings.Contains(s, "..") {
		return Resource{}, ErrInvalidResource
	}
	return Resource{value: s}, nil
}

func (r Resource) String() string {
	return r.value
}
