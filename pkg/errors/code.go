package errors

import (
	"fmt"
	"regexp"
	"strings"
)

// Code identifies a failure as "package.name". Build one with MustNewCode in
// a package-level var block; the zero Code matches nothing.
type Code struct {
	value string
}

var (
	CommonInternal     = MustNewCode("common.internal")
	CommonInvalidInput = MustNewCode("common.invalid_input")
)

var codePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*\.[a-z][a-z0-9_]*$`)

// NewCode parses s, rejecting anything that is not lowercase package.name or
// that repeats "err" in the name.
func NewCode(s string) (Code, error) {
	if !codePattern.MatchString(s) {
		return Code{}, fmt.Errorf("code %q is not of the form package.name", s)
	}
	if strings.Contains(s, "err") {
		return Code{}, fmt.Errorf("code %q must not contain \"err\"", s)
	}
	return Code{value: s}, nil
}

// MustNewCode is NewCode for package initialisation; it panics on a bad code.
func MustNewCode(s string) Code {
	code, err := NewCode(s)
	if err != nil {
		panic(err)
	}
	return code
}

func (c Code) String() string {
	return c.value
}

func (c Code) Equals(other Code) bool {
	return c.value != "" && c.value == other.value
}
