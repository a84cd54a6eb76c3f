package errors

import (
	"testing"
)

func TestNewCode(t *testing.T) {
	validCodes := []string{
		"generator.write_failed",
		"formats.codec_unavailable",
		"storage.engine_not_found",
		"config.file_read_failed",
	}

	for _, codeStr := range validCodes {
		code, err := NewCode(codeStr)
		if err != nil {
			t.Errorf("Expected valid code '%s' to succeed, got error: %v", codeStr, err)
		}
		if code.String() != codeStr {
			t.Errorf("Expected code string '%s', got '%s'", codeStr, code.String())
		}
	}

	invalidCodes := []string{
		"invalid",                // No dot
		"formats.",               // Ends with dot
		".codec_unavailable",     // Starts with dot
		"Formats.codec",          // Uppercase
		"formats.codec-missing",  // Hyphens not allowed
		"formats..codec",         // Double dot
		"error.codec_missing",    // Contains "error"
		"formats.err_unexpected", // Contains "err"
	}

	for _, codeStr := range invalidCodes {
		if _, err := NewCode(codeStr); err == nil {
			t.Errorf("Expected invalid code '%s' to fail, but it succeeded", codeStr)
		}
	}
}

func TestMustNewCodePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected MustNewCode to panic with invalid code")
		}
	}()
	MustNewCode("not a code")
}

func TestZeroCodeMatchesNothing(t *testing.T) {
	var zero Code
	if zero.Equals(Code{}) {
		t.Error("Expected the zero code to match nothing")
	}
	if HasCode(New(Code{}, "x", nil), Code{}) {
		t.Error("Expected HasCode to ignore the zero code")
	}
}

func TestCodeEquals(t *testing.T) {
	a := MustNewCode("formats.unknown_format")
	b := MustNewCode("formats.unknown_format")
	c := MustNewCode("formats.codec_unavailable")

	if !a.Equals(b) {
		t.Error("Expected equal codes to compare equal")
	}
	if a.Equals(c) {
		t.Error("Expected different codes to differ")
	}
}
