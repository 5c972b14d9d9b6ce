package http

import (
	"errors"
	"strings"
	"testing"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		ActorID string `validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	ok := P{ActorID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		bad := P{ActorID: s}
		err := cv.Validate(bad)
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "ActorID", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestOneofAndMaxMapping(t *testing.T) {
	type P struct {
		Action string `validate:"required,oneof=submit approve reject edit delete"`
		Reason string `validate:"max=10"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{Action: "approve", Reason: "short"}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	err := cv.Validate(P{Action: "escalate", Reason: strings.Repeat("x", 11)})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "Action", "must be one of: submit approve reject edit delete") {
		t.Fatalf("missing oneof message for Action: %+v", fe)
	}
	if !containsFieldMsg(fe, "Reason", "at most 10 characters") {
		t.Fatalf("missing max message for Reason: %+v", fe)
	}
}

func TestRequiredMapping(t *testing.T) {
	type P struct {
		Title string `validate:"required"`
	}
	cv := NewValidator()

	err := cv.Validate(P{})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "Title", "is required") {
		t.Fatalf("missing 'is required' for Title: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
