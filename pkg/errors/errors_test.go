package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestMissingFieldError(t *testing.T) {
	err := NewMissingFieldError("items", 3, "cost")

	if !strings.Contains(err.Error(), "items row 3") {
		t.Errorf("expected file and row in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), `"cost"`) {
		t.Errorf("expected field name in message, got %q", err.Error())
	}
	if !stderrors.Is(err, ErrInvalidInput) {
		t.Error("MissingFieldError should match ErrInvalidInput")
	}
}

func TestMalformedValueError(t *testing.T) {
	cause := New("bad decimal")
	err := NewMalformedValueError("items", 7, "list", "$1,2.3.4", cause)

	if !strings.Contains(err.Error(), "row 7") {
		t.Errorf("expected row in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "$1,2.3.4") {
		t.Errorf("expected raw text in message, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected unwrap to reach cause")
	}
	if !IsValidationError(err) {
		t.Error("MalformedValueError should be a validation error")
	}
}

func TestMissingCrossReferenceError(t *testing.T) {
	err := NewMissingCrossReferenceError("SKU9", 12)

	if !strings.Contains(err.Error(), "SKU9") || !strings.Contains(err.Error(), "12") {
		t.Errorf("expected sku and row in message, got %q", err.Error())
	}
	if !IsNotFound(err) {
		t.Error("MissingCrossReferenceError should match ErrNotFound")
	}
}

func TestIncompleteRecordError(t *testing.T) {
	err := NewIncompleteRecordError("ABC1", "weight")

	if !strings.Contains(err.Error(), "ABC1") || !strings.Contains(err.Error(), "weight") {
		t.Errorf("expected sku and field in message, got %q", err.Error())
	}
	if !IsIncompleteRecord(err) {
		t.Error("IncompleteRecordError should match ErrIncompleteRecord")
	}

	// Without a sku the message still names the field.
	anon := NewIncompleteRecordError("", "sku")
	if !strings.Contains(anon.Error(), "missing sku") {
		t.Errorf("expected field in message, got %q", anon.Error())
	}
}

func TestAutomationError(t *testing.T) {
	cause := New("field not writable")
	err := NewAutomationError("VND1", "cost", cause)

	if !strings.Contains(err.Error(), "VND1") || !strings.Contains(err.Error(), "cost") {
		t.Errorf("expected sku and step in message, got %q", err.Error())
	}
	if !IsAutomation(err) {
		t.Error("AutomationError should match ErrAutomation")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected unwrap to reach cause")
	}
}

func TestWrapHelpers(t *testing.T) {
	if WrapIO("read", "/tmp/x", nil) != nil {
		t.Error("WrapIO of nil should be nil")
	}
	if WrapAutomation("S", "weight", nil) != nil {
		t.Error("WrapAutomation of nil should be nil")
	}

	wrapped := WrapIO("open", "items.tsv", New("no such file"))
	var ioErr *IOError
	if !stderrors.As(wrapped, &ioErr) {
		t.Fatal("expected *IOError")
	}
	if ioErr.Path != "items.tsv" || ioErr.Operation != "open" {
		t.Errorf("unexpected IOError contents: %+v", ioErr)
	}
}
