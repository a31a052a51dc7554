// Package errors provides custom error types for the product-crossref system.
// These errors enable programmatic error checking and carry enough context
// (row number, field name, sku) to locate an offending input line without
// re-running with added instrumentation.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the crossref system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrIncompleteRecord indicates a record was missing a required attribute
	ErrIncompleteRecord = errors.New("incomplete record")

	// ErrAutomation indicates a failure in the external edit-port collaborator
	ErrAutomation = errors.New("automation failure")

	// ErrHalted indicates a batch was halted by the configured error policy
	ErrHalted = errors.New("batch halted")
)

// MissingFieldError reports a required column absent from an input row.
type MissingFieldError struct {
	Row   int    // 1-indexed row within the source file
	Field string // name of the missing field
	File  string // source file label, e.g. "items" or "posted"
}

// Error implements the error interface
func (e *MissingFieldError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s row %d: missing required field %q", e.File, e.Row, e.Field)
	}
	return fmt.Sprintf("row %d: missing required field %q", e.Row, e.Field)
}

// Is implements errors.Is support
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewMissingFieldError creates a new MissingFieldError
func NewMissingFieldError(file string, row int, field string) *MissingFieldError {
	return &MissingFieldError{Row: row, Field: field, File: file}
}

// MalformedValueError reports a field whose raw text could not be parsed.
type MalformedValueError struct {
	Row   int
	Field string
	Raw   string // the offending raw text
	File  string
	Err   error
}

// Error implements the error interface
func (e *MalformedValueError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s row %d: malformed %s value %q", e.File, e.Row, e.Field, e.Raw)
	}
	return fmt.Sprintf("row %d: malformed %s value %q", e.Row, e.Field, e.Raw)
}

// Unwrap implements errors.Unwrap
func (e *MalformedValueError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MalformedValueError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewMalformedValueError creates a new MalformedValueError
func NewMalformedValueError(file string, row int, field, raw string, err error) *MalformedValueError {
	return &MalformedValueError{Row: row, Field: field, Raw: raw, File: file, Err: err}
}

// MissingCrossReferenceError reports a posted row whose sku has no base
// record in the item source.
type MissingCrossReferenceError struct {
	SKU string
	Row int
}

// Error implements the error interface
func (e *MissingCrossReferenceError) Error() string {
	return fmt.Sprintf("posted row %d: sku %q has no matching item record", e.Row, e.SKU)
}

// Is implements errors.Is support
func (e *MissingCrossReferenceError) Is(target error) bool {
	return target == ErrNotFound
}

// NewMissingCrossReferenceError creates a new MissingCrossReferenceError
func NewMissingCrossReferenceError(sku string, row int) *MissingCrossReferenceError {
	return &MissingCrossReferenceError{SKU: sku, Row: row}
}

// IncompleteRecordError reports a product record that could not be
// materialized because a required attribute was never supplied.
type IncompleteRecordError struct {
	SKU   string // may be empty when the sku itself is the missing attribute
	Field string
}

// Error implements the error interface
func (e *IncompleteRecordError) Error() string {
	if e.SKU != "" {
		return fmt.Sprintf("incomplete record %s: missing %s", e.SKU, e.Field)
	}
	return fmt.Sprintf("incomplete record: missing %s", e.Field)
}

// Is implements errors.Is support
func (e *IncompleteRecordError) Is(target error) bool {
	return target == ErrIncompleteRecord
}

// NewIncompleteRecordError creates a new IncompleteRecordError
func NewIncompleteRecordError(sku, field string) *IncompleteRecordError {
	return &IncompleteRecordError{SKU: sku, Field: field}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// AutomationError represents a failed step in the fix-up sequence for one
// item. It is scoped to that item; processing of other items is unaffected.
type AutomationError struct {
	SKU  string // vendor sku of the item being fixed
	Step string // fix-up step that failed, e.g. "barcodes", "cost"
	Err  error
}

// Error implements the error interface
func (e *AutomationError) Error() string {
	return fmt.Sprintf("automation failure for %s at step %s: %v", e.SKU, e.Step, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *AutomationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AutomationError) Is(target error) bool {
	return target == ErrAutomation
}

// NewAutomationError creates a new AutomationError
func NewAutomationError(sku, step string, err error) *AutomationError {
	return &AutomationError{SKU: sku, Step: step, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsIncompleteRecord checks if an error is an incomplete record error
func IsIncompleteRecord(err error) bool {
	return errors.Is(err, ErrIncompleteRecord)
}

// IsAutomation checks if an error is an automation failure
func IsAutomation(err error) bool {
	return errors.Is(err, ErrAutomation)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapAutomation wraps an error as an AutomationError
func WrapAutomation(sku, step string, err error) error {
	if err == nil {
		return nil
	}
	return NewAutomationError(sku, step, err)
}
