// ABOUTME: Error taxonomy for search aggregation and its HTTP surface
// ABOUTME: Transport and parse failures stop at the single-source boundary; they never reach callers

package errors

import (
	"errors"
	"fmt"
)

// TransportError is a network failure, timeout or non-2xx response from a source
type TransportError struct {
	Source     string
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error from %s: status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("transport error from %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError means a response had an unexpected shape
type ParseError struct {
	Source string
	Reason string
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error from %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse error from %s: %s", e.Source, e.Reason)
}

// Unwrap returns the underlying cause
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NoResultsError marks a well-formed response without results.
// It is recorded on outcomes, never raised to callers.
type NoResultsError struct {
	Source string
}

// Error implements the error interface
func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no results from %s", e.Source)
}

// LowQualityContent marks a login, error or navigation page.
// It is a classification rather than a failure.
type LowQualityContent struct {
	Source string
	Reason string
}

// Error implements the error interface
func (e *LowQualityContent) Error() string {
	return fmt.Sprintf("low quality content from %s: %s", e.Source, e.Reason)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an error from an external API such as the reading proxy
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// IsTransport checks if an error is a TransportError
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// IsNoResults checks if an error is a NoResultsError
func IsNoResults(err error) bool {
	var target *NoResultsError
	return errors.As(err, &target)
}

// IsLowQuality checks if an error is a LowQualityContent classification
func IsLowQuality(err error) bool {
	var target *LowQualityContent
	return errors.As(err, &target)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var target *ExternalAPIError
	return errors.As(err, &target)
}

// IsExpected reports whether err is an ordinary degradation (no results or low quality
// content) that should be logged quietly
func IsExpected(err error) bool {
	return err == nil || IsNoResults(err) || IsLowQuality(err)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
