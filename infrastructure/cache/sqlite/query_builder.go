// ABOUTME: Parameterized SQL builder for the SQLite cache table
// ABOUTME: Validates identifiers and cache keys before they reach the database

package sqlite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Logger is the slice of interfaces.Logger this package needs.
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

var (
	safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

	// Page keys embed full URLs, so the limit is generous.
	maxKeyLength   = 2048
	maxValueLength = 2 * 1024 * 1024
	maxNameLength  = 64

	allowedOperators = map[string]bool{"=": true, "!=": true, ">": true, "<": true, ">=": true, "<=": true}

	suspiciousPatterns = []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}
)

// QueryBuilder assembles a statement whose values are always bound as parameters.
// The first invalid identifier poisons the builder and Build reports it.
type QueryBuilder struct {
	parts  []string
	params []interface{}
	err    error
}

// NewQueryBuilder creates a new query builder instance
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

func validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("name too long: %s (max %d characters)", name, maxNameLength)
	}
	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}
	return nil
}

func (qb *QueryBuilder) check(names ...string) bool {
	if qb.err != nil {
		return false
	}
	for _, n := range names {
		if err := validateName(n); err != nil {
			qb.err = err
			return false
		}
	}
	return true
}

// Select starts a SELECT of the given columns, or * when none are named.
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	if !qb.check(columns...) {
		return qb
	}
	if len(columns) == 0 {
		qb.parts = append(qb.parts, "SELECT *")
	} else {
		qb.parts = append(qb.parts, "SELECT "+strings.Join(columns, ", "))
	}
	return qb
}

// From adds FROM clause
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	if qb.check(table) {
		qb.parts = append(qb.parts, "FROM "+table)
	}
	return qb
}

// Where adds a parameterized condition, joined with AND after the first.
func (qb *QueryBuilder) Where(column, operator string, value interface{}) *QueryBuilder {
	if !qb.check(column) {
		return qb
	}
	if !allowedOperators[operator] {
		qb.err = fmt.Errorf("operator not allowed: %q", operator)
		return qb
	}

	keyword := "WHERE"
	for _, p := range qb.parts {
		if strings.HasPrefix(p, "WHERE ") {
			keyword = "AND"
			break
		}
	}
	qb.parts = append(qb.parts, keyword+" "+column+" "+operator+" ?")
	qb.params = append(qb.params, value)
	return qb
}

// InsertOrReplace builds an INSERT OR REPLACE query
func (qb *QueryBuilder) InsertOrReplace(table string) *QueryBuilder {
	if qb.check(table) {
		qb.parts = append(qb.parts, "INSERT OR REPLACE INTO "+table)
	}
	return qb
}

// Values adds the column list and one placeholder per value.
func (qb *QueryBuilder) Values(columns []string, values []interface{}) *QueryBuilder {
	if len(columns) != len(values) {
		qb.err = fmt.Errorf("%d columns but %d values", len(columns), len(values))
		return qb
	}
	if len(columns) == 0 || !qb.check(columns...) {
		return qb
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	qb.parts = append(qb.parts, "("+strings.Join(columns, ", ")+") VALUES ("+placeholders+")")
	qb.params = append(qb.params, values...)
	return qb
}

// Delete builds a DELETE query
func (qb *QueryBuilder) Delete(table string) *QueryBuilder {
	if qb.check(table) {
		qb.parts = append(qb.parts, "DELETE FROM "+table)
	}
	return qb
}

// Build returns the statement and its bound parameters.
func (qb *QueryBuilder) Build() (string, []interface{}, error) {
	if qb.err != nil {
		return "", nil, qb.err
	}
	return strings.Join(qb.parts, " "), qb.params, nil
}

// ValidateKey rejects unusable keys and warns about keys that look like SQL.
// Parameter binding keeps the latter harmless, so they are not rejected.
func ValidateKey(key string, logger Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}
	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	if logger == nil {
		return nil
	}
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) {
			logger.Warn("Suspicious pattern detected in cache key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": truncateKey(key),
			})
		}
	}
	return nil
}

func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}

// ValidateValue validates cache value
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}
	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}
	return nil
}

// statements holds the prepared SQL text for one cache table.
type statements struct {
	get, set, del, cleanup string
}

func buildStatements(table string) (statements, error) {
	var s statements
	var err error

	if s.get, _, err = NewQueryBuilder().Select("value").From(table).
		Where("key", "=", nil).Where("expiry", ">", nil).Build(); err != nil {
		return s, err
	}
	if s.set, _, err = NewQueryBuilder().InsertOrReplace(table).
		Values([]string{"key", "value", "expiry"}, []interface{}{nil, nil, nil}).Build(); err != nil {
		return s, err
	}
	if s.del, _, err = NewQueryBuilder().Delete(table).Where("key", "=", nil).Build(); err != nil {
		return s, err
	}
	s.cleanup, _, err = NewQueryBuilder().Delete(table).Where("expiry", "<=", nil).Build()
	return s, err
}
