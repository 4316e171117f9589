/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package params

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
)

// Extract returns args[name] as a T. Numbers decoded from JSON arrive as
// float64 (or json.Number) and are converted to integer types when they
// hold a whole value.
func Extract[T any](args map[string]any, name string) (T, error) {
	var zero T
	value, ok := args[name]
	if !ok {
		return zero, fmt.Errorf("%s parameter is required", name)
	}
	return convert[T](name, value)
}

// ExtractOptional is Extract with a fallback for absent or null values.
func ExtractOptional[T any](args map[string]any, name string, fallback T) (T, error) {
	value, ok := args[name]
	if !ok || value == nil {
		return fallback, nil
	}
	return convert[T](name, value)
}

func convert[T any](name string, value any) (T, error) {
	var zero T
	if v, ok := value.(T); ok {
		return v, nil
	}

	var f float64
	switch n := value.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return zero, fmt.Errorf("%s parameter is not a number: %w", name, err)
		}
		f = parsed
	default:
		return zero, fmt.Errorf("%s parameter must be of type %T, got %T", name, zero, value)
	}

	switch any(zero).(type) {
	case int, int32, int64:
		if f != math.Trunc(f) {
			return zero, fmt.Errorf("%s parameter must be a whole number, got %v", name, f)
		}
	}
	switch any(zero).(type) {
	case int:
		return any(int(f)).(T), nil
	case int32:
		return any(int32(f)).(T), nil
	case int64:
		return any(int64(f)).(T), nil
	case float64:
		return any(f).(T), nil
	}
	return zero, fmt.Errorf("%s parameter must be of type %T, got %T", name, zero, value)
}

// Error builds the response map a handler returns to the model on failure.
func Error(format string, args ...any) map[string]any {
	return map[string]any{"error": fmt.Sprintf(format, args...)}
}

// ErrorWithContext is Error with extra fields for the model to act on.
func ErrorWithContext(err error, context map[string]any) map[string]any {
	resp := map[string]any{"error": err.Error()}
	maps.Copy(resp, context)
	return resp
}

// IsError reports whether resp was built by Error or ErrorWithContext.
func IsError(resp map[string]any) bool {
	_, ok := resp["error"]
	return ok
}
