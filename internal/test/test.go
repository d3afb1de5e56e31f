// Package test provides testing utilities for the minijs packages.
//
// This follows esbuild's testing patterns with helper functions
// for assertions, diffs, and common test patterns.
package test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/sirkon/deepequal"
)

// AssertEqual checks if two values are equal and reports a test error if not.
func AssertEqual[T comparable](t *testing.T, actual, expected T) {
	t.Helper()
	if actual != expected {
		t.Errorf("\nexpected: %v\nactual:   %v", expected, actual)
	}
}

// AssertEqualWithDiff checks if two strings are equal and shows a diff if not.
func AssertEqualWithDiff(t *testing.T, actual, expected string) {
	t.Helper()
	if actual != expected {
		diff := Diff(expected, actual)
		t.Errorf("\n%s", diff)
	}
}

// AssertDeepEqual compares structured values and prints both side by side
// when they differ.
func AssertDeepEqual(t *testing.T, name string, actual, expected any) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		deepequal.SideBySide(t, name, expected, actual)
	}
}

// Diff produces a line-by-line diff between two strings.
// Shows context around differences with +/- prefixes.
func Diff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var result strings.Builder
	result.WriteString("--- expected\n+++ actual\n")

	maxLines := max(len(expectedLines), len(actualLines))
	for i := 0; i < maxLines; i++ {
		var expLine, actLine string
		if i < len(expectedLines) {
			expLine = expectedLines[i]
		}
		if i < len(actualLines) {
			actLine = actualLines[i]
		}

		if expLine != actLine {
			if i < len(expectedLines) {
				result.WriteString(fmt.Sprintf("-%s\n", expLine))
			}
			if i < len(actualLines) {
				result.WriteString(fmt.Sprintf("+%s\n", actLine))
			}
		} else {
			result.WriteString(fmt.Sprintf(" %s\n", expLine))
		}
	}

	return result.String()
}

// ExpectPanic runs fn and returns the recovered value, failing the test if
// fn returns normally.
func ExpectPanic(t *testing.T, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Errorf("expected a panic")
		}
	}()
	fn()
	return nil
}
