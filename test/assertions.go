// Package test holds assertions shared by the package tests
package test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// AssertWantErr fails t when err does not carry the message wantErr, or
// when wantErr is set and err is nil. It returns true whenever an error
// was expected or received, so the caller can stop checking results.
func AssertWantErr(err error, wantErr, caller string, t *testing.T) bool {
	t.Helper()
	if err != nil {
		if wantErr != err.Error() {
			t.Errorf("%s error = %v, wantErr %q", caller, err, wantErr)
		}

		return true
	} else if wantErr != "" {
		t.Errorf("%s expected error %q, did not receive an error", caller, wantErr)
		return true
	}

	return false
}

// AssertDiff fails t with a diff when want and have differ and reports
// whether they did
func AssertDiff(want, have interface{}, caller string, t *testing.T, opts ...cmp.Option) bool {
	t.Helper()
	if diff := cmp.Diff(want, have, opts...); diff != "" {
		t.Errorf("%s mismatch (-want +have):\n%s", caller, diff)
		return true
	}
	return false
}
