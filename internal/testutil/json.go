package testutil

import (
	"encoding/json"
	"reflect"
	"testing"
)

// AssertJSONEqual fails the test when want and got do not decode to the same value.
func AssertJSONEqual(t testing.TB, want, got string) {
	t.Helper()
	var wantValue, gotValue any
	if err := json.Unmarshal([]byte(want), &wantValue); err != nil {
		t.Fatalf("invalid expected JSON %q: %v", want, err)
	}
	if err := json.Unmarshal([]byte(got), &gotValue); err != nil {
		t.Fatalf("invalid JSON %q: %v", got, err)
	}
	if !reflect.DeepEqual(wantValue, gotValue) {
		t.Errorf("JSON mismatch\nwant: %s\ngot:  %s", want, got)
	}
}
