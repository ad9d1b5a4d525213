package main

import (
	"errors"
	"testing"
)

func TestInvalidConfig(t *testing.T) {
	tcs := []struct {
		name string
		args []string
	}{
		{
			name: "quiet-verbose",
			args: []string{"--quiet", "--verbose"},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			args := append(strs("affected", "--range", "HEAD~1..HEAD", "src/"), tc.args...)
			t.Logf("args: %q", tc.args)
			err := run(args)
			if err == nil || errors.Is(err, errUnchanged) {
				t.Fatalf("expected args to be invalid, got %v", err)
			} else {
				t.Log(err)
			}
		})
	}
}
