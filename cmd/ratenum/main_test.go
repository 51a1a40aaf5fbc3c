package main

import (
	"testing"

	apperrors "github.com/agbru/ratenum/internal/errors"
)

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"Version", []string{"ratenum", "-server", "-V"}, apperrors.ExitSuccess},
		{"Help", []string{"ratenum", "-h"}, apperrors.ExitSuccess},
		{"UnknownFlag", []string{"ratenum", "-bogus"}, apperrors.ExitErrorConfig},
		{"AllWithoutAt", []string{"ratenum", "-kind", "all"}, apperrors.ExitErrorConfig},
		{"Quiet", []string{"ratenum", "-n", "1", "-q"}, apperrors.ExitSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
