package app

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
)

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"Empty", []string{}, false},
		{"NoVersionFlag", []string{"-n", "100"}, false},
		{"Long", []string{"--version"}, true},
		{"Short", []string{"-V"}, true},
		{"SingleDash", []string{"-version"}, true},
		{"AfterOtherFlags", []string{"-server", "-port", "9000", "--version"}, true},
		{"SimilarName", []string{"--verbose"}, false},
		{"AsFlagValue", []string{"-kind", "version"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HasVersionFlag(tc.args); got != tc.expected {
				t.Errorf("HasVersionFlag(%v) = %v, want %v", tc.args, got, tc.expected)
			}
		})
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)

	output := buf.String()
	for _, want := range []string{"ratenum " + Version, "Commit:", "Built:", "Go version: " + runtime.Version(), "OS/Arch:    " + runtime.GOOS} {
		if !strings.Contains(output, want) {
			t.Errorf("PrintVersion output missing %q:\n%s", want, output)
		}
	}
}

func TestGetVersionInfo(t *testing.T) {
	t.Parallel()
	info := GetVersionInfo()

	if info.Version != Version || info.Commit != Commit || info.BuildDate != BuildDate {
		t.Errorf("GetVersionInfo() = %+v, want the build variables", info)
	}
	if info.GoVersion != runtime.Version() || info.OS != runtime.GOOS || info.Arch != runtime.GOARCH {
		t.Errorf("GetVersionInfo() = %+v, want the runtime values", info)
	}
}
