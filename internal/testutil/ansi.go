// Package testutil holds helpers shared by the test suites.
package testutil

import "regexp"

// ansiRegex matches CSI sequences: ESC [ parameters, then a final letter.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes the color codes the themes emit, so tests can
// compare plain text.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
