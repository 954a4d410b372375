package cli

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiEscapes matches the color escape sequences emitted by fatih/color.
var ansiEscapes = regexp.MustCompile("\x1b\\[[0-9;]*m")

// EscapeAwareRuneCountInString counts the runes of str ignoring the
// ANSI escape sequences.
func EscapeAwareRuneCountInString(str string) int {
	return utf8.RuneCountInString(ansiEscapes.ReplaceAllString(str, ""))
}

// RightPad pads str with spaces until it is length runes long.
func RightPad(str string, length int) string {
	return str + strings.Repeat(" ", max(0, length-EscapeAwareRuneCountInString(str)))
}
