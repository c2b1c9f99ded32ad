// Package ui holds ANSI styling helpers for terminal summaries.
package ui

import (
	"fmt"
	"strconv"
)

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

// Convenience helpers to build styled strings. Keep minimal so tests can use
// constants directly.
func Bold(s string) string {
	return ColorBold + s + ColorReset
}

func Heading(s string) string {
	return ColorBold + ColorCyan + s + ColorReset
}

func Success(s string) string {
	return ColorGreen + s + ColorReset
}

func Dim(s string) string {
	return ColorDim + s + ColorReset
}

func Error(s string) string {
	return ColorRed + s + ColorReset
}

// Swatch renders a hex color as a small filled block in that color followed
// by the hex code, using 24-bit ANSI. Non-hex input is returned unchanged.
func Swatch(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return hex
	}
	return fmt.Sprintf("\033[48;2;%d;%d;%dm  %s %s", r, g, b, ColorReset, hex)
}
