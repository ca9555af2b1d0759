//go:build !windows

package colors

import "fmt"

// EnableColor is a no-op on non-windows systems because they support ANSI escape codes
func EnableColor() {}

// Colorize returns the string s wrapped in ANSI code c
// Source: https://github.com/rs/zerolog/blob/4fff5db29c3403bc26dee9895e12a108aacc0203/console.go
func Colorize(s any, c Color) string {
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
