//go:build windows

package colors

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

var enabled bool

// EnableColor queries the console mode of stderr (where console logs go) and enables ANSI output only if virtual
// terminal processing is available.
func EnableColor() {
	var mode uint32
	err := windows.GetConsoleMode(windows.Handle(os.Stderr.Fd()), &mode)
	enabled = err == nil && mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0
}

// Colorize returns the string s wrapped in ANSI code c if the Windows console supports it
func Colorize(s any, c Color) string {
	if !enabled {
		return fmt.Sprintf("%v", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
