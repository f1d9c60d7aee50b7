//go:build windows

package main

import (
	"syscall"
)

// manageConsole detaches the window from its console unless debug output
// was asked for.
func manageConsole(debug bool) {
	if !debug {
		kernel32 := syscall.NewLazyDLL("kernel32.dll")
		freeConsole := kernel32.NewProc("FreeConsole")
		freeConsole.Call()
	}
}
