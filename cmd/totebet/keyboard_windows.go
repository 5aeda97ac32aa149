//go:build windows

package main

import (
	"os"

	"golang.org/x/term"
)

// listenForKeyboard reads keys from the console. Each key needs Enter since
// the console stays in line mode.
func listenForKeyboard(s *shortcuts) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		if s.handleKey(buf[0]) {
			return
		}
	}
}
