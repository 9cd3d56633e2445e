// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package colors

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

var Red = "\033[31;1m"
var Yellow = "\033[33;1m"

var Clear = "\033[0;0m"

// Sprint paints args unless colors are turned off with NO_COLOR
func Sprint(color string, args ...interface{}) string {
	if os.Getenv("NO_COLOR") != "" {
		return fmt.Sprint(args...)
	}
	return color + fmt.Sprint(args...) + Clear
}

// Fprint paints only when out is a terminal
func Fprint(out *os.File, color string, args ...interface{}) {
	if !term.IsTerminal(int(out.Fd())) {
		fmt.Fprint(out, args...)
		return
	}
	fmt.Fprint(out, Sprint(color, args...))
}
