package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/idilsaglam/pantry/internal/expiry"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray    = "\033[90m"
	fgGreen   = "\033[32m"
	fgYellow  = "\033[33m"
	fgBlue    = "\033[34m"
	fgRed     = "\033[31m"
	fgMagenta = "\033[35m"

	symCheck = "✔"
	symCross = "✖"
)

// Output sinks; tests swap them for buffers.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var (
	forceColor   bool
	disableColor bool
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

func isTTY() bool {
	f, ok := Stdout.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func C(color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

func OK(msg string)   { fmt.Fprintln(Stdout, C(current.Success, symCheck+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(Stderr, C(current.Error, symCross+" "+msg)) }

// Badge renders an expiration label in its severity colour.
func Badge(st expiry.Status) string {
	return C(SeverityColor(st.Severity), st.Label)
}

func SeverityColor(s expiry.Severity) string {
	switch s {
	case expiry.Expired, expiry.Today:
		return current.Error
	case expiry.Tomorrow, expiry.Soon:
		return current.Pending
	case expiry.Week:
		return current.Accent
	default:
		return current.Muted
	}
}
