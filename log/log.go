package log

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Level is the current logging level - the maximum level of logs that
// will actually be output. Warnings are level 0, so -1 silences them.
var Level int = 1

// Target is where the logging will be output to. This is stderr so that
// decoded timecodes on stdout can be piped on their own.
var Target io.Writer = os.Stderr

// Enabled reports whether logs at the given level will be output.
func Enabled(level int) bool {
	return Level >= level
}

func Log(level int, v ...any) {
	if Enabled(level) {
		fmt.Fprint(Target, v...)
	}
}

func Ln(level int, v ...any) {
	if Enabled(level) {
		fmt.Fprintln(Target, v...)
	}
}

func F(level int, f string, v ...any) {
	if Enabled(level) {
		fmt.Fprintf(Target, f, v...)
	}
}

func Warn(v ...any) {
	if Enabled(0) {
		fmt.Fprintln(Target, append([]any{"Warning:"}, v...)...)
	}
}

func Warnf(f string, v ...any) {
	if Enabled(0) {
		fmt.Fprintf(Target, "Warning: "+f+"\n", v...)
	}
}

// Time prints the given message, and returns a func that prints its
// arguments followed by the time elapsed since Time was called.
//
// Typical use: defer log.Time(1, "Loading...")(" done in")
func Time(level int, f string, v ...any) func(...any) {
	if !Enabled(level) {
		return func(...any) {}
	}
	fmt.Fprintf(Target, f, v...)
	start := time.Now()
	return func(v ...any) {
		dur := time.Since(start).Round(time.Microsecond)
		fmt.Fprintln(Target, append(v, dur)...)
	}
}
