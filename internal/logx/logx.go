// Package logx is a minimal stderr logger, timestamped so output from a
// multi-stage CLI run stays attributable to a point in time.
package logx

import (
	"fmt"
	"os"
	"time"
)

// Logf writes a timestamped progress line to stderr.
func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s "+format+"\n", append([]any{time.Now().Format("15:04:05")}, args...)...)
}

// Warnf writes a timestamped warning line to stderr.
func Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s warning: "+format+"\n", append([]any{time.Now().Format("15:04:05")}, args...)...)
}
