package safe

import (
	"log/slog"
	"runtime/debug"
	"strings"
)

// Run executes fn and logs a recovered panic instead of crashing the process.
func Run(fn func()) {
	RunWithLog(fn, "safe.Run")
}

// RunWithLog is a wrapper that executes fn and logs any panic with full stack trace
func RunWithLog(fn func(), component string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				slog.Any("recover", r),
				slog.String("component", component),
				slog.String("stack", stackTrace(20)),
			)
		}
	}()

	fn()
}

// Go runs fn in a new goroutine guarded by RunWithLog.
func Go(fn func(), component string) {
	go RunWithLog(fn, component)
}

// stackTrace keeps at most maxLines non-empty lines of the current stack.
func stackTrace(maxLines int) string {
	lines := strings.Split(string(debug.Stack()), "\n")

	formatted := []string{"Stack trace:"}
	for _, line := range lines {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if len(formatted) > maxLines {
			formatted = append(formatted, "... (truncated)")
			break
		}
		formatted = append(formatted, "  "+line)
	}
	return strings.Join(formatted, "\n")
}
