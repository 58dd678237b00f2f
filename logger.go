package avalform

import (
	"fmt"
	"time"
)

// Logger reports walk progress to the console, the crawler's only
// output channel.
type Logger struct {
	enabled bool
}

// NewLogger creates a new logger.
func NewLogger(enabled bool) *Logger {
	return &Logger{enabled: enabled}
}

// timestamp returns a formatted timestamp.
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// RunStart logs the start of a crawl run.
func (l *Logger) RunStart(runID string, people int) {
	if !l.enabled {
		return
	}
	fmt.Printf("🚀 run %s │ %d person(s) │ %s\n", runID, people, timestamp())
}

// PersonStart prints the banner opening one record's walk.
func (l *Logger) PersonStart(n, total int) {
	if !l.enabled {
		return
	}
	fmt.Println()
	fmt.Printf("┌─────────────────────────────────────────────\n")
	fmt.Printf("│ 🧾 PERSON %d/%d │ %s\n", n, total, timestamp())
	fmt.Printf("└─────────────────────────────────────────────\n")
}

// PersonDone marks one record as submitted.
func (l *Logger) PersonDone(n int) {
	if !l.enabled {
		return
	}
	fmt.Printf("   ✅ person #%d done\n", n)
}

// Step logs the page about to be filled.
func (l *Logger) Step(name string) {
	if !l.enabled {
		return
	}
	fmt.Printf("   ▶ %s\n", name)
}

// Warn logs a recoverable condition, such as a missing control.
func (l *Logger) Warn(msg string) {
	if !l.enabled {
		return
	}
	fmt.Printf("   ⚠️  %s\n", msg)
}

// Error logs a failed action. The walk continues afterwards.
func (l *Logger) Error(context string, err error) {
	if !l.enabled {
		return
	}
	fmt.Printf("   ❌ [%s] %v\n", context, err)
}

// Fatal logs the error that ends the whole run.
func (l *Logger) Fatal(msg string, err error) {
	if !l.enabled {
		return
	}
	fmt.Println()
	fmt.Printf("╔═════════════════════════════════════════════\n")
	fmt.Printf("║ ❌ RUN ABORTED │ %s\n", timestamp())
	fmt.Printf("╠═════════════════════════════════════════════\n")
	fmt.Printf("║ %s\n", msg)
	if err != nil {
		fmt.Printf("║ %v\n", err)
	}
	fmt.Printf("╚═════════════════════════════════════════════\n")
}

// Capture logs the path of a stored page capture.
func (l *Logger) Capture(path string) {
	if !l.enabled {
		return
	}
	fmt.Printf("   📸 %s\n", path)
}

// Prompt prints a message awaiting user input, without a newline.
func (l *Logger) Prompt(msg string) {
	if !l.enabled {
		return
	}
	fmt.Printf("\n%s", msg)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	if !l.enabled {
		return
	}
	fmt.Printf("%s\n", fmt.Sprintf(format, args...))
}
