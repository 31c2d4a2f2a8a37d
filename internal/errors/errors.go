package errors

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/habithub/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// FieldErrors renders per-field validation messages, one per line, in the
// order given by fields.
func FieldErrors(fields []string, errs map[string]string) string {
	var b strings.Builder
	for _, f := range fields {
		if msg, ok := errs[f]; ok {
			fmt.Fprintf(&b, "  %s: %s\n", f, msg)
		}
	}
	return b.String()
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
