package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/routine/internal/logger"
	"github.com/julianstephens/routine/internal/scheduler"
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

// UserMessage turns a scheduler rejection into the alert text shown to the
// user. Other errors fall back to Format.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, scheduler.ErrInvalidTime):
		return "Invalid Time: End time must be after start time"
	case errors.Is(err, scheduler.ErrCollision):
		return "Collision: There is already an activity scheduled during this time."
	case errors.Is(err, scheduler.ErrOutOfRange):
		return "Out of Range: Moving the conflicting activities would push them past midnight."
	case errors.Is(err, scheduler.ErrNotFound):
		return "Not Found: No activity with that id exists."
	}
	return Format(err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", UserMessage(err))
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
