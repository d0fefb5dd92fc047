package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/hotelcal/internal/inventory"
	"github.com/julianstephens/hotelcal/internal/keyring"
	"github.com/julianstephens/hotelcal/internal/logger"
	"github.com/julianstephens/hotelcal/internal/storage"
	"github.com/julianstephens/hotelcal/internal/utils"
)

var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotInitialized, "run 'hotelcal init' to create a sample feed, or pass --source sample"},
	{utils.ErrInvalidDateKey, "dates are written as YYYY-MM-DD, for example 2026-10-19"},
	{inventory.ErrInvalidNumber, "enter a whole number such as 8 or 3500"},
	{inventory.ErrNegativeValue, "counts and rates cannot be negative"},
	{inventory.ErrUnknownRoom, "list room type ids with 'hotelcal grid'"},
	{storage.ErrEmbeddedCredentials, "store the connection string with 'hotelcal keyring set' and use --source keyring"},
	{keyring.ErrNotFound, "store a connection string with 'hotelcal keyring set'"},
	{keyring.ErrKeyringUnavailable, "set PGPASSWORD or use a .pgpass file instead"},
}

// Hint returns a short suggestion for a known error, or "".
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix.
// Known errors get their hint on a second line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if hint := Hint(err); hint != "" {
		return fmt.Sprintf("Error: %v\nHint: %s", err, hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
