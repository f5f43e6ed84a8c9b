package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/xerrors"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // A scenario step or an invariant failed
	ExitCommandError = 2 // Bad arguments, unreadable documents or stores
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if xerrors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the JSON envelope of every command's output.
type CLIResponse struct {
	Status string      `json:"status"` // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Text renderers write the human-readable form of a result.
type textRenderer interface {
	renderText(w io.Writer) error
}

// Success outputs a result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	return f.write("ok", data, "")
}

// Failure outputs a result that accompanies an error, such as a partial scenario report.
func (f *OutputFormatter) Failure(data interface{}, err error) error {
	return f.write("error", data, err.Error())
}

func (f *OutputFormatter) write(status string, data interface{}, message string) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: status, Data: data, Error: message})
	}

	if r, ok := data.(textRenderer); ok {
		if err := r.renderText(f.Writer); err != nil {
			return err
		}
	} else if data != nil {
		if _, err := fmt.Fprintln(f.Writer, data); err != nil {
			return err
		}
	}
	if message != "" {
		_, err := fmt.Fprintf(f.Writer, "Error: %s\n", message)
		return err
	}
	return nil
}
