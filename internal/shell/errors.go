// Package shell implements the quote-aware tokenizer, pipeline validator,
// per-stage parser, and globbing expander for the server's shell
// sublanguage (spec §4.1-§4.4).
package shell

import "errors"

// Parse and pipeline-shape errors. Each maps to the exact user-visible
// string the caller sends back to the client; see Message below for how
// these are rendered.
var (
	ErrUnclosedQuotes               = errors.New("unclosed quotes")
	ErrNoInputFile                  = errors.New("input file not specified")
	ErrNoOutputFile                 = errors.New("output file not specified")
	ErrNoOutputFileAfterRedirection = errors.New("output file not specified after redirection")
	ErrNoErrorFile                  = errors.New("error output file not specified")
	ErrEmptyCommandAfterRedirection = errors.New("command parsing failed")
	ErrTooManyArgs                  = errors.New("too many arguments")
	ErrSyntax                       = errors.New("command parsing failed")

	ErrStartsWithPipe     = errors.New("invalid pipeline: starts with pipe")
	ErrEndsWithPipe       = errors.New("command missing after pipe")
	ErrEmptyStageInPipe   = errors.New("invalid pipeline: empty command between pipes")
	ErrTooManyStages      = errors.New("too many pipeline stages")
	ErrCommandTooLong     = errors.New("command line too long")
)

// Message renders the exact client-visible line for a parse/validation
// error, per spec §7. Errors not covered by the table fall back to their
// Go error string.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrUnclosedQuotes):
		return "Unclosed quotes.\n"
	case errors.Is(err, ErrNoInputFile):
		return "Input file not specified.\n"
	case errors.Is(err, ErrNoOutputFileAfterRedirection):
		return "Output file not specified after redirection.\n"
	case errors.Is(err, ErrNoOutputFile):
		return "Output file not specified.\n"
	case errors.Is(err, ErrNoErrorFile):
		return "Error output file not specified.\n"
	case errors.Is(err, ErrEmptyCommandAfterRedirection):
		return "Command parsing failed.\n"
	case errors.Is(err, ErrTooManyArgs):
		return "Too many arguments.\n"
	case errors.Is(err, ErrStartsWithPipe):
		return "Invalid pipeline: starts with pipe.\n"
	case errors.Is(err, ErrEndsWithPipe):
		return "Command missing after pipe.\n"
	case errors.Is(err, ErrEmptyStageInPipe):
		return "Invalid pipeline: empty command between pipes.\n"
	case errors.Is(err, ErrTooManyStages):
		return "Too many pipeline stages.\n"
	case errors.Is(err, ErrCommandTooLong):
		return "Command line too long.\n"
	default:
		return err.Error() + "\n"
	}
}
