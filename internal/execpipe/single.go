package execpipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/nextlevelbuilder/shelld/internal/config"
	"github.com/nextlevelbuilder/shelld/internal/shell"
)

// ExecuteSingle runs a single parsed stage and returns its combined
// stdout+stderr as a single buffer, per spec §4.5. It never returns a Go
// error to the caller: parse/validation failures are handled upstream,
// and system failures (pipe/fork/exec setup) are logged and yield an
// empty buffer, matching spec §7's propagation policy. cfg supplies the
// capture buffer's initial capacity (spec §6); a nil cfg uses
// config.Default().
func ExecuteSingle(ctx context.Context, st *shell.Stage, cfg *config.Config) []byte {
	if cfg == nil {
		cfg = config.Default()
	}
	var inputFile, outputFile, errorFile *os.File
	defer func() {
		for _, f := range []*os.File{inputFile, outputFile, errorFile} {
			if f != nil {
				f.Close()
			}
		}
	}()

	if st.HasInput {
		f, err := openInput(st.InputPath)
		if err != nil {
			// Spec §4.6: file-not-found on an input redirection always
			// surfaces as this literal message on the capture stream,
			// regardless of whether an error file was also requested —
			// the command is never started.
			return []byte("File not found.\n")
		}
		inputFile = f
	}
	if st.HasOutput {
		f, err := openOutput(st.OutputPath, st.AppendOut)
		if err != nil {
			slog.Error("execpipe: open output redirection failed", "path", st.OutputPath, "error", err)
			return nil
		}
		outputFile = f
	}
	if st.HasError {
		f, err := openError(st.ErrorPath)
		if err != nil {
			slog.Error("execpipe: open error redirection failed", "path", st.ErrorPath, "error", err)
			return nil
		}
		errorFile = f
	}

	r, w, err := os.Pipe()
	if err != nil {
		slog.Error("execpipe: capture pipe failed", "error", err)
		return nil
	}
	defer r.Close()

	cmd := exec.CommandContext(ctx, st.Args[0], st.Args[1:]...)
	if inputFile != nil {
		cmd.Stdin = inputFile
	}
	if outputFile != nil {
		cmd.Stdout = outputFile
	} else {
		cmd.Stdout = w
	}
	if errorFile != nil {
		cmd.Stderr = errorFile
	} else {
		cmd.Stderr = w
	}

	if err := cmd.Start(); err != nil {
		w.Close()
		if notFound(err) {
			msg := fmt.Sprintf("Command not found: %s\n", st.Args[0])
			if errorFile != nil {
				errorFile.WriteString(msg)
				return nil
			}
			return []byte(msg)
		}
		slog.Error("execpipe: start failed", "command", st.Args[0], "error", err)
		return nil
	}
	w.Close()

	output := readCapture(r, cfg.InitialCaptureBuffer)
	_ = cmd.Wait() // exit status is not surfaced to the client; only output is.
	return output
}

// notFound reports whether err is the "binary not found on PATH" flavor
// of *exec.Error, the Go analog of execvp's ENOENT failure.
func notFound(err error) bool {
	var execErr *exec.Error
	return errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound)
}
