package execpipe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/nextlevelbuilder/shelld/internal/config"
	"github.com/nextlevelbuilder/shelld/internal/shell"
)

// pipeEnds is one inter-stage connector: stage i's stdout feeds stage i+1's
// stdin.
type pipeEnds struct {
	r, w *os.File
}

// ExecutePipeline runs a chain of already-parsed stages connected by pipes
// and returns their combined output as a single buffer: every stage's
// unredirected stderr and the final stage's unredirected stdout share one
// capture stream, per spec §4.6. Like ExecuteSingle it never surfaces a Go
// error; system failures are logged and degrade to a partial or empty
// buffer. cfg supplies the capture buffer's initial capacity (spec §6); a
// nil cfg uses config.Default().
func ExecutePipeline(ctx context.Context, stages []*shell.Stage, cfg *config.Config) []byte {
	if cfg == nil {
		cfg = config.Default()
	}
	n := len(stages)

	links := make([]pipeEnds, n-1)
	for i := range links {
		r, w, err := os.Pipe()
		if err != nil {
			slog.Error("execpipe: inter-stage pipe failed", "stage", i, "error", err)
			closeLinks(links[:i])
			return nil
		}
		links[i] = pipeEnds{r: r, w: w}
	}

	capR, capW, err := os.Pipe()
	if err != nil {
		slog.Error("execpipe: capture pipe failed", "error", err)
		closeLinks(links)
		return nil
	}

	var started []*exec.Cmd
	var opened []*os.File // redirection files to close once every stage is started

	// abortStage is called whenever stage i never becomes a running process:
	// its outgoing link gets EOF immediately and its incoming link (if any)
	// is drained so the upstream stage never blocks writing into a pipe
	// nobody reads.
	abortStage := func(i int) {
		if i < n-1 {
			links[i].w.Close()
			links[i].w = nil
		}
		if i > 0 {
			drainAndClose(links[i-1].r)
			links[i-1].r = nil
		}
	}

	for i, st := range stages {
		var stdinFile, stdoutFile, stderrFile *os.File

		switch {
		case st.HasInput:
			f, err := openInput(st.InputPath)
			if err != nil {
				// File-not-found on input, per spec §4.6: always surfaces
				// on the capture stream, regardless of any error file.
				capW.Write([]byte("File not found.\n"))
				abortStage(i)
				continue
			}
			stdinFile = f
			opened = append(opened, f)
		case i == 0:
			f, err := os.Open(os.DevNull)
			if err == nil {
				stdinFile = f
				opened = append(opened, f)
			}
		}

		if st.HasOutput {
			f, err := openOutput(st.OutputPath, st.AppendOut)
			if err != nil {
				slog.Error("execpipe: open output redirection failed", "stage", i, "path", st.OutputPath, "error", err)
				abortStage(i)
				continue
			}
			stdoutFile = f
			opened = append(opened, f)
		}
		if st.HasError {
			f, err := openError(st.ErrorPath)
			if err != nil {
				slog.Error("execpipe: open error redirection failed", "stage", i, "path", st.ErrorPath, "error", err)
				abortStage(i)
				continue
			}
			stderrFile = f
			opened = append(opened, f)
		}

		cmd := exec.CommandContext(ctx, st.Args[0], st.Args[1:]...)
		switch {
		case stdinFile != nil:
			cmd.Stdin = stdinFile
		case i > 0:
			cmd.Stdin = links[i-1].r
		}
		switch {
		case stdoutFile != nil:
			cmd.Stdout = stdoutFile
		case i < n-1:
			cmd.Stdout = links[i].w
		default:
			cmd.Stdout = capW
		}
		if stderrFile != nil {
			cmd.Stderr = stderrFile
		} else {
			cmd.Stderr = capW
		}

		if err := cmd.Start(); err != nil {
			if notFound(err) {
				fmt.Fprintf(capW, "Command not found in pipe sequence: %s\n", st.Args[0])
			} else {
				slog.Error("execpipe: start failed", "stage", i, "command", st.Args[0], "error", err)
			}
			abortStage(i)
			continue
		}
		started = append(started, cmd)
	}

	closeLinks(links)
	capW.Close()
	for _, f := range opened {
		f.Close()
	}

	output := readCapture(capR, cfg.InitialCaptureBuffer)
	capR.Close()
	for _, cmd := range started {
		_ = cmd.Wait()
	}
	return output
}

func drainAndClose(r *os.File) {
	go func() {
		io.Copy(io.Discard, r)
		r.Close()
	}()
}

func closeLinks(links []pipeEnds) {
	for _, l := range links {
		if l.r != nil {
			l.r.Close()
		}
		if l.w != nil {
			l.w.Close()
		}
	}
}
