package shell

import (
	"errors"
	"reflect"
	"testing"
)

func parseLine(t *testing.T, line string, isPipeline bool) (*Stage, error) {
	t.Helper()
	toks := mustTokenize(t, line)
	return ParseStage(toks, isPipeline, MaxArgs)
}

func TestParseStageBasic(t *testing.T) {
	st, err := parseLine(t, "echo hello world", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(st.Args, []string{"echo", "hello", "world"}) {
		t.Errorf("got args %v", st.Args)
	}
	if st.HasInput || st.HasOutput || st.HasError {
		t.Errorf("unexpected redirection flags: %+v", st)
	}
}

func TestParseStageRedirection(t *testing.T) {
	st, err := parseLine(t, "cat < in.txt > out.txt 2> err.txt", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(st.Args, []string{"cat"}) {
		t.Errorf("got args %v", st.Args)
	}
	if !st.HasInput || st.InputPath != "in.txt" {
		t.Errorf("input: %+v", st)
	}
	if !st.HasOutput || st.OutputPath != "out.txt" || st.AppendOut {
		t.Errorf("output: %+v", st)
	}
	if !st.HasError || st.ErrorPath != "err.txt" {
		t.Errorf("error: %+v", st)
	}
}

func TestParseStageAppendWins(t *testing.T) {
	st, err := parseLine(t, "cmd > a.txt >> b.txt", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.OutputPath != "b.txt" || !st.AppendOut {
		t.Errorf("last redirection should win: %+v", st)
	}
}

func TestParseStageMissingRedirectTarget(t *testing.T) {
	cases := []struct {
		line       string
		isPipeline bool
		want       error
	}{
		{"cat <", false, ErrNoInputFile},
		{"cat >", false, ErrNoOutputFile},
		{"cat >", true, ErrNoOutputFileAfterRedirection},
		{"cat 2>", false, ErrNoErrorFile},
	}
	for _, c := range cases {
		_, err := parseLine(t, c.line, c.isPipeline)
		if !errors.Is(err, c.want) {
			t.Errorf("parseLine(%q, pipeline=%v) = %v, want %v", c.line, c.isPipeline, err, c.want)
		}
	}
}

func TestParseStageEmptyAfterRedirection(t *testing.T) {
	_, err := parseLine(t, "< in.txt", false)
	if !errors.Is(err, ErrEmptyCommandAfterRedirection) {
		t.Errorf("got %v, want ErrEmptyCommandAfterRedirection", err)
	}
}

func TestParseStageTooManyArgs(t *testing.T) {
	line := "cmd"
	for i := 0; i < MaxArgs; i++ {
		line += " a"
	}
	_, err := parseLine(t, line, false)
	if !errors.Is(err, ErrTooManyArgs) {
		t.Errorf("got %v, want ErrTooManyArgs", err)
	}
}

func TestParseStageQuotedFilename(t *testing.T) {
	st, err := parseLine(t, `cat < "my file.txt"`, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.InputPath != "my file.txt" {
		t.Errorf("got input path %q", st.InputPath)
	}
}
