package shell

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenizeWords(t *testing.T) {
	toks, err := Tokenize("echo  hello   world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Token{{Value: "echo"}, {Value: "hello"}, {Value: "world"}}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("got %#v, want %#v", toks, want)
	}
}

func TestTokenizeSingleQuote(t *testing.T) {
	toks, err := Tokenize(`echo 'a b  c'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Token{{Value: "echo"}, {Value: "a b  c", WasQuoted: true}}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("got %#v, want %#v", toks, want)
	}
}

func TestTokenizeDoubleQuoteEscapes(t *testing.T) {
	toks, err := Tokenize(`echo "a\"b\\c"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Token{{Value: "echo"}, {Value: `a"b\c`, WasQuoted: true}}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("got %#v, want %#v", toks, want)
	}
}

func TestTokenizeUnclosedQuote(t *testing.T) {
	for _, line := range []string{`echo 'unterminated`, `echo "unterminated`} {
		if _, err := Tokenize(line); !errors.Is(err, ErrUnclosedQuotes) {
			t.Errorf("Tokenize(%q) error = %v, want ErrUnclosedQuotes", line, err)
		}
	}
}

func TestTokenizeTwoCharOperators(t *testing.T) {
	toks, err := Tokenize("cmd 2> errs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Token{{Value: "cmd"}, {Value: "2>"}, {Value: "errs"}}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("got %#v, want %#v", toks, want)
	}

	toks, err = Tokenize("cmd >> out")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = []Token{{Value: "cmd"}, {Value: ">>"}, {Value: "out"}}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("got %#v, want %#v", toks, want)
	}
}

func TestTokenizePipeAdjacency(t *testing.T) {
	toks, err := Tokenize("a||b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Token{{Value: "a"}, {Value: "|"}, {Value: "|"}, {Value: "b"}}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("got %#v, want %#v", toks, want)
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	lines := []string{
		`echo hello`,
		`cat < in.txt > out.txt`,
		`grep foo | wc -l`,
		`echo 'a b' "c d"`,
	}
	for _, line := range lines {
		toks, err := Tokenize(line)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", line, err)
		}
		var rebuilt string
		for i, tk := range toks {
			if i > 0 {
				rebuilt += " "
			}
			if tk.WasQuoted {
				rebuilt += "'" + tk.Value + "'"
			} else {
				rebuilt += tk.Value
			}
		}
		toks2, err := Tokenize(rebuilt)
		if err != nil {
			t.Fatalf("re-Tokenize(%q): %v", rebuilt, err)
		}
		var vals1, vals2 []string
		for _, tk := range toks {
			vals1 = append(vals1, tk.Value)
		}
		for _, tk := range toks2 {
			vals2 = append(vals2, tk.Value)
		}
		if !reflect.DeepEqual(vals1, vals2) {
			t.Errorf("round-trip mismatch for %q: %v vs %v", line, vals1, vals2)
		}
	}
}
