package shell

// MaxArgs is the default largest argv a single stage may carry (spec §6's
// "Maximum argv 64 entries including null terminator" minus the
// terminator), matching config.Default().MaxArgv-1. ParseLine derives the
// enforced value from config.Config rather than this constant, so a
// config reload can raise or lower it without a restart.
const MaxArgs = 63

// MaxStages is the default largest number of pipeline stages accepted
// (spec §6), matching config.Default().MaxPipelineStages. Pipelines with
// more stages are rejected outright — see SPEC_FULL.md's Open Question
// decision on truncate-vs-reject. ParseLine enforces the configured value.
const MaxStages = 10

// Stage is a single parsed pipeline stage (spec §3's "Parsed stage"): a
// non-empty argv plus optional I/O redirection targets.
type Stage struct {
	Args       []string
	InputPath  string
	HasInput   bool
	OutputPath string
	HasOutput  bool
	AppendOut  bool
	ErrorPath  string
	HasError   bool
}

// ParseStage consumes the tokens of a single stage (no unquoted `|` among
// them — the caller must have already run SplitStages) and produces a
// Stage, per spec §4.3. isPipeline controls which wording an output
// redirection failure uses (spec §4.3 item 1). maxArgs is the configured
// argv ceiling (spec §6), normally MaxArgs; ParseLine derives it from
// config.Config so a reload takes effect without a restart.
func ParseStage(toks []Token, isPipeline bool, maxArgs int) (*Stage, error) {
	st := &Stage{}
	var words []Token

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.WasQuoted {
			words = append(words, t)
			continue
		}
		switch t.Value {
		case opRedirIn, opRedirOut, opAppendOut, opRedirErr:
			if i+1 >= len(toks) || toks[i+1].Value == "" {
				switch t.Value {
				case opRedirIn:
					return nil, ErrNoInputFile
				case opRedirErr:
					return nil, ErrNoErrorFile
				default:
					if isPipeline {
						return nil, ErrNoOutputFileAfterRedirection
					}
					return nil, ErrNoOutputFile
				}
			}
			target := toks[i+1].Value
			i++
			switch t.Value {
			case opRedirIn:
				st.InputPath = target
				st.HasInput = true
			case opRedirOut:
				st.OutputPath = target
				st.HasOutput = true
				st.AppendOut = false
			case opAppendOut:
				st.OutputPath = target
				st.HasOutput = true
				st.AppendOut = true
			case opRedirErr:
				st.ErrorPath = target
				st.HasError = true
			}
		default:
			words = append(words, t)
		}
	}

	if len(words) == 0 {
		return nil, ErrEmptyCommandAfterRedirection
	}

	args, err := expandGlobs(words)
	if err != nil {
		return nil, err
	}
	if len(args) > maxArgs {
		return nil, ErrTooManyArgs
	}

	st.Args = args
	return st, nil
}
