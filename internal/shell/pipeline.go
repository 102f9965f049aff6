package shell

import "github.com/nextlevelbuilder/shelld/internal/config"

// ParseLine tokenizes, validates, and splits a raw command line into its
// per-stage Stage descriptors, per spec §4.2-§4.3. A single command with
// no `|` is returned as a one-element slice. When the line has more than
// one stage, every stage is parsed in pipeline mode, for the
// output-redirection wording distinction spec §4.3 item 1 calls for.
//
// cfg supplies the overridable operating parameters spec §6 lists as
// "fixed constants" — max command length, max argv, max pipeline stages —
// so a config.Watcher reload takes effect on the next submitted line. A
// nil cfg falls back to config.Default(), matching the MaxArgs/MaxStages
// constants in stage.go.
func ParseLine(line string, cfg *config.Config) ([]*Stage, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if len(line) > cfg.MaxCommandLength {
		return nil, ErrCommandTooLong
	}

	toks, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, ErrEmptyCommandAfterRedirection
	}

	if err := ValidatePipeline(toks); err != nil {
		return nil, err
	}

	tokStages := SplitStages(toks)
	if len(tokStages) > cfg.MaxPipelineStages {
		return nil, ErrTooManyStages
	}
	isPipeline := len(tokStages) > 1

	maxArgs := cfg.MaxArgv - 1 // spec §6: "64 entries including null terminator"
	stages := make([]*Stage, 0, len(tokStages))
	for _, st := range tokStages {
		parsed, err := ParseStage(st, isPipeline, maxArgs)
		if err != nil {
			return nil, err
		}
		stages = append(stages, parsed)
	}
	return stages, nil
}
