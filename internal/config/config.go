// Package config loads the optional JSONC style-override file both CLI
// entry points (cmd/tsquery-diag, cmd/tsquery-lsp) accept via --config.
// Comments and trailing commas are stripped with tidwall/jsonc before
// decoding, so a config file can be annotated the way a hand-maintained
// settings file usually is, without needing a separate JSON5/YAML parser.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/slentz/tsquery-diag/query"
)

// Overrides holds the subset of query.Options a config file may set. Fields
// left absent from the file keep whatever the caller's base Options already
// has.
type Overrides struct {
	StringArgumentStyle          *string `json:"string_argument_style"`
	WarnUnusedUnderscoreCaptures *bool   `json:"warn_unused_underscore_captures"`
}

// Load reads path, strips JSONC comments, and decodes it into Overrides.
func Load(path string) (Overrides, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var o Overrides
	if err := json.Unmarshal(jsonc.ToJSON(raw), &o); err != nil {
		return Overrides{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return o, nil
}

// Apply folds Overrides into base, returning the merged Options.
func (o Overrides) Apply(base query.Options) (query.Options, error) {
	if o.StringArgumentStyle != nil {
		style, err := styleFromString(*o.StringArgumentStyle)
		if err != nil {
			return base, err
		}
		base.StringArgumentStyle = style
	}
	if o.WarnUnusedUnderscoreCaptures != nil {
		base.WarnUnusedUnderscoreCaptures = *o.WarnUnusedUnderscoreCaptures
	}
	return base, nil
}

func styleFromString(s string) (query.StringArgumentStyle, error) {
	switch s {
	case "", "any":
		return query.StyleAny, nil
	case "prefer-quoted":
		return query.StylePreferQuoted, nil
	case "prefer-unquoted":
		return query.StylePreferUnquoted, nil
	default:
		return 0, fmt.Errorf("invalid string_argument_style %q: want any|prefer-quoted|prefer-unquoted", s)
	}
}
