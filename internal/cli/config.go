package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/coregx/bcre/internal/logging"
)

// FileConfig is the optional TOML configuration file. Unset keys keep the
// built-in defaults; command-line flags override both.
//
//	verbosity = "debug"
//	prefilter = false
//	max_steps = 1000000
type FileConfig struct {
	Verbosity *logging.Verbosity `toml:"verbosity"`
	Prefilter *bool              `toml:"prefilter"`
	MaxSteps  *int               `toml:"max_steps"`
}

// LoadConfig parses the TOML file at path. Unknown keys are an error.
func LoadConfig(path string) (*FileConfig, error) {
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}
