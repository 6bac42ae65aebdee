package meta

import (
	"errors"
	"testing"

	"github.com/coregx/bcre/vm"
)

// TestDefaultConfigValues verifies DefaultConfig returns expected field values.
func TestDefaultConfigValues(t *testing.T) {
	c := DefaultConfig()

	if !c.EnablePrefilter {
		t.Error("EnablePrefilter should be true by default")
	}
	if c.MinLiteralLen != 1 {
		t.Errorf("MinLiteralLen = %d, want 1", c.MinLiteralLen)
	}
	if c.MaxLiterals != 64 {
		t.Errorf("MaxLiterals = %d, want 64", c.MaxLiterals)
	}
	if c.MaxSteps != 0 {
		t.Errorf("MaxSteps = %d, want 0", c.MaxSteps)
	}
	if c.MemoLimit != vm.DefaultMemoLimit {
		t.Errorf("MemoLimit = %d, want %d", c.MemoLimit, vm.DefaultMemoLimit)
	}
	if c.Logger != nil {
		t.Error("Logger should be nil by default")
	}
}

// TestDefaultConfigPassesValidation verifies DefaultConfig always validates.
func TestDefaultConfigPassesValidation(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"min literal zero", func(c *Config) { c.MinLiteralLen = 0 }, "MinLiteralLen"},
		{"min literal too long", func(c *Config) { c.MinLiteralLen = 65 }, "MinLiteralLen"},
		{"max literals zero", func(c *Config) { c.MaxLiterals = 0 }, "MaxLiterals"},
		{"max literals too many", func(c *Config) { c.MaxLiterals = 1_001 }, "MaxLiterals"},
		{"negative steps", func(c *Config) { c.MaxSteps = -1 }, "MaxSteps"},
		{"negative memo", func(c *Config) { c.MemoLimit = -1 }, "MemoLimit"},
		{"huge memo", func(c *Config) { c.MemoLimit = 1<<30 + 1 }, "MemoLimit"},
		{"prefilter off ignores literal limits", func(c *Config) {
			c.EnablePrefilter = false
			c.MinLiteralLen = 0
			c.MaxLiterals = 0
		}, ""},
		{"memo off", func(c *Config) { c.MemoLimit = 0 }, ""},
		{"steps set", func(c *Config) { c.MaxSteps = 10 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			err := c.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Field: "MaxSteps", Message: "must not be negative"}
	want := "regexp: invalid config: MaxSteps: must not be negative"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCompileWithInvalidConfig(t *testing.T) {
	c := DefaultConfig()
	c.MaxSteps = -5
	if _, err := CompileWithConfig("a", c); err == nil {
		t.Error("expected error for invalid config")
	}
	if _, err := CompileProgram([]byte{0x07}, c); err == nil {
		t.Error("expected error for invalid config")
	}
}
