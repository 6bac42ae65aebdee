package bcre

import (
	"errors"
	"testing"

	"github.com/coregx/bcre/bytecode"
	"github.com/coregx/bcre/meta"
	"github.com/coregx/bcre/syntax"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

func TestEngineExecuteBeforeCompile(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.Execute("x"); !errors.Is(err, ErrNotCompiled) {
		t.Errorf("Execute error = %v, want ErrNotCompiled", err)
	}
}

func TestEngineRecompile(t *testing.T) {
	engine := newTestEngine(t)

	steps := []struct {
		pattern string
		subject string
		want    bool
	}{
		{"cat", "concatenate", true},
		{"^cat", "concatenate", false},
		{"a*ab", "aaab", true},
		{"", "", true},
		{"x+y", "xxxy", true},
	}

	for _, step := range steps {
		if err := engine.Compile(step.pattern); err != nil {
			t.Fatalf("Compile(%q) failed: %v", step.pattern, err)
		}
		got, err := engine.Execute(step.subject)
		if err != nil {
			t.Fatalf("Execute(%q) failed: %v", step.subject, err)
		}
		if got != step.want {
			t.Errorf("%q: Execute(%q) = %v, want %v", step.pattern, step.subject, got, step.want)
		}
	}
}

func TestEngineFailedCompile(t *testing.T) {
	engine := newTestEngine(t)
	if err := engine.Compile("abc"); err != nil {
		t.Fatal(err)
	}

	err := engine.Compile("a**")
	var syntaxErr *syntax.Error
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Compile error = %v, want *syntax.Error", err)
	}

	if _, err := engine.Execute("abc"); !errors.Is(err, ErrNotCompiled) {
		t.Errorf("Execute after failed Compile error = %v, want ErrNotCompiled", err)
	}

	prog := engine.Program()
	if len(prog) == 0 || bytecode.Opcode(prog[len(prog)-1]) != bytecode.OpErr {
		t.Errorf("failed program does not end with ERR: % x", prog)
	}

	// A later successful compile makes the engine usable again.
	if err := engine.Compile("b"); err != nil {
		t.Fatal(err)
	}
	if ok, err := engine.Execute("abc"); !ok || err != nil {
		t.Errorf("Execute = %v, %v, want true, nil", ok, err)
	}
}

func TestNewEngineInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.MinLiteralLen = 0
	_, err := NewEngine(config)
	var cfgErr *meta.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("NewEngine error = %v, want *meta.ConfigError", err)
	}
}
