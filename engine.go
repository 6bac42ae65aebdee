package bcre

import (
	"errors"

	"github.com/coregx/bcre/bytecode"
	"github.com/coregx/bcre/meta"
	"github.com/coregx/bcre/syntax"
)

// ErrNotCompiled is returned by Engine.Execute when the last Compile failed
// or Compile was never called.
var ErrNotCompiled = errors.New("bcre: no successfully compiled pattern")

// Engine compiles patterns into one reusable program buffer and executes
// the latest one.
//
// Unlike Regex, an Engine is not safe for concurrent use: Compile rewrites
// the program Execute runs.
//
// Example:
//
//	engine, _ := bcre.NewEngine(bcre.DefaultConfig())
//	if err := engine.Compile("a*ab"); err != nil {
//	    log.Fatal(err)
//	}
//	matched, err := engine.Execute("aaab")
type Engine struct {
	config   meta.Config
	prog     *bytecode.Program
	compiler *syntax.Compiler
	current  *meta.Engine
}

// NewEngine returns an Engine with nothing compiled.
func NewEngine(config meta.Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	prog := bytecode.NewProgram()
	return &Engine{
		config:   config,
		prog:     prog,
		compiler: syntax.NewCompiler(prog, config.Logger),
	}, nil
}

// Compile replaces the program with pattern compiled. On error the engine
// holds no runnable program until the next successful Compile.
func (e *Engine) Compile(pattern string) error {
	e.current = nil
	if err := e.compiler.Compile(pattern); err != nil {
		return err
	}
	current, err := meta.CompileProgram(e.prog.Bytes(), e.config)
	if err != nil {
		return err
	}
	e.current = current
	return nil
}

// Execute reports whether the compiled pattern matches anywhere in subject.
func (e *Engine) Execute(subject string) (bool, error) {
	if e.current == nil || !e.prog.Runnable() {
		return false, ErrNotCompiled
	}
	return e.current.IsMatch(subject)
}

// Program returns a copy of the program buffer, including the ERR-terminated
// output of a failed compilation.
func (e *Engine) Program() []byte {
	return e.prog.Clone().Bytes()
}
