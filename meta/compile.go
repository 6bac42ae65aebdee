package meta

import (
	"context"
	"fmt"

	"github.com/coregx/bcre/bytecode"
	"github.com/coregx/bcre/internal/logging"
	"github.com/coregx/bcre/literal"
	"github.com/coregx/bcre/prefilter"
	"github.com/coregx/bcre/syntax"
	"github.com/coregx/bcre/vm"
)

// Compile compiles a pattern into an Engine using DefaultConfig.
//
// Example:
//
//	engine, err := meta.Compile("hel+o")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Steps:
//  1. Validate configuration
//  2. Compile pattern to byte code
//  3. Extract literal prefixes and build prefilter
//  4. Select strategy
//
// Pattern errors are returned as *syntax.Error, configuration errors as
// *ConfigError.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	prog := bytecode.NewProgram()
	if err := syntax.NewCompiler(prog, config.Logger).Compile(pattern); err != nil {
		return nil, err
	}
	return build(prog.Bytes(), config)
}

// CompileProgram builds an Engine for an already compiled program. The
// engine keeps a reference to code, which must not change afterwards.
func CompileProgram(code []byte, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return build(code, config)
}

func build(code []byte, config Config) (*Engine, error) {
	logger := logging.OrDiscard(config.Logger)

	var pf prefilter.Prefilter
	if config.EnablePrefilter {
		var err error
		pf, err = buildPrefilter(code, config)
		if err != nil {
			return nil, err
		}
	}

	strategy := selectStrategy(code, pf)
	attrs := []any{"strategy", strategy}
	if pf != nil {
		attrs = append(attrs, "prefilter", pf.String())
	}
	logger.Log(context.Background(), logging.LevelDebug, "strategy selected", attrs...)

	return &Engine{
		code:      code,
		config:    config,
		strategy:  strategy,
		prefilter: pf,
		logger:    logger,
		backtracker: vm.New(code, vm.Options{
			Logger:    config.Logger,
			MaxSteps:  config.MaxSteps,
			MemoLimit: config.MemoLimit,
		}),
	}, nil
}

// buildPrefilter returns nil when the program has no usable prefixes.
func buildPrefilter(code []byte, config Config) (prefilter.Prefilter, error) {
	litConfig := literal.DefaultConfig()
	litConfig.MaxLiterals = config.MaxLiterals

	prefixes := literal.New(litConfig).ExtractPrefixes(code)
	if prefixes.IsEmpty() || prefixes.MinLen() < config.MinLiteralLen {
		return nil, nil
	}

	pf, err := prefilter.Build(prefixes)
	if err != nil {
		return nil, fmt.Errorf("meta: %w", err)
	}
	return pf, nil
}
