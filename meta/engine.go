package meta

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/coregx/bcre/internal/logging"
	"github.com/coregx/bcre/prefilter"
	"github.com/coregx/bcre/vm"
)

// Engine searches subjects for one compiled program.
//
// An Engine is safe for concurrent use: the program is read-only and every
// search allocates its own interpreter state.
type Engine struct {
	code        []byte
	config      Config
	strategy    Strategy
	prefilter   prefilter.Prefilter
	backtracker *vm.Backtracker
	logger      *slog.Logger
	stats       Stats
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// Searches counts IsMatch calls
	Searches uint64

	// Attempts counts anchored interpreter runs
	Attempts uint64

	// PrefilterCandidates counts offsets reported by the prefilter
	PrefilterCandidates uint64

	// PrefilterMisses counts candidates the interpreter rejected
	PrefilterMisses uint64
}

// Strategy returns the execution strategy selected for this engine.
//
// Example:
//
//	strategy := engine.Strategy()
//	println(strategy.String()) // "UsePrefilter"
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// IsStartAnchored returns true if the program can only match at offset 0.
func (e *Engine) IsStartAnchored() bool {
	return e.strategy == UseAnchoredStart
}

// Prefilter returns the prefilter in use, or nil.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.prefilter
}

// Program returns the program the engine runs. The caller must not modify it.
func (e *Engine) Program() []byte {
	return e.code
}

// Stats returns execution statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		Searches:            atomic.LoadUint64(&e.stats.Searches),
		Attempts:            atomic.LoadUint64(&e.stats.Attempts),
		PrefilterCandidates: atomic.LoadUint64(&e.stats.PrefilterCandidates),
		PrefilterMisses:     atomic.LoadUint64(&e.stats.PrefilterMisses),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.Searches, 0)
	atomic.StoreUint64(&e.stats.Attempts, 0)
	atomic.StoreUint64(&e.stats.PrefilterCandidates, 0)
	atomic.StoreUint64(&e.stats.PrefilterMisses, 0)
}

// IsMatch reports whether the program matches anywhere in subject.
//
// The error is non-nil only for malformed programs (*bytecode.IntegrityError)
// and exhausted step budgets (vm.ErrStepLimit).
//
// Example:
//
//	engine, _ := meta.Compile("hello")
//	matched, err := engine.IsMatch("say hello world")
func (e *Engine) IsMatch(subject string) (bool, error) {
	atomic.AddUint64(&e.stats.Searches, 1)
	ctx := context.Background()
	e.logger.Log(ctx, logging.LevelPrint, "comparing", "subject", subject)

	var matched bool
	var err error
	switch e.strategy {
	case UseAnchoredStart:
		matched, err = e.isMatchAnchored(subject)
	case UsePrefilter:
		matched, err = e.isMatchPrefilter(subject)
	case UseLiteral:
		matched = e.isMatchLiteral(subject)
	default:
		matched, err = e.isMatchBacktrack(subject)
	}

	switch {
	case err != nil:
		e.logger.Log(ctx, logging.LevelError, "search failed", "error", err)
	case matched:
		e.logger.Log(ctx, logging.LevelAlert, "match", "strategy", e.strategy)
	default:
		e.logger.Log(ctx, logging.LevelAlert, "no match", "strategy", e.strategy)
	}
	return matched, err
}

func (e *Engine) isMatchBacktrack(subject string) (bool, error) {
	s := e.backtracker.NewSearch(subject)
	for start := 0; start <= len(subject); start++ {
		atomic.AddUint64(&e.stats.Attempts, 1)
		matched, err := s.MatchAt(start)
		if err != nil || matched {
			return matched, err
		}
	}
	return false, nil
}

func (e *Engine) isMatchAnchored(subject string) (bool, error) {
	atomic.AddUint64(&e.stats.Attempts, 1)
	return e.backtracker.MatchAt(subject, 0)
}

// isMatchPrefilter verifies each candidate with the interpreter. No match
// can start between candidates: every match begins with one of the literals.
func (e *Engine) isMatchPrefilter(subject string) (bool, error) {
	haystack := []byte(subject)
	s := e.backtracker.NewSearch(subject)
	for at := 0; ; {
		pos := e.prefilter.Find(haystack, at)
		if pos < 0 {
			return false, nil
		}
		atomic.AddUint64(&e.stats.PrefilterCandidates, 1)
		atomic.AddUint64(&e.stats.Attempts, 1)

		matched, err := s.MatchAt(pos)
		if err != nil || matched {
			return matched, err
		}
		atomic.AddUint64(&e.stats.PrefilterMisses, 1)
		at = pos + 1
	}
}

func (e *Engine) isMatchLiteral(subject string) bool {
	if e.prefilter.Find([]byte(subject), 0) < 0 {
		return false
	}
	atomic.AddUint64(&e.stats.PrefilterCandidates, 1)
	return true
}
