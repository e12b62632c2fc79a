package matching

import (
	"log/slog"
	"time"

	"github.com/collegematch/college-match-finder/internal/catalog"
)

// Engine runs the full match pipeline against a loaded catalog. It holds
// no per-query state: every call is one synchronous
// filter → join → score → roi → present pass, so a single Engine is safe
// for concurrent queries.
type Engine struct {
	insts    []catalog.Institution
	outcomes []catalog.Outcome
	opts     Options
}

// NewEngine creates an engine over an already-loaded catalog.
func NewEngine(insts []catalog.Institution, outcomes []catalog.Outcome, opts Options) *Engine {
	return &Engine{insts: insts, outcomes: outcomes, opts: opts}
}

// LoadEngine builds an engine from the two catalog files.
func LoadEngine(affordabilityPath, resultsPath string, opts Options) (*Engine, error) {
	insts, err := catalog.LoadAffordability(affordabilityPath)
	if err != nil {
		return nil, err
	}
	outcomes, err := catalog.LoadOutcomes(resultsPath)
	if err != nil {
		return nil, err
	}
	return NewEngine(insts, outcomes, opts), nil
}

// InstitutionCount returns the size of the loaded affordability catalog.
func (e *Engine) InstitutionCount() int { return len(e.insts) }

// OutcomeCount returns the size of the loaded outcomes catalog.
func (e *Engine) OutcomeCount() int { return len(e.outcomes) }

// Match runs one query. Surviving zero candidates at any stage is a
// well-defined empty result, not an error; the only error here is an
// invalid query.
func (e *Engine) Match(q Query) ([]Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	filtered := Filter(e.insts, q)
	cands := catalog.Join(filtered, e.outcomes)
	if len(cands) == 0 {
		slog.Info("Match query produced no candidates",
			"home_state", q.HomeState,
			"residency", q.Residency,
			"filtered", len(filtered))
		return []Result{}, nil
	}

	scored := Score(cands, q.Prefs, q.Weights, e.opts)
	EstimateROI(scored, q.HomeState, q.Residency)
	results := Present(scored, q.Limit)

	slog.Info("Match query completed",
		"home_state", q.HomeState,
		"residency", q.Residency,
		"candidates", len(cands),
		"returned", len(results),
		"duration_ms", time.Since(start).Milliseconds())
	return results, nil
}
