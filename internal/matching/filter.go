package matching

import (
	"github.com/collegematch/college-match-finder/internal/catalog"
)

// Filter narrows the institution set to the records eligible under the
// query's residency mode, income, and minimum credential, then
// de-duplicates by unit ID (first seen wins). An empty result is a normal
// outcome, not an error, and the filter is idempotent.
func Filter(insts []catalog.Institution, q Query) []catalog.Institution {
	out := filterResidency(insts, q.HomeState, q.Residency)
	if q.Income != nil {
		out = filterIncome(out, *q.Income)
	}
	if q.MinCredential != nil {
		out = filterCredential(out, *q.MinCredential)
	}
	return dedupe(out)
}

func filterResidency(insts []catalog.Institution, homeState string, mode ResidencyMode) []catalog.Institution {
	if mode == ResidencyAny || mode == "" {
		return insts
	}
	out := make([]catalog.Institution, 0, len(insts))
	for _, inst := range insts {
		switch mode {
		case ResidencyInState:
			if inst.State == homeState {
				out = append(out, inst)
			}
		case ResidencyOutOfState:
			if inst.State != homeState {
				out = append(out, inst)
			}
		}
	}
	return out
}

// filterIncome keeps records whose bracket contains the income, plus
// bracket-less records, which apply to all incomes. When no bracket in the
// whole set contains the income, it falls back per institution to the
// record with the highest bracket whose low bound is below the income,
// again unioned with the bracket-less records. The fallback runs
// per-institution so each institution stays represented at most once.
func filterIncome(insts []catalog.Institution, income float64) []catalog.Institution {
	matched := make([]catalog.Institution, 0, len(insts))
	universal := make([]catalog.Institution, 0, len(insts))
	for _, inst := range insts {
		switch {
		case inst.Bracket == nil:
			universal = append(universal, inst)
		case inst.Bracket.Contains(income):
			matched = append(matched, inst)
		}
	}
	if len(matched) > 0 {
		return append(matched, universal...)
	}

	// Income sits outside every documented bracket: closest-coverage
	// fallback, highest qualifying bracket per institution.
	best := make(map[string]catalog.Institution)
	order := make([]string, 0, len(insts))
	for _, inst := range insts {
		if inst.Bracket == nil || inst.Bracket.Low >= income {
			continue
		}
		cur, ok := best[inst.UnitID]
		if !ok {
			order = append(order, inst.UnitID)
			best[inst.UnitID] = inst
			continue
		}
		if inst.Bracket.Low > cur.Bracket.Low {
			best[inst.UnitID] = inst
		}
	}

	out := make([]catalog.Institution, 0, len(order)+len(universal))
	for _, id := range order {
		out = append(out, best[id])
	}
	return append(out, universal...)
}

// filterCredential keeps records offering at least the requested level.
// CredentialUnknown sorts below every real level, so unknown records never
// satisfy a stated minimum.
func filterCredential(insts []catalog.Institution, min catalog.CredentialLevel) []catalog.Institution {
	out := make([]catalog.Institution, 0, len(insts))
	for _, inst := range insts {
		if inst.Credential >= min {
			out = append(out, inst)
		}
	}
	return out
}

func dedupe(insts []catalog.Institution) []catalog.Institution {
	seen := make(map[string]bool, len(insts))
	out := make([]catalog.Institution, 0, len(insts))
	for _, inst := range insts {
		if inst.UnitID == "" || seen[inst.UnitID] {
			continue
		}
		seen[inst.UnitID] = true
		out = append(out, inst)
	}
	return out
}
