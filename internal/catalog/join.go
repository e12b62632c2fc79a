package catalog

// Join pairs institutions with their outcome records by unit ID using
// inner-join semantics: institutions without an outcome row are dropped.
// Duplicate unit IDs on either side resolve first-seen-wins, so the result
// carries at most one candidate per institution.
func Join(insts []Institution, outs []Outcome) []Candidate {
	byID := make(map[string]Outcome, len(outs))
	for _, o := range outs {
		if o.UnitID == "" {
			continue
		}
		if _, ok := byID[o.UnitID]; !ok {
			byID[o.UnitID] = o
		}
	}

	cands := make([]Candidate, 0, len(insts))
	seen := make(map[string]bool, len(insts))
	for _, inst := range insts {
		if inst.UnitID == "" || seen[inst.UnitID] {
			continue
		}
		out, ok := byID[inst.UnitID]
		if !ok {
			continue
		}
		seen[inst.UnitID] = true
		cands = append(cands, Candidate{Institution: inst, Outcome: out})
	}
	return cands
}
