package commission

import "time"

// ResolveRule picks the applicable rule for a deal type on a given date.
// Candidates must already belong to the right agent and be active. Among
// rules whose scope and validity window match, the latest valid_from wins;
// ties break toward the highest id, the most recently created rule.
// Returns nil when no rule applies.
func ResolveRule(rules []*Rule, t TransactionType, date time.Time) *Rule {
	var best *Rule
	for _, r := range rules {
		if !r.Active || !r.AppliesTo(t) || !r.EffectiveOn(date) {
			continue
		}
		if best == nil {
			best = r
			continue
		}
		if r.ValidFrom.After(best.ValidFrom) {
			best = r
		} else if r.ValidFrom.Equal(best.ValidFrom) && r.ID > best.ID {
			best = r
		}
	}
	return best
}
