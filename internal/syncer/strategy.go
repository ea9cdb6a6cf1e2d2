package syncer

import "fmt"

// Strategy selects how upstream history is integrated into the current branch.
type Strategy string

const (
	// StrategyMerge creates a merge commit joining the local tip and the upstream tip.
	StrategyMerge Strategy = "merge"
	// StrategyRebase replays local-only commits on top of the upstream tip.
	StrategyRebase Strategy = "rebase"
)

// ParseStrategy validates a user-supplied strategy value.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyMerge, StrategyRebase:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("invalid strategy %q: must be %q or %q", s, StrategyMerge, StrategyRebase)
}
