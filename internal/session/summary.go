package session

import "time"

// Summary holds the tallies of one drill run, shown when the learner leaves
// the drill screen.
type Summary struct {
	Duration      time.Duration
	TotalAnswered int
	TotalCorrect  int
	Accuracy      float64
	// Missed lists fronts answered wrong during the run, first miss first.
	Missed []string
}

// BuildSummary creates a Summary from the answers recorded through nav.
func BuildSummary(nav *Navigator, elapsed time.Duration) *Summary {
	var missed []string
	seen := make(map[string]bool)
	for _, a := range nav.run {
		if a.correct || seen[a.front] {
			continue
		}
		seen[a.front] = true
		missed = append(missed, a.front)
	}

	var correct int
	for _, a := range nav.run {
		if a.correct {
			correct++
		}
	}

	var accuracy float64
	if len(nav.run) > 0 {
		accuracy = float64(correct) / float64(len(nav.run))
	}

	return &Summary{
		Duration:      elapsed,
		TotalAnswered: len(nav.run),
		TotalCorrect:  correct,
		Accuracy:      accuracy,
		Missed:        missed,
	}
}
