package classify

import "github.com/thoreinstein/sysmaint/internal/logentry"

// Finding is a log entry together with its classification.
type Finding struct {
	logentry.Entry
	Result
}

// ClassifyEntries classifies each entry by its process name, preserving
// order, and tallies the severities.
func (c *Classifier) ClassifyEntries(entries []logentry.Entry) ([]Finding, Counts) {
	findings := make([]Finding, len(entries))
	counts := make(Counts, len(Severities))
	for i, e := range entries {
		r := c.Classify(e.Process)
		findings[i] = Finding{Entry: e, Result: r}
		counts[r.Severity]++
	}
	return findings, counts
}
