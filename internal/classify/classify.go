// Package classify maps the process name of a log entry to a severity and a
// human-readable explanation using an ordered rule table.
//
// The built-in table is embedded YAML. Operators can prepend their own rules
// from a YAML or TOML file; those take priority over the built-ins.
package classify

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// Result is the outcome of classifying one process name.
type Result struct {
	Rule        string   `json:"rule"`
	Severity    Severity `json:"severity"`
	Explanation string   `json:"explanation"`
}

type compiledRule struct {
	Rule
	patterns []string
	re       *regexp.Regexp
}

func (c compiledRule) matches(lowerProcess string) bool {
	for _, p := range c.patterns {
		if strings.Contains(lowerProcess, p) {
			return true
		}
	}
	return c.re != nil && c.re.MatchString(lowerProcess)
}

// Classifier evaluates rules in order, first match wins. It is immutable and
// safe for concurrent use.
type Classifier struct {
	rules    []compiledRule
	fallback Rule
}

// New builds a Classifier from rules and a fallback. Rules are validated;
// any error issue fails construction.
func New(rules []Rule, fallback Rule) (*Classifier, error) {
	if err := Validate("rules", rules).Err(); err != nil {
		return nil, err
	}
	if err := Validate("fallback", []Rule{withPattern(fallback)}).Err(); err != nil {
		return nil, err
	}

	c := &Classifier{fallback: fallback, rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		cr := compiledRule{Rule: r}
		for _, p := range r.Patterns {
			cr.patterns = append(cr.patterns, strings.ToLower(p))
		}
		if r.Regex != "" {
			// Validate already compiled it once.
			cr.re = regexp.MustCompile("(?i)" + r.Regex)
		}
		c.rules = append(c.rules, cr)
	}
	return c, nil
}

// withPattern lets the fallback pass the pattern requirement, which does not
// apply to it.
func withPattern(r Rule) Rule {
	r.Patterns = []string{"*"}
	return r
}

// LoadDefault returns a Classifier over the built-in rule table.
func LoadDefault() (*Classifier, error) {
	return Load("")
}

// Load returns a Classifier over the built-in table with the rules from
// overridePath, if non-empty, placed ahead of it. A fallback in the
// override file replaces the built-in one.
func Load(overridePath string) (*Classifier, error) {
	set, err := DefaultRules()
	if err != nil {
		return nil, err
	}
	rules := set.Rules
	fallback := *set.Fallback

	if overridePath != "" {
		override, err := ReadRulesFile(overridePath)
		if err != nil {
			return nil, err
		}
		if err := Validate(overridePath, override.Rules).Err(); err != nil {
			return nil, err
		}
		rules = append(append([]Rule{}, override.Rules...), rules...)
		if override.Fallback != nil {
			fallback = *override.Fallback
		}
	}

	c, err := New(rules, fallback)
	if err != nil {
		return nil, errors.Wrap(err, "building classifier")
	}
	return c, nil
}

// Classify returns the first matching rule's severity and explanation, or
// the fallback when no rule matches. It never fails.
func (c *Classifier) Classify(process string) Result {
	lower := strings.ToLower(process)
	for _, r := range c.rules {
		if r.matches(lower) {
			return Result{Rule: r.Name, Severity: r.Severity, Explanation: r.Explanation}
		}
	}
	return Result{Rule: c.fallback.Name, Severity: c.fallback.Severity, Explanation: c.fallback.Explanation}
}

// Rules returns the rule table in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.Rule
	}
	return out
}

// Fallback returns the rule applied when nothing matches.
func (c *Classifier) Fallback() Rule {
	return c.fallback
}

// Counts tallies results by severity.
type Counts map[Severity]int

// Total returns the number of results counted.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}
