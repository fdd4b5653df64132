package classify

import (
	"bytes"
	_ "embed"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/sysmaint/internal/validator"
	"github.com/thoreinstein/sysmaint/pkg/fileutil"
)

//go:embed rules.yaml
var builtinRules []byte

// ErrUnsupportedFormat is returned for rule files that are neither YAML nor
// TOML.
var ErrUnsupportedFormat = errors.New("unsupported rules file format")

// Rule maps process names to a severity and explanation. A rule matches
// when any pattern is a case-insensitive substring of the process name, or
// when Regex matches it case-insensitively.
type Rule struct {
	Name        string   `yaml:"name" toml:"name" json:"name"`
	Patterns    []string `yaml:"patterns,omitempty" toml:"patterns,omitempty" json:"patterns,omitempty"`
	Regex       string   `yaml:"regex,omitempty" toml:"regex,omitempty" json:"regex,omitempty"`
	Severity    Severity `yaml:"severity" toml:"severity" json:"severity"`
	Explanation string   `yaml:"explanation" toml:"explanation" json:"explanation"`
}

// RuleSet is the on-disk shape of a rule table. Override files may omit
// Fallback.
type RuleSet struct {
	Fallback *Rule `yaml:"fallback,omitempty" toml:"fallback,omitempty"`
	Rules    []Rule `yaml:"rules" toml:"rules"`
}

// ParseRules decodes a rule table. The format is "yaml" or "toml".
func ParseRules(data []byte, format string) (RuleSet, error) {
	var set RuleSet
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&set); err != nil {
			return RuleSet{}, errors.Wrap(err, "decoding YAML rules")
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&set); err != nil {
			return RuleSet{}, errors.Wrap(err, "decoding TOML rules")
		}
	default:
		return RuleSet{}, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	return set, nil
}

// ReadRulesFile reads and decodes a rule file, choosing the decoder from
// the file extension.
func ReadRulesFile(path string) (RuleSet, error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return RuleSet{}, errors.Wrapf(ErrUnsupportedFormat, "%s has no extension", path)
	}
	data, err := fileutil.ReadFileWithLimit(path, fileutil.MaxFileSize)
	if err != nil {
		return RuleSet{}, errors.Wrapf(err, "reading rules file %s", path)
	}
	set, err := ParseRules(data, format)
	if err != nil {
		return RuleSet{}, errors.Wrapf(err, "rules file %s", path)
	}
	return set, nil
}

// Validate checks every rule and returns the issues found. Errors make the
// table unusable; duplicate names are only warned about.
func Validate(source string, rules []Rule) *validator.Result {
	res := &validator.Result{Source: source}
	if len(rules) == 0 {
		res.AddWarning(-1, "", "rules", "no rules defined", nil)
	}

	seen := make(map[string]int, len(rules))
	for i, r := range rules {
		validateRule(res, i, r)

		key := strings.ToLower(r.Name)
		if key == "" {
			continue
		}
		if prev, dup := seen[key]; dup {
			res.AddWarning(i, r.Name, "name", "duplicates an earlier rule", prev)
			continue
		}
		seen[key] = i
	}
	return res
}

func validateRule(res *validator.Result, i int, r Rule) {
	if strings.TrimSpace(r.Name) == "" {
		res.AddError(i, r.Name, "name", "is required", nil)
	}
	if len(r.Patterns) == 0 && r.Regex == "" {
		res.AddError(i, r.Name, "patterns", "at least one pattern or a regex is required", nil)
	}
	for _, p := range r.Patterns {
		if strings.TrimSpace(p) == "" {
			res.AddError(i, r.Name, "patterns", "must not contain empty patterns", nil)
			break
		}
	}
	if r.Regex != "" {
		if _, err := regexp.Compile(r.Regex); err != nil {
			res.AddError(i, r.Name, "regex", "does not compile", r.Regex)
		}
	}
	if r.Severity < Low || r.Severity > High {
		res.AddError(i, r.Name, "severity", "must be low, medium or high", int(r.Severity))
	}
	if strings.TrimSpace(r.Explanation) == "" {
		res.AddError(i, r.Name, "explanation", "is required", nil)
	}
}

// DefaultRules returns a copy of the built-in rule table.
func DefaultRules() (RuleSet, error) {
	set, err := ParseRules(builtinRules, "yaml")
	if err != nil {
		return RuleSet{}, errors.Wrap(err, "built-in rules")
	}
	if set.Fallback == nil {
		return RuleSet{}, errors.New("built-in rules: fallback rule missing")
	}
	return set, nil
}
