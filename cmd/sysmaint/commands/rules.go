package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/sysmaint/internal/classify"
	"github.com/thoreinstein/sysmaint/internal/errors"
	"github.com/thoreinstein/sysmaint/internal/validator"
)

var (
	rulesExplainInteractive bool
	rulesCheckFormat        string
)

// findRule is replaced in tests; the real one needs a terminal.
var findRule = func(rules []classify.Rule) (int, error) {
	return fuzzyfinder.Find(
		rules,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", rules[i].Name, rules[i].Severity)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return describeRule(rules[i])
		}),
	)
}

func init() {
	rulesCmd.PersistentFlags().String("rules", "", "rule override file (.yaml or .toml)")
	rulesExplainCmd.Flags().BoolVarP(&rulesExplainInteractive, "interactive", "i", false,
		"pick a rule with a fuzzy finder")
	rulesCheckCmd.Flags().StringVar(&rulesCheckFormat, "format", "text", "output format: text, json")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesExplainCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
	rootCmd.AddCommand(rulesCmd)
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the error classification rules",
	Long: `Inspect the rules that assign a severity and explanation to each
system error by the process that logged it.

Rules are matched in order; the first match wins. Rules from an override
file (--rules or rules_file) are placed ahead of the built-in ones.`,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rules in match order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		classifier, err := loadClassifier()
		if err != nil {
			return err
		}
		listRules(cmd.OutOrStdout(), classifier)
		return nil
	},
}

var rulesExplainCmd = &cobra.Command{
	Use:   "explain <process>",
	Short: "Show how a process name is classified",
	Long: `Show the rule, severity and explanation a process name would get.

The process is matched the same way as in a report, for example
"systemd[1]" or "kernel". With -i, pick a rule interactively instead.`,
	Example: `  sysmaint rules explain 'nginx[812]'
  sysmaint rules explain -i`,
	Args: func(cmd *cobra.Command, args []string) error {
		if rulesExplainInteractive {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		classifier, err := loadClassifier()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if rulesExplainInteractive {
			return explainInteractive(w, classifier)
		}
		explainProcess(w, classifier, args[0])
		return nil
	},
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a rule override file",
	Example: `  sysmaint rules check /etc/sysmaint/rules.yaml
  sysmaint rules check rules.toml --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkRulesFile(cmd.OutOrStdout(), args[0], validator.Format(rulesCheckFormat))
	},
}

func loadClassifier() (*classify.Classifier, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	classifier, err := classify.Load(cfg.RulesFile)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return classifier, nil
}

func listRules(w io.Writer, c *classify.Classifier) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSEVERITY\tMATCHES")
	for i, r := range c.Rules() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, r.Name, severityString(r.Severity), matchSummary(r))
	}
	fb := c.Fallback()
	fmt.Fprintf(tw, "-\t%s\t%s\t%s\n", fb.Name, severityString(fb.Severity), "(fallback)")
	tw.Flush()
}

func explainProcess(w io.Writer, c *classify.Classifier, process string) {
	res := c.Classify(process)
	fmt.Fprintf(w, "Process:     %s\n", process)
	fmt.Fprintf(w, "Rule:        %s\n", res.Rule)
	fmt.Fprintf(w, "Severity:    %s\n", severityString(res.Severity))
	fmt.Fprintf(w, "Explanation: %s\n", res.Explanation)
}

func explainInteractive(w io.Writer, c *classify.Classifier) error {
	rules := append(c.Rules(), c.Fallback())
	idx, err := findRule(rules)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive rule picker failed")
	}
	fmt.Fprint(w, describeRule(rules[idx]))
	return nil
}

func checkRulesFile(w io.Writer, path string, format validator.Format) error {
	set, err := classify.ReadRulesFile(path)
	if err != nil {
		return errors.NewUserError(err, "rule files must be valid YAML or TOML with a top-level 'rules' list")
	}
	result := classify.Validate(path, set.Rules)
	if err := validator.NewReporter(w, format).Report(result); err != nil {
		return err
	}
	if result.HasErrors() {
		return errors.NewUserError(result.Err(), "")
	}
	return nil
}

func describeRule(r classify.Rule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rule:        %s\n", r.Name)
	fmt.Fprintf(&b, "Severity:    %s\n", r.Severity)
	fmt.Fprintf(&b, "Matches:     %s\n", matchSummary(r))
	fmt.Fprintf(&b, "Explanation: %s\n", r.Explanation)
	return b.String()
}

func matchSummary(r classify.Rule) string {
	parts := make([]string, 0, len(r.Patterns)+1)
	parts = append(parts, r.Patterns...)
	if r.Regex != "" {
		parts = append(parts, "/"+r.Regex+"/")
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, ", ")
}

func severityString(s classify.Severity) string {
	switch s {
	case classify.High:
		return color.RedString(s.String())
	case classify.Medium:
		return color.YellowString(s.String())
	default:
		return color.BlueString(s.String())
	}
}
