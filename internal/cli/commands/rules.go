package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/pinelint/internal/cli/output"
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
	_ "github.com/leapstack-labs/pinelint/pkg/lint/rules" // register the rule catalogue
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show descriptions
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List the lint rules with their effective severity and state.

Severity and enabled state reflect the loaded configuration, so this is
also a quick way to check what a pinelint.json actually turns on.

Output adapts to environment:
  - Terminal: Styled tables
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  pinelint rules

  # Show details for a specific rule
  pinelint rules function_placement

  # List the placement rules
  pinelint rules --group placement

  # Output as JSON
  pinelint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return core.RuleIDs(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group: structure, placement, style")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show rule descriptions")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// RuleStatus is a rule with its effective configuration.
type RuleStatus struct {
	core.RuleInfo
	Severity core.Severity `json:"severity"`
	Enabled  bool          `json:"enabled"`
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []RuleStatus `json:"rules"`
	Count struct {
		Enabled int `json:"enabled"`
		Total   int `json:"total"`
	} `json:"count"`
}

// ruleStatuses resolves every registered rule against the configuration.
func ruleStatuses(cfg *core.RuleConfig, group string) []RuleStatus {
	lc := lint.NewConfigFromRuleConfig(cfg)

	var out []RuleStatus
	for _, rule := range lint.GetAll() {
		if group != "" && rule.Group() != group {
			continue
		}
		info := lint.GetRuleInfo(rule)
		out = append(out, RuleStatus{
			RuleInfo: info,
			Severity: lc.GetSeverity(info.ID, info.DefaultSeverity),
			Enabled:  !lc.IsDisabled(info.ID) && cfg.RuleEnabled(info.ID),
		})
	}
	return out
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cc, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cc.Renderer

	rules := ruleStatuses(&cc.Cfg.Rules, opts.Group)
	if len(rules) == 0 {
		return fmt.Errorf("no rules in group %q", opts.Group)
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := RulesJSONOutput{Rules: rules}
		for _, rule := range rules {
			if rule.Enabled {
				out.Count.Enabled++
			}
		}
		out.Count.Total = len(rules)
		return r.JSON(out)
	}

	listRulesText(r, rules, opts.Verbose)
	return nil
}

// listRulesText prints one table per rule group.
func listRulesText(r *output.Renderer, rules []RuleStatus, verbose bool) {
	styles := r.Styles()
	title := cases.Title(language.English)

	enabled := 0
	for _, rule := range rules {
		if rule.Enabled {
			enabled++
		}
	}

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d of %d enabled)", enabled, len(rules))))
	r.Println("")

	var groups []string
	byGroup := map[string][]RuleStatus{}
	for _, rule := range rules {
		if _, ok := byGroup[rule.Group]; !ok {
			groups = append(groups, rule.Group)
		}
		byGroup[rule.Group] = append(byGroup[rule.Group], rule)
	}

	for _, group := range groups {
		r.Println(styles.Header2.Render(title.String(group) + " Rules"))

		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.SetStyle(table.StyleLight)
		header := table.Row{"ID", "Severity", "Enabled", "Fixable"}
		if verbose {
			header = append(header, "Description")
		}
		t.AppendHeader(header)

		for _, rule := range byGroup[group] {
			row := table.Row{
				rule.ID,
				getSeverityStyle(styles, rule.Severity).Render(rule.Severity.String()),
				yesNo(rule.Enabled),
				yesNo(rule.Fixable),
			}
			if verbose {
				row = append(row, rule.Description)
			}
			t.AppendRow(row)
		}
		t.Render()
		r.Println("")
	}

	r.Muted("Use 'pinelint rules <rule-id>' for detailed documentation")
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cc, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cc.Renderer

	rule, ok := lint.GetByID(ruleID)
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}

	var status RuleStatus
	for _, s := range ruleStatuses(&cc.Cfg.Rules, "") {
		if s.ID == ruleID {
			status = s
			break
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(ruleDoc(status, rule))
	}
	showRuleText(r, status, rule)
	return nil
}

// RuleDocJSON is the JSON output for a single rule.
type RuleDocJSON struct {
	RuleStatus
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

func ruleDoc(status RuleStatus, rule lint.Rule) RuleDocJSON {
	doc := RuleDocJSON{RuleStatus: status}
	if d, ok := rule.(lint.Documented); ok {
		doc.Rationale = d.Rationale()
		doc.BadExample = d.BadExample()
		doc.GoodExample = d.GoodExample()
		doc.Fix = d.Fix()
	}
	return doc
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, status RuleStatus, rule lint.Rule) {
	styles := r.Styles()
	doc := ruleDoc(status, rule)

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", doc.ID, doc.Name)))
	r.Println("")

	r.Println("  " + r.FormatKeyValue("Group", capitalizeFirst(doc.Group)))
	r.Println("  " + r.FormatKeyValue("Severity", getSeverityStyle(styles, doc.Severity).Render(doc.Severity.String())))
	if doc.Severity != doc.DefaultSeverity {
		r.Println("  " + r.FormatKeyValue("Default severity", doc.DefaultSeverity.String()))
	}
	r.Println("  " + r.FormatKeyValue("Enabled", yesNo(doc.Enabled)))
	r.Println("  " + r.FormatKeyValue("Fixable", yesNo(doc.Fixable)))
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + doc.Description)
	r.Println("")

	if doc.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		for _, line := range strings.Split(doc.Rationale, "\n") {
			r.Println("  " + line)
		}
		r.Println("")
	}

	if doc.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(doc.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if doc.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(doc.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if doc.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + truncateOneLine(doc.Fix, 200))
		r.Println("")
	}

	if len(doc.ConfigKeys) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		r.Printf("  Options: %s\n", strings.Join(doc.ConfigKeys, ", "))
		r.Println("")
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
