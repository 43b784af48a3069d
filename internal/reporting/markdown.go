package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Compliance Report\n\n")
	sb.WriteString(fmt.Sprintf("Run: %s | Generated: %s\n\n", r.RunID, r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Account: %s | Equity: $%.2f\n\n", r.AccountType, r.Equity))

	// Verdict
	sb.WriteString(fmt.Sprintf("## Verdict: %s\n\n", r.OverallStatus))
	sb.WriteString("| Outcome | Rules |\n")
	sb.WriteString("|---------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Passed | %d |\n", r.Passed))
	sb.WriteString(fmt.Sprintf("| Violated | %d |\n", r.Violated))
	sb.WriteString(fmt.Sprintf("| Not Testable | %d |\n", r.NotTestable))
	if r.Errored > 0 {
		sb.WriteString(fmt.Sprintf("| Errored | %d |\n", r.Errored))
	}
	sb.WriteString(fmt.Sprintf("| Total Violations | %d |\n", r.TotalViolations))
	sb.WriteString("\n")

	// Input summary
	sb.WriteString("## Input\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Trades | %d |\n", r.Input.TradeCount))
	sb.WriteString(fmt.Sprintf("| Phases | %d |\n", r.Input.PhaseCount))
	sb.WriteString(fmt.Sprintf("| Dropped Rows | %d |\n", r.Input.DroppedRows))
	sb.WriteString(fmt.Sprintf("| Repaired Timestamps | %d |\n", r.Input.SwappedRows))
	if !r.Input.FirstOpen.IsZero() {
		sb.WriteString(fmt.Sprintf("| First Open | %s |\n", r.Input.FirstOpen.UTC().Format("2006-01-02 15:04:05")))
		sb.WriteString(fmt.Sprintf("| Last Close | %s |\n", r.Input.LastClose.UTC().Format("2006-01-02 15:04:05")))
	}
	sb.WriteString("\n")

	// Per-rule outcomes
	sb.WriteString("## Rules\n\n")
	sb.WriteString("| Rule | Name | Status | Violations | Message |\n")
	sb.WriteString("|------|------|--------|------------|--------|\n")
	for _, rule := range r.Rules {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %d | %s |\n",
			rule.RuleNumber, rule.RuleName, rule.Status, len(rule.Violations), rule.Message))
	}
	sb.WriteString("\n")

	// Findings
	for _, rule := range r.Rules {
		if len(rule.Violations) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("### Rule %d: %s\n\n", rule.RuleNumber, rule.RuleName))
		for _, v := range rule.Violations {
			sb.WriteString(fmt.Sprintf("- %s\n", v.Detail))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
