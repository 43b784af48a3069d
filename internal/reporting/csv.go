package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderCSV renders the per-finding table as CSV string. Each violated rule
// contributes one row per finding; rules without findings contribute one
// summary row so every rule appears in the output.
func RenderCSV(r *Report) string {
	var sb strings.Builder

	sb.WriteString("rule_number,rule_name,status,position_id,related_position_id,instrument,side,timestamp,kind,value,threshold\n")

	for _, rule := range r.Rules {
		if len(rule.Violations) == 0 {
			sb.WriteString(fmt.Sprintf("%d,%s,%s,,,,,,,,\n",
				rule.RuleNumber, csvEscape(rule.RuleName), rule.Status))
			continue
		}
		for _, v := range rule.Violations {
			ts := ""
			if !v.Timestamp.IsZero() {
				ts = v.Timestamp.UTC().Format(time.RFC3339)
			}
			sb.WriteString(fmt.Sprintf("%d,%s,%s,%s,%s,%s,%s,%s,%s,%.6f,%.6f\n",
				rule.RuleNumber, csvEscape(rule.RuleName), rule.Status,
				csvEscape(v.PositionID), csvEscape(v.RelatedPositionID),
				csvEscape(v.Instrument), v.Side, ts, v.Kind, v.Value, v.Threshold))
		}
	}

	return sb.String()
}

func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
