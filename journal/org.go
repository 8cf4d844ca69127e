package journal

import (
	"bytes"
	"os"
	"text/template"
	"time"
)

var orgFuncs = template.FuncMap{
	"mul100": func(x float64) float64 { return x * 100.0 },
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

// Org renders the run as an org-mode review block.
func (r *Run) Org() (string, error) {
	t, err := template.New("run").Funcs(orgFuncs).Parse(OrgTemplate)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if err := t.Execute(buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteOrg writes the org review block to a file.
func (r *Run) WriteOrg(path string) error {
	s, err := r.Org()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}

const OrgTemplate = `* SESSION: {{.Session}}
:PROPERTIES:
:RUN_ID:      {{.RunID}}
:OPENED:      {{.Opened.Format "2006-01-02 15:04"}}
:CLOSED:      {{.Closed.Format "2006-01-02 15:04"}}
:INITIAL:     {{printf "%.2f" .InitialCash}}
:FINAL_CASH:  {{printf "%.2f" .FinalCash}}
:FINAL_EQ:    {{printf "%.2f" .FinalEquity}}
:NET_PNL:     {{printf "%.2f" .NetPnL}}
:RETURN_PCT:  {{printf "%.2f" .ReturnPct}}
:MAX_DD_PCT:  {{if ne .MaxDDPct 0.0}}{{printf "%.2f" .MaxDDPct}}{{else}}(max-dd?){{end}}
:TRADES:      {{.Trades}}
:TRIPS:       {{.RoundTrips}}
:WINS:        {{.Wins}}
:LOSSES:      {{.Losses}}
:WIN_RATE:    {{printf "%.2f" (mul100 .WinRate)}}
:PROFIT_FAC:  {{if ne .ProfitFactor 0.0}}{{printf "%.2f" .ProfitFactor}}{{else}}(profit-factor?){{end}}
:SHARPE:      {{printf "%.2f" .Sharpe}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:       *{{printf "%.2f" .NetPnL}}*
- Return:        *{{printf "%.2f" .ReturnPct}}%*
- Max Drawdown:  *{{if ne .MaxDDPct 0.0}}{{printf "%.2f" .MaxDDPct}}{{else}}(max-dd?){{end}}%*
- Win Rate:      *{{printf "%.2f" (mul100 .WinRate)}}%*
- Profit Factor: *{{if ne .ProfitFactor 0.0}}{{printf "%.2f" .ProfitFactor}}{{else}}(profit-factor?){{end}}*
- Sharpe:        *{{printf "%.2f" .Sharpe}}*

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Wins}} |
| Losses  | {{.Losses}} |
| Total   | {{.RoundTrips}} |

{{- if .Notes }}
** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
