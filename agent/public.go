package agent

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/brdt/tally"
	"github.com/brdt/tally/docs"
	"github.com/brdt/tally/renderer"
)

const model = "gemini-2.5-pro"

// newFacilitator fronts the conversation and dispatches to the experts.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You facilitate a conversation about the user's trading session.

				Learn each expert's skills from the Tools and ask them questions.
				They are at your service and keep the context of your previous
				questions.

				The user wants plain answers about his cash, positions, round
				trips and statistics. Ask the Analyst before asserting any
				figure about the session; never invent numbers.
			`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns an expert grounded by web search, for market context
// the session ledger cannot answer.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This expert follows markets, companies and funds.
		Ask the Researcher whenever the question needs recent or outside
		information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a market researcher. Use Google Search to ground
				everything you assert about companies, markets or funds, and
				relate what you find to the user's question.
			`}}},
		},
	}
}

// NewAnalyst returns the expert that reads the session itself. Every tool
// call replays the ledger through load, so answers always reflect the file
// on disk.
func NewAnalyst(load func() (*tally.Tracker, error), currency string) *Expert {
	lib := []Function{
		report("summary_metrics",
			`Summary_metrics renders every statistic of the session: account,
			risk and trading figures, as a markdown report.`,
			load, func(tr *tally.Tracker) string {
				return renderer.SummaryMarkdown(tr.Summary(), currency)
			}),
		report("round_trips",
			`Round_trips lists every closed round trip with entry, exit, hold
			time and net profit, as a markdown table.`,
			load, func(tr *tally.Tracker) string {
				return renderer.RoundTripsMarkdown(tr.RoundTrips(), currency)
			}),
		report("equity_curve",
			`Equity_curve lists the portfolio value after every recorded event,
			with point-to-point changes, as a markdown table.`,
			load, func(tr *tally.Tracker) string {
				return renderer.EquityMarkdown(tr.EquityCurve(), currency)
			}),
		metricFunc(load),
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He reads the user's session ledger
		and computes cash, positions, round trips, the equity curve and every
		statistic about the session.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the analyst of the user's trading session. Use the
				tools to read the session before answering; they replay the
				ledger and return markdown. Quote figures exactly as returned.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// report wraps a no-argument renderer call into a Function.
func report(name, description string, load func() (*tally.Tracker, error), render func(*tally.Tracker) string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			tr, err := load()
			if err != nil {
				return errorResponse(id, name, err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: name,
				Response: map[string]any{
					"output": render(tr),
				},
			}
		},
	}
}

// metricFunc answers a single statistic by name.
func metricFunc(load func() (*tally.Tracker, error)) *Func {
	const name = "metric"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Metric returns one statistic of the session by its snake_case name.

			Known names: ` + strings.Join(tally.MetricNames(), ", ") + `.

			` + must(docs.GetTopic("metrics")),
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "The snake_case metric name, e.g. sharpe or max_drawdown.",
					},
				},
				Required: []string{"name"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The metric value as a decimal number.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			metric, ok := args["name"].(string)
			if !ok {
				return errorResponse(id, name, fmt.Errorf("argument 'name' is not a string as expected but %T", args["name"]))
			}
			tr, err := load()
			if err != nil {
				return errorResponse(id, name, err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: name,
				Response: map[string]any{
					"output": fmt.Sprintf("%g", tr.Metric(metric)),
				},
			}
		},
	}
}
