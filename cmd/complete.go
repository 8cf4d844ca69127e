package cmd

import (
	"github.com/brdt/tally"
	"github.com/brdt/tally/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion. Metric and
// topic names complete from the live lists, so help and completion cannot
// drift apart.
func Completion() *complete.Command {
	stamp := predict.Something
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"session": predict.Files("*.yaml"),
			"ledger":  predict.Files("*.jsonl"),
			"v":       predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"init": {Flags: map[string]complete.Predictor{
				"cash":     predict.Something,
				"name":     predict.Something,
				"currency": predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"},
			}},
			"record": {Flags: map[string]complete.Predictor{
				"s":    predict.Something,
				"side": predict.Set{"buy", "sell"},
				"q":    predict.Something,
				"p":    predict.Something,
				"comm": predict.Something,
				"fees": predict.Something,
				"at":   stamp,
			}},
			"prices": {Flags: map[string]complete.Predictor{"at": stamp}},
			"fetch": {Flags: map[string]complete.Predictor{
				"n":  predict.Nothing,
				"at": stamp,
			}},
			"summary": {Flags: map[string]complete.Predictor{
				"metric": predict.Set(tally.MetricNames()),
				"w":      predict.Something,
			}},
			"equity": {},
			"trips":  {},
			"log": {Flags: map[string]complete.Predictor{
				"head": predict.Something,
				"tail": predict.Something,
			}},
			"export": {
				Args:  predict.Set{"trades", "trips", "equity"},
				Flags: map[string]complete.Predictor{"o": predict.Files("*.csv")},
			},
			"import": {Flags: map[string]complete.Predictor{
				"i": predict.Files("*.csv"),
				"n": predict.Nothing,
			}},
			"journal": {Flags: map[string]complete.Predictor{
				"org":  predict.Files("*.org"),
				"note": predict.Something,
			}},
			"assist": {Args: predict.Something},
			"topic":  {Args: predict.Set(topics)},
		},
	}
}
