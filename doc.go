// Package tally keeps the books of a single trading session. It is designed
// to be local-first and auditable: every figure it reports can be traced
// back to the trades and quotes that produced it.
//
// The core functionalities include:
//   - Trade Recording: An append-only log of executed orders, each moving
//     cash by its notional plus costs and feeding a FIFO position book.
//   - Round Trips: Matching exits against entries lot by lot, with entry
//     and exit costs allocated pro rata, to produce the realized trade list.
//   - Price History: Observed market quotes per symbol, append-only, used
//     to mark open positions to market; never guessed from entry prices.
//   - Equity and Risk: An equity curve over every cash or quote instant,
//     and the derived statistics (drawdowns, Sharpe, Sortino, Calmar, win
//     rates, Kelly sizing, exposure and hold times).
//   - Data Persistence: A human-readable JSONL event log that replays into
//     the exact session state, plus CSV import/export and quote feeds.
//
// This package serves as the foundational logic for the `tly` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package tally
