// Package journal persists finished sessions for later review: one run row
// per session plus its round trips and equity curve, in SQLite or CSV.
package journal

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/brdt/tally"
	"github.com/oklog/ulid/v2"
)

// Run is the journaled result of one session.
type Run struct {
	RunID   string
	Created time.Time
	Session string

	Opened time.Time
	Closed time.Time

	InitialCash float64
	FinalCash   float64
	FinalEquity float64

	Trades     int
	RoundTrips int
	Wins       int
	Losses     int

	NetPnL       float64
	ReturnPct    float64
	MaxDDPct     float64
	WinRate      float64
	ProfitFactor float64
	Sharpe       float64

	Notes []string
}

// Journal records runs, round trips and equity points.
type Journal interface {
	RecordRun(Run) error
	RecordTrip(runID string, trip tally.RoundTrip) error
	RecordEquity(runID string, point tally.EquityPoint) error
	Close() error
}

// Open returns the journal backend a session is configured with.
func Open(cfg tally.JournalConfig) (Journal, error) {
	switch cfg.Type {
	case "csv":
		return NewCSV(cfg.TradesFile, cfg.EquityFile, cfg.RunsFile)
	case "sqlite":
		return NewSQLite(cfg.DBPath)
	case "":
		return nil, fmt.Errorf("no journal configured for this session")
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}

// NewRun reduces a tracker into a journal row. The run id is a fresh ULID,
// so rows from repeated journalings sort by creation time.
func NewRun(session string, t *tally.Tracker) Run {
	s := t.Summary()
	curve := t.EquityCurve()

	r := Run{
		RunID:       newRunID(),
		Created:     time.Now(),
		Session:     session,
		Opened:      t.Opened(),
		Closed:      t.Opened(),
		InitialCash: s.InitialCash,
		FinalCash:   s.CurrentCash,
		FinalEquity: s.CurrentEquity,

		Trades:     s.Trades,
		RoundTrips: s.RoundTrips,

		NetPnL:       s.RealisedPnL + s.UnrealisedPnL,
		MaxDDPct:     s.MaxDrawdown * 100,
		WinRate:      s.WinRate,
		ProfitFactor: s.ProfitFactor,
		Sharpe:       s.Sharpe,
	}
	if len(curve) > 0 {
		r.Closed = curve[len(curve)-1].Time
	}
	if s.InitialCash != 0 {
		r.ReturnPct = (s.CurrentEquity/s.InitialCash - 1) * 100
	}
	for _, trip := range t.RoundTrips() {
		switch {
		case trip.NetPnL > 0:
			r.Wins++
		case trip.NetPnL < 0:
			r.Losses++
		}
	}
	return r
}

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	// Seed a PRNG from crypto/rand so ULID entropy is unpredictable, and
	// use ulid.Monotonic so ids minted within the same millisecond remain
	// lexicographically increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// newRunID returns a ULID string, time-sortable across runs.
func newRunID() string {
	mu.Lock()
	defer mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), mono)
	if err != nil {
		// only possible if time goes backwards or entropy fails
		panic(err)
	}
	return id.String()
}
