// Package store persists scheduling run results in a SQLite database.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusim/sim"
)

// ErrRunNotFound is returned by LoadRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	policy           TEXT NOT NULL,
	quantum          INTEGER NOT NULL,
	levels           INTEGER NOT NULL,
	aging_factor     INTEGER NOT NULL,
	end_time         INTEGER NOT NULL,
	avg_waiting      REAL NOT NULL,
	avg_turnaround   REAL NOT NULL,
	avg_response     REAL NOT NULL,
	context_switches INTEGER NOT NULL,
	gantt            TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS process_results (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	process_id INTEGER NOT NULL,
	arrival    INTEGER NOT NULL,
	burst      INTEGER NOT NULL,
	priority   INTEGER NOT NULL,
	waiting    INTEGER NOT NULL,
	turnaround INTEGER NOT NULL,
	response   INTEGER NOT NULL,
	completion INTEGER NOT NULL,
	position   INTEGER NOT NULL,
	PRIMARY KEY (run_id, process_id)
);`

// RunRecord is one stored run.
type RunRecord struct {
	ID              string              `json:"id"`
	Policy          string              `json:"policy"`
	Config          sim.Config          `json:"config"`
	EndTime         int64               `json:"end_time"`
	AvgWaiting      float64             `json:"avg_waiting"`
	AvgTurnaround   float64             `json:"avg_turnaround"`
	AvgResponse     float64             `json:"avg_response"`
	ContextSwitches int                 `json:"context_switches"`
	Gantt           []sim.SliceOutput   `json:"gantt"`
	Processes       []sim.ProcessOutput `json:"processes,omitempty"` // input order; only filled by LoadRun
}

// RunStore writes and reads runs in a SQLite database.
type RunStore struct {
	*sql.DB
	path string
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*RunStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening run store %s: %w", path, err)
	}
	// One writer at a time keeps SQLite from returning SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating run store schema: %w", err)
	}
	logrus.Debugf("Run store opened at %s", path)
	return &RunStore{DB: db, path: path}, nil
}

// SaveRun stores a result and its summary in one transaction and returns the new run ID.
func (s *RunStore) SaveRun(res *sim.Result, summary *sim.Summary) (string, error) {
	out := sim.NewRunOutput(res, summary)
	gantt, err := json.Marshal(out.Gantt)
	if err != nil {
		return "", fmt.Errorf("encoding gantt: %w", err)
	}

	id := xid.New().String()
	tx, err := s.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO runs
		(id, policy, quantum, levels, aging_factor, end_time, avg_waiting, avg_turnaround, avg_response, context_switches, gantt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, out.Policy, out.Config.Quantum, out.Config.Levels, out.Config.AgingFactor, out.EndTime,
		summary.AvgWaiting, summary.AvgTurnaround, summary.AvgResponse, summary.ContextSwitches, string(gantt))
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO process_results
		(run_id, process_id, arrival, burst, priority, waiting, turnaround, response, completion, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing process insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()
	for i, p := range out.Processes {
		if _, err := stmt.Exec(id, p.ID, p.ArrivalTime, p.BurstTime, p.Priority,
			p.WaitingTime, p.TurnaroundTime, p.ResponseTime, p.CompletionTime, i); err != nil {
			return "", fmt.Errorf("inserting process %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	logrus.Infof("Stored %s run %s (%d processes)", out.Policy, id, len(out.Processes))
	return id, nil
}

const selectRun = `SELECT id, policy, quantum, levels, aging_factor, end_time,
	avg_waiting, avg_turnaround, avg_response, context_switches, gantt FROM runs`

// ListRuns returns every stored run, oldest first, without per-process rows.
func (s *RunStore) ListRuns() ([]RunRecord, error) {
	// xid strings sort by creation time
	rows, err := s.Query(selectRun + ` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *rec)
	}
	return runs, rows.Err()
}

// LoadRun returns one run with its per-process rows in input order.
func (s *RunStore) LoadRun(id string) (*RunRecord, error) {
	if _, err := xid.FromString(id); err != nil {
		return nil, fmt.Errorf("%w: malformed id %q", ErrRunNotFound, id)
	}
	rec, err := scanRun(s.QueryRow(selectRun+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.Query(`SELECT process_id, arrival, burst, priority, waiting, turnaround, response, completion
		FROM process_results WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading processes of run %s: %w", id, err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var p sim.ProcessOutput
		if err := rows.Scan(&p.ID, &p.ArrivalTime, &p.BurstTime, &p.Priority,
			&p.WaitingTime, &p.TurnaroundTime, &p.ResponseTime, &p.CompletionTime); err != nil {
			return nil, fmt.Errorf("scanning process row: %w", err)
		}
		rec.Processes = append(rec.Processes, p)
	}
	return rec, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*RunRecord, error) {
	var rec RunRecord
	var gantt string
	err := row.Scan(&rec.ID, &rec.Policy, &rec.Config.Quantum, &rec.Config.Levels, &rec.Config.AgingFactor,
		&rec.EndTime, &rec.AvgWaiting, &rec.AvgTurnaround, &rec.AvgResponse, &rec.ContextSwitches, &gantt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run row: %w", err)
	}
	if err := json.Unmarshal([]byte(gantt), &rec.Gantt); err != nil {
		return nil, fmt.Errorf("decoding gantt of run %s: %w", rec.ID, err)
	}
	return &rec, nil
}
