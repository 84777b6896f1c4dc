package main

import (
	"database/sql"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Event types for analytics tracking
const (
	EvtPlayerJoin  = "player_join"
	EvtPlayerLeave = "player_leave"
	EvtPlayerKill  = "player_kill"
	EvtPlayerDeath = "player_death"
)

const (
	analyticsQueueSize = 1024
	analyticsBatchSize = 50
	analyticsFlushTick = 5 * time.Second
)

// AnalyticsEvent represents a single trackable event
type AnalyticsEvent struct {
	Type       string
	Mode       string
	SessionID  string
	PlayerName string
	Detail     string // victim name, death cause
	Timestamp  time.Time
}

// Analytics handles event tracking with batched background writes.
// A nil *Analytics is valid and records nothing.
type Analytics struct {
	db     *DB
	log    *log.Logger
	events chan AnalyticsEvent
	stop   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// NewAnalytics creates and starts the analytics background writer
func NewAnalytics(db *DB, logger *log.Logger) *Analytics {
	if logger == nil {
		logger = log.Default()
	}
	a := &Analytics{
		db:     db,
		log:    logger.With("component", "analytics"),
		events: make(chan AnalyticsEvent, analyticsQueueSize),
		stop:   make(chan struct{}),
	}
	a.wg.Add(1)
	go a.writer()
	return a
}

// Track enqueues an event for async persistence (non-blocking)
func (a *Analytics) Track(evtType string, mode GameMode, sessionID, name, detail string) {
	if a == nil {
		return
	}
	select {
	case a.events <- AnalyticsEvent{
		Type:       evtType,
		Mode:       mode.String(),
		SessionID:  sessionID,
		PlayerName: name,
		Detail:     detail,
		Timestamp:  time.Now().UTC(),
	}:
	default:
		// queue full, drop rather than block the tick
	}
}

// Stop flushes pending events and shuts down the writer
func (a *Analytics) Stop() {
	if a == nil {
		return
	}
	a.once.Do(func() { close(a.stop) })
	a.wg.Wait()
}

// writer is the background goroutine that batches and writes events to DB
func (a *Analytics) writer() {
	defer a.wg.Done()

	batch := make([]AnalyticsEvent, 0, analyticsBatchSize)
	ticker := time.NewTicker(analyticsFlushTick)
	defer ticker.Stop()

	for {
		select {
		case evt := <-a.events:
			batch = append(batch, evt)
			if len(batch) >= analyticsBatchSize {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-a.stop:
		drain:
			for {
				select {
				case evt := <-a.events:
					batch = append(batch, evt)
				default:
					break drain
				}
			}
			if len(batch) > 0 {
				a.flush(batch)
			}
			return
		}
	}
}

// flush writes a batch of events to the database
func (a *Analytics) flush(events []AnalyticsEvent) {
	if a.db == nil || len(events) == 0 {
		return
	}
	tx, err := a.db.conn.Begin()
	if err != nil {
		a.log.Error("begin tx", "error", err)
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO analytics_events (event_type, mode, session_id, player_name, detail, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		a.log.Error("prepare insert", "error", err)
		return
	}
	defer stmt.Close()

	for _, evt := range events {
		sid := sql.NullString{String: evt.SessionID, Valid: evt.SessionID != ""}
		name := sql.NullString{String: evt.PlayerName, Valid: evt.PlayerName != ""}
		detail := sql.NullString{String: evt.Detail, Valid: evt.Detail != ""}
		if _, err := stmt.Exec(evt.Type, evt.Mode, sid, name, detail, evt.Timestamp.Format(time.RFC3339)); err != nil {
			a.log.Error("insert event", "error", err, "type", evt.Type)
		}
	}
	if err := tx.Commit(); err != nil {
		a.log.Error("commit", "error", err)
		return
	}
	a.log.Debug("flushed events", "count", len(events))
}

// --- Query methods for the stats endpoint ---

// EventCounts returns counts of each event type for the last N days
func (a *Analytics) EventCounts(days int) (map[string]int, error) {
	if a == nil || a.db == nil {
		return nil, nil
	}
	rows, err := a.db.conn.Query(`
		SELECT event_type, COUNT(*) FROM analytics_events
		WHERE created_at >= date('now', '-' || ? || ' days')
		GROUP BY event_type ORDER BY COUNT(*) DESC
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var evtType string
		var count int
		if err := rows.Scan(&evtType, &count); err != nil {
			return nil, err
		}
		result[evtType] = count
	}
	return result, rows.Err()
}

// TopKillers returns the names with the most kills in the given mode
func (a *Analytics) TopKillers(mode GameMode, limit int) ([]KillCount, error) {
	if a == nil || a.db == nil {
		return nil, nil
	}
	rows, err := a.db.conn.Query(`
		SELECT player_name, COUNT(*) AS kills FROM analytics_events
		WHERE event_type = ? AND mode = ? AND player_name IS NOT NULL
		GROUP BY player_name ORDER BY kills DESC, player_name LIMIT ?
	`, EvtPlayerKill, mode.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []KillCount
	for rows.Next() {
		var kc KillCount
		if err := rows.Scan(&kc.Name, &kc.Kills); err != nil {
			return nil, err
		}
		result = append(result, kc)
	}
	return result, rows.Err()
}

// KillCount is one row of the kill board
type KillCount struct {
	Name  string `json:"name"`
	Kills int    `json:"kills"`
}
