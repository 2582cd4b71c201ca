package sqlite

import (
	"fmt"
	"time"

	"github.com/tabula-app/tabula/pkg/types"
)

var _ types.ClickLog = (*clickLog)(nil)

// clickLog implements the append-only click-event store. Timestamps are
// stored UTC in a fixed-width format so lexicographic order in SQL matches
// chronological order; hour and weekday are derived from the local clock
// at write time and stored as-is.
type clickLog struct {
	backend *Backend
}

// clickTimeFormat is RFC 3339 with fixed-width nanoseconds.
const clickTimeFormat = "2006-01-02T15:04:05.000000000Z"

const selectClick = "SELECT click_id, url_id, timestamp, hour, weekday FROM clicks"

func scanClick(row rowScanner) (*types.UrlClickEvent, error) {
	var e types.UrlClickEvent
	var ts string
	if err := row.Scan(&e.ID, &e.UrlID, &ts, &e.Hour, &e.Weekday); err != nil {
		return nil, fmt.Errorf("scanning click event: %w", err)
	}
	t, err := time.Parse(clickTimeFormat, ts)
	if err != nil {
		return nil, fmt.Errorf("parsing click timestamp: %w", err)
	}
	e.Timestamp = t
	return &e, nil
}

// Record appends a click event for the given URL ID. The URL reference is
// weak and deliberately unchecked: clicks on a URL deleted moments before
// are recorded and simply never surface in the recency ranking.
func (l *clickLog) Record(urlID string) (*types.UrlClickEvent, error) {
	if urlID == "" {
		return nil, types.ErrInvalidID
	}
	db, release, err := l.backend.writer()
	if err != nil {
		return nil, err
	}
	defer release()

	now := time.Now()
	e := &types.UrlClickEvent{
		ID:        newUUID(),
		UrlID:     urlID,
		Timestamp: now.UTC(),
		Hour:      now.Hour(),
		Weekday:   int(now.Weekday()),
	}

	_, err = db.Exec(
		"INSERT INTO clicks (click_id, url_id, timestamp, hour, weekday) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.UrlID, e.Timestamp.Format(clickTimeFormat), e.Hour, e.Weekday)
	if err != nil {
		return nil, fmt.Errorf("inserting click event: %w", err)
	}
	return e, nil
}

func (l *clickLog) GetAll() ([]*types.UrlClickEvent, error) {
	return l.query(selectClick + " ORDER BY timestamp")
}

func (l *clickLog) ByUrl(urlID string) ([]*types.UrlClickEvent, error) {
	if urlID == "" {
		return nil, types.ErrInvalidID
	}
	return l.query(selectClick+" WHERE url_id = ? ORDER BY timestamp", urlID)
}

func (l *clickLog) Between(from, to time.Time) ([]*types.UrlClickEvent, error) {
	return l.query(selectClick+" WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp",
		from.UTC().Format(clickTimeFormat), to.UTC().Format(clickTimeFormat))
}

func (l *clickLog) query(q string, args ...any) ([]*types.UrlClickEvent, error) {
	db, release, err := l.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching click events: %w", err)
	}
	defer rows.Close()

	var results []*types.UrlClickEvent
	for rows.Next() {
		e, err := scanClick(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	if results == nil {
		results = []*types.UrlClickEvent{}
	}
	return results, rows.Err()
}

// LastClicks aggregates the log into one row per clicked URL with its most
// recent timestamp, newest first. UrlID ascending breaks exact-timestamp
// ties so the ranking is deterministic across runs.
func (l *clickLog) LastClicks() ([]types.LastClick, error) {
	db, release, err := l.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.Query(
		"SELECT url_id, MAX(timestamp) AS last FROM clicks GROUP BY url_id ORDER BY last DESC, url_id ASC")
	if err != nil {
		return nil, fmt.Errorf("aggregating click events: %w", err)
	}
	defer rows.Close()

	var results []types.LastClick
	for rows.Next() {
		var lc types.LastClick
		var ts string
		if err := rows.Scan(&lc.UrlID, &ts); err != nil {
			return nil, fmt.Errorf("scanning last click: %w", err)
		}
		t, err := time.Parse(clickTimeFormat, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing last click timestamp: %w", err)
		}
		lc.LastClicked = t
		results = append(results, lc)
	}
	if results == nil {
		results = []types.LastClick{}
	}
	return results, rows.Err()
}

// ClearAll unconditionally deletes every click event. Used by the
// statistics reset; the entity collections are untouched.
func (l *clickLog) ClearAll() error {
	db, release, err := l.backend.writer()
	if err != nil {
		return err
	}
	defer release()

	if _, err := db.Exec("DELETE FROM clicks"); err != nil {
		return fmt.Errorf("clearing click events: %w", err)
	}
	return nil
}
