package types

import "time"

// UrlClickEvent records a single link activation. Hour and Weekday are
// derived from the local wall clock at write time and never recomputed,
// so time-pattern queries see the clock and timezone that were in effect
// when the click happened. UrlID is a weak reference: the URL may have
// been deleted since.
type UrlClickEvent struct {
	ID        string    `json:"id"`
	UrlID     string    `json:"urlId"`
	Timestamp time.Time `json:"timestamp"`
	Hour      int       `json:"hour"`    // 0-23, local time at write.
	Weekday   int       `json:"weekday"` // 0-6, Sunday = 0.
}

// LastClick is the most recent click timestamp recorded for one URL,
// used by the recent-URLs ranking.
type LastClick struct {
	UrlID       string    `json:"urlId"`
	LastClicked time.Time `json:"lastClicked"`
}

// ClickLog is the append-only click-event store. There is no update or
// single-delete operation: events are appended by Record and removed only
// in bulk by ClearAll.
type ClickLog interface {
	// Record appends a click event for the given URL ID, capturing the
	// current wall-clock time and deriving Hour and Weekday from it.
	Record(urlID string) (*UrlClickEvent, error)

	// GetAll returns every event ordered by timestamp ascending.
	GetAll() ([]*UrlClickEvent, error)

	// ByUrl returns the events for one URL ordered by timestamp ascending.
	ByUrl(urlID string) ([]*UrlClickEvent, error)

	// Between returns the events with from <= Timestamp < to, ordered by
	// timestamp ascending.
	Between(from, to time.Time) ([]*UrlClickEvent, error)

	// LastClicks returns one entry per clicked URL with its most recent
	// timestamp, ordered by that timestamp descending. Equal timestamps
	// order by UrlID ascending so the ranking is deterministic.
	LastClicks() ([]LastClick, error)

	// ClearAll unconditionally deletes every event.
	ClearAll() error
}
