package state

import (
	"time"
)

const maxEventLog = 100

// AppState holds what the list page shows besides the list itself.
type AppState struct {
	Err         error
	LastRefresh time.Time
	Loading     int // loads in flight
	Events      []string
}

// Log appends a timestamped event line, keeping the newest entries.
func (s *AppState) Log(now time.Time, line string) {
	s.Events = append(s.Events, now.Format("15:04:05")+" "+line)
	if len(s.Events) > maxEventLog {
		s.Events = s.Events[len(s.Events)-maxEventLog:]
	}
}

// LastEvent returns the newest event line, or "".
func (s *AppState) LastEvent() string {
	if len(s.Events) == 0 {
		return ""
	}
	return s.Events[len(s.Events)-1]
}
