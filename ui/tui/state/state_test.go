package state

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestLogKeepsNewestEvents(t *testing.T) {
	var s AppState
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	if s.LastEvent() != "" {
		t.Errorf("Expected empty last event, got %q", s.LastEvent())
	}

	for i := 0; i < maxEventLog+5; i++ {
		s.Log(now, fmt.Sprintf("event %d", i))
	}

	if len(s.Events) != maxEventLog {
		t.Errorf("Expected %d events, got %d", maxEventLog, len(s.Events))
	}
	if !strings.HasSuffix(s.Events[0], "event 5") {
		t.Errorf("Expected oldest kept event to be 'event 5', got %q", s.Events[0])
	}
	if s.LastEvent() != "03:04:05 event 104" {
		t.Errorf("Unexpected last event %q", s.LastEvent())
	}
}
