package notifymock

import (
	"context"
	"sync"

	"report-approval-service/internal/domain/notify"
)

var _ notify.Enqueuer = (*Enqueuer)(nil)

type Call struct {
	RecipientID string
	Event       notify.EventType
	ReportID    string
}

// Enqueuer records every enqueue; safe for concurrent use.
type Enqueuer struct {
	mu    sync.Mutex
	Calls []Call
	Err   error
}

func (m *Enqueuer) Enqueue(ctx context.Context, recipientID string, event notify.EventType, reportID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Calls = append(m.Calls, Call{RecipientID: recipientID, Event: event, ReportID: reportID})
	return nil
}

func (m *Enqueuer) Recorded() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.Calls))
	copy(out, m.Calls)
	return out
}
