// Package service implements the workflow operations around the
// transition engine: task creation and deletion, assignments, comments,
// subtasks with progress, template expansion, and due-date reminders.
// Role capability checks live at the HTTP boundary; status transitions
// live in the engine.
package service

import (
	"time"

	"github.com/eliman/taskdesk/internal/notify"
	"github.com/eliman/taskdesk/internal/store"
)

// Service orchestrates store operations and notification fan-out.
type Service struct {
	store      store.Store
	dispatcher *notify.Dispatcher
	now        func() time.Time
}

// New creates a Service. The dispatcher may be nil, in which case no
// notifications are produced.
func New(s store.Store, d *notify.Dispatcher) *Service {
	return &Service{store: s, dispatcher: d, now: time.Now}
}

// WithClock overrides the service's time source. For tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
