package mocks

import (
	"sync"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/notification"
)

// RecordingDispatcher is a mock notification dispatcher that captures every
// enqueued event for assertions
type RecordingDispatcher struct {
	mu     sync.Mutex
	events []model.Notification
}

// Ensure RecordingDispatcher implements Dispatcher
var _ notification.Dispatcher = (*RecordingDispatcher)(nil)

// NewRecordingDispatcher creates a new RecordingDispatcher
func NewRecordingDispatcher() *RecordingDispatcher {
	return &RecordingDispatcher{}
}

// Enqueue records the event
func (d *RecordingDispatcher) Enqueue(n model.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, n)
}

// Events returns a copy of everything enqueued so far
func (d *RecordingDispatcher) Events() []model.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]model.Notification, len(d.events))
	copy(out, d.events)
	return out
}

// Last returns the most recently enqueued event, or nil
func (d *RecordingDispatcher) Last() *model.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.events) == 0 {
		return nil
	}
	n := d.events[len(d.events)-1]
	return &n
}

// Reset clears recorded events
func (d *RecordingDispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = nil
}
