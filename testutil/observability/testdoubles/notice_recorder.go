package testdoubles

import (
	"sync"

	"github.com/AntonStoeckl/lending-catalog-go/catalog"
)

// NoticeRecorder captures the notices delivered to its Handle method.
type NoticeRecorder struct {
	notices []catalog.Notice
	mu      sync.Mutex
}

// NewNoticeRecorder creates an empty NoticeRecorder.
func NewNoticeRecorder() *NoticeRecorder {
	return &NoticeRecorder{}
}

// Handle records the notice. Pass it to catalog.WithNoticeHandler.
func (r *NoticeRecorder) Handle(notice catalog.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notices = append(r.notices, notice)
}

// Notices returns a copy of all recorded notices in delivery order.
func (r *NoticeRecorder) Notices() []catalog.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]catalog.Notice(nil), r.notices...)
}
