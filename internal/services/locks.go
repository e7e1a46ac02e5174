package services

import (
	"sync"

	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/google/uuid"
)

// ContentLocks serializes read-modify-write cycles per content id.
// Operations on different ids proceed in parallel.
type ContentLocks struct {
	mu sync.Map // key string -> *sync.Mutex
}

func (l *ContentLocks) lock(contentType models.ContentType, contentID uuid.UUID) func() {
	key := string(contentType) + ":" + contentID.String()
	actual, _ := l.mu.LoadOrStore(key, &sync.Mutex{})
	m := actual.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func NewContentLocks() *ContentLocks {
	return &ContentLocks{}
}
