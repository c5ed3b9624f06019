package pricing

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator issues identifiers unique within the process.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues time-ordered UUIDv7 identifiers, so ids sort by creation
// and stay collision resistant across sessions.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SequenceGenerator issues prefix-000001, prefix-000002, ...
type SequenceGenerator struct {
	Prefix string

	mu   sync.Mutex
	next int
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%06d", g.Prefix, g.next)
}

// DisplayNumber is the human-facing order number: the last 6 characters of id.
func DisplayNumber(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
