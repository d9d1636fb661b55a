package control

import (
	"sync"
	"time"

	"github.com/inamate/vecedit/internal/typeid"
)

// maxOpLog bounds the in-memory history. Pointer moves during a drag are
// logged too, so the log would otherwise grow without limit.
const maxOpLog = 4096

// Operation records one applied submission.
type Operation struct {
	ID        string `json:"id"`
	Seq       int64  `json:"seq"`
	Type      string `json:"type"`
	Source    string `json:"source"`
	Timestamp int64  `json:"timestamp"`
}

// OpLog assigns server sequence numbers and keeps the most recent operations.
type OpLog struct {
	mu        sync.RWMutex
	serverSeq int64
	ops       []Operation
}

func NewOpLog() *OpLog {
	return &OpLog{ops: make([]Operation, 0, 64)}
}

// Append stamps a new operation with an id, the next sequence number and the
// current time.
func (l *OpLog) Append(typ, source string) Operation {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.serverSeq++
	op := Operation{
		ID:        typeid.NewOpID(),
		Seq:       l.serverSeq,
		Type:      typ,
		Source:    source,
		Timestamp: time.Now().UnixMilli(),
	}
	l.ops = append(l.ops, op)
	if len(l.ops) > maxOpLog {
		l.ops = append(l.ops[:0], l.ops[len(l.ops)-maxOpLog:]...)
	}
	return op
}

// Seq returns the last assigned sequence number.
func (l *OpLog) Seq() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.serverSeq
}

// Since returns the retained operations with Seq greater than seq.
func (l *OpLog) Since(seq int64) []Operation {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Operation, 0)
	for _, op := range l.ops {
		if op.Seq > seq {
			out = append(out, op)
		}
	}
	return out
}
