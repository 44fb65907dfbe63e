package trace

import "time"

// Kind tells span boundaries from instant events.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat // periodic liveness signal
)

var kindNames = []string{"", "begin", "end", "point", "heartbeat"}

func (k Kind) String() string { return nameOf(kindNames, int(k)) }

// Scope is how much of the cache an event concerns; smaller is coarser.
type Scope uint8

const (
	ScopeCache Scope = iota + 1 // whole cache: check, warm, clear
	ScopeFile                   // one file: load, reload, evict, index build
	ScopeLine                   // single line lookups, very chatty
)

var scopeNames = []string{"", "cache", "file", "line"}

func (s Scope) String() string { return nameOf(scopeNames, int(s)) }

// Event is one trace record. Seq is stamped by the tracer that stores it.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // 0 for points
	ParentID uint64 // enclosing span, 0 at the root
	GID      uint64 // goroutine that produced the event
	Name     string // "load", "reload", "check", ...
	Detail   string
	Extra    map[string]string
	Err      bool // the event reports a failure
}
