package logctx

import (
	"sync"
	"time"
)

// Single diagnostic line waiting to be printed
type Entry struct {
	Timestamp time.Time
	Severity  string
	Tags      []string
	Message   string
}

// Logger Struct
type Logger struct {
	ID         string
	CreatedAt  time.Time
	queue      []Entry         // pending entries
	mutex      sync.Mutex      // protects queue and PrintLevel
	cond       *sync.Cond      // signals new entries to the watcher
	Done       <-chan struct{} // watcher exits once closed and queue is empty
	PrintLevel int             // Entries above this level are dropped (errors always pass)
	wg         *sync.WaitGroup
}

// Repeated message suppression state for the watcher
type dedupState struct {
	lastMsg          string
	repeatCount      int
	lastSuppressTime time.Time
}
