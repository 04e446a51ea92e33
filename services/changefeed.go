package services

import "sync"

// Table names published on the change feed.
const (
	TableFamilies    = "families"
	TableGoals       = "goals"
	TablePredictions = "predictions"
	TableSettings    = "settings"
	TableUsers       = "users"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// TableAll subscribes a handler to every table.
const TableAll = "*"

type ChangeEvent struct {
	Table  string `json:"table"`
	Action string `json:"action"`
	ID     string `json:"id"`
	Actor  string `json:"actor,omitempty"`
}

type ChangeHandler func(ChangeEvent)

// ChangeFeed is an in-process fan-out of row change events. Services publish
// after a successful mutation; transports (the WebSocket hub, tests) subscribe.
// The feed itself knows nothing about any wire format, and it is passed in
// explicitly wherever it is needed rather than living in package state.
type ChangeFeed struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]ChangeHandler
}

func NewChangeFeed() *ChangeFeed {
	return &ChangeFeed{subs: make(map[string]map[int]ChangeHandler)}
}

// Subscribe registers a handler for one table (or TableAll) and returns the
// matching unsubscribe function. Unsubscribe is idempotent.
func (f *ChangeFeed) Subscribe(table string, handler ChangeHandler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := f.nextID
	if f.subs[table] == nil {
		f.subs[table] = make(map[int]ChangeHandler)
	}
	f.subs[table][id] = handler

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs[table], id)
	}
}

// Publish delivers the event to every handler subscribed to the event's table
// and to TableAll. Handlers run synchronously on the caller's goroutine, after
// the feed lock has been released.
func (f *ChangeFeed) Publish(event ChangeEvent) {
	f.mu.RLock()
	handlers := make([]ChangeHandler, 0, len(f.subs[event.Table])+len(f.subs[TableAll]))
	for _, h := range f.subs[event.Table] {
		handlers = append(handlers, h)
	}
	if event.Table != TableAll {
		for _, h := range f.subs[TableAll] {
			handlers = append(handlers, h)
		}
	}
	f.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}
