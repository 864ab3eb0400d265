// Package sse streams journal change notifications to the UI as
// Server-Sent Events.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/illien/illien/internal/models"
)

// Event types sent to clients.
const (
	TypeEntryCreated    = "entry.created"
	TypeEntryUpdated    = "entry.updated"
	TypeEntryDeleted    = "entry.deleted"
	TypeJournalChanged  = "journal.changed"
	TypeSettingsUpdated = "settings.updated"
)

// entryTopics maps watcher change kinds onto event types.
var entryTopics = map[string]string{
	"created": TypeEntryCreated,
	"updated": TypeEntryUpdated,
	"deleted": TypeEntryDeleted,
}

// Event is a single SSE message.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// EntryEventData is the payload of entry.* events.
type EntryEventData struct {
	Filename  string           `json:"filename"`
	EntryType models.EntryType `json:"entry_type"`
}

// streamBuffer is how many frames a slow reader may fall behind before
// frames are dropped for it.
const streamBuffer = 64

// Broker fans journal notifications out to open event streams.
//
// All stream bookkeeping happens on the loop goroutine; callers hand it
// closures over ops.
type Broker struct {
	refreshEvery time.Duration

	ops       chan func(*hub)
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// hub is the state owned by the loop goroutine.
type hub struct {
	streams     map[chan []byte]struct{}
	lastRefresh time.Time
}

func (h *hub) send(f []byte) {
	for ch := range h.streams {
		select {
		case ch <- f:
		default:
		}
	}
}

// refreshDue reports whether a journal.changed frame may go out now.
func (h *hub) refreshDue(now time.Time, every time.Duration) bool {
	if now.Sub(h.lastRefresh) < every {
		return false
	}
	h.lastRefresh = now
	return true
}

// NewBroker starts a broker that sends journal.changed at most once per
// refreshEvery, however many entries change in that window.
func NewBroker(refreshEvery time.Duration) *Broker {
	if refreshEvery <= 0 {
		refreshEvery = 2 * time.Second
	}
	b := &Broker{
		refreshEvery: refreshEvery,
		ops:          make(chan func(*hub), 256),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	go b.loop()
	return b
}

func (b *Broker) loop() {
	defer close(b.done)
	h := &hub{streams: make(map[chan []byte]struct{})}
	for {
		select {
		case <-b.quit:
			for ch := range h.streams {
				close(ch)
			}
			return
		case op := <-b.ops:
			op(h)
		}
	}
}

// do queues op for the loop. It reports false once the broker is closed.
func (b *Broker) do(op func(*hub)) bool {
	select {
	case <-b.quit:
		return false
	default:
	}
	select {
	case b.ops <- op:
		return true
	case <-b.done:
		return false
	}
}

func frame(eventType string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return fmt.Appendf(nil, "event: %s\ndata: %s\n\n", eventType, payload), nil
}

var refreshFrame, _ = frame(TypeJournalChanged, struct{}{})

// Close ends every open stream and stops the loop. It is safe to call
// more than once.
func (b *Broker) Close() {
	b.closeOnce.Do(func() { close(b.quit) })
	<-b.done
}

// Subscribe opens a stream. After Close the returned channel is already
// closed.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, streamBuffer)
	added := make(chan struct{})
	if b.do(func(h *hub) {
		h.streams[ch] = struct{}{}
		close(added)
	}) {
		select {
		case <-added:
			return ch
		case <-b.done:
		}
	}
	select {
	case <-added:
		// The loop registered ch and closed it on shutdown.
	default:
		close(ch)
	}
	return ch
}

// Unsubscribe closes a stream opened by Subscribe.
func (b *Broker) Unsubscribe(ch chan []byte) {
	b.do(func(h *hub) {
		if _, ok := h.streams[ch]; ok {
			delete(h.streams, ch)
			close(ch)
		}
	})
}

// ClientCount returns the number of open streams.
func (b *Broker) ClientCount() int {
	n := make(chan int, 1)
	if !b.do(func(h *hub) { n <- len(h.streams) }) {
		return 0
	}
	select {
	case c := <-n:
		return c
	case <-b.done:
		return 0
	}
}

// Publish sends event to every open stream. Streams whose buffer is full
// miss it.
func (b *Broker) Publish(event Event) {
	f, err := frame(event.Type, event.Data)
	if err != nil {
		return
	}
	b.do(func(h *hub) { h.send(f) })
}

// PublishEntryEvent reports a change to one journal file, followed by a
// journal.changed frame when the refresh window allows. kind is "created",
// "updated" or "deleted"; anything else is ignored.
func (b *Broker) PublishEntryEvent(kind, filename string, entryType models.EntryType) {
	topic, ok := entryTopics[kind]
	if !ok {
		return
	}
	f, err := frame(topic, EntryEventData{Filename: filename, EntryType: entryType})
	if err != nil {
		return
	}
	b.do(func(h *hub) {
		h.send(f)
		if h.refreshDue(time.Now(), b.refreshEvery) {
			h.send(refreshFrame)
		}
	})
}

// PublishSettings reports the stored settings after a setter call.
func (b *Broker) PublishSettings(st models.Settings) {
	b.Publish(Event{Type: TypeSettingsUpdated, Data: st})
}

// ServeHTTP streams frames to one client until it disconnects or the
// broker closes.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	stream := b.Subscribe()
	defer b.Unsubscribe(stream)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(": journal events\n\n"))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case f, open := <-stream:
			if !open {
				return
			}
			if _, err := w.Write(f); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
