package event

import (
	"sync"

	"go.uber.org/zap"
)

// Handler receives a published event.
type Handler func(Event)

type subscriber struct {
	id int64
	fn Handler
}

// Bus is an in-process typed fan-out. Handlers run synchronously on the
// publishing goroutine in no guaranteed order; a panicking handler is logged
// and does not affect the others or the publisher.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Kind][]subscriber
	wildcard    []subscriber
	nextID      int64
	logger      *zap.Logger
}

// NewBus creates an empty Bus.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{subscribers: make(map[Kind][]subscriber), logger: logger}
}

// Subscribe registers fn for events of kind. The returned function removes
// the subscription and is safe to call more than once.
func (b *Bus) Subscribe(kind Kind, fn Handler) (cancel func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subscribers[kind] = append(b.subscribers[kind], subscriber{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.subscribers[kind] = removeSub(b.subscribers[kind], id)
	}
}

// SubscribeAll registers fn for every event kind.
func (b *Bus) SubscribeAll(fn Handler) (cancel func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.wildcard = append(b.wildcard, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.wildcard = removeSub(b.wildcard, id)
	}
}

// Publish delivers evt to every current subscriber of its kind.
func (b *Bus) Publish(evt Event) {
	if evt == nil {
		return
	}
	b.mu.RLock()
	subs := b.subscribers[evt.EventKind()]
	wild := b.wildcard
	b.mu.RUnlock()

	if len(subs) == 0 && len(wild) == 0 {
		return
	}
	for _, s := range subs {
		b.deliver(s, evt)
	}
	for _, s := range wild {
		b.deliver(s, evt)
	}
}

// SubscriberCount returns how many handlers would receive kind.
func (b *Bus) SubscriberCount(kind Kind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[kind]) + len(b.wildcard)
}

func (b *Bus) deliver(s subscriber, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("kind", string(evt.EventKind())),
				zap.Any("recover", r))
		}
	}()
	s.fn(evt)
}

// removeSub returns list without id. It copies so that slices already
// handed to an in-flight Publish stay intact.
func removeSub(list []subscriber, id int64) []subscriber {
	out := make([]subscriber, 0, len(list))
	for _, s := range list {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}
