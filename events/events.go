// Package events provides typed publish/subscribe emitters used to observe long-lived objects such as the test ledger.
package events

import "sync"

// EventHandler is a callback receiving published events of a given type.
type EventHandler[T any] func(T)

// EventEmitter publishes events of a single type to its subscribers, in subscription order. The zero value is ready
// to use and safe for concurrent use.
type EventEmitter[T any] struct {
	// subscriptions are the handlers invoked on every Publish.
	subscriptions []EventHandler[T]

	// lock guards subscriptions.
	lock sync.Mutex
}

// Subscribe adds an EventHandler invoked for every event published afterwards.
func (e *EventEmitter[T]) Subscribe(callback EventHandler[T]) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.subscriptions = append(e.subscriptions, callback)
}

// Publish invokes every subscribed EventHandler with the event. Handlers may subscribe further handlers, which only
// receive later events.
func (e *EventEmitter[T]) Publish(event T) {
	e.lock.Lock()
	subscriptions := append([]EventHandler[T]{}, e.subscriptions...)
	e.lock.Unlock()

	for _, subscription := range subscriptions {
		subscription(event)
	}
}

// SubscriberCount returns the number of subscribed handlers.
func (e *EventEmitter[T]) SubscriberCount() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return len(e.subscriptions)
}
