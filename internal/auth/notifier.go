// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import "sync"

type subscriber struct {
	id int
	fn func(State)
}

// notifier delivers states to subscribers in push order from one goroutine,
// so observers may call back into the machine without deadlocking.
type notifier struct {
	mu      sync.Mutex
	queue   []State
	subs    []subscriber
	nextID  int
	running bool
	closing bool
	// dispatching is set while subscriber callbacks run.
	dispatching bool

	wake    chan struct{}
	stopped chan struct{}
}

func newNotifier() *notifier {
	return &notifier{
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
}

func (n *notifier) subscribe(fn func(State)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscriber{id: id, fn: fn})
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

func (n *notifier) push(s State) {
	n.mu.Lock()
	if n.closing {
		n.mu.Unlock()
		return
	}
	n.queue = append(n.queue, s)
	n.mu.Unlock()
	n.signal()
}

func (n *notifier) signal() {
	select {
	case n.wake <- struct{}{}:
	default:
	}
}

func (n *notifier) start() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.running || n.closing {
		return
	}
	n.running = true
	go n.run()
}

func (n *notifier) run() {
	defer close(n.stopped)
	for {
		n.mu.Lock()
		batch := n.queue
		n.queue = nil
		subs := append([]subscriber(nil), n.subs...)
		closing := n.closing
		n.dispatching = len(batch) > 0
		n.mu.Unlock()

		for _, s := range batch {
			for _, sub := range subs {
				sub.fn(s)
			}
		}
		n.mu.Lock()
		n.dispatching = false
		n.mu.Unlock()
		if len(batch) > 0 {
			continue
		}
		if closing {
			return
		}
		<-n.wake
	}
}

// stop delivers what is queued and waits for the dispatcher to exit. While
// a callback is running (a subscriber stopping the machine from inside its
// callback) it only signals: the dispatcher drains and exits on its own.
func (n *notifier) stop() {
	n.mu.Lock()
	running := n.running
	dispatching := n.dispatching
	first := !n.closing
	n.closing = true
	n.mu.Unlock()
	if !running {
		return
	}
	if first {
		n.signal()
	}
	if dispatching {
		return
	}
	<-n.stopped
}
