// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Publisher pushes JSON-encoded snapshots over websockets to
// connected diagnostics clients (e.g. an admin panel). It runs off
// the render thread and only ever reads atomic snapshots from the
// sink, so it never blocks a frame.
type Publisher struct {

	// Interval is how often snapshots are pushed.
	Interval time.Duration

	sink     *Sink
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	stop  chan struct{}
	done  chan struct{}
}

// NewPublisher returns a Publisher reading from the given sink and
// pushing every interval (1s if <= 0).
func NewPublisher(sink *Sink, interval time.Duration) *Publisher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Publisher{
		Interval: interval,
		sink:     sink,
		conns:    make(map[*websocket.Conn]struct{}),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// ServeHTTP upgrades the request to a websocket and registers the
// connection for snapshot pushes, so a Publisher can be mounted
// directly on an HTTP mux. A reader goroutine drains incoming
// messages so close and ping control frames are processed and a
// client going away deregisters promptly instead of lingering until
// the next failed push.
func (pb *Publisher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := pb.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("metrics: websocket upgrade failed", "err", err)
		return
	}
	pb.mu.Lock()
	pb.conns[conn] = struct{}{}
	pb.mu.Unlock()
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				pb.remove(conn)
				return
			}
		}
	}()
}

func (pb *Publisher) remove(conn *websocket.Conn) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if _, ok := pb.conns[conn]; ok {
		conn.Close()
		delete(pb.conns, conn)
	}
}

// clients returns the number of registered connections.
func (pb *Publisher) clients() int {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return len(pb.conns)
}

// Start launches the push loop in its own goroutine.
func (pb *Publisher) Start() {
	go pb.run()
}

// Stop terminates the push loop and closes all client connections.
func (pb *Publisher) Stop() {
	close(pb.stop)
	<-pb.done
}

func (pb *Publisher) run() {
	defer close(pb.done)
	tick := time.NewTicker(pb.Interval)
	defer tick.Stop()
	for {
		select {
		case <-pb.stop:
			pb.closeAll()
			return
		case <-tick.C:
			pb.push()
		}
	}
}

func (pb *Publisher) push() {
	sn := pb.sink.Snapshot()
	msg, err := json.Marshal(sn)
	if err != nil {
		slog.Error("metrics: snapshot encode failed", "err", err)
		return
	}
	pb.mu.Lock()
	defer pb.mu.Unlock()
	for conn := range pb.conns {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			conn.Close()
			delete(pb.conns, conn)
		}
	}
}

func (pb *Publisher) closeAll() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	for conn := range pb.conns {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		delete(pb.conns, conn)
	}
}
