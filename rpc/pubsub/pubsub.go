// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pubsub - websocket account subscriptions
//
// a client sends
//
//	{"method":"accountSubscribe","address":"<base58>"}
//	{"method":"accountUnsubscribe","address":"<base58>"}
//
// each request is acknowledged with a Reply, then every committed change
// of a subscribed account is pushed as a Notification
package pubsub

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/gorilla/websocket"

	"github.com/rush-ecs/rush/account"
)

// methods a client may send
const (
	Subscribe   = "accountSubscribe"
	Unsubscribe = "accountUnsubscribe"
)

// Path - where the handler is mounted
const Path = "/subscribe"

const (
	queueSize    = 256
	writeTimeout = 5 * time.Second
	pingInterval = 30 * time.Second
	readTimeout  = 2 * pingInterval
)

// Request - client message
type Request struct {
	Method  string          `json:"method"`
	Address account.Address `json:"address"`
}

// Reply - acknowledgement of a Request
type Reply struct {
	Method  string          `json:"method"`
	Address account.Address `json:"address"`
	Error   string          `json:"error,omitempty"`
}

// Notification - new state of a subscribed account
type Notification struct {
	Address    account.Address `json:"address"`
	Slot       uint64          `json:"slot"`
	Lamports   uint64          `json:"lamports"`
	Owner      account.Address `json:"owner"`
	Executable bool            `json:"executable"`
	Data       []byte          `json:"data"`
}

type session struct {
	id            uint64
	conn          *websocket.Conn
	out           chan []byte
	subscriptions map[account.Address]struct{}
}

// Hub - all open subscription sessions
type Hub struct {
	sync.Mutex
	log      *logger.L
	upgrader websocket.Upgrader
	sessions map[uint64]*session
	nextID   uint64
}

// New - empty hub
func New(log *logger.L) *Hub {
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sessions: make(map[uint64]*session),
	}
}

// Handler - HTTP handler serving Path
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, h.serve)
	return mux
}

// Sessions - number of open sessions
func (h *Hub) Sessions() int {
	h.Lock()
	defer h.Unlock()
	return len(h.sessions)
}

// AccountChanged - queue a notification to every subscriber
//
// called with the ledger locked so it never blocks: a session whose
// queue is full loses the notification
func (h *Hub) AccountChanged(slot uint64, address account.Address, a *account.Account) {
	h.Lock()
	defer h.Unlock()

	var message []byte
	for _, s := range h.sessions {
		if _, ok := s.subscriptions[address]; !ok {
			continue
		}
		if nil == message {
			n := Notification{
				Address:    address,
				Slot:       slot,
				Lamports:   a.Lamports,
				Owner:      a.Owner,
				Executable: a.Executable,
				Data:       a.Data,
			}
			var err error
			message, err = json.Marshal(n)
			if nil != err {
				h.log.Errorf("notification: %s  error: %s", address, err)
				return
			}
		}
		select {
		case s.out <- message:
		default:
			h.log.Warnf("session: %d  queue full, dropped: %s", s.id, address)
		}
	}
}

// Close - disconnect every session
func (h *Hub) Close() {
	h.Lock()
	defer h.Unlock()
	for _, s := range h.sessions {
		_ = s.conn.Close()
	}
}

func (h *Hub) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if nil != err {
		h.log.Debugf("upgrade: %s  error: %s", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	s := h.join(conn)
	defer h.leave(s)

	h.log.Infof("session: %d  from: %s", s.id, r.RemoteAddr)

	done := make(chan struct{})
	defer close(done)
	go h.writer(s, done)

	conn.SetReadLimit(4096)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, message, err := conn.ReadMessage()
		if nil != err {
			h.log.Debugf("session: %d  read: %s", s.id, err)
			return
		}
		reply := h.handle(s, message)
		b, err := json.Marshal(reply)
		if nil != err {
			return
		}
		select {
		case s.out <- b:
		default:
			h.log.Warnf("session: %d  queue full, dropped reply", s.id)
		}
	}
}

// apply one client request
func (h *Hub) handle(s *session, message []byte) Reply {
	var request Request
	err := json.Unmarshal(message, &request)
	if nil != err {
		return Reply{Error: err.Error()}
	}

	reply := Reply{
		Method:  request.Method,
		Address: request.Address,
	}

	h.Lock()
	defer h.Unlock()
	switch request.Method {
	case Subscribe:
		s.subscriptions[request.Address] = struct{}{}
	case Unsubscribe:
		delete(s.subscriptions, request.Address)
	default:
		reply.Error = "unknown method: " + request.Method
	}
	return reply
}

func (h *Hub) writer(s *session, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case message := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := s.conn.WriteMessage(websocket.TextMessage, message)
			if nil != err {
				_ = s.conn.Close()
				return
			}
		case <-ticker.C:
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
			if nil != err {
				_ = s.conn.Close()
				return
			}
		}
	}
}

func (h *Hub) join(conn *websocket.Conn) *session {
	h.Lock()
	defer h.Unlock()
	h.nextID += 1
	s := &session{
		id:            h.nextID,
		conn:          conn,
		out:           make(chan []byte, queueSize),
		subscriptions: make(map[account.Address]struct{}),
	}
	h.sessions[s.id] = s
	return s
}

func (h *Hub) leave(s *session) {
	h.Lock()
	defer h.Unlock()
	delete(h.sessions, s.id)
	h.log.Infof("session: %d  closed", s.id)
}
