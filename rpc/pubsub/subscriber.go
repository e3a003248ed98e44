// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
)

// Subscriber - client side of a subscription session
type Subscriber struct {
	sync.Mutex // serialises writes
	conn       *websocket.Conn
}

// Message - anything the hub sends, Notification is nil for a Reply
type Message struct {
	Reply        *Reply
	Notification *Notification
}

// Dial - open a session, url is "ws://HOST:PORT/subscribe" or wss://
func Dial(ctx context.Context, url string) (*Subscriber, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if nil != err {
		return nil, fmt.Errorf("%w: %s", fault.ErrTransportFailed, err)
	}
	return &Subscriber{conn: conn}, nil
}

// Subscribe - start receiving changes of an address
func (s *Subscriber) Subscribe(address account.Address) error {
	return s.send(Request{Method: Subscribe, Address: address})
}

// Unsubscribe - stop receiving changes of an address
func (s *Subscriber) Unsubscribe(address account.Address) error {
	return s.send(Request{Method: Unsubscribe, Address: address})
}

// Next - block for the next message
func (s *Subscriber) Next() (*Message, error) {
	_, b, err := s.conn.ReadMessage()
	if nil != err {
		return nil, err
	}

	// a notification always carries a slot, a reply a method
	var probe struct {
		Method *string `json:"method"`
	}
	err = json.Unmarshal(b, &probe)
	if nil != err {
		return nil, err
	}
	if nil != probe.Method {
		var r Reply
		err = json.Unmarshal(b, &r)
		if nil != err {
			return nil, err
		}
		return &Message{Reply: &r}, nil
	}

	var n Notification
	err = json.Unmarshal(b, &n)
	if nil != err {
		return nil, err
	}
	return &Message{Notification: &n}, nil
}

// Close - end the session
func (s *Subscriber) Close() error {
	s.Lock()
	defer s.Unlock()
	_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	return s.conn.Close()
}

func (s *Subscriber) send(r Request) error {
	b, err := json.Marshal(r)
	if nil != err {
		return err
	}
	s.Lock()
	defer s.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, b)
}
