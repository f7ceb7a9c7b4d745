/*
 * Mulberry - An OpenFlow Controller
 *
 * Copyright (C) 2016 The Mulberry Authors. All rights reserved.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

package network

import (
	"sync"

	"github.com/mulberry-sdn/mulberry/openflow"
)

// Kind identifies a message kind for handler registration.
type Kind string

const (
	KindError         Kind = "ERROR"
	KindFeaturesReply Kind = "FEATURES_REPLY"
	KindBarrierReply  Kind = "BARRIER_REPLY"
	KindPacketIn      Kind = "PACKET_IN"
)

// MessageHandler reacts to an incoming message on a ready session. Handlers
// for one session run on that session's own task, in wire order. They never
// see transport failures; a dead session only surfaces through failed
// pending requests and the device-down notification.
type MessageHandler func(finder Finder, device *Device, msg openflow.Incoming) error

// Dispatcher routes incoming messages that no pending request claimed.
// A message whose kind has no registered handler is dropped and counted,
// never fatal.
type Dispatcher struct {
	mutex    sync.RWMutex
	handlers map[Kind][]MessageHandler
}

func newDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Kind][]MessageHandler),
	}
}

// Handle appends a handler for the kind. Handlers run in registration order.
func (r *Dispatcher) Handle(kind Kind, h MessageHandler) {
	if h == nil {
		panic("Handler is nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.handlers[kind] = append(r.handlers[kind], h)
}

// dispatch invokes the handlers registered for kind. A handler error stops
// the chain and propagates to the session.
func (r *Dispatcher) dispatch(finder Finder, device *Device, kind Kind, msg openflow.Incoming) error {
	r.mutex.RLock()
	handlers := r.handlers[kind]
	r.mutex.RUnlock()

	if len(handlers) == 0 {
		unhandledMessages.Inc()
		logger.Debugf("dropped a message without a handler: kind=%v, xid=%v", kind, msg.TransactionID())
		return nil
	}

	for _, h := range handlers {
		if err := h(finder, device, msg); err != nil {
			return err
		}
	}

	return nil
}
