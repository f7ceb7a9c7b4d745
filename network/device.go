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
	"context"
	"encoding"
	"fmt"
	"sync"
	"time"

	"github.com/mulberry-sdn/mulberry/openflow"
)

// Features is the identity a switch reports in its FEATURES_REPLY.
type Features struct {
	DPID         uint64
	NumBuffers   uint32
	NumTables    uint8
	Capabilities uint32
}

// Device is one connected switch. It is created when the connection is
// accepted and becomes valid once the features reply delivers its datapath
// ID. Application code talks to a switch only through its Device.
type Device struct {
	mutex    sync.RWMutex
	id       string
	session  *session
	features Features
	factory  openflow.Factory
	waiters  *waiterTable
	closed   bool
}

// requestTimeout bounds Request() when the caller's context carries no
// deadline of its own.
const requestTimeout = 5 * time.Second

func newDevice(s *session) *Device {
	if s == nil {
		panic("Session is nil")
	}

	return &Device{
		session: s,
		waiters: newWaiterTable(),
	}
}

func (r *Device) String() string {
	// Read lock
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return fmt.Sprintf("Device ID=%v, Features=%+v, State=%v, Connected=%v", r.id, r.features, r.session.State(), !r.closed)
}

// ID is the decimal datapath ID. Empty until the features reply arrives.
func (r *Device) ID() string {
	// Read lock
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.id
}

func (r *Device) setID(id string) {
	// Write lock
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.id = id
}

func (r *Device) isValid() bool {
	// Read lock
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.id) > 0
}

func (r *Device) Factory() openflow.Factory {
	// Read lock
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.factory
}

func (r *Device) setFactory(f openflow.Factory) {
	// Write lock
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if f == nil {
		panic("Factory is nil")
	}
	r.factory = f
}

func (r *Device) Features() Features {
	// Read lock
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.features
}

func (r *Device) setFeatures(f Features) {
	// Write lock
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.features = f
}

// State is the lifecycle stage of the underlying session.
func (r *Device) State() State {
	return r.session.State()
}

// SendMessage fires msg at the switch without expecting a reply. It fails
// with a NotReadyError unless the session is READY.
func (r *Device) SendMessage(msg encoding.BinaryMarshaler) error {
	if msg == nil {
		panic("Message is nil")
	}

	// Read lock
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.closed {
		return &ConnectionLostError{DeviceID: r.id}
	}
	if state := r.session.State(); state != StateReady {
		return &NotReadyError{State: state}
	}

	return r.session.Write(msg)
}

// Request sends msg and waits for the reply that carries the same
// transaction ID. It resolves exactly once: with the reply, with a
// TimeoutError when ctx or the default deadline expires, or with a
// ConnectionLostError when the session closes first. A timed-out request
// does not affect the session.
func (r *Device) Request(ctx context.Context, msg openflow.Outgoing) (openflow.Incoming, error) {
	if msg == nil {
		panic("Message is nil")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, requestTimeout)
		defer cancel()
	}

	xid := msg.TransactionID()
	waiter, err := r.waiters.register(xid)
	if err != nil {
		return nil, err
	}

	if err := r.SendMessage(msg); err != nil {
		r.waiters.retire(xid)
		// Drain the retire result so the channel does not leak.
		<-waiter
		return nil, err
	}

	select {
	case <-ctx.Done():
		r.waiters.retire(xid)
		v := <-waiter
		return v.msg, v.err
	case v := <-waiter:
		return v.msg, v.err
	}
}

// SendBarrier flushes the switch's message pipeline and returns once the
// barrier reply arrives.
func (r *Device) SendBarrier(ctx context.Context) error {
	msg, err := r.Factory().NewBarrierRequest()
	if err != nil {
		return err
	}

	_, err = r.Request(ctx, msg)
	return err
}

func (r *Device) IsClosed() bool {
	// Read lock
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.closed
}

func (r *Device) Close() {
	// Write lock
	r.mutex.Lock()
	r.closed = true
	id := r.id
	r.mutex.Unlock()

	r.waiters.close(id)
}
