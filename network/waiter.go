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
	"fmt"
	"sync"

	"github.com/mulberry-sdn/mulberry/openflow"

	lru "github.com/hashicorp/golang-lru"
)

// waiterTable correlates replies with their requests by transaction ID.
// Every registered waiter is resolved exactly once: by the matching reply,
// by its own timeout, or by session teardown. Transaction IDs whose waiter
// timed out are remembered for a while so a reply that arrives late is
// counted as late instead of unknown.
type waiterTable struct {
	mutex   sync.Mutex
	pending map[uint32]chan waitResult
	retired *lru.Cache
	closed  bool
}

type waitResult struct {
	msg openflow.Incoming
	err error
}

func newWaiterTable() *waiterTable {
	retired, err := lru.New(4096)
	if err != nil {
		panic(fmt.Sprintf("failed to init the retired transaction cache: %v", err))
	}

	return &waiterTable{
		pending: make(map[uint32]chan waitResult),
		retired: retired,
	}
}

// register installs a waiter for xid. The returned channel carries exactly
// one result.
func (r *waiterTable) register(xid uint32) (<-chan waitResult, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return nil, &ConnectionLostError{}
	}
	if _, ok := r.pending[xid]; ok {
		return nil, fmt.Errorf("duplicated pending transaction ID: %v", xid)
	}

	c := make(chan waitResult, 1)
	r.pending[xid] = c

	return c, nil
}

// fulfill hands msg to the waiter registered for its transaction ID and
// reports whether one existed. A reply for a retired waiter only bumps the
// late counter.
func (r *waiterTable) fulfill(msg openflow.Incoming) bool {
	xid := msg.TransactionID()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	c, ok := r.pending[xid]
	if !ok {
		if r.retired.Contains(xid) {
			r.retired.Remove(xid)
			lateReplies.Inc()
			logger.Debugf("late reply for the timed-out transaction %v", xid)
			return true
		}
		unmatchedReplies.Inc()
		return false
	}
	delete(r.pending, xid)

	c <- waitResult{msg: msg}
	return true
}

// retire gives up on xid after a timeout. Its waiter, if still present,
// resolves with a TimeoutError.
func (r *waiterTable) retire(xid uint32) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	c, ok := r.pending[xid]
	if !ok {
		// The reply won the race. Nothing to retire.
		return
	}
	delete(r.pending, xid)
	r.retired.Add(xid, struct{}{})

	c <- waitResult{err: &TimeoutError{XID: xid}}
}

// close resolves every pending waiter with a ConnectionLostError and
// rejects all future registrations. Calling it again is a no-op.
func (r *waiterTable) close(deviceID string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return
	}
	r.closed = true

	for xid, c := range r.pending {
		delete(r.pending, xid)
		c <- waitResult{err: &ConnectionLostError{DeviceID: deviceID}}
	}
}
