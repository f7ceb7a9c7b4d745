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
	"testing"

	"github.com/mulberry-sdn/mulberry/openflow"
	"github.com/mulberry-sdn/mulberry/openflow/of13"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReply(xid uint32) openflow.Incoming {
	return of13.NewBarrierReply(xid)
}

func TestWaiterFulfill(t *testing.T) {
	table := newWaiterTable()

	c, err := table.register(7)
	require.NoError(t, err)

	require.True(t, table.fulfill(newReply(7)))
	v := <-c
	require.NoError(t, v.err)
	assert.Equal(t, uint32(7), v.msg.TransactionID())
}

func TestWaiterUnmatchedReplyIsCounted(t *testing.T) {
	table := newWaiterTable()
	before := testutil.ToFloat64(unmatchedReplies)

	// No waiter for this transaction ID: not fatal, just counted.
	require.False(t, table.fulfill(newReply(99)))

	assert.Equal(t, before+1, testutil.ToFloat64(unmatchedReplies))
}

func TestWaiterTimeoutAndLateReply(t *testing.T) {
	table := newWaiterTable()

	c, err := table.register(13)
	require.NoError(t, err)

	table.retire(13)
	v := <-c
	var timeout *TimeoutError
	require.ErrorAs(t, v.err, &timeout)
	assert.Equal(t, uint32(13), timeout.XID)

	// The reply arrives after the deadline: counted as late, not unknown.
	before := testutil.ToFloat64(lateReplies)
	require.True(t, table.fulfill(newReply(13)))
	assert.Equal(t, before+1, testutil.ToFloat64(lateReplies))
}

func TestWaiterCloseResolvesExactlyOnce(t *testing.T) {
	table := newWaiterTable()

	c, err := table.register(21)
	require.NoError(t, err)

	table.close("42")
	table.close("42") // Idempotent.

	v := <-c
	var lost *ConnectionLostError
	require.ErrorAs(t, v.err, &lost)
	assert.Equal(t, "42", lost.DeviceID)

	// Exactly once: nothing else may arrive on the channel.
	select {
	case extra := <-c:
		t.Fatalf("waiter resolved twice: %+v", extra)
	default:
	}

	// A closed table rejects new registrations.
	_, err = table.register(22)
	require.ErrorAs(t, err, &lost)

	// And a reply for the resolved waiter is dropped without a match.
	require.False(t, table.fulfill(newReply(21)))
}

func TestWaiterDuplicateRegistration(t *testing.T) {
	table := newWaiterTable()

	_, err := table.register(5)
	require.NoError(t, err)
	_, err = table.register(5)
	require.Error(t, err)
}
