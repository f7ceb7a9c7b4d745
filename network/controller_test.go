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
	"net"
	"testing"
	"time"

	"github.com/mulberry-sdn/mulberry/openflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeHandshake plays the switch side of the handshake on conn.
func completeHandshake(t *testing.T, conn net.Conn, dpid uint64) {
	t.Helper()

	hello := readMessage(t, conn)
	require.Equal(t, uint8(ofptHello), hello[1])
	writeHello(t, conn)

	features := readMessage(t, conn)
	require.Equal(t, uint8(ofptFeaturesRequest), features[1])
	writeFeaturesReply(t, conn, dpid)
}

// One dead device must not stop a broadcast from reaching the others. The
// dead device sorts first by ID, so the fan-out hits it before the live one.
func TestBroadcastIsolation(t *testing.T) {
	controller := NewController()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deadServer, deadClient := net.Pipe()
	defer deadClient.Close()
	deadClient.SetDeadline(time.Now().Add(10 * time.Second))
	liveServer, liveClient := net.Pipe()
	defer liveClient.Close()
	liveClient.SetDeadline(time.Now().Add(10 * time.Second))

	controller.AddConnection(ctx, deadServer)
	completeHandshake(t, deadClient, 1)
	controller.AddConnection(ctx, liveServer)
	completeHandshake(t, liveClient, 2)

	dead := waitForDevice(t, controller, "1")
	waitForDevice(t, controller, "2")

	// Sends to the first device now fail with ConnectionLostError.
	dead.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		controller.Broadcast(func(f openflow.Factory) (openflow.Outgoing, error) {
			return f.NewBarrierRequest()
		})
	}()

	// The live device still receives the barrier request.
	request := readMessage(t, liveClient)
	assert.Equal(t, uint8(ofptBarrierRequest), request[1])

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("broadcast did not finish")
	}
}
