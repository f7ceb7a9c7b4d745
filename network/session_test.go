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
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/mulberry-sdn/mulberry/openflow"
	"github.com/mulberry-sdn/mulberry/openflow/of13"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readMessage reads one framed message from the fake switch side.
func readMessage(t *testing.T, conn net.Conn) []byte {
	t.Helper()

	header := make([]byte, 8)
	_, err := io.ReadFull(conn, header)
	require.NoError(t, err)

	length := int(binary.BigEndian.Uint16(header[2:4]))
	require.GreaterOrEqual(t, length, 8)
	packet := make([]byte, length)
	copy(packet, header)
	if length > 8 {
		_, err = io.ReadFull(conn, packet[8:])
		require.NoError(t, err)
	}

	return packet
}

func writeHello(t *testing.T, conn net.Conn) {
	t.Helper()

	_, err := conn.Write([]byte{0x04, ofptHello, 0x00, 0x08, 0x00, 0x00, 0x00, 0x01})
	require.NoError(t, err)
}

// Local aliases keep the wire bytes readable in tests.
const (
	ofptHello           = 0x00
	ofptFeaturesRequest = 0x05
	ofptFeaturesReply   = 0x06
	ofptBarrierRequest  = 0x14
)

func writeFeaturesReply(t *testing.T, conn net.Conn, dpid uint64) {
	t.Helper()

	packet := make([]byte, 32)
	packet[0] = 0x04
	packet[1] = ofptFeaturesReply
	binary.BigEndian.PutUint16(packet[2:4], 32)
	binary.BigEndian.PutUint32(packet[4:8], 2)
	binary.BigEndian.PutUint64(packet[8:16], dpid)
	binary.BigEndian.PutUint32(packet[16:20], 256) // n_buffers
	packet[20] = 254                               // n_tables

	_, err := conn.Write(packet)
	require.NoError(t, err)
}

func waitForDevice(t *testing.T, controller *Controller, id string) *Device {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if d := controller.Device(id); d != nil && d.State() == StateReady {
			return d
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("device %v did not become ready", id)
	return nil
}

func TestSessionHandshake(t *testing.T) {
	controller := NewController()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, client := net.Pipe()
	defer client.Close()
	client.SetDeadline(time.Now().Add(10 * time.Second))

	controller.AddConnection(ctx, server)

	// The controller greets first with its highest supported version.
	hello := readMessage(t, client)
	assert.Equal(t, uint8(0x04), hello[0])
	assert.Equal(t, uint8(ofptHello), hello[1])

	// The switch answers HELLO, and the controller queries its identity.
	writeHello(t, client)
	features := readMessage(t, client)
	assert.Equal(t, uint8(ofptFeaturesRequest), features[1])

	writeFeaturesReply(t, client, 42)

	device := waitForDevice(t, controller, "42")
	assert.Equal(t, StateReady, device.State())
	assert.Equal(t, uint64(42), device.Features().DPID)
	assert.Equal(t, uint32(256), device.Features().NumBuffers)
	assert.Equal(t, uint8(0x04), device.Factory().ProtocolVersion())

	// A pending request resolves with ConnectionLostError, exactly once,
	// when the session closes before the reply arrives.
	barrier, err := device.Factory().NewBarrierRequest()
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() {
		_, err := device.Request(context.Background(), barrier)
		errc <- err
	}()

	// Drain the barrier request from the wire, then kill the session.
	request := readMessage(t, client)
	assert.Equal(t, uint8(ofptBarrierRequest), request[1])
	cancel()

	select {
	case err := <-errc:
		var lost *ConnectionLostError
		require.ErrorAs(t, err, &lost)
		assert.Equal(t, "42", lost.DeviceID)
	case <-time.After(5 * time.Second):
		t.Fatal("pending request was not resolved by session teardown")
	}

	// Teardown unregisters the device. Removal is idempotent.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if controller.Device("42") == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	assert.Nil(t, controller.Device("42"))
}

func TestSendBeforeReadyFails(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	s := newSession(sessionConfig{
		conn:       server,
		watcher:    NewController(),
		finder:     NewController(),
		listener:   nopListener{},
		dispatcher: newDispatcher(),
	})

	// The session never ran, so it is still CONNECTING.
	msg, err := of13.NewFactory().NewPacketOut()
	require.NoError(t, err)

	err = s.device.SendMessage(msg)
	var notReady *NotReadyError
	require.ErrorAs(t, err, &notReady)
	assert.Equal(t, StateConnecting, notReady.State)
}

func TestDispatcherDropsUnhandledKinds(t *testing.T) {
	d := newDispatcher()

	// No handler registered: the message is dropped, never fatal.
	err := d.dispatch(NewController(), nil, KindPacketIn, of13.NewPacketIn(1))
	require.NoError(t, err)
}

func TestDispatcherRunsHandlersInOrder(t *testing.T) {
	d := newDispatcher()

	var calls []int
	d.Handle(KindPacketIn, func(Finder, *Device, openflow.Incoming) error {
		calls = append(calls, 1)
		return nil
	})
	d.Handle(KindPacketIn, func(Finder, *Device, openflow.Incoming) error {
		calls = append(calls, 2)
		return nil
	})

	require.NoError(t, d.dispatch(NewController(), nil, KindPacketIn, of13.NewPacketIn(1)))
	assert.Equal(t, []int{1, 2}, calls)
}
