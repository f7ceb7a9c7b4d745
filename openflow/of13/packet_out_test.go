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

package of13

import (
	"bytes"
	"testing"

	"github.com/mulberry-sdn/mulberry/openflow"

	"github.com/google/go-cmp/cmp"
)

func TestPacketOutRoundTrip(t *testing.T) {
	f := NewFactory()
	msg, err := f.NewPacketOut()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data := []byte{0xCA, 0xFE, 0xBA, 0xBE}
	msg.SetData(data)
	action, err := f.NewAction()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range []uint32{1, 2, 3} {
		out := openflow.NewOutPort()
		out.SetValue(p)
		action.SetOutPort(out)
	}
	msg.SetAction(action)

	packet, err := msg.MarshalBinary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded := new(PacketOut)
	if err := decoded.UnmarshalBinary(packet); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decoded.BufferID() != OFP_NO_BUFFER {
		t.Fatalf("unexpected buffer ID: %v", decoded.BufferID())
	}
	if !decoded.InPort().IsController() {
		t.Fatal("expected the controller input port sentinel")
	}
	if !bytes.Equal(decoded.Data(), data) {
		t.Fatalf("unexpected data: %v", cmp.Diff(data, decoded.Data()))
	}

	ports := make([]uint32, 0)
	for _, p := range decoded.Action().OutPort() {
		ports = append(ports, p.Value())
	}
	if diff := cmp.Diff([]uint32{1, 2, 3}, ports); diff != "" {
		t.Fatalf("output port order is not preserved (-expected +actual):\n%v", diff)
	}
}

func TestPacketOutReservedPorts(t *testing.T) {
	f := NewFactory()
	msg, err := f.NewPacketOut()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	action, err := f.NewAction()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flood := openflow.NewOutPort()
	flood.SetFlood()
	controller := openflow.NewOutPort()
	controller.SetController()
	action.SetOutPort(flood)
	action.SetOutPort(controller)
	msg.SetAction(action)
	msg.SetData([]byte{0x00})

	packet, err := msg.MarshalBinary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded := new(PacketOut)
	if err := decoded.UnmarshalBinary(packet); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ports := decoded.Action().OutPort()
	if len(ports) != 2 {
		t.Fatalf("unexpected number of output ports: %v", len(ports))
	}
	if ports[0].Kind() != openflow.PortFlood {
		t.Fatalf("unexpected first port kind: %v", ports[0].Kind())
	}
	if ports[1].Kind() != openflow.PortController {
		t.Fatalf("unexpected second port kind: %v", ports[1].Kind())
	}
}

func TestPacketInRoundTrip(t *testing.T) {
	in := NewPacketIn(77)
	in.SetBufferID(12)
	in.SetInPort(6)
	in.SetData([]byte{0xAA, 0xBB, 0xCC})

	packet, err := in.MarshalBinary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded := new(PacketIn)
	if err := decoded.UnmarshalBinary(packet); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decoded.BufferID() != 12 {
		t.Fatalf("unexpected buffer ID: %v", decoded.BufferID())
	}
	if decoded.InPort() != 6 {
		t.Fatalf("unexpected input port: %v", decoded.InPort())
	}
	if !bytes.Equal(decoded.Data(), []byte{0xAA, 0xBB, 0xCC}) {
		t.Fatalf("unexpected data: %v", decoded.Data())
	}
	if decoded.TransactionID() != 77 {
		t.Fatalf("unexpected transaction ID: %v", decoded.TransactionID())
	}
}

func TestParseMessageUnknownType(t *testing.T) {
	header := func(msgType uint8) []byte {
		return []byte{0x04, msgType, 0x00, 0x08, 0x00, 0x00, 0x00, 0x01}
	}

	// A valid but unmodeled message type is dropped by the caller.
	if _, err := ParseMessage(header(OFPT_FLOW_MOD)); err != openflow.ErrUnsupportedMessage {
		t.Fatalf("expected ErrUnsupportedMessage, got %v", err)
	}

	// A type byte outside the protocol's range poisons the connection.
	_, err := ParseMessage(header(OFPT_METER_MOD + 1))
	if !openflow.IsDecodeError(err) {
		t.Fatalf("expected a DecodeError, got %v", err)
	}
}
