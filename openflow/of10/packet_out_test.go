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

package of10

import (
	"bytes"
	"testing"

	"github.com/mulberry-sdn/mulberry/openflow"

	"github.com/google/go-cmp/cmp"
)

func outPorts(ports ...uint32) []openflow.OutPort {
	v := make([]openflow.OutPort, 0, len(ports))
	for _, p := range ports {
		out := openflow.NewOutPort()
		out.SetValue(p)
		v = append(v, out)
	}

	return v
}

func TestPacketOutRoundTrip(t *testing.T) {
	src := []struct {
		name     string
		bufferID uint32
		inPort   uint32 // 0 means the controller sentinel
		data     []byte
		ports    []uint32
	}{
		{
			name:     "raw packet flooded out of three ports in order",
			bufferID: OFP_NO_BUFFER,
			data:     []byte{0x00, 0x01, 0x02, 0x03},
			ports:    []uint32{1, 2, 3},
		},
		{
			name:     "buffered packet dropped",
			bufferID: 257,
		},
		{
			name:     "empty unbuffered no-op",
			bufferID: OFP_NO_BUFFER,
		},
		{
			name:     "buffered packet with an ingress port",
			bufferID: 9,
			inPort:   4,
			ports:    []uint32{2},
		},
	}

	for _, v := range src {
		f := NewFactory()
		msg, err := f.NewPacketOut()
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", v.name, err)
		}
		msg.SetBufferID(v.bufferID)
		if v.inPort > 0 {
			port := openflow.NewInPort()
			port.SetPort(v.inPort)
			msg.SetInPort(port)
		}
		if v.data != nil {
			msg.SetData(v.data)
		}
		if len(v.ports) > 0 {
			action, err := f.NewAction()
			if err != nil {
				t.Fatalf("%v: unexpected error: %v", v.name, err)
			}
			for _, p := range outPorts(v.ports...) {
				action.SetOutPort(p)
			}
			msg.SetAction(action)
		}

		packet, err := msg.MarshalBinary()
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", v.name, err)
		}

		decoded := new(PacketOut)
		if err := decoded.UnmarshalBinary(packet); err != nil {
			t.Fatalf("%v: unexpected error: %v", v.name, err)
		}

		if decoded.BufferID() != v.bufferID {
			t.Fatalf("%v: unexpected buffer ID: expected=%v, actual=%v", v.name, v.bufferID, decoded.BufferID())
		}
		inPort := decoded.InPort()
		if v.inPort > 0 {
			if inPort.IsController() || inPort.Port() != v.inPort {
				t.Fatalf("%v: unexpected input port: expected=%v, actual=%v", v.name, v.inPort, inPort.Port())
			}
		} else if !inPort.IsController() {
			t.Fatalf("%v: expected the controller input port sentinel", v.name)
		}
		if !bytes.Equal(decoded.Data(), v.data) {
			t.Fatalf("%v: unexpected data: %v", v.name, cmp.Diff(v.data, decoded.Data()))
		}

		var ports []uint32
		if decoded.Action() != nil {
			for _, p := range decoded.Action().OutPort() {
				ports = append(ports, p.Value())
			}
		}
		if diff := cmp.Diff(v.ports, ports); diff != "" {
			t.Fatalf("%v: unexpected output ports (-expected +actual):\n%v", v.name, diff)
		}
	}
}

func TestPacketOutBufferAndDataExclusive(t *testing.T) {
	f := NewFactory()
	msg, err := f.NewPacketOut()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg.SetBufferID(42)
	msg.SetData([]byte{0x00, 0x01})

	if _, err := msg.MarshalBinary(); err == nil {
		t.Fatal("expected error, but no error returns")
	} else if _, ok := err.(*openflow.ValidationError); !ok {
		t.Fatalf("expected a ValidationError, got %T", err)
	}
}

func TestParseMessageUnknownType(t *testing.T) {
	header := func(msgType uint8) []byte {
		return []byte{0x01, msgType, 0x00, 0x08, 0x00, 0x00, 0x00, 0x01}
	}

	// A valid but unmodeled message type is dropped by the caller.
	if _, err := ParseMessage(header(OFPT_FLOW_MOD)); err != openflow.ErrUnsupportedMessage {
		t.Fatalf("expected ErrUnsupportedMessage, got %v", err)
	}

	// A type byte outside the protocol's range poisons the connection.
	_, err := ParseMessage(header(OFPT_QUEUE_GET_CONFIG_REPLY + 1))
	if !openflow.IsDecodeError(err) {
		t.Fatalf("expected a DecodeError, got %v", err)
	}
}
