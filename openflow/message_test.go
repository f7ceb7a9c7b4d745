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

package openflow

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMessageRoundTrip(t *testing.T) {
	src := []struct {
		version uint8
		msgType uint8
		xid     uint32
		payload []byte
	}{
		{OF10_VERSION, 13, 1, []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{OF13_VERSION, 13, 0xFFFFFFFF, nil},
		{OF10_VERSION, 0, 42, []byte{}},
	}

	for _, v := range src {
		in := NewMessage(v.version, v.msgType, v.xid)
		in.SetPayload(v.payload)

		packet, err := in.MarshalBinary()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := Message{}
		if err := out.UnmarshalBinary(packet); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Version() != v.version || out.Type() != v.msgType || out.TransactionID() != v.xid {
			t.Fatalf("unexpected header: %+v", out)
		}
		if !bytes.Equal(out.Payload(), v.payload) {
			t.Fatalf("unexpected payload: %v", cmp.Diff(v.payload, out.Payload()))
		}
	}
}

func TestMessagePayloadIsCopied(t *testing.T) {
	msg := NewMessage(OF13_VERSION, 13, 7)
	msg.SetPayload([]byte{1, 2, 3})

	p := msg.Payload()
	p[0] = 0xFF
	if msg.Payload()[0] != 1 {
		t.Fatal("Payload() must return a deep copy")
	}
}

func TestMessageUnmarshalErrors(t *testing.T) {
	src := []struct {
		name   string
		packet []byte
		offset int
	}{
		{
			name:   "truncated header",
			packet: []byte{0x04, 0x00, 0x00},
			offset: 3,
		},
		{
			name: "length below the header size",
			// version=1.3, type=0, length=4, xid=0
			packet: []byte{0x04, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00},
			offset: 2,
		},
		{
			name: "declared length beyond the packet",
			// length=16 but only 8 bytes follow
			packet: []byte{0x04, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x00},
			offset: 8,
		},
	}

	for _, v := range src {
		msg := Message{}
		err := msg.UnmarshalBinary(v.packet)
		if err == nil {
			t.Fatalf("%v: expected error, but no error returns", v.name)
		}
		decode := new(DecodeError)
		if !errors.As(err, &decode) {
			t.Fatalf("%v: expected a DecodeError, got %T", v.name, err)
		}
		if decode.Offset != v.offset {
			t.Fatalf("%v: unexpected offset: expected=%v, actual=%v", v.name, v.offset, decode.Offset)
		}
	}
}

func TestDecodeUnknownVersion(t *testing.T) {
	// Version 0x99 has no registered parser.
	packet := []byte{0x99, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00, 0x01}

	_, err := Decode(packet)
	if err == nil {
		t.Fatal("expected error, but no error returns")
	}
	if !IsDecodeError(err) {
		t.Fatalf("expected a DecodeError, got %T", err)
	}
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}
