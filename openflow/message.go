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
	"encoding"
	"encoding/binary"
)

// Message is the header and opaque payload that every OpenFlow message
// shares. Concrete message types embed it and interpret the payload.
type Message struct {
	version uint8
	msgType uint8
	xid     uint32
	length  uint16
	payload []byte
}

func NewMessage(version uint8, msgType uint8, xid uint32) Message {
	return Message{
		version: version,
		msgType: msgType,
		xid:     xid,
		length:  8,
	}
}

func (r *Message) Version() uint8 {
	return r.version
}

func (r *Message) Type() uint8 {
	return r.msgType
}

func (r *Message) TransactionID() uint32 {
	return r.xid
}

func (r *Message) SetTransactionID(xid uint32) {
	r.xid = xid
}

func (r *Message) SetPayload(payload []byte) {
	r.payload = payload
	if payload == nil {
		r.length = 8
	} else {
		r.length = uint16(8 + len(payload))
	}
}

func (r *Message) Payload() []byte {
	if r.payload == nil {
		return nil
	}

	v := make([]byte, len(r.payload))
	copy(v, r.payload)

	return v
}

func (r *Message) MarshalBinary() ([]byte, error) {
	var length uint16 = 8
	if r.payload != nil {
		length += uint16(len(r.payload))
	}

	v := make([]byte, length)
	v[0] = r.version
	v[1] = r.msgType
	binary.BigEndian.PutUint16(v[2:4], length)
	binary.BigEndian.PutUint32(v[4:8], r.xid)
	if length > 8 {
		copy(v[8:], r.payload)
	}

	return v, nil
}

func (r *Message) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return &DecodeError{Offset: len(data), Reason: ErrInvalidPacketLength}
	}

	length := binary.BigEndian.Uint16(data[2:4])
	if length < 8 {
		return &DecodeError{Offset: 2, Reason: ErrInvalidPacketLength}
	}
	if len(data) < int(length) {
		return &DecodeError{Offset: len(data), Reason: ErrInvalidPacketLength}
	}

	r.version = data[0]
	r.msgType = data[1]
	r.length = length
	r.xid = binary.BigEndian.Uint32(data[4:8])
	r.payload = data[8:length]

	return nil
}

type Header interface {
	Version() uint8
	Type() uint8
	TransactionID() uint32
}

type Outgoing interface {
	Header
	encoding.BinaryMarshaler
}

type Incoming interface {
	Header
	encoding.BinaryUnmarshaler
}

var messageParser = make(map[uint8]func([]byte) (Incoming, error))

// RegisterParser registers a wire decoder for a protocol version. The of10
// and of13 packages register themselves on import.
func RegisterParser(version uint8, parser func([]byte) (Incoming, error)) {
	if parser == nil {
		panic("nil message parser function")
	}
	messageParser[version] = parser
}

// Decode parses one framed message. Malformed or truncated input yields a
// DecodeError carrying the byte offset of the failure; Decode never panics on
// hostile input.
func Decode(packet []byte) (Incoming, error) {
	if len(packet) < 8 {
		return nil, &DecodeError{Offset: len(packet), Reason: ErrInvalidPacketLength}
	}

	parser, ok := messageParser[packet[0]]
	if !ok {
		return nil, &DecodeError{Offset: 0, Reason: ErrUnsupportedVersion}
	}

	return parser(packet)
}
