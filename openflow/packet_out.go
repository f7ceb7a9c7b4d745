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
)

// PacketOut injects a packet through a switch. The packet is either a
// reference to a switch-held buffer (BufferID) or a raw payload (Data),
// never both: the switch owns only one interpretation at a time. An empty
// action list drops the packet, which is how a buffered packet is discarded.
type PacketOut interface {
	Header
	BufferID() uint32
	SetBufferID(id uint32)
	InPort() InPort
	SetInPort(port InPort)
	Action() Action
	SetAction(action Action)
	Data() []byte
	SetData(data []byte)
	Validate() error
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// BasePacketOut carries the version-independent PACKET_OUT state. The of10
// and of13 codecs embed it and add their wire formats.
type BasePacketOut struct {
	Message
	bufferID uint32
	inPort   InPort
	action   Action
	data     []byte
}

// NewBasePacketOut returns an unbuffered PACKET_OUT with an empty payload,
// no actions, and the controller as its input port. That zero message is a
// valid, if useless, operation.
func NewBasePacketOut() BasePacketOut {
	return BasePacketOut{
		bufferID: NoBuffer,
		inPort:   NewInPort(),
	}
}

func (r *BasePacketOut) BufferID() uint32 {
	return r.bufferID
}

func (r *BasePacketOut) SetBufferID(id uint32) {
	r.bufferID = id
}

func (r *BasePacketOut) InPort() InPort {
	return r.inPort
}

func (r *BasePacketOut) SetInPort(port InPort) {
	r.inPort = port
}

func (r *BasePacketOut) Action() Action {
	return r.action
}

func (r *BasePacketOut) SetAction(action Action) {
	r.action = action
}

func (r *BasePacketOut) Data() []byte {
	return r.data
}

func (r *BasePacketOut) SetData(data []byte) {
	r.data = data
}

// Validate enforces the PACKET_OUT invariants before encoding.
func (r *BasePacketOut) Validate() error {
	if r.bufferID != NoBuffer && len(r.data) > 0 {
		return &ValidationError{
			Field:  "data",
			Reason: "a buffered packet must not carry a raw payload",
		}
	}

	return ValidateActions(r.action)
}
