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
	"encoding/binary"

	"github.com/mulberry-sdn/mulberry/openflow"
)

type PacketIn struct {
	openflow.Message
	bufferID uint32
	totalLen uint16
	inPort   uint16
	reason   uint8
	data     []byte
}

func NewPacketIn(xid uint32) *PacketIn {
	return &PacketIn{
		Message:  openflow.NewMessage(openflow.OF10_VERSION, OFPT_PACKET_IN, xid),
		bufferID: OFP_NO_BUFFER,
	}
}

func (r *PacketIn) BufferID() uint32 {
	return r.bufferID
}

func (r *PacketIn) SetBufferID(id uint32) {
	r.bufferID = id
}

func (r *PacketIn) InPort() uint32 {
	return uint32(r.inPort)
}

func (r *PacketIn) SetInPort(port uint16) {
	r.inPort = port
}

func (r *PacketIn) Reason() uint8 {
	return r.reason
}

// TableID is not present in the 1.0 wire format.
func (r *PacketIn) TableID() uint8 {
	return 0
}

// Cookie is not present in the 1.0 wire format.
func (r *PacketIn) Cookie() uint64 {
	return 0
}

func (r *PacketIn) Data() []byte {
	return r.data
}

func (r *PacketIn) SetData(data []byte) {
	r.data = data
	r.totalLen = uint16(len(data))
}

func (r *PacketIn) MarshalBinary() ([]byte, error) {
	v := make([]byte, 10+len(r.data))
	binary.BigEndian.PutUint32(v[0:4], r.bufferID)
	binary.BigEndian.PutUint16(v[4:6], r.totalLen)
	binary.BigEndian.PutUint16(v[6:8], r.inPort)
	v[8] = r.reason
	// v[9] is padding.
	copy(v[10:], r.data)

	r.SetPayload(v)
	return r.Message.MarshalBinary()
}

func (r *PacketIn) UnmarshalBinary(data []byte) error {
	if err := r.Message.UnmarshalBinary(data); err != nil {
		return err
	}

	payload := r.Payload()
	if len(payload) < 10 {
		return &openflow.DecodeError{Offset: len(data), Reason: openflow.ErrInvalidPacketLength}
	}
	r.bufferID = binary.BigEndian.Uint32(payload[0:4])
	r.totalLen = binary.BigEndian.Uint16(payload[4:6])
	r.inPort = binary.BigEndian.Uint16(payload[6:8])
	r.reason = payload[8]
	r.data = payload[10:]

	return nil
}
