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
	"encoding/binary"

	"github.com/mulberry-sdn/mulberry/openflow"
)

type PacketIn struct {
	openflow.Message
	bufferID uint32
	totalLen uint16
	reason   uint8
	tableID  uint8
	cookie   uint64
	inPort   uint32
	data     []byte
}

func NewPacketIn(xid uint32) *PacketIn {
	return &PacketIn{
		Message:  openflow.NewMessage(openflow.OF13_VERSION, OFPT_PACKET_IN, xid),
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
	return r.inPort
}

func (r *PacketIn) SetInPort(port uint32) {
	r.inPort = port
}

func (r *PacketIn) Reason() uint8 {
	return r.reason
}

func (r *PacketIn) TableID() uint8 {
	return r.tableID
}

func (r *PacketIn) Cookie() uint64 {
	return r.cookie
}

func (r *PacketIn) Data() []byte {
	return r.data
}

func (r *PacketIn) SetData(data []byte) {
	r.data = data
	r.totalLen = uint16(len(data))
}

// MarshalBinary emits a match that carries only the OXM in_port field, which
// is the only match field this codec models.
func (r *PacketIn) MarshalBinary() ([]byte, error) {
	// ofp_match: header (4) + one OXM TLV (8), zero-padded to 16 bytes.
	match := make([]byte, 16)
	binary.BigEndian.PutUint16(match[0:2], 1) // OFPMT_OXM
	binary.BigEndian.PutUint16(match[2:4], 12)
	binary.BigEndian.PutUint16(match[4:6], OFPXMC_OPENFLOW_BASIC)
	match[6] = OFPXMT_OFB_IN_PORT << 1
	match[7] = 4
	binary.BigEndian.PutUint32(match[8:12], r.inPort)

	v := make([]byte, 16, 16+len(match)+2+len(r.data))
	binary.BigEndian.PutUint32(v[0:4], r.bufferID)
	binary.BigEndian.PutUint16(v[4:6], r.totalLen)
	v[6] = r.reason
	v[7] = r.tableID
	binary.BigEndian.PutUint64(v[8:16], r.cookie)
	v = append(v, match...)
	v = append(v, 0x00, 0x00)
	v = append(v, r.data...)

	r.SetPayload(v)
	return r.Message.MarshalBinary()
}

func (r *PacketIn) UnmarshalBinary(data []byte) error {
	if err := r.Message.UnmarshalBinary(data); err != nil {
		return err
	}

	payload := r.Payload()
	if len(payload) < 20 {
		return &openflow.DecodeError{Offset: len(data), Reason: openflow.ErrInvalidPacketLength}
	}
	r.bufferID = binary.BigEndian.Uint32(payload[0:4])
	r.totalLen = binary.BigEndian.Uint16(payload[4:6])
	r.reason = payload[6]
	r.tableID = payload[7]
	r.cookie = binary.BigEndian.Uint64(payload[8:16])

	matchLen := int(binary.BigEndian.Uint16(payload[18:20]))
	if matchLen < 4 {
		return &openflow.DecodeError{Offset: 26, Reason: openflow.ErrInvalidPacketLength}
	}
	// The match is zero-padded to a multiple of 8 bytes.
	paddedLen := (matchLen + 7) / 8 * 8
	if 16+paddedLen+2 > len(payload) {
		return &openflow.DecodeError{Offset: 26, Reason: openflow.ErrInvalidPacketLength}
	}

	// Scan the OXM fields for in_port; ignore everything else.
	oxm := payload[20 : 16+matchLen]
	for len(oxm) >= 4 {
		class := binary.BigEndian.Uint16(oxm[0:2])
		field := oxm[2] >> 1
		length := int(oxm[3])
		if 4+length > len(oxm) {
			return &openflow.DecodeError{Offset: 28, Reason: openflow.ErrInvalidPacketLength}
		}
		if class == OFPXMC_OPENFLOW_BASIC && field == OFPXMT_OFB_IN_PORT && length == 4 {
			r.inPort = binary.BigEndian.Uint32(oxm[4:8])
		}
		oxm = oxm[4+length:]
	}

	r.data = payload[16+paddedLen+2:]

	return nil
}
