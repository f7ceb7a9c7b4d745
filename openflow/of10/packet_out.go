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

type PacketOut struct {
	openflow.BasePacketOut
}

func NewPacketOut(xid uint32) openflow.PacketOut {
	v := new(PacketOut)
	v.BasePacketOut = openflow.NewBasePacketOut()
	v.Message = openflow.NewMessage(openflow.OF10_VERSION, OFPT_PACKET_OUT, xid)

	return v
}

func (r *PacketOut) MarshalBinary() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	action := make([]byte, 0)
	if r.Action() != nil {
		a, err := r.Action().MarshalBinary()
		if err != nil {
			return nil, err
		}
		action = append(action, a...)
	}

	v := make([]byte, 8)
	binary.BigEndian.PutUint32(v[0:4], r.BufferID())
	inPort := r.InPort()
	port := uint16(inPort.Port())
	if inPort.IsController() {
		port = OFPP_CONTROLLER
	}
	binary.BigEndian.PutUint16(v[4:6], port)
	binary.BigEndian.PutUint16(v[6:8], uint16(len(action)))
	v = append(v, action...)
	if len(r.Data()) > 0 {
		v = append(v, r.Data()...)
	}

	r.SetPayload(v)
	return r.Message.MarshalBinary()
}

func (r *PacketOut) UnmarshalBinary(data []byte) error {
	if err := r.Message.UnmarshalBinary(data); err != nil {
		return err
	}

	payload := r.Payload()
	if len(payload) < 8 {
		return &openflow.DecodeError{Offset: len(data), Reason: openflow.ErrInvalidPacketLength}
	}

	r.SetBufferID(binary.BigEndian.Uint32(payload[0:4]))
	inPort := openflow.NewInPort()
	if port := binary.BigEndian.Uint16(payload[4:6]); port != OFPP_CONTROLLER && port != OFPP_NONE {
		inPort.SetPort(uint32(port))
	}
	r.SetInPort(inPort)

	actionLen := int(binary.BigEndian.Uint16(payload[6:8]))
	if 8+actionLen > len(payload) {
		return &openflow.DecodeError{Offset: 14, Reason: openflow.ErrInvalidPacketLength}
	}
	if actionLen > 0 {
		action := NewAction()
		if err := action.UnmarshalBinary(payload[8 : 8+actionLen]); err != nil {
			return err
		}
		r.SetAction(action)
	}
	if len(payload) > 8+actionLen {
		r.SetData(payload[8+actionLen:])
	}

	return nil
}
