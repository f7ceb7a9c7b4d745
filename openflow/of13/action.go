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
	"fmt"

	"github.com/mulberry-sdn/mulberry/openflow"
)

// Length of one ofp_action_output entry, including its 6 padding bytes.
const actionOutputLength = 16

const maxLenNoTruncate = 0xFFFF

type Action struct {
	*openflow.BaseAction
}

func NewAction() openflow.Action {
	return &Action{
		BaseAction: openflow.NewBaseAction(),
	}
}

func marshalOutPort(p openflow.OutPort) (uint32, error) {
	switch p.Kind() {
	case openflow.PortNumber:
		if p.Value() == 0 || p.Value() > OFPP_MAX {
			return 0, &openflow.ValidationError{
				Field:  "port_no",
				Reason: fmt.Sprintf("port number %v is out of the valid range", p.Value()),
			}
		}
		return p.Value(), nil
	case openflow.PortInPort:
		return OFPP_IN_PORT, nil
	case openflow.PortTable:
		return OFPP_TABLE, nil
	case openflow.PortFlood:
		return OFPP_FLOOD, nil
	case openflow.PortAll:
		return OFPP_ALL, nil
	case openflow.PortController:
		return OFPP_CONTROLLER, nil
	case openflow.PortLocal:
		return OFPP_LOCAL, nil
	case openflow.PortNone:
		return OFPP_ANY, nil
	default:
		return 0, &openflow.ValidationError{
			Field:  "port_no",
			Reason: fmt.Sprintf("unknown reserved port %v", p.Kind()),
		}
	}
}

func unmarshalOutPort(v uint32) openflow.OutPort {
	port := openflow.NewOutPort()
	switch v {
	case OFPP_IN_PORT:
		port.SetInPort()
	case OFPP_TABLE:
		port.SetTable()
	case OFPP_FLOOD:
		port.SetFlood()
	case OFPP_ALL:
		port.SetAll()
	case OFPP_CONTROLLER:
		port.SetController()
	case OFPP_LOCAL:
		port.SetLocal()
	case OFPP_ANY:
		port.SetNone()
	default:
		port.SetValue(v)
	}

	return port
}

func (r *Action) MarshalBinary() ([]byte, error) {
	if err := openflow.ValidateActions(r); err != nil {
		return nil, err
	}

	ports := r.OutPort()
	v := make([]byte, 0, len(ports)*actionOutputLength)
	for _, p := range ports {
		wire, err := marshalOutPort(p)
		if err != nil {
			return nil, err
		}

		out := make([]byte, actionOutputLength)
		binary.BigEndian.PutUint16(out[0:2], OFPAT_OUTPUT)
		binary.BigEndian.PutUint16(out[2:4], actionOutputLength)
		binary.BigEndian.PutUint32(out[4:8], wire)
		binary.BigEndian.PutUint16(out[8:10], maxLenNoTruncate)
		// out[10:16] is padding.
		v = append(v, out...)
	}

	return v, nil
}

func (r *Action) UnmarshalBinary(data []byte) error {
	offset := 0
	for offset < len(data) {
		if len(data)-offset < 4 {
			return &openflow.DecodeError{Offset: offset, Reason: openflow.ErrInvalidPacketLength}
		}

		actionType := binary.BigEndian.Uint16(data[offset : offset+2])
		length := int(binary.BigEndian.Uint16(data[offset+2 : offset+4]))
		if length < 8 || offset+length > len(data) {
			return &openflow.DecodeError{Offset: offset + 2, Reason: openflow.ErrInvalidPacketLength}
		}

		if actionType == OFPAT_OUTPUT {
			if length != actionOutputLength {
				return &openflow.DecodeError{Offset: offset + 2, Reason: openflow.ErrInvalidPacketLength}
			}
			r.SetOutPort(unmarshalOutPort(binary.BigEndian.Uint32(data[offset+4 : offset+8])))
		}
		// Skip action types we do not model.
		offset += length
	}

	return nil
}
