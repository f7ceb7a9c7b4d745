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

// Package protocol decodes the packet formats a controller sees inside
// PACKET_IN payloads. Only the outermost framing is modeled; the payload
// stays opaque.
package protocol

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/pkg/errors"
)

// Well-known EtherType values.
const (
	TypeIPv4 uint16 = 0x0800
	TypeARP  uint16 = 0x0806
	TypeVLAN uint16 = 0x8100
	TypeIPv6 uint16 = 0x86DD
	TypeLLDP uint16 = 0x88CC
)

// Ethernet is a decoded Ethernet II frame. A single IEEE 802.1Q tag is
// stripped during decoding and reported via VLANID.
type Ethernet struct {
	SrcMAC, DstMAC net.HardwareAddr
	Type           uint16
	// VLANID is zero for an untagged frame.
	VLANID  uint16
	Payload []byte
}

func (r Ethernet) MarshalBinary() ([]byte, error) {
	if len(r.SrcMAC) != 6 || len(r.DstMAC) != 6 {
		return nil, errors.New("invalid MAC address")
	}

	header := 14
	if r.VLANID > 0 {
		header = 18
	}
	v := make([]byte, header+len(r.Payload))
	copy(v[0:6], r.DstMAC)
	copy(v[6:12], r.SrcMAC)
	if r.VLANID > 0 {
		binary.BigEndian.PutUint16(v[12:14], TypeVLAN)
		binary.BigEndian.PutUint16(v[14:16], r.VLANID&0x0FFF)
		binary.BigEndian.PutUint16(v[16:18], r.Type)
	} else {
		binary.BigEndian.PutUint16(v[12:14], r.Type)
	}
	copy(v[header:], r.Payload)

	return v, nil
}

func (r *Ethernet) UnmarshalBinary(data []byte) error {
	if len(data) < 14 {
		return errors.New("invalid ethernet frame length")
	}

	r.DstMAC = data[0:6]
	r.SrcMAC = data[6:12]
	r.Type = binary.BigEndian.Uint16(data[12:14])
	r.VLANID = 0
	// IEEE 802.1Q-tagged frame?
	if r.Type == TypeVLAN {
		if len(data) < 18 {
			return errors.New("truncated 802.1Q header")
		}
		r.VLANID = binary.BigEndian.Uint16(data[14:16]) & 0x0FFF
		r.Type = binary.BigEndian.Uint16(data[16:18])
		r.Payload = data[18:]
	} else {
		r.Payload = data[14:]
	}

	return nil
}

func (r Ethernet) String() string {
	if r.VLANID > 0 {
		return fmt.Sprintf("%v -> %v (type=0x%04X, vlan=%v, %v bytes)", r.SrcMAC, r.DstMAC, r.Type, r.VLANID, len(r.Payload))
	}
	return fmt.Sprintf("%v -> %v (type=0x%04X, %v bytes)", r.SrcMAC, r.DstMAC, r.Type, len(r.Payload))
}
