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

package protocol

import (
	"bytes"
	"net"
	"testing"
)

func mac(s string) net.HardwareAddr {
	v, err := net.ParseMAC(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestEthernetRoundTrip(t *testing.T) {
	src := []struct {
		name  string
		frame Ethernet
	}{
		{
			name: "untagged ARP",
			frame: Ethernet{
				SrcMAC:  mac("00:11:22:33:44:55"),
				DstMAC:  mac("ff:ff:ff:ff:ff:ff"),
				Type:    TypeARP,
				Payload: []byte{0x00, 0x01},
			},
		},
		{
			name: "tagged IPv4",
			frame: Ethernet{
				SrcMAC:  mac("00:11:22:33:44:55"),
				DstMAC:  mac("66:77:88:99:aa:bb"),
				Type:    TypeIPv4,
				VLANID:  100,
				Payload: []byte{0x45, 0x00},
			},
		},
	}

	for _, v := range src {
		packet, err := v.frame.MarshalBinary()
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", v.name, err)
		}

		decoded := new(Ethernet)
		if err := decoded.UnmarshalBinary(packet); err != nil {
			t.Fatalf("%v: unexpected error: %v", v.name, err)
		}
		if !bytes.Equal(decoded.SrcMAC, v.frame.SrcMAC) {
			t.Fatalf("%v: unexpected source MAC: %v", v.name, decoded.SrcMAC)
		}
		if !bytes.Equal(decoded.DstMAC, v.frame.DstMAC) {
			t.Fatalf("%v: unexpected destination MAC: %v", v.name, decoded.DstMAC)
		}
		if decoded.Type != v.frame.Type {
			t.Fatalf("%v: unexpected type: 0x%04X", v.name, decoded.Type)
		}
		if decoded.VLANID != v.frame.VLANID {
			t.Fatalf("%v: unexpected VLAN ID: %v", v.name, decoded.VLANID)
		}
		if !bytes.Equal(decoded.Payload, v.frame.Payload) {
			t.Fatalf("%v: unexpected payload: %v", v.name, decoded.Payload)
		}
	}
}

func TestEthernetUnmarshalErrors(t *testing.T) {
	if err := new(Ethernet).UnmarshalBinary(make([]byte, 13)); err == nil {
		t.Fatal("expected an error on a truncated frame")
	}

	// A frame that claims an 802.1Q tag but ends before it.
	tagged := make([]byte, 14)
	tagged[12], tagged[13] = 0x81, 0x00
	if err := new(Ethernet).UnmarshalBinary(tagged); err == nil {
		t.Fatal("expected an error on a truncated 802.1Q header")
	}
}
