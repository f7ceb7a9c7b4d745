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
	"github.com/mulberry-sdn/mulberry/openflow"
)

func init() {
	openflow.RegisterParser(openflow.OF13_VERSION, ParseMessage)
}

// ParseMessage decodes one framed 1.3 message. Valid message types that are
// not modeled return ErrUnsupportedMessage so the caller can drop and count
// them; a type byte outside the protocol's range is a decode failure.
func ParseMessage(data []byte) (openflow.Incoming, error) {
	if len(data) < 8 {
		return nil, &openflow.DecodeError{Offset: len(data), Reason: openflow.ErrInvalidPacketLength}
	}

	var msg openflow.Incoming

	switch data[1] {
	case OFPT_HELLO:
		msg = new(Hello)
	case OFPT_ERROR:
		msg = new(Error)
	case OFPT_ECHO_REQUEST:
		msg = new(EchoRequest)
	case OFPT_ECHO_REPLY:
		msg = new(EchoReply)
	case OFPT_FEATURES_REPLY:
		msg = new(FeaturesReply)
	case OFPT_PACKET_IN:
		msg = new(PacketIn)
	case OFPT_PACKET_OUT:
		msg = new(PacketOut)
	case OFPT_BARRIER_REPLY:
		msg = new(BarrierReply)
	default:
		if data[1] > OFPT_METER_MOD {
			return nil, &openflow.DecodeError{Offset: 1, Reason: openflow.ErrUnsupportedMessage}
		}
		return nil, openflow.ErrUnsupportedMessage
	}

	if err := msg.UnmarshalBinary(data); err != nil {
		return nil, err
	}

	return msg, nil
}
