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

package network

import "fmt"

// State is the lifecycle stage of a switch session. A session only moves
// forward through these states, never back.
type State uint8

const (
	// StateConnecting means the transport is being established.
	StateConnecting State = iota
	// StateHandshaking means HELLO negotiation is in flight.
	StateHandshaking
	// StateFeatureQuery means we asked the switch for its identity and
	// wait for the FEATURES_REPLY.
	StateFeatureQuery
	// StateReady accepts application messages. No other state does.
	StateReady
	// StateClosing drains outstanding work before teardown.
	StateClosing
	// StateClosed is terminal. The session object is discarded.
	StateClosed
)

var stateName = map[State]string{
	StateConnecting:   "CONNECTING",
	StateHandshaking:  "HANDSHAKING",
	StateFeatureQuery: "FEATURE_QUERY",
	StateReady:        "READY",
	StateClosing:      "CLOSING",
	StateClosed:       "CLOSED",
}

func (r State) String() string {
	v, ok := stateName[r]
	if !ok {
		return fmt.Sprintf("UNKNOWN(%v)", uint8(r))
	}
	return v
}
