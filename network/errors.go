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

import (
	"fmt"
)

// NotReadyError rejects an application send on a session that has not
// finished its handshake, or that is already going away.
type NotReadyError struct {
	State State
}

func (r *NotReadyError) Error() string {
	return fmt.Sprintf("session is not ready for application messages (state=%v)", r.State)
}

// TimeoutError resolves a pending request whose reply did not arrive in
// time. The session stays alive; only this request is given up.
type TimeoutError struct {
	XID uint32
}

func (r *TimeoutError) Error() string {
	return fmt.Sprintf("no reply for transaction %v within the deadline", r.XID)
}

// ConnectionLostError resolves every request that was still pending when
// its session reached the terminal state.
type ConnectionLostError struct {
	DeviceID string
}

func (r *ConnectionLostError) Error() string {
	if r.DeviceID == "" {
		return "session closed before the reply arrived"
	}
	return fmt.Sprintf("session to device %v closed before the reply arrived", r.DeviceID)
}
