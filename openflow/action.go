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

// Action is an ordered list of OUTPUT actions attached to an outgoing packet.
// Switches apply the actions in the order they were added, so the list must
// preserve insertion order end-to-end.
type Action interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	// Error returns the last error raised by a setter.
	Error() error
	OutPort() []OutPort
	SetOutPort(port OutPort)
}

type BaseAction struct {
	err    error
	output []OutPort
}

func NewBaseAction() *BaseAction {
	return &BaseAction{}
}

// SetOutPort appends an output port. Insertion order is preserved.
func (r *BaseAction) SetOutPort(port OutPort) {
	r.output = append(r.output, port)
}

func (r *BaseAction) OutPort() []OutPort {
	ports := make([]OutPort, len(r.output))
	copy(ports, r.output)

	return ports
}

func (r *BaseAction) Error() error {
	return r.err
}
