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

// Hello opens the version negotiation. Its version byte advertises the
// highest protocol version the sender supports.
type Hello interface {
	Header
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

type BaseHello struct {
	Message
}

func (r *BaseHello) MarshalBinary() ([]byte, error) {
	return r.Message.MarshalBinary()
}

func (r *BaseHello) UnmarshalBinary(data []byte) error {
	return r.Message.UnmarshalBinary(data)
}
