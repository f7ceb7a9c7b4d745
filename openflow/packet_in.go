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

// PacketIn is a packet the switch forwarded to the controller, either
// because of a table miss or an explicit output-to-controller action. When
// the packet is buffered on the switch, BufferID references it and Data
// carries only a prefix.
type PacketIn interface {
	Header
	BufferID() uint32
	InPort() uint32
	Reason() uint8
	TableID() uint8
	Cookie() uint64
	Data() []byte
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}
