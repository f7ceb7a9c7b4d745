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

// Package openflow provides the version-independent message model of the
// OpenFlow control protocol. Concrete wire codecs live in the of10 and of13
// sub-packages, and are reached through the Factory interface.
package openflow

const (
	// Wire protocol version numbers.
	OF10_VERSION uint8 = 0x01
	OF13_VERSION uint8 = 0x04
)

// NoBuffer is the buffer ID of an unbuffered packet.
const NoBuffer uint32 = 0xFFFFFFFF
