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

// Package of10 implements the OpenFlow 1.0 wire codec.
package of10

const (
	OFPT_HELLO uint8 = iota
	OFPT_ERROR
	OFPT_ECHO_REQUEST
	OFPT_ECHO_REPLY
	OFPT_VENDOR
	OFPT_FEATURES_REQUEST
	OFPT_FEATURES_REPLY
	OFPT_GET_CONFIG_REQUEST
	OFPT_GET_CONFIG_REPLY
	OFPT_SET_CONFIG
	OFPT_PACKET_IN
	OFPT_FLOW_REMOVED
	OFPT_PORT_STATUS
	OFPT_PACKET_OUT
	OFPT_FLOW_MOD
	OFPT_PORT_MOD
	OFPT_STATS_REQUEST
	OFPT_STATS_REPLY
	OFPT_BARRIER_REQUEST
	OFPT_BARRIER_REPLY
	OFPT_QUEUE_GET_CONFIG_REQUEST
	OFPT_QUEUE_GET_CONFIG_REPLY
)

const (
	OFPP_MAX        uint16 = 0xFF00
	OFPP_IN_PORT    uint16 = 0xFFF8
	OFPP_TABLE      uint16 = 0xFFF9
	OFPP_NORMAL     uint16 = 0xFFFA
	OFPP_FLOOD      uint16 = 0xFFFB
	OFPP_ALL        uint16 = 0xFFFC
	OFPP_CONTROLLER uint16 = 0xFFFD
	OFPP_LOCAL      uint16 = 0xFFFE
	OFPP_NONE       uint16 = 0xFFFF
)

const (
	OFPAT_OUTPUT uint16 = 0
)

const (
	OFP_NO_BUFFER uint32 = 0xFFFFFFFF
)
