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

// Package of13 implements the OpenFlow 1.3 wire codec.
package of13

const (
	OFPT_HELLO uint8 = iota
	OFPT_ERROR
	OFPT_ECHO_REQUEST
	OFPT_ECHO_REPLY
	OFPT_EXPERIMENTER
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
	OFPT_GROUP_MOD
	OFPT_PORT_MOD
	OFPT_TABLE_MOD
	OFPT_MULTIPART_REQUEST
	OFPT_MULTIPART_REPLY
	OFPT_BARRIER_REQUEST
	OFPT_BARRIER_REPLY
	OFPT_QUEUE_GET_CONFIG_REQUEST
	OFPT_QUEUE_GET_CONFIG_REPLY
	OFPT_ROLE_REQUEST
	OFPT_ROLE_REPLY
	OFPT_GET_ASYNC_REQUEST
	OFPT_GET_ASYNC_REPLY
	OFPT_SET_ASYNC
	OFPT_METER_MOD
)

const (
	OFPP_MAX        uint32 = 0xFFFFFF00
	OFPP_IN_PORT    uint32 = 0xFFFFFFF8
	OFPP_TABLE      uint32 = 0xFFFFFFF9
	OFPP_NORMAL     uint32 = 0xFFFFFFFA
	OFPP_FLOOD      uint32 = 0xFFFFFFFB
	OFPP_ALL        uint32 = 0xFFFFFFFC
	OFPP_CONTROLLER uint32 = 0xFFFFFFFD
	OFPP_LOCAL      uint32 = 0xFFFFFFFE
	OFPP_ANY        uint32 = 0xFFFFFFFF
)

const (
	OFPAT_OUTPUT uint16 = 0
)

// OXM match constants used by PACKET_IN.
const (
	OFPXMC_OPENFLOW_BASIC uint16 = 0x8000
	OFPXMT_OFB_IN_PORT    uint8  = 0
)

const (
	OFP_NO_BUFFER uint32 = 0xFFFFFFFF
)
