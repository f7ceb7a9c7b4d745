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

package of10

import (
	"github.com/mulberry-sdn/mulberry/openflow"
)

type Hello struct {
	openflow.BaseHello
}

func NewHello(xid uint32) openflow.Hello {
	v := new(Hello)
	v.Message = openflow.NewMessage(openflow.OF10_VERSION, OFPT_HELLO, xid)

	return v
}

type EchoRequest struct {
	openflow.BaseEcho
}

func NewEchoRequest(xid uint32) openflow.EchoRequest {
	v := new(EchoRequest)
	v.Message = openflow.NewMessage(openflow.OF10_VERSION, OFPT_ECHO_REQUEST, xid)

	return v
}

type EchoReply struct {
	openflow.BaseEcho
}

func NewEchoReply(xid uint32) openflow.EchoReply {
	v := new(EchoReply)
	v.Message = openflow.NewMessage(openflow.OF10_VERSION, OFPT_ECHO_REPLY, xid)

	return v
}

type Error struct {
	openflow.BaseError
}

type BarrierRequest struct {
	openflow.BaseBarrier
}

func NewBarrierRequest(xid uint32) openflow.BarrierRequest {
	v := new(BarrierRequest)
	v.Message = openflow.NewMessage(openflow.OF10_VERSION, OFPT_BARRIER_REQUEST, xid)

	return v
}

type BarrierReply struct {
	openflow.BaseBarrier
}

func NewBarrierReply(xid uint32) openflow.BarrierReply {
	v := new(BarrierReply)
	v.Message = openflow.NewMessage(openflow.OF10_VERSION, OFPT_BARRIER_REPLY, xid)

	return v
}

type FeaturesRequest struct {
	openflow.BaseFeaturesRequest
}

func NewFeaturesRequest(xid uint32) openflow.FeaturesRequest {
	v := new(FeaturesRequest)
	v.Message = openflow.NewMessage(openflow.OF10_VERSION, OFPT_FEATURES_REQUEST, xid)

	return v
}
