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
	"encoding/binary"

	"github.com/mulberry-sdn/mulberry/openflow"
)

type FeaturesReply struct {
	openflow.Message
	dpid         uint64
	numBuffers   uint32
	numTables    uint8
	auxiliaryID  uint8
	capabilities uint32
}

func NewFeaturesReply(xid uint32) *FeaturesReply {
	return &FeaturesReply{
		Message: openflow.NewMessage(openflow.OF13_VERSION, OFPT_FEATURES_REPLY, xid),
	}
}

func (r *FeaturesReply) DPID() uint64 {
	return r.dpid
}

func (r *FeaturesReply) SetDPID(dpid uint64) {
	r.dpid = dpid
}

func (r *FeaturesReply) NumBuffers() uint32 {
	return r.numBuffers
}

func (r *FeaturesReply) SetNumBuffers(n uint32) {
	r.numBuffers = n
}

func (r *FeaturesReply) NumTables() uint8 {
	return r.numTables
}

func (r *FeaturesReply) SetNumTables(n uint8) {
	r.numTables = n
}

func (r *FeaturesReply) AuxiliaryID() uint8 {
	return r.auxiliaryID
}

func (r *FeaturesReply) Capabilities() uint32 {
	return r.capabilities
}

func (r *FeaturesReply) MarshalBinary() ([]byte, error) {
	v := make([]byte, 24)
	binary.BigEndian.PutUint64(v[0:8], r.dpid)
	binary.BigEndian.PutUint32(v[8:12], r.numBuffers)
	v[12] = r.numTables
	v[13] = r.auxiliaryID
	// v[14:16] is padding.
	binary.BigEndian.PutUint32(v[16:20], r.capabilities)
	// v[20:24] is reserved.

	r.SetPayload(v)
	return r.Message.MarshalBinary()
}

func (r *FeaturesReply) UnmarshalBinary(data []byte) error {
	if err := r.Message.UnmarshalBinary(data); err != nil {
		return err
	}

	payload := r.Payload()
	if len(payload) < 24 {
		return &openflow.DecodeError{Offset: len(data), Reason: openflow.ErrInvalidPacketLength}
	}
	r.dpid = binary.BigEndian.Uint64(payload[0:8])
	r.numBuffers = binary.BigEndian.Uint32(payload[8:12])
	r.numTables = payload[12]
	r.auxiliaryID = payload[13]
	r.capabilities = binary.BigEndian.Uint32(payload[16:20])

	return nil
}
