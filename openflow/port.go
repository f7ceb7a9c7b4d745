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

import "fmt"

// PortKind distinguishes a numbered switch port from the reserved logical
// ports. The per-version codecs map each kind onto its OFPP_* constant.
type PortKind uint8

const (
	PortNumber PortKind = iota
	PortInPort
	PortTable
	PortFlood
	PortAll
	PortController
	PortLocal
	PortNone
)

var portKindName = map[PortKind]string{
	PortNumber:     "NUMBER",
	PortInPort:     "IN_PORT",
	PortTable:      "TABLE",
	PortFlood:      "FLOOD",
	PortAll:        "ALL",
	PortController: "CONTROLLER",
	PortLocal:      "LOCAL",
	PortNone:       "NONE",
}

func (r PortKind) String() string {
	v, ok := portKindName[r]
	if !ok {
		return fmt.Sprintf("UNKNOWN(%v)", uint8(r))
	}
	return v
}

// OutPort is the destination of an OUTPUT action: either a positive port
// number or one of the reserved logical ports.
type OutPort struct {
	kind  PortKind
	value uint32
}

// NewOutPort returns an output port that floods, which is the safest default
// for an unconfigured action.
func NewOutPort() OutPort {
	return OutPort{kind: PortFlood}
}

func (r *OutPort) SetValue(port uint32) {
	r.kind = PortNumber
	r.value = port
}

func (r *OutPort) SetInPort()     { r.kind = PortInPort }
func (r *OutPort) SetTable()      { r.kind = PortTable }
func (r *OutPort) SetFlood()      { r.kind = PortFlood }
func (r *OutPort) SetAll()        { r.kind = PortAll }
func (r *OutPort) SetController() { r.kind = PortController }
func (r *OutPort) SetLocal()      { r.kind = PortLocal }
func (r *OutPort) SetNone()       { r.kind = PortNone }

func (r OutPort) Kind() PortKind {
	return r.kind
}

// Value returns the port number. It is only meaningful when Kind() is
// PortNumber.
func (r OutPort) Value() uint32 {
	return r.value
}

func (r OutPort) IsController() bool {
	return r.kind == PortController
}

// Validate checks the port rules: a numbered port must be positive, and the
// reserved kind must be one of the enumerated logical ports.
func (r OutPort) Validate() error {
	switch r.kind {
	case PortNumber:
		if r.value == 0 {
			return &ValidationError{Field: "port_no", Reason: "port number must be positive"}
		}
		return nil
	case PortInPort, PortTable, PortFlood, PortAll, PortController, PortLocal, PortNone:
		return nil
	default:
		return &ValidationError{Field: "port_no", Reason: fmt.Sprintf("unknown reserved port %v", uint8(r.kind))}
	}
}

func (r OutPort) String() string {
	if r.kind == PortNumber {
		return fmt.Sprintf("%v", r.value)
	}
	return r.kind.String()
}

// InPort is the ingress port carried by PACKET_OUT. The zero value of the
// controller flag would be ambiguous, so use NewInPort for the "no input
// port" sentinel.
type InPort struct {
	port       uint32
	controller bool
}

// NewInPort returns the "no input port" sentinel, i.e. the packet originates
// from the controller itself.
func NewInPort() InPort {
	return InPort{
		controller: true,
	}
}

func (r *InPort) SetPort(port uint32) {
	r.controller = false
	r.port = port
}

func (r InPort) IsController() bool {
	return r.controller
}

func (r InPort) Port() uint32 {
	return r.port
}
