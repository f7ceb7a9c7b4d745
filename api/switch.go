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

package api

import (
	"io"

	"github.com/mulberry-sdn/mulberry/network"
	"github.com/mulberry-sdn/mulberry/openflow"
	"github.com/mulberry-sdn/mulberry/openflow/yamlmsg"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/pkg/errors"
)

type Switch struct {
	DPID       string `json:"dpid"`
	Version    uint8  `json:"openflow_version"`
	NumBuffers uint32 `json:"n_buffers"`
	NumTables  uint8  `json:"n_tables"`
	State      string `json:"state"`
}

func newSwitch(d *network.Device) Switch {
	return Switch{
		DPID:       d.ID(),
		Version:    d.Factory().ProtocolVersion(),
		NumBuffers: d.Features().NumBuffers,
		NumTables:  d.Features().NumTables,
		State:      d.State().String(),
	}
}

func (r *Server) listSwitches(w rest.ResponseWriter, req *rest.Request) {
	devices := r.Controller.Devices()

	sw := make([]Switch, 0, len(devices))
	for _, d := range devices {
		sw = append(sw, newSwitch(d))
	}

	w.WriteJson(Response{Status: StatusOkay, Data: sw})
}

func (r *Server) showSwitch(w rest.ResponseWriter, req *rest.Request) {
	device := r.Controller.Device(req.PathParam("dpid"))
	if device == nil {
		w.WriteJson(Response{Status: StatusNotFound, Message: "unknown switch"})
		return
	}

	w.WriteJson(Response{Status: StatusOkay, Data: newSwitch(device)})
}

// sendPacketOut injects a packet through one switch. The request body is a
// YAML document in the external message representation, e.g.
//
//	type: PACKET_OUT
//	msg:
//	  data: "0102..."
//	  actions:
//	    - action: OUTPUT
//	      port_no: 1
func (r *Server) sendPacketOut(w rest.ResponseWriter, req *rest.Request) {
	device := r.Controller.Device(req.PathParam("dpid"))
	if device == nil {
		w.WriteJson(Response{Status: StatusNotFound, Message: "unknown switch"})
		return
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: err.Error()})
		return
	}

	msg, err := yamlmsg.Parse(device.Factory(), body)
	if err != nil {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: err.Error()})
		return
	}
	if _, ok := msg.(openflow.PacketOut); !ok {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: "message kind is not PACKET_OUT"})
		return
	}

	if err := device.SendMessage(msg); err != nil {
		var notReady *network.NotReadyError
		if errors.As(err, &notReady) {
			w.WriteJson(Response{Status: StatusNotReady, Message: err.Error()})
			return
		}
		logger.Errorf("failed to send PACKET_OUT to %v: %v", device.ID(), err)
		w.WriteJson(Response{Status: StatusInternalServerError, Message: err.Error()})
		return
	}

	logger.Debugf("injected a PACKET_OUT through %v", device.ID())
	w.WriteJson(Response{Status: StatusOkay})
}
