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

package yamlmsg

import (
	"encoding/hex"

	"github.com/mulberry-sdn/mulberry/openflow"
	"github.com/mulberry-sdn/mulberry/openflow/of10"
	"github.com/mulberry-sdn/mulberry/openflow/of13"

	"gopkg.in/yaml.v3"
)

type document struct {
	Type string                 `yaml:"type"`
	Msg  map[string]interface{} `yaml:"msg"`
}

// kindName maps a message to its external kind identifier. Several message
// interfaces share an identical method set, e.g. Hello and BarrierRequest,
// so a Go type switch cannot tell them apart and the type byte decides.
func kindName(msg openflow.Outgoing) string {
	type byType struct{ hello, echoRequest, featuresRequest, barrierRequest, packetOut uint8 }

	var t byType
	switch msg.Version() {
	case openflow.OF10_VERSION:
		t = byType{of10.OFPT_HELLO, of10.OFPT_ECHO_REQUEST, of10.OFPT_FEATURES_REQUEST, of10.OFPT_BARRIER_REQUEST, of10.OFPT_PACKET_OUT}
	case openflow.OF13_VERSION:
		t = byType{of13.OFPT_HELLO, of13.OFPT_ECHO_REQUEST, of13.OFPT_FEATURES_REQUEST, of13.OFPT_BARRIER_REQUEST, of13.OFPT_PACKET_OUT}
	default:
		return ""
	}

	switch msg.Type() {
	case t.hello:
		return "HELLO"
	case t.echoRequest:
		return "ECHO_REQUEST"
	case t.featuresRequest:
		return "FEATURES_REQUEST"
	case t.barrierRequest:
		return "BARRIER_REQUEST"
	case t.packetOut:
		return "PACKET_OUT"
	default:
		return ""
	}
}

// Compose renders a message as a YAML document that Parse accepts back.
// Fields at their defaults are left out, so a default PACKET_OUT renders
// with an empty msg mapping.
func Compose(msg openflow.Outgoing) ([]byte, error) {
	doc := document{Type: kindName(msg), Msg: map[string]interface{}{}}

	switch doc.Type {
	case "PACKET_OUT":
		if err := composePacketOut(msg.(openflow.PacketOut), doc.Msg); err != nil {
			return nil, err
		}
	case "ECHO_REQUEST":
		if v := msg.(openflow.EchoRequest); len(v.Data()) > 0 {
			doc.Msg["data"] = hex.EncodeToString(v.Data())
		}
	case "HELLO", "BARRIER_REQUEST", "FEATURES_REQUEST":
		// No kind-specific fields.
	default:
		return nil, &openflow.ValidationError{Field: "type", Reason: "message kind has no external representation"}
	}

	return yaml.Marshal(&doc)
}

func composePacketOut(msg openflow.PacketOut, out map[string]interface{}) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if msg.BufferID() != openflow.NoBuffer {
		out["buffer_id"] = msg.BufferID()
	}
	if inPort := msg.InPort(); !inPort.IsController() {
		out["in_port"] = inPort.Port()
	}
	if len(msg.Data()) > 0 {
		out["data"] = hex.EncodeToString(msg.Data())
	}

	action := msg.Action()
	if action == nil {
		return nil
	}
	ports := action.OutPort()
	if len(ports) == 0 {
		return nil
	}

	actions := make([]map[string]interface{}, 0, len(ports))
	for _, port := range ports {
		entry := map[string]interface{}{"action": "OUTPUT"}
		if port.Kind() == openflow.PortNumber {
			entry["port_no"] = port.Value()
		} else {
			entry["port_no"] = port.Kind().String()
		}
		actions = append(actions, entry)
	}
	out["actions"] = actions

	return nil
}
