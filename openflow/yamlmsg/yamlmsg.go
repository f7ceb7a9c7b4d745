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

// Package yamlmsg maps between YAML documents and OpenFlow messages. A
// document is a mapping with two keys: "type" names the message kind in
// upper case, and "msg" carries the kind-specific fields. An absent or
// empty "msg" means every field at its default.
//
//	type: PACKET_OUT
//	msg:
//	  data: "0102..."
//	  actions:
//	    - action: OUTPUT
//	      port_no: 1
//
// Each kind maps to a closed field set. Unknown keys are rejected, and
// every violation is reported as an openflow.ValidationError naming the
// offending field.
package yamlmsg

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mulberry-sdn/mulberry/openflow"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Reserved port names accepted in place of a numeric port_no.
var portNames = map[string]func(*openflow.OutPort){
	"IN_PORT":    (*openflow.OutPort).SetInPort,
	"TABLE":      (*openflow.OutPort).SetTable,
	"FLOOD":      (*openflow.OutPort).SetFlood,
	"ALL":        (*openflow.OutPort).SetAll,
	"CONTROLLER": (*openflow.OutPort).SetController,
	"LOCAL":      (*openflow.OutPort).SetLocal,
	"NONE":       (*openflow.OutPort).SetNone,
}

// Parse builds an outgoing message from one YAML document. The concrete
// wire format of the result is decided by the factory's protocol version.
func Parse(f openflow.Factory, src []byte) (openflow.Outgoing, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, errors.Wrap(err, "invalid YAML document")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, &openflow.ValidationError{Field: "type", Reason: "empty document"}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &openflow.ValidationError{Field: "type", Reason: "document is not a mapping"}
	}

	var msgType string
	var body *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "type":
			msgType = value.Value
		case "msg":
			body = value
		default:
			return nil, &openflow.ValidationError{Field: key.Value, Reason: "unknown key"}
		}
	}
	if msgType == "" {
		return nil, &openflow.ValidationError{Field: "type", Reason: "missing message kind"}
	}

	switch msgType {
	case "PACKET_OUT":
		return parsePacketOut(f, body)
	case "HELLO":
		return f.NewHello()
	case "BARRIER_REQUEST":
		return f.NewBarrierRequest()
	case "FEATURES_REQUEST":
		return f.NewFeaturesRequest()
	case "ECHO_REQUEST":
		return parseEchoRequest(f, body)
	default:
		return nil, &openflow.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown message kind %q", msgType)}
	}
}

// emptyBody reports whether the msg node is absent, null or an empty mapping.
func emptyBody(body *yaml.Node) bool {
	if body == nil || body.Kind == 0 {
		return true
	}
	if body.Kind == yaml.ScalarNode && body.Tag == "!!null" {
		return true
	}
	return body.Kind == yaml.MappingNode && len(body.Content) == 0
}

func bodyFields(body *yaml.Node, parent string) (map[string]*yaml.Node, error) {
	fields := make(map[string]*yaml.Node)
	if emptyBody(body) {
		return fields, nil
	}
	if body.Kind != yaml.MappingNode {
		return nil, &openflow.ValidationError{Field: parent, Reason: "not a mapping"}
	}
	for i := 0; i+1 < len(body.Content); i += 2 {
		fields[body.Content[i].Value] = body.Content[i+1]
	}
	return fields, nil
}

func parsePacketOut(f openflow.Factory, body *yaml.Node) (openflow.PacketOut, error) {
	fields, err := bodyFields(body, "msg")
	if err != nil {
		return nil, err
	}

	msg, err := f.NewPacketOut()
	if err != nil {
		return nil, err
	}

	for name, node := range fields {
		switch name {
		case "buffer_id":
			var id int64
			if err := node.Decode(&id); err != nil || id < 0 || id > 0xFFFFFFFF {
				return nil, &openflow.ValidationError{Field: "msg.buffer_id", Reason: "not a 32-bit unsigned integer"}
			}
			msg.SetBufferID(uint32(id))
		case "in_port":
			port, err := parsePort(node, "msg.in_port")
			if err != nil {
				return nil, err
			}
			inPort := openflow.NewInPort()
			if port.Kind() == openflow.PortNumber {
				inPort.SetPort(port.Value())
			} else if port.Kind() != openflow.PortController {
				return nil, &openflow.ValidationError{Field: "msg.in_port", Reason: "not a physical port or CONTROLLER"}
			}
			msg.SetInPort(inPort)
		case "data":
			var s string
			if err := node.Decode(&s); err != nil {
				return nil, &openflow.ValidationError{Field: "msg.data", Reason: "not a string"}
			}
			data, err := hex.DecodeString(s)
			if err != nil {
				return nil, &openflow.ValidationError{Field: "msg.data", Reason: "not a hex-encoded byte string"}
			}
			msg.SetData(data)
		case "actions":
			action, err := parseActions(f, node)
			if err != nil {
				return nil, err
			}
			if action != nil {
				msg.SetAction(action)
			}
		default:
			return nil, &openflow.ValidationError{Field: "msg." + name, Reason: "unknown key"}
		}
	}

	// Surface invariant violations at construction, not at marshal time.
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

func parseActions(f openflow.Factory, node *yaml.Node) (openflow.Action, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, &openflow.ValidationError{Field: "msg.actions", Reason: "not a sequence"}
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	action, err := f.NewAction()
	if err != nil {
		return nil, err
	}

	for i, entry := range node.Content {
		fields, err := bodyFields(entry, fmt.Sprintf("msg.actions[%d]", i))
		if err != nil {
			return nil, err
		}

		var kind string
		var port *openflow.OutPort
		for name, value := range fields {
			switch name {
			case "action":
				kind = value.Value
			case "port_no":
				p, err := parsePort(value, fmt.Sprintf("msg.actions[%d].port_no", i))
				if err != nil {
					return nil, err
				}
				port = &p
			default:
				return nil, &openflow.ValidationError{
					Field:  fmt.Sprintf("msg.actions[%d].%v", i, name),
					Reason: "unknown key",
				}
			}
		}

		if kind != "OUTPUT" {
			return nil, &openflow.ValidationError{
				Field:  fmt.Sprintf("msg.actions[%d].action", i),
				Reason: fmt.Sprintf("unknown action kind %q", kind),
			}
		}
		if port == nil {
			return nil, &openflow.ValidationError{
				Field:  fmt.Sprintf("msg.actions[%d].port_no", i),
				Reason: "missing output port",
			}
		}
		if err := port.Validate(); err != nil {
			return nil, &openflow.ValidationError{
				Field:  fmt.Sprintf("msg.actions[%d].port_no", i),
				Reason: "not a positive port number or reserved port",
			}
		}
		action.SetOutPort(*port)
	}

	return action, nil
}

// parsePort accepts either a positive integer or a reserved port name.
func parsePort(node *yaml.Node, field string) (openflow.OutPort, error) {
	if node.Kind != yaml.ScalarNode {
		return openflow.OutPort{}, &openflow.ValidationError{Field: field, Reason: "not a scalar"}
	}

	var n int64
	if err := node.Decode(&n); err == nil {
		if n <= 0 || n > 0xFFFFFFFF {
			return openflow.OutPort{}, &openflow.ValidationError{Field: field, Reason: "port number must be positive"}
		}
		port := openflow.NewOutPort()
		port.SetValue(uint32(n))
		return port, nil
	}

	set, ok := portNames[strings.ToUpper(node.Value)]
	if !ok {
		return openflow.OutPort{}, &openflow.ValidationError{Field: field, Reason: fmt.Sprintf("unknown port %q", node.Value)}
	}
	port := openflow.NewOutPort()
	set(&port)
	return port, nil
}

func parseEchoRequest(f openflow.Factory, body *yaml.Node) (openflow.EchoRequest, error) {
	fields, err := bodyFields(body, "msg")
	if err != nil {
		return nil, err
	}

	msg, err := f.NewEchoRequest()
	if err != nil {
		return nil, err
	}

	for name, node := range fields {
		switch name {
		case "data":
			var s string
			if err := node.Decode(&s); err != nil {
				return nil, &openflow.ValidationError{Field: "msg.data", Reason: "not a string"}
			}
			data, err := hex.DecodeString(s)
			if err != nil {
				return nil, &openflow.ValidationError{Field: "msg.data", Reason: "not a hex-encoded byte string"}
			}
			msg.SetData(data)
		default:
			return nil, &openflow.ValidationError{Field: "msg." + name, Reason: "unknown key"}
		}
	}

	return msg, nil
}
