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
	"testing"

	"github.com/mulberry-sdn/mulberry/openflow"
	"github.com/mulberry-sdn/mulberry/openflow/of10"
	"github.com/mulberry-sdn/mulberry/openflow/of13"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsePacketOutDoc(t *testing.T, doc string) openflow.PacketOut {
	t.Helper()

	msg, err := Parse(of13.NewFactory(), []byte(doc))
	require.NoError(t, err)
	out, ok := msg.(openflow.PacketOut)
	require.True(t, ok, "expected a PACKET_OUT message")

	return out
}

func TestParseBufferedDrop(t *testing.T) {
	out := parsePacketOutDoc(t, `
type: PACKET_OUT
msg:
  buffer_id: 257
`)

	assert.Equal(t, uint32(257), out.BufferID())
	assert.Empty(t, out.Data())
	assert.Nil(t, out.Action())
	assert.True(t, out.InPort().IsController())
}

func TestParseOrderedActions(t *testing.T) {
	out := parsePacketOutDoc(t, `
type: PACKET_OUT
msg:
  data: "00000000000000000000"
  actions:
    - action: OUTPUT
      port_no: 1
    - action: OUTPUT
      port_no: 2
    - action: OUTPUT
      port_no: 3
`)

	require.NotNil(t, out.Action())
	ports := out.Action().OutPort()
	require.Len(t, ports, 3)
	for i, expected := range []uint32{1, 2, 3} {
		assert.Equal(t, openflow.PortNumber, ports[i].Kind())
		assert.Equal(t, expected, ports[i].Value())
	}
	assert.Equal(t, openflow.NoBuffer, out.BufferID())
	assert.Len(t, out.Data(), 10)
}

func TestParseEmptyMsgIsLegalNoOp(t *testing.T) {
	out := parsePacketOutDoc(t, `
type: PACKET_OUT
msg: {}
`)

	assert.Equal(t, openflow.NoBuffer, out.BufferID())
	assert.Empty(t, out.Data())
	assert.Nil(t, out.Action())
	require.NoError(t, out.Validate())
}

func TestParseAbsentMsg(t *testing.T) {
	out := parsePacketOutDoc(t, `type: PACKET_OUT`)
	require.NoError(t, out.Validate())
}

func TestParseRejectsBufferWithData(t *testing.T) {
	_, err := Parse(of13.NewFactory(), []byte(`
type: PACKET_OUT
msg:
  buffer_id: 7
  data: "0102"
`))

	var validation *openflow.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "data", validation.Field)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	src := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "unknown top-level key",
			doc:   "type: PACKET_OUT\nbogus: 1\n",
			field: "bogus",
		},
		{
			name:  "unknown msg field",
			doc:   "type: PACKET_OUT\nmsg:\n  frame: \"0102\"\n",
			field: "msg.frame",
		},
		{
			name:  "unknown action field",
			doc:   "type: PACKET_OUT\nmsg:\n  actions:\n    - action: OUTPUT\n      port: 1\n",
			field: "msg.actions[0].port",
		},
	}

	for _, v := range src {
		_, err := Parse(of13.NewFactory(), []byte(v.doc))
		var validation *openflow.ValidationError
		require.ErrorAs(t, err, &validation, v.name)
		assert.Equal(t, v.field, validation.Field, v.name)
	}
}

func TestParseRejectsBadPorts(t *testing.T) {
	src := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "zero output port",
			doc:   "type: PACKET_OUT\nmsg:\n  actions:\n    - action: OUTPUT\n      port_no: 0\n",
			field: "msg.actions[0].port_no",
		},
		{
			name:  "negative output port",
			doc:   "type: PACKET_OUT\nmsg:\n  actions:\n    - action: OUTPUT\n      port_no: -4\n",
			field: "msg.actions[0].port_no",
		},
		{
			name:  "unknown reserved port name",
			doc:   "type: PACKET_OUT\nmsg:\n  actions:\n    - action: OUTPUT\n      port_no: EVERYWHERE\n",
			field: "msg.actions[0].port_no",
		},
		{
			name:  "missing output port",
			doc:   "type: PACKET_OUT\nmsg:\n  actions:\n    - action: OUTPUT\n",
			field: "msg.actions[0].port_no",
		},
	}

	for _, v := range src {
		_, err := Parse(of13.NewFactory(), []byte(v.doc))
		var validation *openflow.ValidationError
		require.ErrorAs(t, err, &validation, v.name)
		assert.Equal(t, v.field, validation.Field, v.name)
	}
}

func TestParseRejectsUnknownActionKind(t *testing.T) {
	_, err := Parse(of13.NewFactory(), []byte(`
type: PACKET_OUT
msg:
  actions:
    - action: SET_VLAN
      port_no: 1
`))

	var validation *openflow.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "msg.actions[0].action", validation.Field)
}

func TestParseRejectsUnknownMessageKind(t *testing.T) {
	_, err := Parse(of13.NewFactory(), []byte(`type: FLOW_MOD`))

	var validation *openflow.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "type", validation.Field)
}

func TestParseReservedPortNames(t *testing.T) {
	out := parsePacketOutDoc(t, `
type: PACKET_OUT
msg:
  actions:
    - action: OUTPUT
      port_no: FLOOD
    - action: OUTPUT
      port_no: CONTROLLER
`)

	ports := out.Action().OutPort()
	require.Len(t, ports, 2)
	assert.Equal(t, openflow.PortFlood, ports[0].Kind())
	assert.Equal(t, openflow.PortController, ports[1].Kind())
}

func TestParseSimpleKinds(t *testing.T) {
	for _, kind := range []string{"HELLO", "BARRIER_REQUEST", "FEATURES_REQUEST", "ECHO_REQUEST"} {
		msg, err := Parse(of10.NewFactory(), []byte("type: "+kind+"\n"))
		require.NoError(t, err, kind)
		assert.Equal(t, uint8(openflow.OF10_VERSION), msg.Version(), kind)
	}
}

func TestComposeParseRoundTrip(t *testing.T) {
	f := of13.NewFactory()
	msg, err := f.NewPacketOut()
	require.NoError(t, err)

	msg.SetData([]byte{0x01, 0x02, 0x03})
	action, err := f.NewAction()
	require.NoError(t, err)
	for _, p := range []uint32{5, 1, 9} {
		out := openflow.NewOutPort()
		out.SetValue(p)
		action.SetOutPort(out)
	}
	msg.SetAction(action)

	doc, err := Compose(msg)
	require.NoError(t, err)

	parsed, err := Parse(f, doc)
	require.NoError(t, err)
	out, ok := parsed.(openflow.PacketOut)
	require.True(t, ok)

	assert.Equal(t, msg.Data(), out.Data())
	require.NotNil(t, out.Action())
	ports := out.Action().OutPort()
	require.Len(t, ports, 3)
	for i, expected := range []uint32{5, 1, 9} {
		assert.Equal(t, expected, ports[i].Value())
	}
}
