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

package network

import (
	"context"
	"encoding"
	"net"
	"strconv"
	"sync"

	"github.com/mulberry-sdn/mulberry/openflow"
	"github.com/mulberry-sdn/mulberry/openflow/of13"
	"github.com/mulberry-sdn/mulberry/openflow/transceiver"

	"github.com/pkg/errors"
)

const (
	// The transceiver's reader channel capacity.
	sessionBufferSize = 0xFFFF
)

type session struct {
	mutex       sync.RWMutex
	state       State
	device      *Device
	transceiver *transceiver.Transceiver
	watcher     watcher
	finder      Finder
	listener    EventListener
	dispatcher  *Dispatcher
	// A cancel function to disconnect this session.
	canceller context.CancelFunc
}

type sessionConfig struct {
	conn       net.Conn
	watcher    watcher
	finder     Finder
	listener   EventListener
	dispatcher *Dispatcher
}

func checkParam(c sessionConfig) {
	if c.conn == nil {
		panic("Conn is nil")
	}
	if c.watcher == nil {
		panic("Watcher is nil")
	}
	if c.finder == nil {
		panic("Finder is nil")
	}
	if c.listener == nil {
		panic("Listener is nil")
	}
	if c.dispatcher == nil {
		panic("Dispatcher is nil")
	}
}

func newSession(c sessionConfig) *session {
	checkParam(c)

	stream := transceiver.NewStream(c.conn, sessionBufferSize)
	v := new(session)
	v.state = StateConnecting
	v.watcher = c.watcher
	v.finder = c.finder
	v.listener = c.listener
	v.dispatcher = c.dispatcher
	v.device = newDevice(v)
	v.transceiver = transceiver.NewTransceiver(stream, v)

	return v
}

func (r *session) State() State {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.state
}

// setState advances the session lifecycle. The state machine only moves
// forward, so a stale transition is ignored.
func (r *session) setState(s State) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if s <= r.state {
		return
	}
	logger.Debugf("session state: %v -> %v", r.state, s)
	r.state = s
}

func (r *session) OnHello(f openflow.Factory, w transceiver.Writer, v openflow.Hello) error {
	logger.Debugf("HELLO (ver=%v) is received", v.Version())

	// Ignore duplicated HELLO messages
	if r.State() >= StateFeatureQuery {
		return nil
	}

	r.device.setFactory(f)

	// Ask the switch who it is. Its reply completes the handshake.
	if err := sendFeaturesRequest(f, w); err != nil {
		return errors.Wrap(err, "failed to send FEATURES_REQUEST message")
	}
	r.setState(StateFeatureQuery)

	return nil
}

func (r *session) OnError(f openflow.Factory, w transceiver.Writer, v openflow.Error) error {
	logger.Errorf("ERROR (class=%v, code=%v, data=%v)", v.Class(), v.Code(), v.Data())

	if r.State() < StateFeatureQuery {
		return &openflow.ProtocolError{Reason: "ERROR message during version negotiation"}
	}

	// An error reply carries the transaction ID of the request it rejects.
	if r.device.waiters.fulfill(v) {
		return nil
	}

	return r.dispatcher.dispatch(r.finder, r.device, KindError, v)
}

func (r *session) OnFeaturesReply(f openflow.Factory, w transceiver.Writer, v openflow.FeaturesReply) error {
	logger.Debugf("FEATURES_REPLY (DPID=%v, NumBufs=%v, NumTables=%v)", v.DPID(), v.NumBuffers(), v.NumTables())

	if r.State() < StateFeatureQuery {
		return &openflow.ProtocolError{Reason: "FEATURES_REPLY before version negotiation"}
	}

	// The first features reply completes the handshake and initializes
	// the device. Later ones answer application requests.
	if r.device.isValid() {
		if r.device.waiters.fulfill(v) {
			return nil
		}
		return r.dispatcher.dispatch(r.finder, r.device, KindFeaturesReply, v)
	}

	dpid := strconv.FormatUint(v.DPID(), 10)
	// Already connected device?
	if r.finder.Device(dpid) != nil {
		cancel, ok := popCanceller(dpid)
		if ok {
			// Disconnect the previous session. Some switches open a
			// fresh connection after a momentary physical disconnect
			// while we still consider the old one alive. The old
			// session has to go so that the new one can take over.
			cancel()
		}
		return errors.New("duplicated device DPID (aux. connection is not supported yet)")
	}
	r.device.setID(dpid)
	r.device.setFeatures(Features{
		DPID:         v.DPID(),
		NumBuffers:   v.NumBuffers(),
		NumTables:    v.NumTables(),
		Capabilities: v.Capabilities(),
	})
	pushCanceller(dpid, r.canceller)

	// The device is up. From now on application sends are accepted.
	r.setState(StateReady)
	activeSessions.Inc()

	if err := r.listener.OnDeviceUp(r.finder, r.device); err != nil {
		return err
	}
	r.watcher.deviceAdded(r.device)

	return nil
}

func (r *session) OnBarrierReply(f openflow.Factory, w transceiver.Writer, v openflow.BarrierReply) error {
	logger.Debugf("BARRIER_REPLY (xid=%v) is received", v.TransactionID())

	if r.State() < StateFeatureQuery {
		return &openflow.ProtocolError{Reason: "BARRIER_REPLY before version negotiation"}
	}

	if r.device.waiters.fulfill(v) {
		return nil
	}

	return r.dispatcher.dispatch(r.finder, r.device, KindBarrierReply, v)
}

func (r *session) OnPacketIn(f openflow.Factory, w transceiver.Writer, v openflow.PacketIn) error {
	if r.State() < StateFeatureQuery {
		return &openflow.ProtocolError{Reason: "PACKET_IN before version negotiation"}
	}
	logger.Debugf("PACKET_IN is received (device=%v, inport=%v, reason=%v, tableID=%v, cookie=%v)",
		r.device.ID(), v.InPort(), v.Reason(), v.TableID(), v.Cookie())

	return r.dispatcher.dispatch(r.finder, r.device, KindPacketIn, v)
}

func (r *session) Run(ctx context.Context) {
	sessionCtx, canceller := context.WithCancel(ctx)
	// This canceller will be used to disconnect this session when it is necessary.
	r.canceller = canceller
	defer canceller()

	r.setState(StateHandshaking)
	// Greet first. We advertise the highest version we speak, and the
	// switch's own HELLO settles the version for this session.
	if err := sendHello(of13.NewFactory(), r.transceiver); err != nil {
		logger.Errorf("failed to send a HELLO message: %v", err)
	}

	if err := r.transceiver.Run(sessionCtx); err != nil {
		logger.Errorf("openflow transceiver is unexpectedly closed: %v", err)
	}
	logger.Infof("disconnected device (DPID=%v)", r.device.ID())

	r.setState(StateClosing)
	r.transceiver.Close()
	// Closing the device resolves every pending request with a
	// ConnectionLostError.
	r.device.Close()
	if r.device.isValid() {
		popCanceller(r.device.ID())
		activeSessions.Dec()
		if err := r.listener.OnDeviceDown(r.finder, r.device); err != nil {
			logger.Errorf("OnDeviceDown: %v", err)
		}
		r.watcher.deviceRemoved(r.device)
	}
	r.setState(StateClosed)
}

func (r *session) Write(msg encoding.BinaryMarshaler) error {
	return r.transceiver.Write(msg)
}

func sendHello(f openflow.Factory, w transceiver.Writer) error {
	msg, err := f.NewHello()
	if err != nil {
		return err
	}

	return w.Write(msg)
}

func sendFeaturesRequest(f openflow.Factory, w transceiver.Writer) error {
	msg, err := f.NewFeaturesRequest()
	if err != nil {
		return err
	}

	return w.Write(msg)
}
