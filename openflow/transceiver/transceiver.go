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

package transceiver

import (
	"context"
	"encoding"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/mulberry-sdn/mulberry/openflow"
	"github.com/mulberry-sdn/mulberry/openflow/of10"
	"github.com/mulberry-sdn/mulberry/openflow/of13"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	logger = logging.MustGetLogger("transceiver")

	droppedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mulberry",
		Subsystem: "transceiver",
		Name:      "dropped_messages_total",
		Help:      "Number of well-formed but unmodeled messages dropped without dispatch.",
	})
)

const (
	// Allowed idle time before we send an echo request to a switch.
	maxIdleTime = 10 * time.Second
	// I/O timeouts (These timeouts should be less than maxIdleTime).
	readTimeout  = 1 * time.Second
	writeTimeout = readTimeout * 2
)

type Writer interface {
	Write(msg encoding.BinaryMarshaler) error
}

type WriteCloser interface {
	Writer
	Close() error
}

// Transceiver reads framed messages from a switch connection, answers echo
// requests on its own, and hands everything else to its observer. One
// transceiver serves exactly one connection.
type Transceiver struct {
	stream   *Stream
	observer Handler
	// mutex guards version and factory, which the Run task assigns during
	// negotiation while the reader goroutine polls them.
	mutex       sync.RWMutex
	version     uint8
	factory     openflow.Factory
	pingCounter uint
	closed      bool
}

type Handler interface {
	OnHello(openflow.Factory, Writer, openflow.Hello) error
	OnError(openflow.Factory, Writer, openflow.Error) error
	OnFeaturesReply(openflow.Factory, Writer, openflow.FeaturesReply) error
	OnBarrierReply(openflow.Factory, Writer, openflow.BarrierReply) error
	OnPacketIn(openflow.Factory, Writer, openflow.PacketIn) error
}

func NewTransceiver(stream *Stream, handler Handler) *Transceiver {
	if stream == nil {
		panic("stream is nil")
	}
	if handler == nil {
		panic("handler is nil")
	}

	return &Transceiver{
		stream:   stream,
		observer: handler,
	}
}

func (r *Transceiver) Version() (negotiated bool, version uint8) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.version == 0 {
		// Not yet negotiated
		return false, 0
	}

	return true, r.version
}

func (r *Transceiver) setVersion(version uint8, factory openflow.Factory) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.version = version
	r.factory = factory
}

// negotiatedFactory returns nil until the version negotiation has settled.
func (r *Transceiver) negotiatedFactory() openflow.Factory {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.factory
}

func isTimeout(err error) bool {
	type Timeout interface {
		Timeout() bool
	}

	if v, ok := err.(Timeout); ok {
		return v.Timeout()
	}

	return false
}

func (r *Transceiver) sendEchoRequest(f openflow.Factory) error {
	if r.pingCounter > 2 {
		return errors.New("device does not respond to our echo request")
	}

	echo, err := f.NewEchoRequest()
	if err != nil {
		return err
	}
	// We use current timestamp to check network latency between our controller and a switch.
	timestamp, err := time.Now().GobEncode()
	if err != nil {
		return err
	}
	echo.SetData(timestamp)

	if err := r.Write(echo); err != nil {
		return errors.Wrap(err, "failed to send ECHO_REQUEST message")
	}
	r.pingCounter++

	return nil
}

func (r *Transceiver) Run(ctx context.Context) error {
	defer logger.Info("transceiver is closed")
	r.stream.SetReadTimeout(readTimeout)
	r.stream.SetWriteTimeout(writeTimeout)

	readerCtx, cancelReader := context.WithCancel(ctx)
	defer cancelReader()
	reader := r.runReader(readerCtx)

	// Negotiate the protocol version
	packet, err := r.negotiate(ctx, reader)
	if err != nil {
		return errors.Wrap(err, "failed to negotiate the protocol version")
	}

	// Infinite loop
	for {
		// Dispatch the incoming packet
		if err := r.dispatch(packet); err != nil {
			if !isTemporaryErr(err) {
				return err
			}
			// Ignore the temporary error. Just log the error and keep go on.
			logger.Errorf("failed to dispatch the packet: %v", err)
		}

		// Read the next packet
		var ok bool
		select {
		case <-ctx.Done():
			logger.Info("context done")
			return nil
		case packet, ok = <-reader:
			if !ok {
				logger.Info("the reader channel is closed")
				return nil
			}
			remain := len(reader)
			if remain > 0 {
				logger.Debugf("%v remaining unread packet(s) in the reader channel", remain)
			}
		}
	}
}

func (r *Transceiver) negotiate(ctx context.Context, reader <-chan []byte) (packet []byte, err error) {
	select {
	case <-ctx.Done():
		return nil, errors.New("context done")
	case <-time.After(30 * time.Second):
		return nil, errors.New("inactive for too long")
	case packet, ok := <-reader:
		if !ok {
			return nil, errors.New("the reader channel is closed")
		}
		// The first message should be HELLO.
		if packet[1] != 0x00 {
			return nil, &openflow.ProtocolError{Reason: "missing HELLO message"}
		}
		if packet[0] == 0 {
			return nil, &openflow.ProtocolError{Reason: "peer sent protocol version 0"}
		}

		// Version negotiation. The HELLO version byte is the highest
		// version the peer speaks, so anything >= 1.3 settles on 1.3.
		if packet[0] < openflow.OF13_VERSION {
			r.setVersion(openflow.OF10_VERSION, of10.NewFactory())
			logger.Info("negotiated to openflow version 1.0")
		} else {
			r.setVersion(openflow.OF13_VERSION, of13.NewFactory())
			logger.Info("negotiated to openflow version 1.3")
		}

		// Return the initial packet to dispatch it.
		return packet, nil
	}
}

func (r *Transceiver) runReader(ctx context.Context) <-chan []byte {
	// Buffered channel
	c := make(chan []byte, 4096)
	go func() {
		// The channel c will be closed when this goroutine returns in order to notice the connection has been closed.
		defer close(c)
		defer logger.Info("transceiver reader is closed")

		lastActivated := time.Now()
		for {
			select {
			case <-ctx.Done():
				logger.Info("context done")
				return
			default:
			}

			// Read the next packet
			packet, err := r.readPacket()
			if err != nil {
				if !isTimeout(err) {
					logger.Errorf("failed to read the next packet: %v", err)
					return
				}
				// Timeout occurrs. Send a ping request if necessary.
				if time.Now().After(lastActivated.Add(maxIdleTime)) {
					f := r.negotiatedFactory()
					if f == nil {
						// No pings before the version is settled;
						// negotiate() enforces its own deadline.
						continue
					}
					if err := r.sendEchoRequest(f); err != nil {
						logger.Errorf("failed to send an echo request: %v", err)
						return
					}
				}
				continue
			}
			// Update the timestamp
			lastActivated = time.Now()

			// Echo handling needs the negotiated factory. Until the peer's
			// HELLO settles the version, everything is forwarded as-is, so
			// a peer that leads with anything but HELLO fails negotiation.
			if f := r.negotiatedFactory(); f != nil {
				ok, err := r.handleEcho(f, packet)
				if err != nil {
					logger.Errorf("failed to handle the echo request or response: %v", err)
					return
				}
				if ok {
					// Do not forward the echo request and response
					// packets because this reader handles them.
					continue
				}
			}

			// Forward messages except the echo request and response.
			select {
			case c <- packet:
			default:
				// Drop the packet if we cannot immediately carry it.
				logger.Error("transceiver buffer full: drop the incoming packet!")
				droppedMessages.Inc()
			}
		}
	}()

	return c
}

func isTemporaryErr(err error) bool {
	e, ok := errors.Cause(err).(interface {
		Temporary() bool
	})
	return ok && e.Temporary()
}

func (r *Transceiver) readPacket() ([]byte, error) {
	header, err := r.stream.Peek(8) // peek ofp_header
	if err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint16(header[2:4])
	if length < 8 {
		return nil, &openflow.DecodeError{Offset: 2, Reason: openflow.ErrInvalidPacketLength}
	}
	packet, err := r.stream.ReadN(int(length))
	if err != nil {
		return nil, err
	}

	return packet, nil
}

func (r *Transceiver) Write(msg encoding.BinaryMarshaler) error {
	packet, err := msg.MarshalBinary()
	if err != nil {
		return err
	}

	if _, err := r.stream.Write(packet); err != nil {
		return err
	}

	return nil
}

func (r *Transceiver) handleEcho(f openflow.Factory, packet []byte) (ok bool, err error) {
	switch packet[0] {
	case openflow.OF10_VERSION:
		return r.handleOF10Echo(f, packet)
	case openflow.OF13_VERSION:
		return r.handleOF13Echo(f, packet)
	default:
		return false, openflow.ErrUnsupportedVersion
	}
}

func (r *Transceiver) handleOF10Echo(f openflow.Factory, packet []byte) (ok bool, err error) {
	switch packet[1] {
	case of10.OFPT_ECHO_REQUEST:
		return true, r.handleEchoRequest(f, packet)
	case of10.OFPT_ECHO_REPLY:
		return true, r.handleEchoReply(f, packet)
	default:
		// Do not anything for other types of the message
		return false, nil
	}
}

func (r *Transceiver) handleOF13Echo(f openflow.Factory, packet []byte) (handled bool, err error) {
	switch packet[1] {
	case of13.OFPT_ECHO_REQUEST:
		return true, r.handleEchoRequest(f, packet)
	case of13.OFPT_ECHO_REPLY:
		return true, r.handleEchoReply(f, packet)
	default:
		// Do not anything for other types of the message
		return false, nil
	}
}

// dispatch decodes one packet and hands it to the observer. A message type
// we model but the observer rejects is the observer's problem; a message
// type we do not model is dropped and counted; a message that cannot be
// decoded at all poisons the connection and terminates the session.
func (r *Transceiver) dispatch(packet []byte) error {
	if packet[0] != r.version {
		return fmt.Errorf("mis-matched OpenFlow version: negotiated=%v, packet=%v", r.version, packet[0])
	}

	msg, err := openflow.Decode(packet)
	if err != nil {
		if err == openflow.ErrUnsupportedMessage {
			droppedMessages.Inc()
			logger.Debugf("dropped an unmodeled message: version=%v, type=%v", packet[0], packet[1])
			return nil
		}
		return err
	}

	switch r.version {
	case openflow.OF10_VERSION:
		return r.handleOF10Message(packet[1], msg)
	case openflow.OF13_VERSION:
		return r.handleOF13Message(packet[1], msg)
	default:
		return openflow.ErrUnsupportedVersion
	}
}

func (r *Transceiver) handleOF10Message(msgType uint8, msg openflow.Incoming) error {
	switch msgType {
	case of10.OFPT_HELLO:
		return r.observer.OnHello(r.factory, r, msg.(openflow.Hello))
	case of10.OFPT_ERROR:
		return r.observer.OnError(r.factory, r, msg.(openflow.Error))
	case of10.OFPT_FEATURES_REPLY:
		return r.observer.OnFeaturesReply(r.factory, r, msg.(openflow.FeaturesReply))
	case of10.OFPT_BARRIER_REPLY:
		return r.observer.OnBarrierReply(r.factory, r, msg.(openflow.BarrierReply))
	case of10.OFPT_PACKET_IN:
		return r.observer.OnPacketIn(r.factory, r, msg.(openflow.PacketIn))
	default:
		// Decoded, but nothing upstairs wants it. Do nothing.
		return nil
	}
}

func (r *Transceiver) handleOF13Message(msgType uint8, msg openflow.Incoming) error {
	switch msgType {
	case of13.OFPT_HELLO:
		return r.observer.OnHello(r.factory, r, msg.(openflow.Hello))
	case of13.OFPT_ERROR:
		return r.observer.OnError(r.factory, r, msg.(openflow.Error))
	case of13.OFPT_FEATURES_REPLY:
		return r.observer.OnFeaturesReply(r.factory, r, msg.(openflow.FeaturesReply))
	case of13.OFPT_BARRIER_REPLY:
		return r.observer.OnBarrierReply(r.factory, r, msg.(openflow.BarrierReply))
	case of13.OFPT_PACKET_IN:
		return r.observer.OnPacketIn(r.factory, r, msg.(openflow.PacketIn))
	default:
		// Decoded, but nothing upstairs wants it. Do nothing.
		return nil
	}
}

func (r *Transceiver) handleEchoRequest(f openflow.Factory, packet []byte) error {
	msg, err := f.NewEchoRequest()
	if err != nil {
		return err
	}
	if err := msg.UnmarshalBinary(packet); err != nil {
		return err
	}
	logger.Debug("received an ECHO_REQUEST packet")

	reply, err := f.NewEchoReply()
	if err != nil {
		return err
	}
	// Copy transaction ID and data from the incoming echo request message
	reply.SetTransactionID(msg.TransactionID())
	reply.SetData(msg.Data())

	// Send the echo reply
	if err := r.Write(reply); err != nil {
		return errors.Wrap(err, "failed to send ECHO_REPLY message")
	}
	logger.Debug("sent an ECHO_REPLY packet")

	return nil
}

func (r *Transceiver) handleEchoReply(f openflow.Factory, packet []byte) error {
	msg, err := f.NewEchoReply()
	if err != nil {
		return err
	}
	if err := msg.UnmarshalBinary(packet); err != nil {
		return err
	}
	logger.Debug("received an ECHO_REPLY packet")

	// Reset the ping counter before inspecting the payload. Some broken
	// switches echo back mangled data, and that should not kill the session.
	r.pingCounter = 0

	timestamp := time.Time{}
	if err := timestamp.GobDecode(msg.Data()); err != nil {
		logger.Debug("unexpected timestamp data in the ECHO_REPLY packet")
		return nil
	}

	// Network latency
	logger.Debugf("transceiver latency: %v", time.Now().Sub(timestamp))

	return nil
}

func (r *Transceiver) Close() error {
	if r.closed {
		return nil
	}

	if err := r.stream.Close(); err != nil {
		return err
	}
	r.closed = true

	return nil
}
