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

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPacketLength = errors.New("invalid packet length")
	ErrUnsupportedVersion  = errors.New("unsupported protocol version")
	ErrUnsupportedMessage  = errors.New("unsupported message type")
)

// ValidationError reports a message that violates the model invariants. It is
// raised while a message is constructed or marshaled, before anything reaches
// the wire.
type ValidationError struct {
	// Field is the name of the offending field, e.g. "data" or "actions[2].port_no".
	Field  string
	Reason string
}

func (r *ValidationError) Error() string {
	return fmt.Sprintf("invalid message field %q: %v", r.Field, r.Reason)
}

// DecodeError reports unparseable wire data. A session that sees a
// DecodeError must consider the connection no longer trustworthy and close it.
type DecodeError struct {
	// Offset is the byte offset at which decoding failed.
	Offset int
	Reason error
}

func (r *DecodeError) Error() string {
	return fmt.Sprintf("decode failed at offset %v: %v", r.Offset, r.Reason)
}

func (r *DecodeError) Unwrap() error {
	return r.Reason
}

// IsDecodeError reports whether err, or any error it wraps, is a DecodeError.
func IsDecodeError(err error) bool {
	var v *DecodeError
	return errors.As(err, &v)
}

// ProtocolError reports a handshake failure, e.g. a version we cannot speak
// or a peer that opens with something other than HELLO. It terminates the
// session and is never retried.
type ProtocolError struct {
	Reason string
}

func (r *ProtocolError) Error() string {
	return fmt.Sprintf("protocol negotiation failed: %v", r.Reason)
}
