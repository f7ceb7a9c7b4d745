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
	"bufio"
	"io"
	"net"
	"sync"
	"time"
)

// Stream is a buffered I/O channel on top of the switch connection.
type Stream struct {
	// Underlying socket.
	channel io.ReadWriteCloser

	reader struct {
		mutex sync.Mutex
		// rd needs locking: Peek()'s result slice points into the
		// reader's internal buffer until the next read consumes it.
		rd      *bufio.Reader
		timeout time.Duration
	}

	writer struct {
		mutex   sync.Mutex
		wr      io.Writer
		timeout time.Duration
	}
}

type deadline interface {
	SetReadDeadline(time.Time) error
	SetWriteDeadline(time.Time) error
}

// NewStream returns a new buffered I/O channel. channel is an underlying
// I/O channel that implements io.ReadWriteCloser.
func NewStream(channel io.ReadWriteCloser, bufSize int) *Stream {
	c := new(Stream)
	c.channel = channel
	c.reader.rd = bufio.NewReaderSize(channel, bufSize)
	c.writer.wr = channel

	return c
}

type dummyAddr struct{}

func (r dummyAddr) Network() string {
	return "DummyAddress"
}

func (r dummyAddr) String() string {
	return ""
}

func (r *Stream) RemoteAddr() net.Addr {
	type addr interface {
		RemoteAddr() net.Addr
	}

	v, ok := r.channel.(addr)
	if !ok {
		return dummyAddr{}
	}

	return v.RemoteAddr()
}

// SetReadTimeout sets the read timeout of the underlying socket if it
// supports deadlines. Zero or a negative value disables the timeout.
func (r *Stream) SetReadTimeout(t time.Duration) {
	r.reader.mutex.Lock()
	defer r.reader.mutex.Unlock()

	r.reader.timeout = t
}

// SetWriteTimeout sets the write timeout of the underlying socket if it
// supports deadlines. Zero or a negative value disables the timeout.
func (r *Stream) SetWriteTimeout(t time.Duration) {
	r.writer.mutex.Lock()
	defer r.writer.mutex.Unlock()

	r.writer.timeout = t
}

// The caller should lock the reader mutex before calling this function.
func (r *Stream) setReadDeadline() {
	d, ok := r.channel.(deadline)
	if !ok {
		return
	}

	if r.reader.timeout > 0 {
		d.SetReadDeadline(time.Now().Add(r.reader.timeout))
	} else {
		d.SetReadDeadline(time.Time{})
	}
}

// The caller should lock the writer mutex before calling this function.
func (r *Stream) setWriteDeadline() {
	d, ok := r.channel.(deadline)
	if !ok {
		return
	}

	if r.writer.timeout > 0 {
		d.SetWriteDeadline(time.Now().Add(r.writer.timeout))
	} else {
		d.SetWriteDeadline(time.Time{})
	}
}

// Peek returns the next n bytes without consuming them. The result is a deep
// copy, so a following read cannot corrupt it.
func (r *Stream) Peek(n int) ([]byte, error) {
	r.reader.mutex.Lock()
	defer r.reader.mutex.Unlock()

	if n <= 0 {
		return []byte{}, nil
	}

	r.setReadDeadline()
	v, err := r.reader.rd.Peek(n)
	if err != nil {
		return nil, err
	}

	p := make([]byte, len(v))
	copy(p, v)

	return p, nil
}

// ReadN reads exactly n bytes. It returns a non-nil error, and consumes
// nothing, if fewer than n bytes arrive before the read timeout.
func (r *Stream) ReadN(n int) (p []byte, err error) {
	r.reader.mutex.Lock()
	defer r.reader.mutex.Unlock()

	r.setReadDeadline()

	// Wait until we have n bytes in the reader or timeout.
	if _, err = r.reader.rd.Peek(n); err != nil {
		return nil, err
	}

	p = make([]byte, n)
	c, err := r.reader.rd.Read(p)
	if err != nil {
		return nil, err
	}
	if c != n {
		panic("insufficient read")
	}

	return p, nil
}

// Write is a wrapper function of net.Conn.Write().
func (r *Stream) Write(p []byte) (n int, err error) {
	r.writer.mutex.Lock()
	defer r.writer.mutex.Unlock()

	r.setWriteDeadline()
	return r.writer.wr.Write(p)
}

// Close is a wrapper function of net.Conn.Close().
func (r *Stream) Close() error {
	return r.channel.Close()
}
