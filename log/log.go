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

// Package log provides logging backends for the daemon.
package log

import (
	"os"

	"github.com/op/go-logging"
)

// NewSyslog returns a backend that writes to the local syslog daemon under
// the given tag.
func NewSyslog(tag string) (logging.Backend, error) {
	backend, err := logging.NewSyslogBackend(tag)
	if err != nil {
		return nil, err
	}

	return backend, nil
}

// NewStderr returns a plain stderr backend, for running in the foreground
// or inside a container without a syslog daemon.
func NewStderr() logging.Backend {
	return logging.NewLogBackend(os.Stderr, "", 0)
}
