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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mulberry",
		Subsystem: "network",
		Name:      "active_sessions",
		Help:      "Number of connected switch sessions.",
	})

	unmatchedReplies = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mulberry",
		Subsystem: "network",
		Name:      "unmatched_replies_total",
		Help:      "Replies whose transaction ID matched no pending request and no handler.",
	})

	lateReplies = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mulberry",
		Subsystem: "network",
		Name:      "late_replies_total",
		Help:      "Replies that arrived after their request had already timed out.",
	})

	unhandledMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mulberry",
		Subsystem: "network",
		Name:      "unhandled_messages_total",
		Help:      "Messages dropped because no application handler is registered for their kind.",
	})
)
