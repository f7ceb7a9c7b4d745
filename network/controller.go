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

// Package network maintains the sessions to connected switches. Each
// accepted connection runs as its own session task; the controller tracks
// the sessions that completed their handshake and fans application
// messages out to them.
package network

import (
	"context"
	"fmt"
	"net"
	"sort"
	"sync"

	"github.com/mulberry-sdn/mulberry/openflow"

	"github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("network")
)

// Finder looks up ready devices. It is handed to every message handler so
// that application code can reach other switches than the sending one.
type Finder interface {
	// Device returns nil if there is no ready device with that ID.
	Device(id string) *Device
	Devices() []*Device
}

// EventListener is notified about session lifecycle. OnDeviceUp fires when
// a switch completes its handshake, OnDeviceDown after its session closed.
type EventListener interface {
	OnDeviceUp(Finder, *Device) error
	OnDeviceDown(Finder, *Device) error
}

// watcher is the controller's private view of session lifecycle, used to
// maintain the device registry.
type watcher interface {
	deviceAdded(*Device)
	deviceRemoved(*Device)
}

type Controller struct {
	mutex      sync.RWMutex
	devices    map[string]*Device
	listener   EventListener
	dispatcher *Dispatcher
}

func NewController() *Controller {
	return &Controller{
		devices:    make(map[string]*Device),
		dispatcher: newDispatcher(),
		listener:   nopListener{},
	}
}

// SetEventListener replaces the lifecycle listener. Call it before the
// first connection is accepted.
func (r *Controller) SetEventListener(l EventListener) {
	if l == nil {
		panic("Listener is nil")
	}
	r.listener = l
}

// Handle registers an application handler for a message kind. Handlers run
// on the receiving session's task in wire order.
func (r *Controller) Handle(kind Kind, h MessageHandler) {
	r.dispatcher.Handle(kind, h)
}

// AddConnection hands a freshly accepted switch connection to a new
// session task.
func (r *Controller) AddConnection(ctx context.Context, c net.Conn) {
	conf := sessionConfig{
		conn:       c,
		watcher:    r,
		finder:     r,
		listener:   r.listener,
		dispatcher: r.dispatcher,
	}
	session := newSession(conf)
	go session.Run(ctx)
}

// Device implements Finder.
func (r *Controller) Device(id string) *Device {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.devices[id]
}

// Devices implements Finder. The result is sorted by device ID so that
// iteration order is stable.
func (r *Controller) Devices() []*Device {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	v := make([]*Device, 0, len(r.devices))
	for _, d := range r.devices {
		v = append(v, d)
	}
	sort.Slice(v, func(i, j int) bool { return v[i].ID() < v[j].ID() })

	return v
}

// Broadcast sends one message to every ready device. Construct builds the
// message against each device's own factory, since connected switches may
// speak different protocol versions. Failures are isolated per device:
// one broken session never stops the fan-out.
func (r *Controller) Broadcast(construct func(openflow.Factory) (openflow.Outgoing, error)) {
	for _, device := range r.Devices() {
		msg, err := construct(device.Factory())
		if err != nil {
			logger.Errorf("failed to construct a broadcast message for %v: %v", device.ID(), err)
			continue
		}
		if err := device.SendMessage(msg); err != nil {
			logger.Errorf("failed to broadcast to %v: %v", device.ID(), err)
			continue
		}
	}
}

// ForEach runs action on every ready device that matches the predicate. A
// nil predicate matches everything. The first action error stops the walk.
func (r *Controller) ForEach(predicate func(*Device) bool, action func(*Device) error) error {
	for _, device := range r.Devices() {
		if predicate != nil && !predicate(device) {
			continue
		}
		if err := action(device); err != nil {
			return err
		}
	}

	return nil
}

// deviceAdded implements watcher.
func (r *Controller) deviceAdded(d *Device) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.devices[d.ID()] = d
	logger.Infof("registered a new device (DPID=%v)", d.ID())
}

// deviceRemoved implements watcher. Removing twice, or removing a device
// that a newer session already replaced, is harmless.
func (r *Controller) deviceRemoved(d *Device) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	registered, ok := r.devices[d.ID()]
	if !ok || registered != d {
		return
	}
	delete(r.devices, d.ID())
	logger.Infof("unregistered the device (DPID=%v)", d.ID())
}

func (r *Controller) String() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	v := fmt.Sprintf("%v connected device(s)\n", len(r.devices))
	for _, d := range r.devices {
		v += fmt.Sprintf("\t%v\n", d)
	}

	return v
}

type nopListener struct{}

func (nopListener) OnDeviceUp(Finder, *Device) error   { return nil }
func (nopListener) OnDeviceDown(Finder, *Device) error { return nil }
