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

// Package api exposes the controller's north side over REST: connected
// switch inventory and packet injection.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mulberry-sdn/mulberry/network"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("api")
)

type Server struct {
	Port uint16
	TLS  struct {
		Cert string // Path for a TLS certification file.
		Key  string // Path for a TLS private key file.
	}
	Controller Controller
}

// Controller is the view of the connected switches the API serves from.
// network.Controller implements it.
type Controller interface {
	Device(id string) *network.Device
	Devices() []*network.Device
}

func (r *Server) validate() error {
	if r.Controller == nil {
		return errors.New("nil controller")
	}
	if r.Port == 0 {
		return errors.New("invalid port")
	}

	return nil
}

func (r *Server) Serve() error {
	if err := r.validate(); err != nil {
		return err
	}

	api := rest.NewApi()
	// Middleware to set the CORS header.
	api.Use(rest.MiddlewareSimple(func(handler rest.HandlerFunc) rest.HandlerFunc {
		return func(writer rest.ResponseWriter, request *rest.Request) {
			writer.Header().Set("Access-Control-Allow-Origin", "*")
			handler(writer, request)
		}
	}))
	router, err := rest.MakeRouter(
		rest.Get("/api/v1/switch", r.listSwitches),
		rest.Get("/api/v1/switch/:dpid", r.showSwitch),
		rest.Post("/api/v1/switch/:dpid/packet_out", r.sendPacketOut),
	)
	if err != nil {
		return err
	}
	api.SetApp(router)

	// Listen on all interfaces.
	addr := fmt.Sprintf(":%v", r.Port)
	logger.Infof("serving the REST API on %v", addr)
	if r.TLS.Cert != "" && r.TLS.Key != "" {
		err = http.ListenAndServeTLS(addr, r.TLS.Cert, r.TLS.Key, api.MakeHandler())
	} else {
		err = http.ListenAndServe(addr, api.MakeHandler())
	}

	return err
}
