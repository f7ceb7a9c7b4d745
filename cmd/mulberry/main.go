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

package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/mulberry-sdn/mulberry/api"
	"github.com/mulberry-sdn/mulberry/log"
	"github.com/mulberry-sdn/mulberry/network"
	"github.com/mulberry-sdn/mulberry/openflow"
	"github.com/mulberry-sdn/mulberry/protocol"

	"github.com/davecgh/go-spew/spew"
	"github.com/fsnotify/fsnotify"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

const (
	programName     = "mulberry"
	programVersion  = "0.1.0"
	defaultLogLevel = logging.INFO
)

var (
	logger            = logging.MustGetLogger("main")
	loggerLeveled     logging.LeveledBackend
	showVersion       = flag.Bool("version", false, "Show program version and exit")
	defaultConfigFile = flag.String("config", fmt.Sprintf("/usr/local/etc/%v.yaml", programName), "absolute path of the configuration file")
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	flag.Parse()
	if *showVersion {
		fmt.Printf("Version: %v\n", programVersion)
		os.Exit(0)
	}

	initConfig()
	if err := initLog(getLogLevel(viper.GetString("default.log_level"))); err != nil {
		logger.Fatalf("failed to init log: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	controller := network.NewController()
	registerHandlers(controller)
	initAPIServer(controller)
	initMetricsServer()
	initSignalHandler(controller, cancel)

	listen(ctx, viper.GetInt("default.port"), controller)
}

func initConfig() {
	viper.SetConfigFile(*defaultConfigFile)
	// Read the config file.
	if err := viper.ReadInConfig(); err != nil {
		logger.Fatalf("failed to read the config file: %v", err)
	}
	// Watching and re-reading config file whenever it changes.
	viper.OnConfigChange(func(e fsnotify.Event) {
		// Ignore the WRITE operation to avoid reading empty config.
		if e.Op != fsnotify.Write {
			return
		}

		if loggerLeveled != nil {
			// Set log level for all modules
			loggerLeveled.SetLevel(getLogLevel(viper.GetString("default.log_level")), "")
		}
	})
	viper.WatchConfig()
	if err := validateConfig(); err != nil {
		logger.Fatalf("failed to validate the configuration: %v", err)
	}
}

func validateConfig() error {
	if port := viper.GetInt("default.port"); port <= 0 || port > 0xFFFF {
		return errors.New("invalid default.port")
	}
	if len(viper.GetString("default.log_level")) == 0 {
		return errors.New("invalid default.log_level")
	}
	if port := viper.GetInt("rest.port"); port <= 0 || port > 0xFFFF {
		return errors.New("invalid rest.port")
	}
	if port := viper.GetInt("metrics.port"); port < 0 || port > 0xFFFF {
		return errors.New("invalid metrics.port")
	}

	return nil
}

// registerHandlers wires the default application handlers: incoming packets
// and switch error reports are logged, everything else is left to the
// dispatcher's drop counters.
func registerHandlers(controller *network.Controller) {
	controller.SetEventListener(&eventLogger{})

	controller.Handle(network.KindPacketIn, func(finder network.Finder, device *network.Device, msg openflow.Incoming) error {
		packetIn, ok := msg.(openflow.PacketIn)
		if !ok {
			return nil
		}

		eth := new(protocol.Ethernet)
		if err := eth.UnmarshalBinary(packetIn.Data()); err != nil {
			logger.Debugf("PACKET_IN from %v with an undecodable frame: %v", device.ID(), spew.Sdump(packetIn.Data()))
			return nil
		}
		logger.Debugf("PACKET_IN from %v: %v", device.ID(), eth)

		return nil
	})
	controller.Handle(network.KindError, func(finder network.Finder, device *network.Device, msg openflow.Incoming) error {
		if v, ok := msg.(openflow.Error); ok {
			logger.Errorf("switch %v reported an error: class=%v, code=%v", device.ID(), v.Class(), v.Code())
		}
		return nil
	})
}

type eventLogger struct{}

func (r *eventLogger) OnDeviceUp(finder network.Finder, device *network.Device) error {
	logger.Infof("device is up: %v", device)
	return nil
}

func (r *eventLogger) OnDeviceDown(finder network.Finder, device *network.Device) error {
	logger.Infof("device is down: DPID=%v", device.ID())
	return nil
}

func initAPIServer(controller *network.Controller) {
	go func() {
		srv := &api.Server{
			Port:       uint16(viper.GetInt("rest.port")),
			Controller: controller,
		}
		if viper.GetBool("rest.tls") {
			srv.TLS.Cert = viper.GetString("rest.cert_file")
			srv.TLS.Key = viper.GetString("rest.key_file")
		}

		if err := srv.Serve(); err != nil {
			logger.Fatalf("failed to run the API server: %v", err)
		}
	}()
}

func initMetricsServer() {
	port := viper.GetInt("metrics.port")
	if port == 0 {
		// Metrics endpoint is optional.
		return
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(fmt.Sprintf(":%v", port), mux); err != nil {
			logger.Errorf("failed to run the metrics server: %v", err)
		}
	}()
}

func initSignalHandler(controller *network.Controller, cancel context.CancelFunc) {
	go func() {
		c := make(chan os.Signal, 5)
		// All incoming signals will be transferred to the channel
		signal.Notify(c)

		// Infinte loop.
		for {
			s := <-c
			if s == syscall.SIGTERM || s == syscall.SIGINT {
				// Graceful shutdown
				logger.Warning("Shutting down...")
				cancel()
				// Timeout for cancelation
				time.Sleep(5 * time.Second)
				os.Exit(0)
			} else if s == syscall.SIGHUP {
				fmt.Println("* Controller status:")
				fmt.Println(controller.String())
			}
		}
	}()
}

func initLog(level logging.Level) error {
	backend, err := log.NewSyslog(programName)
	if err != nil {
		logger.Warningf("syslog is unavailable, logging to stderr: %v", err)
		backend = log.NewStderr()
	}
	backend = logging.NewBackendFormatter(backend, logging.MustStringFormatter(`%{level}: %{shortpkg}.%{shortfunc}: %{message}`))

	loggerLeveled = logging.AddModuleLevel(backend)
	// Set log level for all modules
	loggerLeveled.SetLevel(level, "")
	logging.SetBackend(loggerLeveled)

	return nil
}

func getLogLevel(level string) logging.Level {
	level = strings.ToUpper(level)
	ret, err := logging.LogLevel(level)
	if err != nil {
		logger.Infof("invalid log level=%v, defaulting to %v..", level, defaultLogLevel)
		return defaultLogLevel
	}

	return ret
}

func listen(ctx context.Context, port int, controller *network.Controller) {
	type KeepAliver interface {
		SetKeepAlive(keepalive bool) error
		SetKeepAlivePeriod(d time.Duration) error
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%v", port))
	if err != nil {
		logger.Errorf("failed to listen on %v port: %v", port, err)
		return
	}
	defer listener.Close()
	logger.Infof("listening for switch connections on :%v", port)

	// Connection dispatcher.
	f := func(c chan<- net.Conn) {
		for {
			conn, err := listener.Accept()
			if err != nil {
				logger.Errorf("failed to accept a new connection: %v", err)
				continue
			}
			logger.Infof("new device is connected from %v", conn.RemoteAddr())

			// Pass the new connection into the backlog queue.
			c <- conn
		}
	}
	backlog := make(chan net.Conn, 32)
	go f(backlog)

	// Infinite loop
	for {
		select {
		case <-ctx.Done():
			logger.Debug("terminating the main listener loop...")
			return
		case conn := <-backlog:
			logger.Debug("fetching a new connection from the backlog..")
			if v, ok := conn.(KeepAliver); ok {
				logger.Debug("trying to enable socket keepalive..")
				if err := v.SetKeepAlive(true); err == nil {
					logger.Debug("setting socket keepalive period...")
					// Makes a broken connection will be disconnected within 45 seconds.
					// http://felixge.de/2014/08/26/tcp-keepalive-with-golang.html
					v.SetKeepAlivePeriod(time.Duration(5) * time.Second)
				} else {
					logger.Errorf("failed to enable socket keepalive: %v", err)
				}
			}
			controller.AddConnection(ctx, conn)
		}
	}
}
