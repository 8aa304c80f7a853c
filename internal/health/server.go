// Copyright © 2025 NAV (Arbeids- og velferdsetaten)
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package health

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/navikt/avvist-til-oppgave/internal/avtypes"
	"github.com/navikt/avvist-til-oppgave/internal/config"
	"github.com/navikt/avvist-til-oppgave/internal/i18n"
	"github.com/navikt/avvist-til-oppgave/internal/log"
	"github.com/navikt/avvist-til-oppgave/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// HTTPConfAddress the local address to listen on
	HTTPConfAddress = "address"
	// HTTPConfPort the local port to listen on
	HTTPConfPort = "port"
	// HTTPConfReadTimeout the read timeout for the HTTP server
	HTTPConfReadTimeout = "readTimeout"
	// HTTPConfWriteTimeout the write timeout for the HTTP server
	HTTPConfWriteTimeout = "writeTimeout"
)

const (
	okBody          = "ok"
	unavailableBody = "Service Unavailable"
)

// Server serves the /internal endpoints polled by the platform
type Server struct {
	name    string
	s       *http.Server
	l       net.Listener
	conf    config.Prefix
	state   *State
	onClose chan error
}

func InitPrefix(prefix config.Prefix) {
	prefix.AddKnownKey(HTTPConfAddress, "0.0.0.0")
	prefix.AddKnownKey(HTTPConfPort, 8080)
	prefix.AddKnownKey(HTTPConfReadTimeout, "15s")
	prefix.AddKnownKey(HTTPConfWriteTimeout, "15s")
}

// NewServer binds the listener immediately, so a port conflict fails startup
func NewServer(ctx context.Context, conf config.Prefix, state *State) (hs *Server, err error) {
	hs = &Server{
		name:    "Health server",
		conf:    conf,
		state:   state,
		onClose: make(chan error, 1),
	}
	hs.l, err = hs.createListener(ctx)
	if err == nil {
		hs.s = hs.createServer(ctx, hs.router())
	}
	return hs, err
}

func (hs *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/internal/isAlive", hs.flagHandler(hs.state.IsAlive)).Methods(http.MethodGet)
	r.HandleFunc("/internal/isReady", hs.flagHandler(hs.state.IsReady)).Methods(http.MethodGet)
	r.HandleFunc("/internal/hasStarted", hs.flagHandler(hs.state.HasStarted)).Methods(http.MethodGet)
	r.Path("/internal/metrics").Methods(http.MethodGet).Handler(promhttp.InstrumentMetricHandler(
		metrics.Registry(), promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}),
	))
	return r
}

func (hs *Server) flagHandler(flag func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		if flag() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(okBody))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(unavailableBody))
	}
}

func (hs *Server) createListener(ctx context.Context) (net.Listener, error) {
	listenAddr := fmt.Sprintf("%s:%d", hs.conf.GetString(HTTPConfAddress), hs.conf.GetUint(HTTPConfPort))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgHealthServerStartFailed, listenAddr, err)
	}
	log.L(ctx).Infof("%s listening on HTTP %s", hs.name, listener.Addr())
	return listener, err
}

func (hs *Server) createServer(ctx context.Context, r *mux.Router) *http.Server {
	return &http.Server{
		Handler:      r,
		WriteTimeout: hs.conf.GetDuration(HTTPConfWriteTimeout),
		ReadTimeout:  hs.conf.GetDuration(HTTPConfReadTimeout),
		ConnContext: func(newCtx context.Context, c net.Conn) context.Context {
			l := log.L(ctx).WithField("req", avtypes.ShortID())
			newCtx = log.WithLogger(newCtx, l)
			l.Tracef("New HTTP connection: remote=%s local=%s", c.RemoteAddr().String(), c.LocalAddr().String())
			return newCtx
		},
	}
}

// Addr is the bound listener address
func (hs *Server) Addr() net.Addr {
	return hs.l.Addr()
}

// Serve runs until the context is cancelled, then reports the result on Done()
func (hs *Server) Serve(ctx context.Context) {
	serverEnded := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			log.L(ctx).Infof("%s context cancelled - shutting down", hs.name)
			hs.s.Close()
		case <-serverEnded:
			return
		}
	}()

	err := hs.s.Serve(hs.l)
	if err == http.ErrServerClosed {
		err = nil
	}
	close(serverEnded)
	log.L(ctx).Infof("%s complete", hs.name)

	hs.onClose <- err
}

func (hs *Server) Done() <-chan error {
	return hs.onClose
}
