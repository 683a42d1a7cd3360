// Copyright 2024 The CascadeSQL Authors.
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

// Package debugserver exposes a read-only HTTP introspection endpoint over
// the last memo a host optimized, in the teacher's gorilla/mux + CombinedLoggingHandler
// style, for operators diagnosing why a plan came out the way it did (spec
// section 4.6, not part of the optimizer's own request path).
package debugserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/vmihailenco/msgpack.v2"
)

// GroupSnapshot is one memo group's state as of the last Optimize call.
type GroupSnapshot struct {
	Group          uint32   `json:"group" msgpack:"group"`
	MemberCount    int      `json:"member_count" msgpack:"member_count"`
	FullyExplored  bool     `json:"fully_explored" msgpack:"fully_explored"`
	WinnerOperator string   `json:"winner_operator,omitempty" msgpack:"winner_operator,omitempty"`
	WinnerCost     float64  `json:"winner_cost,omitempty" msgpack:"winner_cost,omitempty"`
	MemberOps      []string `json:"member_operators" msgpack:"member_operators"`
}

// Snapshot is the full state a Provider reports for a single debug request.
type Snapshot struct {
	Root   uint32          `json:"root" msgpack:"root"`
	Groups []GroupSnapshot `json:"groups" msgpack:"groups"`
}

// Provider produces the current Snapshot on demand. A host wires this to
// whatever memo it last ran Optimize against; Server never holds a memo
// reference itself.
type Provider func() Snapshot

// Server is the debug HTTP server. Its zero value is not usable; build one
// with New.
type Server struct {
	router   *mux.Router
	provider Provider
	log      *logrus.Entry
}

// New builds a Server that calls provider to answer GET /debug/memo.
func New(provider Provider, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	s := &Server{router: mux.NewRouter(), provider: provider, log: log}
	s.router.HandleFunc("/debug/memo", s.handleSnapshot).Methods(http.MethodGet)
	return s
}

// Handler returns the server's http.Handler, wrapped in combined-log-format
// access logging.
func (s *Server) Handler() http.Handler {
	return handlers.CombinedLoggingHandler(logWriter{s.log}, s.router)
}

// handleSnapshot serves the current Snapshot, tagging every response with a
// fresh request id and negotiating msgpack vs. JSON off the Accept header.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewV4()
	w.Header().Set("X-Request-Id", reqID.String())

	snap := s.provider()

	if strings.Contains(r.Header.Get("Accept"), "application/msgpack") {
		body, err := msgpack.Marshal(snap)
		if err != nil {
			s.log.WithField("request_id", reqID.String()).WithError(err).Error("debugserver: marshaling msgpack snapshot")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/msgpack")
		w.Write(body)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.log.WithField("request_id", reqID.String()).WithError(err).Error("debugserver: encoding json snapshot")
	}
}

// logWriter adapts a logrus.Entry to the io.Writer CombinedLoggingHandler
// wants for its access log line.
type logWriter struct{ log *logrus.Entry }

func (l logWriter) Write(p []byte) (int, error) {
	l.log.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
