// Package resultserver serves test reports over HTTP as JSON, so that a CI job or a developer
// can look at results while a long run is still in progress.
package resultserver

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/stepreport/stepreport/framework"
	"github.com/stepreport/stepreport/framework/report"
)

const listenerTimeout = time.Second * 10

type summary struct {
	UUID     string        `json:"uuid"`
	Name     string        `json:"name"`
	FullName string        `json:"fullName"`
	Status   report.Status `json:"status"`
	Start    time.Time     `json:"start"`
	Stop     time.Time     `json:"stop"`
}

type server struct {
	store  *report.Store
	logger framework.Logger
}

// NewHandler returns the HTTP handler for the result API:
//
//	GET /results                              list of result summaries
//	GET /results/{uuid}                       one full result
//	GET /results/{uuid}/attachments/{index}   raw content of one attachment
//
// Attachments are indexed in document order, as returned by report.Result.AllAttachments.
func NewHandler(store *report.Store, logger framework.Logger) http.Handler {
	if logger == nil {
		logger = framework.NullLogger()
	}
	s := &server{store: store, logger: logger}
	router := mux.NewRouter()
	router.HandleFunc("/results", s.listResults).Methods("GET")
	router.HandleFunc("/results/{uuid}", s.getResult).Methods("GET")
	router.HandleFunc("/results/{uuid}/attachments/{index:[0-9]+}", s.getAttachment).Methods("GET")
	return router
}

func (s *server) listResults(w http.ResponseWriter, _ *http.Request) {
	all := s.store.All()
	ret := make([]summary, 0, len(all))
	for _, r := range all {
		ret = append(ret, summary{
			UUID:     r.UUID,
			Name:     r.Name,
			FullName: r.FullName,
			Status:   r.Status,
			Start:    r.Start,
			Stop:     r.Stop,
		})
	}
	s.writeJSON(w, ret)
}

func (s *server) getResult(w http.ResponseWriter, req *http.Request) {
	r, ok := s.store.Get(mux.Vars(req)["uuid"])
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	s.writeJSON(w, r)
}

func (s *server) getAttachment(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	r, ok := s.store.Get(vars["uuid"])
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	index, err := strconv.Atoi(vars["index"])
	attachments := r.AllAttachments()
	if err != nil || index >= len(attachments) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	a := attachments[index]
	w.Header().Set("Content-Type", a.Type+"; charset=utf-8")
	_, _ = w.Write([]byte(a.Content))
}

func (s *server) writeJSON(w http.ResponseWriter, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Printf("Could not encode response: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// Start listens on the given port in the background, and returns once the server is accepting
// connections. The returned server can be stopped with Close.
func Start(port int, handler http.Handler) (*http.Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("cannot listen on port %d: %w", port, err)
	}
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // arbitrary but non-infinite timeout to avoid Slowloris Attack
	}
	go func() {
		_ = server.Serve(listener)
	}()

	// Wait till the server is definitely answering requests
	deadline := time.NewTimer(listenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	url := fmt.Sprintf("http://localhost:%d/results", listener.Addr().(*net.TCPAddr).Port)
	for {
		select {
		case <-deadline.C:
			_ = server.Close()
			return nil, fmt.Errorf("could not start result server on port %d", port)
		case <-ticker.C:
			resp, err := http.Get(url) //nolint:gosec,noctx
			if err == nil {
				_ = resp.Body.Close()
				return server, nil
			}
		}
	}
}
