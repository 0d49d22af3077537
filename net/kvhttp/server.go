// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvhttp

import (
	"context"
	"io"
	"net"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Server bundles the process-wide state the original design (§9) warns
// against leaving as hidden singletons: the URI lock registry, the
// hand-off queue, the audit stream and the file store are all fields of
// one value constructed at startup and passed explicitly to every
// worker, rather than package-level globals.
type Server struct {
	Workers int

	log     *zap.SugaredLogger
	store   *store
	tempFS  afero.Fs
	locks   *lockRegistry
	queue   *connQueue
	audit   *auditLog
	metrics *metrics

	ln        *net.TCPListener
	ready     chan struct{}
	stopping  atomic.Bool
	workersWG sync.WaitGroup
}

// Config collects the dependencies a Server needs, so New stays a
// single call even as the domain stack grows.
type Config struct {
	Workers    int
	FS         afero.Fs // nil defaults to afero.NewOsFs(); backs GET/PUT content
	TempFS     afero.Fs // nil defaults to afero.NewOsFs(); backs PUT staging
	AuditSink  io.Writer
	Logger     *zap.SugaredLogger
	Registerer prometheus.Registerer // nil disables metrics
}

// New constructs a Server. It does not start listening; call Serve.
func New(cfg Config) *Server {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	fs := cfg.FS
	if fs == nil {
		// URIs carry a leading slash; rooting the OS filesystem at the
		// working directory maps "/name" to "./name".
		wd, _ := os.Getwd()
		fs = afero.NewBasePathFs(afero.NewOsFs(), wd)
	}
	tempFS := cfg.TempFS
	if tempFS == nil {
		tempFS = afero.NewOsFs()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	s := &Server{
		Workers: workers,
		log:     logger,
		store:   newStore(fs),
		tempFS:  tempFS,
		locks:   newLockRegistry(),
		queue:   newConnQueue(workers * 3),
		audit:   newAuditLog(auditSinkOrStderr(cfg.AuditSink)),
		ready:   make(chan struct{}),
	}
	if cfg.Registerer != nil {
		s.metrics = newMetrics(cfg.Registerer, func() float64 { return float64(s.queue.depth()) })
	}
	return s
}

// Serve binds port, starts the worker pool, and runs the accept loop
// until ctx is cancelled. On cancellation it stops accepting, lets
// workers drain whatever they've already popped, and returns once every
// in-flight connection has been closed.
func (s *Server) Serve(ctx context.Context, port int) error {
	ln, err := listen(port)
	if err != nil {
		return err
	}
	s.ln = ln
	close(s.ready)
	defer ln.Close()

	for i := 0; i < s.Workers; i++ {
		s.workersWG.Add(1)
		go s.worker(ctx)
	}

	go func() {
		<-ctx.Done()
		s.stopping.Store(true)
		ln.Close()
	}()

	for {
		conn, err := acceptConn(ln)
		if err != nil {
			if s.stopping.Load() {
				break
			}
			// Transient accept error (e.g. a client reset before we
			// finished accepting): keep serving.
			s.log.Warnw("accept failed", "error", err)
			continue
		}
		if err := s.queue.push(ctx, conn); err != nil {
			conn.Close()
			break
		}
	}

	s.workersWG.Wait()
	return nil
}

// Addr blocks until the server is listening and returns its bound
// address. Intended for tests that start the server with port 0.
func (s *Server) Addr() *net.TCPAddr {
	<-s.ready
	return s.ln.Addr().(*net.TCPAddr)
}

func (s *Server) worker(ctx context.Context) {
	defer s.workersWG.Done()
	for {
		conn, err := s.queue.pop(ctx)
		if err != nil {
			return
		}
		s.handleConnection(conn)
	}
}

// handleConnection drives one accepted socket through parse, dispatch,
// response and audit (§4.F). It is the only party that closes conn.
func (s *Server) handleConnection(netConn net.Conn) {
	if s.metrics != nil {
		s.metrics.activeConns.Inc()
		defer s.metrics.activeConns.Dec()
	}
	defer netConn.Close()
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("panic handling connection", "panic", r)
		}
	}()

	c := &connection{conn: netConn}

	if resp := c.parse(); resp != nil {
		c.sendResponse(*resp)
		s.auditRequest(c.req, *resp)
		return
	}

	var resp Response
	switch c.req.Method {
	case MethodGET:
		resp = s.handleGET(c)
		if resp.Code != 200 {
			c.sendResponse(resp)
		}
	case MethodPUT:
		resp = s.handlePUT(c)
		c.sendResponse(resp)
	default:
		resp = ResponseNotImplemented
		c.sendResponse(resp)
	}
	s.auditRequest(c.req, resp)
}

func (s *Server) auditRequest(req *Request, resp Response) {
	var method, uri, requestID string
	if req != nil {
		method = req.MethodToken
		uri = req.URI
		if id, ok := req.Header("Request-Id"); ok {
			requestID = id
		}
	}
	s.audit.record(method, uri, resp.Code, requestID)
	if s.metrics != nil {
		s.metrics.requestsTotal.WithLabelValues(method, strconv.Itoa(resp.Code)).Inc()
	}
}

func auditSinkOrStderr(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return os.Stderr
}
