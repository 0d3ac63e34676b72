package service

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"math/rand"
	"net"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultMaxBodyLen = 1024 * 1024

func init() {
	rand.Seed(time.Now().UnixNano())
}

// request is always scoped to a single http request handled by the server
type request struct {
	file, path string

	ctx context.Context
	w   http.ResponseWriter
	r   *http.Request

	body []byte

	start       time.Time
	rid         uint64 // random request id
	read, wrote int
	ip, port    string
	err, logerr error
	logger      logrus.FieldLogger
}

// newRequest initializes request scoped structures, context and counters.
// The caller defers finalize to log the outcome.
func newRequest(w http.ResponseWriter, rq *http.Request, logger logrus.FieldLogger) request {
	r := request{
		path:   rq.URL.Path,
		ctx:    rq.Context(),
		r:      rq,
		w:      w,
		start:  time.Now(),
		rid:    rand.Uint64(),
		logger: logger,
	}
	r.rid |= 1 << 63 // sacrifice one bit of entropy so they always have the same # digits
	r.ip = r.r.Header.Get("X-Forwarded-For")
	r.port = r.r.Header.Get("X-Forwarded-Port")
	if r.ip == "" {
		r.ip, r.port, _ = net.SplitHostPort(r.r.RemoteAddr)
	}
	r.entry().WithFields(logrus.Fields{
		"ip":     r.ip,
		"port":   r.port,
		"raddr":  r.r.RemoteAddr,
		"method": r.r.Method,
		"path":   r.r.URL.Path,
		"ua":     r.r.UserAgent(),
	}).Debug("request")
	return r
}

func (r *request) finalize() {
	if r.logerr == nil {
		r.logerr = r.err
	}
	e := r.entry().WithFields(logrus.Fields{
		"rx":  r.read,
		"tx":  r.wrote,
		"dur": time.Since(r.start).String(),
	})
	if r.logerr != nil {
		e.WithError(r.logerr).Warn("request failed")
		return
	}
	e.Info("request done")
}

func (r *request) entry() *logrus.Entry {
	return r.logger.WithField("rid", r.rid)
}

func (s *request) ok() bool {
	return s.err == nil
}

// Body reads the request body at most once and
// returns it.
func (s *request) Body() []byte {
	if !s.ok() {
		return nil
	}
	if s.body != nil {
		return s.body
	}
	s.body, s.err = ioutil.ReadAll(io.LimitReader(s.r.Body, defaultMaxBodyLen))
	s.read = len(s.body)
	return s.body
}

func (s *request) writeerror(msg string, code int, err error) bool {
	s.logerr = err
	s.entry().WithFields(logrus.Fields{
		"msg":  msg,
		"code": code,
	}).WithError(err).Debug("writing error")
	if err != nil {
		msg += ": " + err.Error()
	}
	s.w.Header().Set("Content-Type", "application/json")
	s.w.WriteHeader(code)
	data, _ := json.Marshal(PlatformError{
		Ok:     false,
		Status: code,
		Rid:    s.rid,
		Msg:    msg,
	})
	s.wrote, _ = s.w.Write(data)
	return false
}

func (s *request) writebody(code int, data interface{}) bool {
	s.w.Header().Set("Content-Type", "application/json")
	s.w.WriteHeader(code)
	p, err := json.Marshal(data)
	if err != nil {
		s.err = err
		return false
	}
	s.wrote, s.err = s.w.Write(p)
	return s.ok()
}

func (s *request) UnmarshalJSON(body interface{}) (ok bool) {
	data := s.Body()
	if !s.ok() {
		return false
	}
	if s.err = json.Unmarshal(data, body); s.err != nil {
		return false
	}
	return s.ok()
}

func (s *request) method() string {
	return s.r.Method
}

func (s *request) query(key string) string {
	return s.r.URL.Query().Get(key)
}

func (s *request) chop() string {
	s.file, s.path = chop(s.path)
	return s.file
}

func chop(p string) (file, next string) {
	p = path.Clean(p)[1:]
	if n := strings.Index(p, "/"); n >= 0 {
		return p[:n], p[n:]
	}
	return p, "/"
}

// PlatformError implements a well-known error response for http clients
// encountering an error when using the service.
type PlatformError struct {
	Ok     bool   `json:"ok"`
	Status int    `json:"status"`
	Rid    uint64 `json:"rid"`
	Msg    string `json:"msg,omitempty"`
}

// String returns the json-formatted platform response
func (p PlatformError) String() string {
	data, _ := json.Marshal(p)
	return string(data)
}
