package service

import (
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cbsinteractive/pkg/timecode"
	"github.com/cbsinteractive/pkg/video"
	"github.com/cbsinteractive/timecode-service/clip"
	"github.com/cbsinteractive/timecode-service/config"
	"github.com/cbsinteractive/timecode-service/db"
	"github.com/cbsinteractive/timecode-service/mediatime"
	"github.com/cbsinteractive/timecode-service/service/exceptions"
	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
)

var (
	ErrStorage = errors.New("storage error")
	ErrArg     = errors.New("bad argument")
)

// Server answers time conversion queries and stores timelines
type Server struct {
	Config      *config.Config
	DB          db.Repository
	Logger      *logrus.Logger
	ErrReporter exceptions.Reporter

	request
}

// NewServer returns a Server, filling in a memory repository, a
// discarding logger and a no-op reporter where none are given
func NewServer(cfg *config.Config, repo db.Repository, logger *logrus.Logger, rep exceptions.Reporter) *Server {
	if cfg == nil {
		cfg = &config.Config{DefaultFPS: mediatime.DefaultFPS}
	}
	if repo == nil {
		repo = db.NewMemoryRepository()
	}
	if logger == nil {
		logger = logrus.New()
		logger.Out = ioutil.Discard
	}
	if rep == nil {
		rep = &exceptions.NoopReporter{}
	}
	return &Server{Config: cfg, DB: repo, Logger: logger, ErrReporter: rep}
}

// Handler wraps the server with panic recovery
func (s *Server) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(s.Logger),
		handlers.PrintRecoveryStack(true),
	)
	return recovery(*s)
}

func (s Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.request = newRequest(rw, r, s.Logger)
	defer s.request.finalize()
	s.serve()
}

func (s *Server) serve() bool {
	switch s.chop() {
	case "timecode":
		return s.get(s.timecode)
	case "timestamp":
		return s.get(s.timestamp)
	case "parse":
		switch s.chop() {
		case "timecode":
			return s.get(s.parseTimecode)
		case "timestamp":
			return s.get(s.parseTimestamp)
		}
	case "timelines":
		return s.timelines()
	case "healthcheck":
		return s.get(func() bool {
			return s.writebody(http.StatusOK, map[string]bool{"ok": true})
		})
	}
	return s.writeerror("bad request path", http.StatusNotFound, nil)
}

// get runs fn for GET requests and answers 405 otherwise
func (s *Server) get(fn func() bool) bool {
	if s.method() != "GET" {
		return s.notAllowed("GET")
	}
	return fn()
}

func (s *Server) notAllowed(allow ...string) bool {
	s.w.Header().Set("Allow", strings.Join(allow, ", "))
	return s.writeerror("method not allowed", http.StatusMethodNotAllowed, nil)
}

// Conversion is every representation of a single Time
type Conversion struct {
	Milliseconds int64               `json:"ms"`
	Seconds      float64             `json:"seconds"`
	Normalized   int64               `json:"normalizedMs"`
	Frames       int64               `json:"frames"`
	Timecode     mediatime.Timecode  `json:"timecode"`
	Timestamp    mediatime.Timestamp `json:"timestamp"`
	Timebase     Timebase            `json:"timebase"`
}

// Timebase describes the frame rate used for a Conversion
type Timebase struct {
	FPS                  float64 `json:"fps"`
	Rate                 uint16  `json:"rate"`
	DropFrame            bool    `json:"dropFrame"`
	MillisecondsPerFrame uint32  `json:"msPerFrame"`
}

func convert(t mediatime.Time, tb mediatime.Timebase) Conversion {
	return Conversion{
		Milliseconds: t.Milliseconds(),
		Seconds:      t.Seconds(),
		Normalized:   t.Normalized().Milliseconds(),
		Frames:       tb.FramesFromTime(t),
		Timecode:     mediatime.TimecodeFromTime(t, tb),
		Timestamp:    mediatime.TimestampFromTime(t),
		Timebase: Timebase{
			FPS:                  tb.FPS(),
			Rate:                 tb.Rate(),
			DropFrame:            tb.DropFrame(),
			MillisecondsPerFrame: tb.MillisecondsPerFrame(),
		},
	}
}

// timeArg reads the time from the ms, seconds or frames query parameter
func (s *Server) timeArg(tb mediatime.Timebase) (mediatime.Time, error) {
	if v := s.query("ms"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: ms: %v", ErrArg, err)
		}
		return mediatime.FromMilliseconds(ms), nil
	}
	if v := s.query("seconds"); v != "" {
		sec, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: seconds: %v", ErrArg, err)
		}
		return mediatime.FromSeconds(sec), nil
	}
	if v := s.query("frames"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: frames: %v", ErrArg, err)
		}
		return tb.TimeFromFrames(n), nil
	}
	return 0, fmt.Errorf("%w: one of ms, seconds or frames is required", ErrArg)
}

// timebaseArg reads the fps query parameter, falling back to the
// configured default
func (s *Server) timebaseArg() (mediatime.Timebase, error) {
	v := s.query("fps")
	if v == "" {
		return mediatime.NewTimebase(s.Config.DefaultFPS), nil
	}
	fps, err := strconv.ParseFloat(v, 64)
	if err != nil || !(fps > 0) || fps > mediatime.MaxFPS {
		return mediatime.Timebase{}, fmt.Errorf("%w: fps must be in (0, %v], got %q", ErrArg, mediatime.MaxFPS, v)
	}
	return mediatime.NewTimebase(fps), nil
}

func (s *Server) timecode() bool {
	tb, err := s.timebaseArg()
	if err != nil {
		return s.writeerror("bad timebase", http.StatusBadRequest, err)
	}
	t, err := s.timeArg(tb)
	if err != nil {
		return s.writeerror("bad time", http.StatusBadRequest, err)
	}
	return s.writebody(http.StatusOK, convert(t, tb))
}

func (s *Server) timestamp() bool {
	tb := mediatime.NewTimebase(s.Config.DefaultFPS)
	t, err := s.timeArg(tb)
	if err != nil {
		return s.writeerror("bad time", http.StatusBadRequest, err)
	}
	ts := mediatime.TimestampFromTime(t)
	return s.writebody(http.StatusOK, map[string]interface{}{
		"timestamp":    ts,
		"normalizedMs": ts.Time().Milliseconds(),
	})
}

func (s *Server) parseTimecode() bool {
	tb, err := s.timebaseArg()
	if err != nil {
		return s.writeerror("bad timebase", http.StatusBadRequest, err)
	}
	tc, ok := mediatime.ParseTimecode(s.query("tc"), tb)
	if !ok {
		return s.writeerror("bad timecode", http.StatusBadRequest, fmt.Errorf("%w: %q is not a timecode", ErrArg, s.query("tc")))
	}
	return s.writebody(http.StatusOK, convert(tc.Time(), tb))
}

func (s *Server) parseTimestamp() bool {
	ts, err := mediatime.ParseTimestamp(s.query("ts"))
	if err != nil {
		return s.writeerror("bad timestamp", http.StatusBadRequest, err)
	}
	tb := mediatime.NewTimebase(s.Config.DefaultFPS)
	return s.writebody(http.StatusOK, convert(ts.Time(), tb))
}

// TimelineResponse is a stored timeline with its derived values
type TimelineResponse struct {
	*clip.Timeline
	DurationMs int64           `json:"durationMs"`
	Extent     mediatime.Range `json:"extent"`
	Framerate  video.Framerate `json:"framerate"`
	Splice     timecode.Splice `json:"splice"`
}

func newTimelineResponse(t *clip.Timeline) TimelineResponse {
	return TimelineResponse{
		Timeline:   t,
		DurationMs: t.Duration().Milliseconds(),
		Extent:     t.Range(),
		Framerate:  t.Framerate(),
		Splice:     t.SpliceSeconds(),
	}
}

func (s *Server) timelines() bool {
	id := s.chop()
	if id == "" {
		switch s.method() {
		case "POST":
			return s.putTimeline()
		case "GET":
			ids, err := s.DB.List()
			if err != nil {
				return s.internal("list timelines failed", fmt.Errorf("%w: %v", ErrStorage, err))
			}
			return s.writebody(http.StatusOK, map[string][]string{"ids": ids})
		}
		return s.notAllowed("GET", "POST")
	}

	sub := s.chop()
	switch {
	case sub == "" && s.method() != "GET" && s.method() != "DELETE":
		return s.notAllowed("GET", "DELETE")
	case (sub == "overlaps" || sub == "cues") && s.method() != "GET":
		return s.notAllowed("GET")
	case sub != "" && sub != "overlaps" && sub != "cues":
		return s.writeerror("bad request path", http.StatusNotFound, nil)
	}

	t, err := s.DB.Get(id)
	if errors.Is(err, db.ErrTimelineNotFound) {
		return s.writeerror("get timeline failed", http.StatusNotFound, err)
	} else if err != nil {
		return s.internal("get timeline failed", fmt.Errorf("%w: %v", ErrStorage, err))
	}

	switch {
	case sub == "overlaps":
		o := t.Overlaps()
		if o == nil {
			o = []clip.Overlap{}
		}
		return s.writebody(http.StatusOK, o)
	case sub == "cues":
		return s.writebody(http.StatusOK, t.Cues())
	case s.method() == "DELETE":
		err := s.DB.Delete(id)
		if errors.Is(err, db.ErrTimelineNotFound) {
			return s.writeerror("delete timeline failed", http.StatusNotFound, err)
		} else if err != nil {
			return s.internal("delete timeline failed", fmt.Errorf("%w: %v", ErrStorage, err))
		}
	}
	return s.writebody(http.StatusOK, newTimelineResponse(t))
}

func (s *Server) putTimeline() bool {
	t := &clip.Timeline{}
	if !s.request.UnmarshalJSON(t) {
		return s.writeerror("bad timeline", http.StatusBadRequest, s.err)
	}
	if t.ID == "" {
		t.ID = clip.NewID()
	}
	if t.FPS == 0 {
		t.FPS = s.Config.DefaultFPS
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	clips := t.Clips
	t.Clips = nil
	t.Add(clips...)
	t.Sort()
	if err := t.Validate(); err != nil {
		return s.writeerror("bad timeline", http.StatusBadRequest, err)
	}
	if err := s.DB.Put(t); err != nil {
		return s.internal("put timeline failed", fmt.Errorf("%w: %v", ErrStorage, err))
	}
	return s.writebody(http.StatusCreated, newTimelineResponse(t))
}

// internal reports err and writes a 500
func (s *Server) internal(msg string, err error) bool {
	s.ErrReporter.ReportException(err)
	return s.writeerror(msg, http.StatusInternalServerError, err)
}
