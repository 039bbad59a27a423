package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ledwall/pkg/buildinfo"
	"github.com/matzehuels/ledwall/pkg/config"
	errs "github.com/matzehuels/ledwall/pkg/errors"
	ledio "github.com/matzehuels/ledwall/pkg/io"
	"github.com/matzehuels/ledwall/pkg/pipeline"
	"github.com/matzehuels/ledwall/pkg/wall"
)

// Response headers describing the plan behind a response.
const (
	HeaderPlanHash = "X-Plan-Hash"
	HeaderCache    = "X-Cache"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// wallRequest names a wall by descriptor or by configuration object.
type wallRequest struct {
	Descriptor string          `json:"descriptor,omitempty"`
	Config     json.RawMessage `json:"config,omitempty"`
	Refresh    bool            `json:"refresh,omitempty"`
}

type renderRequest struct {
	wallRequest
	Layers []string `json:"layers,omitempty"`
	Color1 string   `json:"color1,omitempty"`
	Color2 string   `json:"color2,omitempty"`
	Scale  float64  `json:"scale,omitempty"`
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req wallRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, err := req.wallConfig()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{Config: cfg, Refresh: req.Refresh, Logger: s.logger}
	p, hash, hit, err := s.runner.BuildWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := ledio.WriteJSON(p, &buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	setPlanHeaders(w, hash, hit)
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	view, format, err := parseArtifact(chi.URLParam(r, "artifact"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req renderRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, err := req.wallConfig()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Config:  cfg,
		View:    view,
		Formats: []string{format},
		Layers:  req.Layers,
		Color1:  req.Color1,
		Color2:  req.Color2,
		Scale:   req.Scale,
		Refresh: req.Refresh,
		Logger:  s.logger,
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	setPlanHeaders(w, result.PlanHash, result.CacheInfo.PlanHit && result.CacheInfo.RenderHit)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// parseArtifact splits "view.format".
func parseArtifact(s string) (view, format string, err error) {
	i := strings.LastIndexByte(s, '.')
	if i <= 0 || i == len(s)-1 {
		return "", "", errs.New(errs.ErrCodeInvalidView, "artifact %q: expected view.format", s)
	}
	view, format = strings.ToLower(s[:i]), strings.ToLower(s[i+1:])
	if err := pipeline.ValidateView(view); err != nil {
		return "", "", err
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return "", "", err
	}
	return view, format, nil
}

// wallConfig resolves the request to a validated configuration. An empty
// request yields the default wall.
func (req wallRequest) wallConfig() (wall.Config, error) {
	if req.Descriptor != "" && len(req.Config) > 0 {
		return wall.Config{}, errs.New(errs.ErrCodeInvalidConfiguration, "give either descriptor or config, not both")
	}
	if req.Descriptor != "" {
		return config.ParseDescriptor(req.Descriptor)
	}
	cfg := wall.DefaultConfig()
	if len(req.Config) > 0 {
		dec := json.NewDecoder(bytes.NewReader(req.Config))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return wall.Config{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "config")
		}
	}
	return config.Finish(cfg)
}

// decode reads a bounded JSON body into v. An empty body leaves v untouched.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "request body")
	}
	return nil
}

func setPlanHeaders(w http.ResponseWriter, hash string, hit bool) {
	w.Header().Set(HeaderPlanHash, hash)
	if hit {
		w.Header().Set(HeaderCache, "hit")
	} else {
		w.Header().Set(HeaderCache, "miss")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errs.GetCode(err))
	if code == "" {
		code = string(errs.ErrCodeInternal)
	}
	msg := errs.UserMessage(err)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		code = "REQUEST_TOO_LARGE"
		msg = "request body too large"
	}
	if status >= 500 {
		s.logger.Error("request failed", "request_id", RequestID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg, RequestID: RequestID(r.Context())})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errs.IsInvalid(err):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrCodeNotFound), errs.Is(err, errs.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
