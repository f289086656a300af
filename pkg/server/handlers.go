package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/obst/pkg/buildinfo"
	"github.com/matzehuels/obst/pkg/cache"
	"github.com/matzehuels/obst/pkg/dataset"
	errs "github.com/matzehuels/obst/pkg/errors"
	"github.com/matzehuels/obst/pkg/graph"
	"github.com/matzehuels/obst/pkg/obst"
	"github.com/matzehuels/obst/pkg/pipeline"
)

// =============================================================================
// Request and Response Types
// =============================================================================

type buildRequest struct {
	pipeline.Options
	// Explain asks for the candidate roots of the interval [i, j].
	Explain []int `json:"explain,omitempty"`
}

type buildResponse struct {
	Result     graph.Document   `json:"result"`
	Hash       string           `json:"hash"`
	Dropped    int              `json:"dropped"`
	Cached     bool             `json:"cached"`
	Candidates []obst.Candidate `json:"candidates,omitempty"`
}

type layoutResponse struct {
	Layout  graph.Layout `json:"layout"`
	Dropped int          `json:"dropped"`
	Cached  cacheInfo    `json:"cached"`
}

type renderRequest struct {
	pipeline.Options
	// Layout is a serialized layout to render instead of building one.
	Layout json.RawMessage `json:"layout,omitempty"`
}

type renderResponse struct {
	Artifacts map[string]artifact `json:"artifacts"`
	Stats     *stats              `json:"stats,omitempty"`
	Cached    cacheInfo           `json:"cached"`
}

type artifact struct {
	ContentType string `json:"content_type"`
	Encoding    string `json:"encoding"` // "utf-8" or "base64"
	Data        string `json:"data"`
}

type stats struct {
	Keys      int     `json:"keys"`
	Height    int     `json:"height"`
	TotalCost float64 `json:"total_cost"`
	Dropped   int     `json:"dropped"`
}

type cacheInfo struct {
	Build  bool `json:"build"`
	Layout bool `json:"layout"`
	Render bool `json:"render"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      errs.Code `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Get(),
	})
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": dataset.Default()})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.log, err)
		return
	}
	if len(req.Explain) != 0 && len(req.Explain) != 2 {
		writeError(w, r, s.log, errs.New(errs.ErrCodeInvalidInput, "explain must be [i, j]"))
		return
	}

	res, dropped, hit, err := s.runner.BuildWithCacheInfo(r.Context(), s.apiOptions(req.Options))
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}

	data, err := graph.MarshalDocument(res)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	resp := buildResponse{
		Result:  graph.FromResult(res),
		Hash:    cache.Hash(data),
		Dropped: dropped,
		Cached:  hit,
	}
	if len(req.Explain) == 2 {
		cands, ok := res.Candidates(req.Explain[0], req.Explain[1])
		if !ok {
			writeError(w, r, s.log, errs.New(errs.ErrCodeInvalidInput,
				"explain: (%d, %d) is not a cell of a %d-key table", req.Explain[0], req.Explain[1], res.Len()))
			return
		}
		resp.Candidates = cands
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Options
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.log, err)
		return
	}
	opts := s.apiOptions(req)

	res, dropped, buildHit, err := s.runner.BuildWithCacheInfo(r.Context(), opts)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	l, layoutHit, err := s.runner.GenerateLayoutWithCacheInfo(r.Context(), res, opts)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		Layout:  l,
		Dropped: dropped,
		Cached:  cacheInfo{Build: buildHit, Layout: layoutHit},
	})
}

// handleRender renders either a submitted layout or the full pipeline.
// With ?raw=true and a single format the artifact is written as-is.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.log, err)
		return
	}
	opts := s.apiOptions(req.Options)

	var resp renderResponse
	var artifacts map[string][]byte
	if len(req.Layout) > 0 {
		l, err := graph.UnmarshalLayout(req.Layout)
		if err != nil {
			writeError(w, r, s.log, errs.Wrap(errs.ErrCodeInvalidFormat, err, "layout"))
			return
		}
		rendered, hit, err := s.runner.RenderWithCacheInfo(r.Context(), l, opts)
		if err != nil {
			writeError(w, r, s.log, err)
			return
		}
		artifacts = rendered
		resp.Cached.Render = hit
	} else {
		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			writeError(w, r, s.log, err)
			return
		}
		artifacts = result.Artifacts
		resp.Stats = &stats{
			Keys:      result.Stats.Keys,
			Height:    result.Stats.Height,
			TotalCost: result.Stats.TotalCost,
			Dropped:   result.Dropped,
		}
		resp.Cached = cacheInfo{
			Build:  result.CacheInfo.BuildHit,
			Layout: result.CacheInfo.LayoutHit,
			Render: result.CacheInfo.RenderHit,
		}
	}

	if r.URL.Query().Get("raw") == "true" && len(artifacts) == 1 {
		for format, data := range artifacts {
			w.Header().Set("Content-Type", ContentType(format))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
		}
		return
	}

	resp.Artifacts = make(map[string]artifact, len(artifacts))
	for format, data := range artifacts {
		resp.Artifacts[format] = encodeArtifact(format, data)
	}
	writeJSON(w, http.StatusOK, resp)
}

// apiOptions applies the server's limits to request options.
func (s *Server) apiOptions(opts pipeline.Options) pipeline.Options {
	if opts.MaxEntries <= 0 || opts.MaxEntries > s.cfg.MaxEntries {
		opts.MaxEntries = s.cfg.MaxEntries
	}
	opts.RequireEntries = true
	opts.Refresh = false
	opts.Logger = s.log
	return opts
}

// =============================================================================
// Helpers
// =============================================================================

// ContentType returns the MIME type of an output format.
func ContentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func encodeArtifact(format string, data []byte) artifact {
	a := artifact{ContentType: ContentType(format)}
	if format != pipeline.FormatPNG && format != pipeline.FormatPDF && utf8.Valid(data) {
		a.Encoding = "utf-8"
		a.Data = string(data)
		return a
	}
	a.Encoding = "base64"
	a.Data = base64.StdEncoding.EncodeToString(data)
	return a
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.New(errs.ErrCodeRequestTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status and JSON error body. Errors without a
// code are internal; their message is logged, not returned.
func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	code := errs.GetCode(err)
	msg := errs.UserMessage(err)
	if code == "" {
		code = errs.ErrCodeInternal
		msg = "internal server error"
	}
	status := errs.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   msg,
		RequestID: RequestID(r.Context()),
	}})
}

func errNotFound(path string) error {
	return errs.New(errs.ErrCodeNotFound, "no route for %s", path)
}
