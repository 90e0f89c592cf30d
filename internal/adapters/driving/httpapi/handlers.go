package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/appreview/internal/adapters/driving/render"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/logger"
)

// Password sources, in the order they are consulted after basic auth.
const (
	headerPassword          = "X-Appreview-Password"
	headerDocumentsPassword = "X-Appreview-Documents-Password"
	queryPassword           = "password"
	queryDocumentsPassword  = "documents_password"
)

// maxCommentBody bounds a posted comment.
const maxCommentBody = 64 << 10

const (
	pathShortlisted = "/"
	pathAll         = "/allapplications"
)

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleList(domain.CollectionShortlisted))
	mux.HandleFunc("GET /{id}", s.handleDetail(domain.CollectionShortlisted))

	mux.HandleFunc("GET "+pathAll, s.gated(domain.GateExtended, s.handleList(domain.CollectionAll)))
	mux.HandleFunc("GET "+pathAll+"/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, pathAll, http.StatusSeeOther)
	})
	mux.HandleFunc("GET "+pathAll+"/{id}", s.gated(domain.GateExtended, s.handleDetail(domain.CollectionAll)))

	mux.HandleFunc("GET /api/applications", s.handleAPIList)
	mux.HandleFunc("GET /api/applications/{id}", s.handleAPIDetail)
	mux.HandleFunc("GET /api/applications/{id}/comments", s.handleListComments)
	mux.HandleFunc("POST /api/applications/{id}/comments", s.handleAddComment)
	mux.HandleFunc("GET /api/facets", s.handleFacets)
	mux.HandleFunc("GET /api/status", s.handleStatus)
}

// listPath is where unknown ids of a collection are sent.
func listPath(c domain.Collection) string {
	if c == domain.CollectionAll {
		return pathAll
	}
	return pathShortlisted
}

func (s *Server) handleList(c domain.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := s.browse(r, c)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// handleDetail serves /{id}. Unknown ids fall back to the list view.
func (s *Server) handleDetail(c domain.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.PathValue("id"))

		detail, err := s.detail(r, c, id)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Debug("http: %s not in %s, redirecting", id, c)
			http.Redirect(w, r, listPath(c), http.StatusSeeOther)
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}

		if wantsMarkdown(r) {
			s.writeMarkdown(w, detail)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	c, err := s.collection(r)
	if err != nil {
		s.writeGateError(w, err)
		return
	}
	page, err := s.browse(r, c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleAPIDetail(w http.ResponseWriter, r *http.Request) {
	c, err := s.collection(r)
	if err != nil {
		s.writeGateError(w, err)
		return
	}
	detail, err := s.detail(r, c, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if wantsMarkdown(r) {
		s.writeMarkdown(w, detail)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	c, err := s.collection(r)
	if err != nil {
		s.writeGateError(w, err)
		return
	}
	facets, err := s.ports.Catalog.Facets(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, facets)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []domain.LoadStatus{
		s.ports.Catalog.Status(domain.CollectionShortlisted),
		s.ports.Catalog.Status(domain.CollectionAll),
	})
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.ports.Comment.List(r.Context(), strings.TrimSpace(r.PathValue("id")))
	if err != nil {
		writeError(w, err)
		return
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

type commentRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	if ok, retry := s.limiter.Allow(r); !ok {
		s.metrics.commentsLimited.Inc()
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "too many comments, try again shortly"})
		return
	}

	c, err := s.collection(r)
	if err != nil {
		s.writeGateError(w, err)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCommentBody)).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: comment body: %w", domain.ErrInvalidInput, err))
		return
	}

	rec, err := s.ports.Catalog.Get(r.Context(), c, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	comment, err := s.ports.Comment.Add(r.Context(), rec.ApplicationID(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.commentsAdded.Inc()
	writeJSON(w, http.StatusCreated, comment)
}

// browse runs the view state carried by the query string.
func (s *Server) browse(r *http.Request, c domain.Collection) (render.Page, error) {
	state, page, err := parseState(r.URL.Query())
	if err != nil {
		return render.Page{}, err
	}

	ctx := r.Context()
	result, err := s.ports.Catalog.Browse(ctx, c, state)
	if err != nil {
		return render.Page{}, err
	}
	if page != 1 {
		next := state.GoToPage(page, result.TotalPages)
		if next.Page != page {
			return render.Page{}, fmt.Errorf("%w: page %d is out of range (1-%d)",
				domain.ErrInvalidInput, page, max(result.TotalPages, 1))
		}
		state = next
		if result, err = s.ports.Catalog.Browse(ctx, c, state); err != nil {
			return render.Page{}, err
		}
	}

	counts, err := s.ports.Comment.Counts(ctx)
	if err != nil {
		logger.Warn("http: comment counts: %v", err)
	}
	return render.NewPage(c, state, result, counts), nil
}

// detail builds one application. Documents stay redacted unless the request
// carries the documents password.
func (s *Server) detail(r *http.Request, c domain.Collection, id string) (render.Detail, error) {
	ctx := r.Context()
	sum, err := s.ports.Catalog.Summary(ctx, c, id)
	if err != nil {
		return render.Detail{}, err
	}
	comments, err := s.ports.Comment.List(ctx, sum.ApplicationID)
	if err != nil {
		return render.Detail{}, err
	}

	unlocked := false
	if pw := documentsPassword(r); pw != "" {
		if err := s.ports.Access.Check(domain.GateDocuments, pw); err != nil {
			s.metrics.gateDenied.WithLabelValues(domain.GateDocuments.String()).Inc()
			return render.Detail{}, err
		}
		unlocked = true
	}
	return render.NewDetail(c, sum, comments, unlocked), nil
}

// collection reads ?collection= and checks its gate.
func (s *Server) collection(r *http.Request) (domain.Collection, error) {
	c, err := domain.ParseCollection(r.URL.Query().Get("collection"))
	if err != nil {
		return "", err
	}
	if gate, gated := c.Gate(); gated {
		if err := s.checkGate(r, gate); err != nil {
			return "", err
		}
	}
	return c, nil
}

// errPasswordRequired marks a gated request that carried no password.
var errPasswordRequired = errors.New("password required")

func (s *Server) checkGate(r *http.Request, gate domain.Gate) error {
	pw := password(r)
	if pw == "" {
		return fmt.Errorf("%w: %s", errPasswordRequired, gate)
	}
	if err := s.ports.Access.Check(gate, pw); err != nil {
		s.metrics.gateDenied.WithLabelValues(gate.String()).Inc()
		return err
	}
	return nil
}

// gated wraps a handler behind an access gate.
func (s *Server) gated(gate domain.Gate, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.checkGate(r, gate); err != nil {
			s.writeGateError(w, err)
			return
		}
		next(w, r)
	}
}

func (s *Server) writeGateError(w http.ResponseWriter, err error) {
	if errors.Is(err, errPasswordRequired) {
		w.Header().Set("WWW-Authenticate", `Basic realm="appreview"`)
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
		return
	}
	writeError(w, err)
}

func password(r *http.Request) string {
	if _, pw, ok := r.BasicAuth(); ok && pw != "" {
		return pw
	}
	if pw := r.Header.Get(headerPassword); pw != "" {
		return pw
	}
	return r.URL.Query().Get(queryPassword)
}

func documentsPassword(r *http.Request) string {
	if pw := r.Header.Get(headerDocumentsPassword); pw != "" {
		return pw
	}
	return r.URL.Query().Get(queryDocumentsPassword)
}

// parseState builds a view state from query parameters. Facet parameters
// may repeat. The requested page is returned separately because it can only
// be checked against the filtered total.
func parseState(q url.Values) (domain.ViewState, int, error) {
	sortKey, err := domain.ParseSortKey(q.Get("sort"))
	if err != nil {
		return domain.ViewState{}, 0, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil {
			return domain.ViewState{}, 0, fmt.Errorf("%w: page %q", domain.ErrInvalidInput, raw)
		}
	}

	search := q.Get("q")
	if search == "" {
		search = q.Get("search")
	}

	state := domain.NewViewState(domain.ViewModeGrid).
		WithSearch(search).
		SetFacet(domain.FacetSegment, q["segment"]).
		SetFacet(domain.FacetTRL, q["trl"]).
		SetFacet(domain.FacetFunding, q["funding"]).
		SetFacet(domain.FacetRecognition, q["recognition"]).
		WithSort(sortKey)

	return state, page, nil
}

func wantsMarkdown(r *http.Request) bool {
	return r.URL.Query().Get("format") == "markdown" ||
		strings.Contains(r.Header.Get("Accept"), "text/markdown")
}

func (s *Server) writeMarkdown(w http.ResponseWriter, d render.Detail) {
	md, err := s.renderer.DetailMarkdown(d.Application, d.Comments)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(md))
}

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrEmptyComment),
		errors.Is(err, domain.ErrUnknownSortKey),
		errors.Is(err, domain.ErrUnknownFacet):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrDatasetNotLoaded),
		errors.Is(err, domain.ErrDatasetUnavailable),
		errors.Is(err, domain.ErrLoadTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error("http: %v", err)
	}
	writeJSON(w, code, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("http: encode response: %v", err)
	}
}
