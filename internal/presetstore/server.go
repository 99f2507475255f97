package presetstore

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/decker502/fireworks/pkg/types"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

// Server exposes a Store over HTTP in two request shapes:
//
//	POST /{collection}            body: rocket JSON
//	GET  /{collection}            -> JSON array
//	GET  /?command=insert&collection=c&data=<rocket JSON>
//	GET  /?command=find&collection=c&data={}   -> JSON object keyed by id
type Server struct {
	store  *Store
	logger zerolog.Logger
	mux    *http.ServeMux
}

// NewServer builds the HTTP handler for store.
func NewServer(store *Store, log zerolog.Logger) *Server {
	s := &Server{store: store, logger: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /{$}", s.handleQuery)
	s.mux.HandleFunc("POST /{collection}", s.handleInsert)
	s.mux.HandleFunc("GET /{collection}", s.handleList)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.logger.Debug().
		Str("method", r.Method).
		Str("url", r.URL.RequestURI()).
		Int("status", rec.status).
		Dur("took", time.Since(start)).
		Msg("request")
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.insert(w, r, r.PathValue("collection"), body)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.Find(r.Context(), r.PathValue("collection"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	rockets := make([]types.Rocket, 0, len(records))
	for _, rec := range records {
		rockets = append(rockets, rec.Rocket())
	}
	s.writeJSON(w, http.StatusOK, rockets)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	collection := q.Get("collection")

	switch q.Get("command") {
	case "insert":
		s.insert(w, r, collection, []byte(q.Get("data")))
	case "find":
		records, err := s.store.Find(r.Context(), collection)
		if err != nil {
			s.writeError(w, statusFor(err), err)
			return
		}
		byID := make(map[string]types.Rocket, len(records))
		for _, rec := range records {
			byID[strconv.FormatUint(uint64(rec.ID), 10)] = rec.Rocket()
		}
		s.writeJSON(w, http.StatusOK, byID)
	default:
		s.writeError(w, http.StatusBadRequest, errors.New("command must be insert or find"))
	}
}

func (s *Server) insert(w http.ResponseWriter, r *http.Request, collection string, data []byte) {
	var rocket types.Rocket
	if err := json.Unmarshal(data, &rocket); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := s.store.Insert(r.Context(), collection, rocket)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.logger.Info().Uint("id", record.ID).Str("collection", collection).Str("rocket", rocket.String()).Msg("Saved rocket")
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": strconv.FormatUint(uint64(record.ID), 10)})
}

// statusFor maps store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCollection),
		errors.Is(err, types.ErrInvalidColor),
		errors.Is(err, types.ErrInvalidSize),
		errors.Is(err, types.ErrInvalidParticleCount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("Request failed")
	} else {
		s.logger.Warn().Err(err).Msg("Bad request")
	}
	http.Error(w, err.Error(), status)
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
