package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/vytor/palabras/internal/errors"
	"github.com/vytor/palabras/internal/logger"
	"github.com/vytor/palabras/internal/services"
	"golang.org/x/time/rate"
)

// maxBodyBytes bounds request bodies, import documents included.
const maxBodyBytes = 8 << 20

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	DB              Pinger
	ExerciseService services.ExerciseService
	ProfileService  services.ProfileService
	ReviewService   services.ReviewService
	DataService     services.DataService

	// WriteLimiter throttles mutating requests when set.
	WriteLimiter *rate.Limiter

	// ReadTimeout bounds read-only /api requests; zero means
	// defaultReadTimeout. Writes run to completion so a commit is never
	// reported as a timeout.
	ReadTimeout time.Duration
}

const defaultReadTimeout = 30 * time.Second

func (s *Server) readTimeout() time.Duration {
	if s.ReadTimeout > 0 {
		return s.ReadTimeout
	}
	return defaultReadTimeout
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Warn("failed to write response: %v", err)
	}
}

// decodeJSON reads a single JSON value from the request body into dest.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	if dec.More() {
		return errors.NewBadRequestError("request body must contain a single JSON value")
	}
	return nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.NewBadRequestError("cannot read request body: " + err.Error())
	}
	return data, nil
}

// queryInt parses an optional integer query parameter, returning 0 when it is
// absent.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(name, "must be an integer")
	}
	return n, nil
}
