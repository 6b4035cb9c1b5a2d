package httpctrl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Agrid-Dev/hersim/internal/envelope"
	"github.com/Agrid-Dev/hersim/internal/ports"
	"github.com/Agrid-Dev/hersim/internal/workbench"
)

const maxBodyBytes = 1 << 20

type Server struct {
	svc    ports.EstimatorService
	srv    *http.Server
	logger zerolog.Logger
}

// New returns a runnable server.
func New(svc ports.EstimatorService, addr string, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{svc: svc, logger: logger}

	// Read
	mux.HandleFunc("GET /v1", s.handleGet)
	mux.HandleFunc("GET /v1/selfcheck", s.handleSelfCheck)
	mux.HandleFunc("GET /v1/catalog", s.handleCatalog)

	// Write: POST merges into a record, PUT replaces it
	mux.HandleFunc("POST /v1/shared", s.handlePostShared)
	mux.HandleFunc("PUT /v1/shared", s.handlePutShared)
	mux.HandleFunc("POST /v1/scenarios/{id}", s.handlePostScenario)
	mux.HandleFunc("PUT /v1/scenarios/{id}", s.handlePutScenario)

	// Stateless
	mux.HandleFunc("POST /v1/evaluate", s.handleEvaluate)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.srv.Addr).Msg("http server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// ---- DTOs ----

type snapshotDTO struct {
	Inputs     workbench.Inputs    `json:"inputs"`
	Comparison envelope.Comparison `json:"comparison"`
}

type selfCheckDTO struct {
	Passed bool                   `json:"passed"`
	Checks []envelope.CheckResult `json:"checks"`
}

// ---- Handlers ----

func (s *Server) handleGet(w http.ResponseWriter, _ *http.Request) {
	s.respondSnapshot(w)
}

func (s *Server) handleSelfCheck(w http.ResponseWriter, _ *http.Request) {
	checks := s.svc.SelfCheck()
	passed := true
	for _, c := range checks {
		passed = passed && c.Pass
	}
	writeJSON(w, http.StatusOK, selfCheckDTO{Passed: passed, Checks: checks})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope.Presets())
}

func (s *Server) handlePostShared(w http.ResponseWriter, r *http.Request) {
	// body: partial or full SharedInputs, merged over the current record
	mergeRecord(s, w, r, s.svc.UpdateShared)
}

func (s *Server) handlePutShared(w http.ResponseWriter, r *http.Request) {
	replaceRecord(s, w, r, s.svc.SetShared)
}

func (s *Server) handlePostScenario(w http.ResponseWriter, r *http.Request) {
	id, ok := s.scenarioID(w, r)
	if !ok {
		return
	}
	mergeRecord(s, w, r, func(fn func(*envelope.ScenarioInputs)) error {
		return s.svc.UpdateScenario(id, fn)
	})
}

func (s *Server) handlePutScenario(w http.ResponseWriter, r *http.Request) {
	id, ok := s.scenarioID(w, r)
	if !ok {
		return
	}
	replaceRecord(s, w, r, func(v envelope.ScenarioInputs) error {
		return s.svc.SetScenario(id, v)
	})
}

func (s *Server) scenarioID(w http.ResponseWriter, r *http.Request) (workbench.ScenarioID, bool) {
	id, err := workbench.ParseScenarioID(r.PathValue("id"))
	if err != nil {
		writeErr(w, http.StatusNotFound, err.Error())
		return workbench.ScenarioUnknown, false
	}
	return id, true
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	in := workbench.DefaultInputs()
	if err := decodeStrict(r.Body, &in); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snapshotDTO{
		Inputs:     in,
		Comparison: envelope.Evaluate(in.Shared, in.A, in.B),
	})
}

// ---- generic helpers ----
func (s *Server) respondSnapshot(w http.ResponseWriter) {
	in, cmp := s.svc.Snapshot()
	writeJSON(w, http.StatusOK, snapshotDTO{Inputs: in, Comparison: cmp})
}

// mergeRecord decodes the body over the current record inside update, so omitted
// fields keep their value and the read-modify-write happens under the service lock.
// The body is decoded once up front so malformed input never reaches update.
func mergeRecord[T any](s *Server, w http.ResponseWriter, r *http.Request, update func(func(*T)) error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	var shape T
	if err := decodeStrict(bytes.NewReader(body), &shape); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	err = update(func(cur *T) {
		_ = decodeStrict(bytes.NewReader(body), cur)
	})
	if err != nil {
		s.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected update")
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondSnapshot(w)
}

// replaceRecord decodes a complete record and hands it to set. Omitted fields are
// zero and usually fail validation.
func replaceRecord[T any](s *Server, w http.ResponseWriter, r *http.Request, set func(T) error) {
	var rec T
	if err := decodeStrict(io.LimitReader(r.Body, maxBodyBytes), &rec); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := set(rec); err != nil {
		s.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected update")
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondSnapshot(w)
}

func decodeStrict(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return errors.New("invalid json: " + err.Error())
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
