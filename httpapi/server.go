// Package httpapi exposes the elgamal package over REST, grounded on the
// teacher's http/server.go (chi router, hexjson request/response bodies)
// and cmd/relay/main.go (gorilla/handlers.CombinedLoggingHandler wrapping
// the mux). Unlike the teacher, this package serves a synchronous
// request/response API, not a long-poll beacon feed, so there is no
// watch/catch-up machinery to carry over.
package httpapi

import (
	"io"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	json "github.com/nikkolasg/hexjson"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.dedis.ch/elgamal/elgamal"
	"go.dedis.ch/elgamal/group"
	"go.dedis.ch/elgamal/log"
	"go.dedis.ch/elgamal/metrics"
)

// Server serves the elgamal encrypt/decrypt/prove/verify operations of a
// single PrivateKey over HTTP.
type Server struct {
	suite *group.Suite
	priv  *elgamal.PrivateKey
	log   log.Logger
}

// New builds a Server over priv.
func New(suite *group.Suite, priv *elgamal.PrivateKey, l log.Logger) *Server {
	return &Server{suite: suite, priv: priv, log: l}
}

// Handler returns the http.Handler serving this Server's routes, wrapped
// in request-ID assignment and combined access logging, the same layering
// the teacher applies in cmd/relay/main.go.
func (s *Server) Handler(accessLog io.Writer) http.Handler {
	mux := chi.NewMux()
	mux.Use(requestID)
	mux.Get("/public-key", s.getPublicKey)
	mux.Post("/encrypt", s.encrypt)
	mux.Post("/decrypt", s.decrypt)
	mux.Post("/rerandomize", s.rerandomize)
	mux.Post("/prove", s.prove)
	mux.Post("/verify", s.verify)
	mux.Post("/verify-batch", s.verifyBatch)
	mux.Handle("/metrics", promhttp.Handler())

	return handlers.CombinedLoggingHandler(accessLog, mux)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", uuid.New().String())
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, l log.Logger, status int, err error) {
	l.Warnw("", "httpapi", "request failed", "err", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) getPublicKey(w http.ResponseWriter, r *http.Request) {
	b, err := s.priv.PublicKey().Marshal(s.suite, elgamal.ModeHex)
	if err != nil {
		writeError(w, s.log, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

type encryptRequest struct {
	Plaintext int64 `json:"plaintext"`
	Zkp       bool  `json:"zkp"`
}

func (s *Server) encrypt(w http.ResponseWriter, r *http.Request) {
	var req encryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.log, http.StatusBadRequest, elgamal.ErrDecodeError)
		return
	}

	pub := s.priv.PublicKey()
	if req.Zkp {
		c, zkp, err := pub.EncWithZkp(s.suite, int(req.Plaintext))
		if err != nil {
			writeError(w, s.log, http.StatusBadRequest, err)
			return
		}
		cb, err := c.Marshal(s.suite, elgamal.ModeHex)
		if err != nil {
			writeError(w, s.log, http.StatusInternalServerError, err)
			return
		}
		zb, err := zkp.Marshal(s.suite, elgamal.ModeHex)
		if err != nil {
			writeError(w, s.log, http.StatusInternalServerError, err)
			return
		}
		metrics.EncryptTotal.WithLabelValues("true").Inc()
		writeJSON(w, http.StatusOK, map[string]json.RawMessage{
			"ciphertext": json.RawMessage(cb),
			"proof":      json.RawMessage(zb),
		})
		return
	}

	c := pub.Enc(s.suite, req.Plaintext)
	cb, err := c.Marshal(s.suite, elgamal.ModeHex)
	if err != nil {
		writeError(w, s.log, http.StatusInternalServerError, err)
		return
	}
	metrics.EncryptTotal.WithLabelValues("false").Inc()
	writeJSON(w, http.StatusOK, map[string]json.RawMessage{"ciphertext": json.RawMessage(cb)})
}

type decryptRequest struct {
	Ciphertext json.RawMessage `json:"ciphertext"`
	Limit      int             `json:"limit"`
	UseCache   bool            `json:"useCache"`
}

func (s *Server) decrypt(w http.ResponseWriter, r *http.Request) {
	var req decryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.log, http.StatusBadRequest, elgamal.ErrDecodeError)
		return
	}

	var c elgamal.CipherText
	if err := c.Unmarshal(s.suite, req.Ciphertext, elgamal.ModeHex); err != nil {
		writeError(w, s.log, http.StatusBadRequest, err)
		return
	}

	if req.UseCache {
		m, err := s.priv.DecCache(s.suite, &c)
		if err != nil {
			metrics.DecryptTotal.WithLabelValues("cache").Inc()
			writeError(w, s.log, http.StatusNotFound, err)
			return
		}
		metrics.DecryptTotal.WithLabelValues("cache").Inc()
		writeJSON(w, http.StatusOK, map[string]int64{"plaintext": m})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 100000
	}
	m, err := s.priv.Dec(s.suite, &c, limit)
	metrics.DecryptTotal.WithLabelValues("bruteforce").Inc()
	if err != nil {
		writeError(w, s.log, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"plaintext": m})
}

type ciphertextRequest struct {
	Ciphertext json.RawMessage `json:"ciphertext"`
}

func (s *Server) rerandomize(w http.ResponseWriter, r *http.Request) {
	var req ciphertextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.log, http.StatusBadRequest, elgamal.ErrDecodeError)
		return
	}
	var c elgamal.CipherText
	if err := c.Unmarshal(s.suite, req.Ciphertext, elgamal.ModeHex); err != nil {
		writeError(w, s.log, http.StatusBadRequest, err)
		return
	}

	s.priv.PublicKey().Rerandomize(s.suite, &c)
	cb, err := c.Marshal(s.suite, elgamal.ModeHex)
	if err != nil {
		writeError(w, s.log, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]json.RawMessage{"ciphertext": json.RawMessage(cb)})
}

type proveRequest struct {
	Bit int `json:"bit"`
}

func (s *Server) prove(w http.ResponseWriter, r *http.Request) {
	var req proveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.log, http.StatusBadRequest, elgamal.ErrDecodeError)
		return
	}

	c, zkp, err := s.priv.PublicKey().EncWithZkp(s.suite, req.Bit)
	if err != nil {
		writeError(w, s.log, http.StatusBadRequest, err)
		return
	}
	cb, err := c.Marshal(s.suite, elgamal.ModeHex)
	if err != nil {
		writeError(w, s.log, http.StatusInternalServerError, err)
		return
	}
	zb, err := zkp.Marshal(s.suite, elgamal.ModeHex)
	if err != nil {
		writeError(w, s.log, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]json.RawMessage{
		"ciphertext": json.RawMessage(cb),
		"proof":      json.RawMessage(zb),
	})
}

type verifyRequest struct {
	Ciphertext json.RawMessage `json:"ciphertext"`
	Proof      json.RawMessage `json:"proof"`
}

func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.log, http.StatusBadRequest, elgamal.ErrDecodeError)
		return
	}

	var c elgamal.CipherText
	if err := c.Unmarshal(s.suite, req.Ciphertext, elgamal.ModeHex); err != nil {
		writeError(w, s.log, http.StatusBadRequest, err)
		return
	}
	var zkp elgamal.Zkp
	if err := zkp.Unmarshal(s.suite, req.Proof, elgamal.ModeHex); err != nil {
		writeError(w, s.log, http.StatusBadRequest, err)
		return
	}

	ok := s.priv.PublicKey().Verify(s.suite, &c, &zkp)
	if ok {
		metrics.ProofVerifyTotal.WithLabelValues("valid").Inc()
	} else {
		metrics.ProofVerifyTotal.WithLabelValues("invalid").Inc()
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": ok})
}

func (s *Server) verifyBatch(w http.ResponseWriter, r *http.Request) {
	var req []verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.log, http.StatusBadRequest, elgamal.ErrDecodeError)
		return
	}

	batch := make([]elgamal.Batch, len(req))
	for i, item := range req {
		var c elgamal.CipherText
		if err := c.Unmarshal(s.suite, item.Ciphertext, elgamal.ModeHex); err != nil {
			writeError(w, s.log, http.StatusBadRequest, err)
			return
		}
		var zkp elgamal.Zkp
		if err := zkp.Unmarshal(s.suite, item.Proof, elgamal.ModeHex); err != nil {
			writeError(w, s.log, http.StatusBadRequest, err)
			return
		}
		batch[i] = elgamal.Batch{Cipher: &c, Proof: &zkp}
	}

	err := s.priv.PublicKey().VerifyBatch(s.suite, batch)
	if err != nil {
		metrics.ProofVerifyTotal.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusOK, map[string]interface{}{"valid": false, "error": err.Error()})
		return
	}
	metrics.ProofVerifyTotal.WithLabelValues("valid").Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}
