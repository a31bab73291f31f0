package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/saranrapjs/edgar-parser/pkg/db"
	"github.com/saranrapjs/edgar-parser/pkg/decode"
	"github.com/saranrapjs/edgar-parser/pkg/edgar"
	"github.com/saranrapjs/edgar-parser/pkg/filings"
)

// maxBodySize bounds POSTed documents; large 13F information tables run to
// tens of megabytes.
const maxBodySize = 64 << 20

type Server struct {
	db      *db.DB
	fetcher *filings.Fetcher
	log     *zap.Logger
}

func NewServer(database *db.DB, client *edgar.EdgarClient, cacheMaxAge time.Duration, log *zap.Logger) *Server {
	return &Server{
		db:      database,
		fetcher: filings.NewFetcher(database, client, cacheMaxAge, log),
		log:     log,
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	for _, kind := range []edgar.Kind{edgar.KindXBRL, edgar.Kind13F, edgar.Kind13FTable, edgar.KindOwnership} {
		mux.HandleFunc("POST /decode/"+string(kind), s.handleDecode(kind))
	}
	mux.HandleFunc("GET /filings/{cik}", s.handleCached)
	mux.HandleFunc("GET /filings/{cik}/{accession}/{document}", s.handleFiling)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// handleDecode handles POST /decode/{kind}; the request body is the XML.
func (s *Server) handleDecode(kind edgar.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				s.writeError(w, http.StatusRequestEntityTooLarge, err)
				return
			}
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		s.decode(w, kind, data)
	}
}

// handleFiling handles GET /filings/{cik}/{accession}/{document}. Without a
// kind query parameter the decoder follows the filing's form type.
func (s *Server) handleFiling(w http.ResponseWriter, r *http.Request) {
	cik := r.PathValue("cik")
	accession := r.PathValue("accession")
	document := r.PathValue("document")

	filing := edgar.Filing{CIK: cik, AccessionNumber: accession}
	var (
		kind edgar.Kind
		err  error
	)
	if q := r.URL.Query().Get("kind"); q != "" {
		if kind, err = edgar.ParseKind(q); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	} else {
		filing, err = s.fetcher.Filing(r.Context(), cik, "", accession)
		if errors.Is(err, filings.ErrFilingNotFound) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			s.log.Error("Failed to load submissions", zap.String("cik", cik), zap.Error(err))
			s.writeError(w, http.StatusBadGateway, err)
			return
		}
		kind = filing.Kind()
	}

	data, err := s.fetcher.Document(r.Context(), filing, document)
	if err != nil {
		s.log.Error("Failed to fetch document",
			zap.String("cik", cik),
			zap.String("accession", accession),
			zap.String("document", document),
			zap.Error(err),
		)
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.decode(w, kind, data)
}

// handleCached handles GET /filings/{cik}, listing the documents cached for
// a company.
func (s *Server) handleCached(w http.ResponseWriter, r *http.Request) {
	docs, err := s.db.ListDocuments(r.PathValue("cik"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to list documents: %w", err))
		return
	}

	type item struct {
		Accession string `json:"accessionNumber"`
		Document  string `json:"document"`
		Form      string `json:"form"`
		URL       string `json:"url"`
	}
	items := make([]item, 0, len(docs))
	for _, d := range docs {
		items = append(items, item{
			Accession: d.AccessionNumber,
			Document:  d.Name,
			Form:      d.Form,
			URL:       edgar.DocumentURL(d.CIK, d.AccessionNumber, d.Name),
		})
	}
	s.writeJSON(w, http.StatusOK, items)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) decode(w http.ResponseWriter, kind edgar.Kind, data []byte) {
	text, err := edgar.DecodeText(data)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	doc, err := decode.Document(kind, text, s.log)
	if err != nil {
		s.log.Debug("Failed to decode document", zap.String("kind", string(kind)), zap.Error(err))
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("Failed to encode response", zap.Int("status", status), zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
