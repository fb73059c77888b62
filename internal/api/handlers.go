package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/maltedev/wheel-listing-scraper/internal/models"
	"github.com/maltedev/wheel-listing-scraper/internal/scraper"
)

// maxRequestBytes bounds request bodies, which may carry a whole page.
const maxRequestBytes = 8 << 20

type Handlers struct {
	scraper *scraper.Service
	logger  *slog.Logger
}

func NewHandlers(scraper *scraper.Service, logger *slog.Logger) *Handlers {
	return &Handlers{
		scraper: scraper,
		logger:  logger.With("component", "api"),
	}
}

// ExtractRequest names the listing page to process.
type ExtractRequest struct {
	URL string `json:"url"`
}

// ExtractListing runs the full pipeline over a remote listing page.
func (h *Handlers) ExtractListing(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := scraper.ValidateURL(req.URL); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, h.scraper.Run(r.Context(), req.URL))
}

// ParseRequest carries page markup fetched by the caller.
type ParseRequest struct {
	HTML string `json:"html"`
}

// ParseListing runs the pipeline over supplied markup without fetching.
func (h *Handlers) ParseListing(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.HTML == "" {
		h.respondError(w, http.StatusBadRequest, "html is required")
		return
	}

	h.respondJSON(w, http.StatusOK, h.scraper.RunHTML(r.Context(), req.HTML))
}

// SpecsRequest is the listing text the specs are inferred from.
type SpecsRequest struct {
	Title           string `json:"title"`
	DescriptionHTML string `json:"description_html"`
}

func (h *Handlers) ParseSpecs(w http.ResponseWriter, r *http.Request) {
	var req SpecsRequest
	if !h.decode(w, r, &req) {
		return
	}

	specs := h.scraper.ParseSpecs(models.Listing{
		Title:           req.Title,
		DescriptionHTML: req.DescriptionHTML,
	})
	h.respondJSON(w, http.StatusOK, specs)
}

type TitleRequest struct {
	Specs models.Specs `json:"specs"`
}

type TitleResponse struct {
	Title string `json:"title"`
}

func (h *Handlers) GenerateTitle(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.respondJSON(w, http.StatusOK, TitleResponse{Title: h.scraper.Title(req.Specs)})
}

type DescriptionRequest struct {
	Specs       models.Specs `json:"specs"`
	Description string       `json:"description"`
}

type DescriptionResponse struct {
	DescriptionHTML string `json:"description_html"`
}

func (h *Handlers) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	var req DescriptionRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.respondJSON(w, http.StatusOK, DescriptionResponse{
		DescriptionHTML: h.scraper.Description(req.Specs, req.Description),
	})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helper methods
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
