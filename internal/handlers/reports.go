// Package handlers provides HTTP handlers for the credit report analyzer.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/extractor"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/models"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/services/database"
	s3service "github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/services/s3"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/utils"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/xmltree"
)

// Response represents a standard API response.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ListResult is the payload for the report listing endpoint.
type ListResult struct {
	Count       int                    `json:"count"`
	Total       int                    `json:"total"`
	TotalPages  int                    `json:"totalPages"`
	CurrentPage int                    `json:"currentPage"`
	Data        []*models.CreditReport `json:"data"`
}

// PresignedURLRequest represents the request for a presigned upload URL.
type PresignedURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// Handler holds the dependencies for all report endpoints.
type Handler struct {
	repo           *database.ReportRepository
	db             *database.DB
	archive        *s3service.Service
	maxUploadBytes int64
}

// NewHandler creates a new report handler. archive may be nil when no S3
// bucket is configured.
func NewHandler(db *database.DB, repo *database.ReportRepository, archive *s3service.Service, maxUploadMB int64) *Handler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &Handler{
		repo:           repo,
		db:             db,
		archive:        archive,
		maxUploadBytes: maxUploadMB << 20,
	}
}

// Routes registers all endpoints on the given mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/api/upload", h.Upload)
	mux.HandleFunc("/api/creditreports", h.List)
	mux.HandleFunc("/api/creditreports/search", h.Search)
	mux.HandleFunc("/api/creditreports/", h.ReportByID)
	mux.HandleFunc("/api/statistics", h.Statistics)
	mux.HandleFunc("/api/presigned-url", h.PresignedURL)
}

// Health reports service and database status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "disconnected"
	if h.db != nil {
		if err := h.db.HealthCheck(r.Context()); err == nil {
			dbStatus = "connected"
		}
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Credit Report Analyzer API is running",
		Data: map[string]interface{}{
			"status":    "healthy",
			"database":  dbStatus,
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// Upload accepts a multipart XML report upload, runs the extraction
// pipeline, and persists the normalized record. The raw file is read once
// into memory and, when archiving is configured, copied to S3 after the
// record is stored; nothing is written on a failed extraction.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	logger := utils.GetLogger()

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Failed to parse upload form: " + err.Error(),
		})
		return
	}

	file, header, err := r.FormFile("xmlFile")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "No file uploaded. Please upload an XML file.",
		})
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xml") {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Only XML files are allowed",
		})
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to read file",
		})
		return
	}
	if int64(len(content)) > h.maxUploadBytes {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   fmt.Sprintf("File exceeds the %d MB upload limit", h.maxUploadBytes>>20),
		})
		return
	}

	logger.Info("Processing report upload",
		utils.String("fileName", header.Filename),
		utils.Int64("bytes", header.Size))

	report, err := extractor.Extract(content, header.Filename)
	if err != nil {
		logger.Warn("Extraction failed",
			utils.String("fileName", header.Filename),
			utils.Error(err))
		writeJSON(w, extractionStatus(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	id, err := h.repo.Create(r.Context(), report)
	if err != nil {
		logger.Error("Failed to store report", utils.Error(err))
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Error processing file",
		})
		return
	}

	if h.archive != nil {
		key := id + "_" + header.Filename
		if err := h.archive.ArchiveReport(r.Context(), key, content); err != nil {
			logger.Warn("Failed to archive raw report", utils.Error(err))
		}
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "File uploaded and processed successfully",
		Data:    report,
	})
}

// List returns stored reports with pagination and sorting.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	opts := database.ListOptions{
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 10),
		SortBy: queryDefault(r, "sortBy", "uploadDate"),
		Order:  queryDefault(r, "order", "desc"),
	}

	reports, total, err := h.repo.List(r.Context(), opts)
	if err != nil {
		utils.GetLogger().Error("Failed to list reports", utils.Error(err))
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Error fetching reports",
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: ListResult{
			Count:       len(reports),
			Total:       total,
			TotalPages:  int(math.Ceil(float64(total) / float64(opts.Limit))),
			CurrentPage: opts.Page,
			Data:        reports,
		},
	})
}

// Search finds reports by applicant name, PAN, or mobile.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	reports, err := h.repo.Search(r.Context(), r.URL.Query().Get("query"))
	if errors.Is(err, models.ErrEmptySearchQuery) {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}
	if err != nil {
		utils.GetLogger().Error("Failed to search reports", utils.Error(err))
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Error searching reports",
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"count": len(reports),
			"data":  reports,
		},
	})
}

// ReportByID fetches or deletes a single report, depending on method.
func (h *Handler) ReportByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/creditreports/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	var report *models.CreditReport
	var err error
	var message string

	switch r.Method {
	case http.MethodGet:
		report, err = h.repo.GetByID(r.Context(), id)
	case http.MethodDelete:
		report, err = h.repo.Delete(r.Context(), id)
		message = "Report deleted successfully"
	default:
		writeMethodNotAllowed(w)
		return
	}

	switch {
	case errors.Is(err, models.ErrInvalidReportID):
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case errors.Is(err, models.ErrReportNotFound):
		writeJSON(w, http.StatusNotFound, Response{Success: false, Error: err.Error()})
	case err != nil:
		utils.GetLogger().Error("Report operation failed",
			utils.String("id", id),
			utils.Error(err))
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Error fetching report",
		})
	default:
		writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: report})
	}
}

// Statistics returns the aggregate view over all stored reports.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	stats, err := h.repo.Statistics(r.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to compute statistics", utils.Error(err))
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Error fetching statistics",
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// PresignedURL returns a presigned S3 PUT URL for large report uploads.
// Available only when an archive bucket is configured.
func (h *Handler) PresignedURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	if h.archive == nil {
		writeJSON(w, http.StatusNotImplemented, Response{
			Success: false,
			Error:   "No upload bucket configured",
		})
		return
	}

	var req PresignedURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/xml"
	}

	key := "uploads/" + uuid.New().String() + "_" + req.Filename
	result, err := h.archive.GeneratePresignedUploadURL(r.Context(), key, contentType, 15)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to generate presigned URL",
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// extractionStatus maps pipeline errors to HTTP statuses: malformed input
// and unextractable identity are client errors, everything else is a 500.
func extractionStatus(err error) int {
	if errors.Is(err, xmltree.ErrMalformed) ||
		errors.Is(err, extractor.ErrNotBureauReport) ||
		errors.Is(err, models.ErrMissingName) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, Response{
		Success: false,
		Error:   "Method not allowed",
	})
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

func queryDefault(r *http.Request, key, defaultVal string) string {
	if value := r.URL.Query().Get(key); value != "" {
		return value
	}
	return defaultVal
}
