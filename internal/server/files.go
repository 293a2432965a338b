package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"caseflow/internal/fileservice"
	"caseflow/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

var formDecoder = form.NewDecoder()

// FileServer serves the file-attachment lifecycle REST interface.
type FileServer struct {
	logger *logrus.Logger
	config *types.Config
	files  *fileservice.Service

	server *http.Server
}

func NewFileServer(config *types.Config, logger *logrus.Logger, files *fileservice.Service) *FileServer {
	mux := flow.New()

	s := &FileServer{
		logger: logger,
		config: config,
		files:  files,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           cors.AllowAll().Handler(mux),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s
}

func (s *FileServer) Start() error {
	return s.server.ListenAndServe()
}

func (s *FileServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the route tree for tests.
func (s *FileServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *FileServer) buildRouter(r *flow.Mux) {
	r.Use(stripTrailingSlash)
	r.Use(loggingMiddleware(s.logger))

	r.HandleFunc("/file/upload", s.handleUpload, http.MethodPost)
	r.HandleFunc("/file/content/:docID", s.handleGetContent, http.MethodGet)
	r.HandleFunc("/file/case/:caseID", s.handleListByCase, http.MethodGet)
	r.HandleFunc("/file/finalize", s.handleFinalize, http.MethodPost)
	r.HandleFunc("/file/:id", s.handleDelete, http.MethodDelete)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
}

func (s *FileServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		respondError(w, s.logger, fmt.Errorf("%w: invalid multipart form", types.ErrValidation))
		return
	}

	var uploadForm types.UploadForm
	if err := formDecoder.Decode(&uploadForm, url.Values(r.MultipartForm.Value)); err != nil {
		respondError(w, s.logger, fmt.Errorf("%w: %s", types.ErrValidation, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, s.logger, fmt.Errorf("%w: file field is required", types.ErrValidation))
		return
	}
	defer file.Close()

	// The whole payload is read before anything is persisted.
	content, err := io.ReadAll(file)
	if err != nil {
		respondError(w, s.logger, fmt.Errorf("read upload: %w", err))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := s.files.UploadFile(r.Context(), fileservice.UploadInput{
		Content:     content,
		CaseID:      uploadForm.CaseID,
		FileName:    header.Filename,
		ContentType: contentType,
		UploadedBy:  uploadForm.UploadedBy,
	})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *FileServer) handleGetContent(w http.ResponseWriter, r *http.Request) {
	docID, err := pathID(r, "docID")
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	content, err := s.files.GetDocument(r.Context(), docID)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

func (s *FileServer) handleListByCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathID(r, "caseID")
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	files, err := s.files.FilesByCase(r.Context(), caseID)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, files)
}

func (s *FileServer) handleFinalize(w http.ResponseWriter, r *http.Request) {
	var req types.FinalizeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, s.logger, err)
		return
	}

	if err := s.files.FinalizeFiles(r.Context(), req.CaseID); err != nil {
		respondError(w, s.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Files updated to FINAL"))
}

func (s *FileServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	if err := s.files.DeleteFile(r.Context(), id); err != nil {
		respondError(w, s.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *FileServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := flow.Param(r.Context(), name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", types.ErrValidation, name)
	}

	return id, nil
}
