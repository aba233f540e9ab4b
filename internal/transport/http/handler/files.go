package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	fileapp "github.com/medilink-notifier/internal/application/file"
	"github.com/medilink-notifier/internal/pkg/logger"
)

// multipart parts beyond this are spilled to temp files by net/http.
const maxMemory = 32 << 20

// FileHandler handles patient file uploads and public downloads.
type FileHandler struct {
	svc fileapp.Service
}

func NewFileHandler(svc fileapp.Service) *FileHandler { return &FileHandler{svc: svc} }

// Upload godoc
// @Summary  Upload patient files (JPEG, PNG or PDF, up to 10 files of 10MB)
// @Tags     files
// @Accept   multipart/form-data
// @Produce  json
// @Param    patientId path     string true "patient id"
// @Param    files     formData file   true "files"
// @Success  201 {object} DataEnvelope
// @Failure  400 {object} MessageEnvelope
// @Failure  500 {object} MessageEnvelope
// @Router   /api/v1/patients/{patientId}/files [post]
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(fileapp.MaxFiles)*fileapp.MaxFileSize+maxMemory)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var headers []*multipart.FileHeader
	headers = append(headers, r.MultipartForm.File["files"]...)
	headers = append(headers, r.MultipartForm.File["file"]...)
	inputs := make([]fileapp.FileInput, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unreadable file "+fh.Filename)
			return
		}
		defer f.Close()
		inputs = append(inputs, fileapp.FileInput{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: contentType(fh),
			Size:        fh.Size,
		})
	}

	files, err := h.svc.Upload(r.Context(), fileapp.UploadInput{
		PatientID: chi.URLParam(r, "patientId"),
		Files:     inputs,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, DataEnvelope{Status: statusSuccess, Data: files})
}

// Metadata godoc
// @Summary  Get the metadata of an uploaded file
// @Tags     files
// @Produce  json
// @Param    fileId path string true "file id"
// @Success  200 {object} DataEnvelope
// @Failure  404 {object} MessageEnvelope
// @Router   /api/v1/files/{fileId} [get]
func (h *FileHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.Get(r.Context(), chi.URLParam(r, "fileId"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Status: statusSuccess, Data: f})
}

// Download streams a stored upload for GET /uploads/*.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	obj, err := h.svc.Open(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		httpError(w, err)
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	if obj.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj.Body); err != nil {
		logger.Log.Warnw("upload stream interrupted", "path", r.URL.Path, "error", err)
	}
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
