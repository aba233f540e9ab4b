package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	fileapp "github.com/medilink-notifier/internal/application/file"
	"github.com/medilink-notifier/internal/domain"
	s3infra "github.com/medilink-notifier/internal/infrastructure/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFileSvc struct{ mock.Mock }

func (m *mockFileSvc) Upload(ctx context.Context, in fileapp.UploadInput) ([]*domain.MedicalFile, error) {
	args := m.Called(ctx, in)
	if f, _ := args.Get(0).([]*domain.MedicalFile); f != nil {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileSvc) Open(ctx context.Context, key string) (*s3infra.Object, error) {
	args := m.Called(ctx, key)
	if o, _ := args.Get(0).(*s3infra.Object); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileSvc) Get(ctx context.Context, fileID string) (*domain.MedicalFile, error) {
	args := m.Called(ctx, fileID)
	if f, _ := args.Get(0).(*domain.MedicalFile); f != nil {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func multipartRequest(t *testing.T, field, name, contentType, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/v1/patients/p1/files", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return withURLParam(r, "patientId", "p1")
}

func TestUpload_PassesFilesToService(t *testing.T) {
	svc := &mockFileSvc{}
	svc.On("Upload", mock.Anything, mock.MatchedBy(func(in fileapp.UploadInput) bool {
		if in.PatientID != "p1" || len(in.Files) != 1 {
			return false
		}
		f := in.Files[0]
		return f.Filename == "scan.pdf" && f.ContentType == "application/pdf" && f.Size == 4
	})).Return([]*domain.MedicalFile{{FileID: "f1", URL: "/uploads/patient-files/p1/1-scan.pdf"}}, nil)
	h := NewFileHandler(svc)

	rr := httptest.NewRecorder()
	h.Upload(rr, multipartRequest(t, "file", "scan.pdf", "application/pdf", "%PDF"))

	assert.Equal(t, http.StatusCreated, rr.Code)
	body := decodeMap(t, rr)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "/uploads/patient-files/p1/1-scan.pdf", data[0].(map[string]interface{})["url"])
	svc.AssertExpectations(t)
}

func TestUpload_RejectedType(t *testing.T) {
	svc := &mockFileSvc{}
	svc.On("Upload", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("invalid file type, only JPEG, PNG and PDF are allowed: %w", domain.ErrBadRequest))
	h := NewFileHandler(svc)

	rr := httptest.NewRecorder()
	h.Upload(rr, multipartRequest(t, "files", "notes.txt", "text/plain", "hi"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid file type, only JPEG, PNG and PDF are allowed", decodeMessage(t, rr).Message)
}

func TestUpload_NotMultipart(t *testing.T) {
	h := NewFileHandler(&mockFileSvc{})
	rr := httptest.NewRecorder()
	h.Upload(rr, withURLParam(postJSON("/api/v1/patients/p1/files", map[string]string{}), "patientId", "p1"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDownload_Streams(t *testing.T) {
	svc := &mockFileSvc{}
	svc.On("Open", mock.Anything, "patient-files/p1/a.pdf").Return(&s3infra.Object{
		Body:          io.NopCloser(strings.NewReader("%PDF")),
		ContentType:   "application/pdf",
		ContentLength: 4,
	}, nil)
	h := NewFileHandler(svc)

	rr := httptest.NewRecorder()
	h.Download(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/uploads/patient-files/p1/a.pdf", nil), "*", "patient-files/p1/a.pdf"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", rr.Body.String())
}

func TestDownload_Missing(t *testing.T) {
	svc := &mockFileSvc{}
	svc.On("Open", mock.Anything, "nope").Return(nil, fmt.Errorf("object nope: %w", domain.ErrNotFound))
	h := NewFileHandler(svc)

	rr := httptest.NewRecorder()
	h.Download(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/uploads/nope", nil), "*", "nope"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetadata(t *testing.T) {
	svc := &mockFileSvc{}
	svc.On("Get", mock.Anything, "f1").Return(&domain.MedicalFile{FileID: "f1", Name: "scan.pdf"}, nil)
	svc.On("Get", mock.Anything, "f2").Return(nil, fmt.Errorf("file not found: %w", domain.ErrNotFound))
	h := NewFileHandler(svc)

	rr := httptest.NewRecorder()
	h.Metadata(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/files/f1", nil), "fileId", "f1"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "scan.pdf", decodeMap(t, rr)["data"].(map[string]interface{})["name"])

	rr = httptest.NewRecorder()
	h.Metadata(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/files/f2", nil), "fileId", "f2"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "File not found", decodeMessage(t, rr).Message)
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Title and body are required", publicMessage(fmt.Errorf("title and body are required: %w", domain.ErrMissingInput)))
	assert.Equal(t, "Boom", publicMessage(errors.New("boom")))
	assert.Equal(t, "", publicMessage(errors.New("")))
}
