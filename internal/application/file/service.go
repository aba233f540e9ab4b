package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/medilink-notifier/internal/domain"
	s3infra "github.com/medilink-notifier/internal/infrastructure/s3"
	"github.com/medilink-notifier/internal/pkg/id"
	"github.com/medilink-notifier/internal/pkg/logger"
)

const (
	MaxFiles    = 10
	MaxFileSize = 10 << 20

	keyPrefix = "patient-files"
	urlPrefix = "/uploads/"
)

var allowedTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

type FileInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

type UploadInput struct {
	PatientID string
	Files     []FileInput
}

type Service interface {
	Upload(ctx context.Context, input UploadInput) ([]*domain.MedicalFile, error)
	Open(ctx context.Context, key string) (*s3infra.Object, error)
	Get(ctx context.Context, fileID string) (*domain.MedicalFile, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (*s3infra.Object, error)
	Delete(ctx context.Context, key string) error
}

type fileStore interface {
	Put(ctx context.Context, f *domain.MedicalFile) error
	Get(ctx context.Context, fileID string) (*domain.MedicalFile, error)
	Delete(ctx context.Context, fileID string) error
}

type ServiceDeps struct {
	Objects objectStore
	Files   fileStore
	Now     func() time.Time
}

type service struct {
	objects objectStore
	files   fileStore
	now     func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{objects: deps.Objects, files: deps.Files, now: deps.Now}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Upload validates the whole batch before writing anything, then stores each
// file and its metadata record in order. A failure part way through removes
// the files already stored so the batch is all or nothing.
func (s *service) Upload(ctx context.Context, input UploadInput) ([]*domain.MedicalFile, error) {
	if strings.TrimSpace(input.PatientID) == "" {
		return nil, fmt.Errorf("patientId is required: %w", domain.ErrMissingInput)
	}
	if len(input.Files) == 0 {
		return nil, fmt.Errorf("no file uploaded: %w", domain.ErrMissingInput)
	}
	if len(input.Files) > MaxFiles {
		return nil, fmt.Errorf("too many files, at most %d allowed: %w", MaxFiles, domain.ErrBadRequest)
	}
	for _, f := range input.Files {
		if !allowedTypes[strings.ToLower(f.ContentType)] {
			return nil, fmt.Errorf("invalid file type, only JPEG, PNG and PDF are allowed: %w", domain.ErrBadRequest)
		}
		if f.Size > MaxFileSize {
			return nil, fmt.Errorf("file %s exceeds the 10MB limit: %w", path.Base(f.Filename), domain.ErrBadRequest)
		}
	}
	if s.objects == nil || s.files == nil {
		return nil, fmt.Errorf("file storage: %w", domain.ErrProviderNotInitialized)
	}

	out := make([]*domain.MedicalFile, 0, len(input.Files))
	for _, f := range input.Files {
		mf, err := s.store(ctx, input.PatientID, f)
		if err != nil {
			s.rollback(ctx, out)
			return nil, err
		}
		out = append(out, mf)
	}
	return out, nil
}

func (s *service) store(ctx context.Context, patientID string, in FileInput) (*domain.MedicalFile, error) {
	now := s.now().UTC()
	safeName := sanitizeFilename(in.Filename)
	key := fmt.Sprintf("%s/%s/%d-%s", keyPrefix, sanitizeFilename(patientID), now.UnixMilli(), safeName)

	hasher := sha256.New()
	if err := s.objects.Upload(ctx, key, io.TeeReader(in.Reader, hasher), in.Size, in.ContentType); err != nil {
		return nil, fmt.Errorf("upload %s: %v: %w", safeName, err, domain.ErrUnexpected)
	}

	mf := &domain.MedicalFile{
		FileID:    id.NewAt(now),
		PatientID: patientID,
		Object:    key,
		Name:      safeName,
		Type:      strings.ToLower(in.ContentType),
		Size:      in.Size,
		Hash:      hex.EncodeToString(hasher.Sum(nil)),
		URL:       urlPrefix + key,
		CreatedAt: now,
	}
	if err := s.files.Put(ctx, mf); err != nil {
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			logger.Log.Warnw("orphaned upload", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("save file metadata: %v: %w", err, domain.ErrUnexpected)
	}
	logger.Log.Infow("patient file stored", "patient_id", patientID, "key", key, "size", in.Size)
	return mf, nil
}

func (s *service) rollback(ctx context.Context, stored []*domain.MedicalFile) {
	for _, mf := range stored {
		if err := s.files.Delete(ctx, mf.FileID); err != nil {
			logger.Log.Warnw("rollback file metadata", "file_id", mf.FileID, "error", err)
		}
		if err := s.objects.Delete(ctx, mf.Object); err != nil {
			logger.Log.Warnw("orphaned upload", "key", mf.Object, "error", err)
		}
	}
}

func (s *service) Open(ctx context.Context, key string) (*s3infra.Object, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return nil, fmt.Errorf("file not found: %w", domain.ErrNotFound)
	}
	if s.objects == nil {
		return nil, fmt.Errorf("file storage: %w", domain.ErrProviderNotInitialized)
	}
	return s.objects.Download(ctx, key)
}

// Get returns the metadata record of an uploaded file.
func (s *service) Get(ctx context.Context, fileID string) (*domain.MedicalFile, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, fmt.Errorf("file id is required: %w", domain.ErrMissingInput)
	}
	if s.files == nil {
		return nil, fmt.Errorf("file storage: %w", domain.ErrProviderNotInitialized)
	}
	return s.files.Get(ctx, fileID)
}

// sanitizeFilename strips directory components and keeps only alphanumerics,
// dot, dash and underscore so names are safe inside object keys.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if result := b.String(); result != "" && result != "." && result != ".." {
		return result
	}
	return "_"
}
