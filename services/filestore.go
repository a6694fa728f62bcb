package services

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rooluDev/goboard/apperr"
)

// Upload limits.
const (
	// MaxFileSize is the per-file byte cap (2 MiB).
	MaxFileSize = 2 * 1024 * 1024
	// MaxFileCount is the per-post attachment cap.
	MaxFileCount = 3
	// WebPath is the storage sub-path recorded on attachment rows.
	WebPath = "/uploads"
)

var allowedExtensions = map[string]struct{}{
	"jpg": {},
	"png": {},
	"pdf": {},
}

// Store handles physical attachment bytes. Names are globally unique, so
// concurrent writers never collide and overwrite semantics never matter.
type Store interface {
	// ValidateCandidate extracts and lower-cases the extension of
	// originalName and checks it and the declared size against the limits.
	ValidateCandidate(originalName string, size int64) (string, error)
	// ValidateCount enforces the cap against the post-operation total.
	ValidateCount(total int) error
	// GeneratePhysicalName returns a collision-free on-disk name for ext.
	GeneratePhysicalName(ext string) string
	// Save copies the stream to disk under the physical name.
	Save(r io.Reader, physicalName string) error
	// Delete removes the physical file. Idempotent and best-effort: a
	// missing file is a success and OS failures are logged and swallowed.
	Delete(physicalName string)
	// Open returns the file content and its size for download.
	Open(physicalName string) (io.ReadCloser, int64, error)
}

// LocalStore stores attachment bytes under a single root directory.
type LocalStore struct {
	root string
	log  *zap.SugaredLogger
}

// NewLocalStore returns a Store rooted at dir.
func NewLocalStore(dir string, logger *zap.SugaredLogger) *LocalStore {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &LocalStore{root: dir, log: logger}
}

// Root returns the upload root directory.
func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) ValidateCandidate(originalName string, size int64) (string, error) {
	ext, err := fileExtension(originalName)
	if err != nil {
		return "", err
	}
	if _, ok := allowedExtensions[ext]; !ok {
		return "", apperr.Newf(apperr.KindFileUpload,
			"file extension %q is not allowed (jpg, png, pdf only)", ext)
	}
	if size <= 0 {
		return "", apperr.New(apperr.KindFileUpload, "file is empty")
	}
	if size > MaxFileSize {
		return "", apperr.Newf(apperr.KindFileUpload,
			"file exceeds the %d MB size limit", MaxFileSize/1024/1024)
	}
	return ext, nil
}

func (s *LocalStore) ValidateCount(total int) error {
	if total > MaxFileCount {
		return apperr.Newf(apperr.KindFileUpload,
			"at most %d attachments are allowed per post", MaxFileCount)
	}
	return nil
}

func (s *LocalStore) GeneratePhysicalName(ext string) string {
	return uuid.NewString() + "." + strings.ToLower(ext)
}

func (s *LocalStore) Save(r io.Reader, physicalName string) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return apperr.Wrap(apperr.KindStorageIO, "create upload directory", err)
	}
	dst := filepath.Join(s.root, physicalName)
	out, err := os.Create(dst)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageIO, "create attachment file", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return apperr.Wrap(apperr.KindStorageIO, "write attachment file", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return apperr.Wrap(apperr.KindStorageIO, "flush attachment file", err)
	}
	return nil
}

func (s *LocalStore) Delete(physicalName string) {
	if physicalName == "" {
		return
	}
	err := os.Remove(filepath.Join(s.root, physicalName))
	if err != nil && !os.IsNotExist(err) {
		// Physical cleanup is non-fatal; the rows are authoritative.
		s.log.Warnw("failed to delete physical file", "name", physicalName, "error", err)
	}
}

func (s *LocalStore) Open(physicalName string) (io.ReadCloser, int64, error) {
	path := filepath.Join(s.root, physicalName)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, apperr.New(apperr.KindNotFound, "attachment file not found")
		}
		return nil, 0, apperr.Wrap(apperr.KindStorageIO, "stat attachment file", err)
	}
	if info.IsDir() {
		return nil, 0, apperr.New(apperr.KindNotFound, "attachment file not found")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindStorageIO, "open attachment file", err)
	}
	return f, info.Size(), nil
}

// fileExtension extracts the lower-cased extension without the dot.
func fileExtension(name string) (string, error) {
	if name == "" {
		return "", apperr.New(apperr.KindFileUpload, "file name is missing")
	}
	idx := strings.LastIndex(name, ".")
	if idx == -1 || idx == len(name)-1 {
		return "", apperr.New(apperr.KindFileUpload, "file has no extension")
	}
	return strings.ToLower(name[idx+1:]), nil
}
