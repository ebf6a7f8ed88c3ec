// Package uploads keeps uploaded document files on local disk under generated names, so two
// uploads with the same original file name never overwrite each other.
package uploads

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"sarvasva/internal/qerrors"
)

var FileTooLargeError = qerrors.NewValidationError("uploaded file is too large")

type Storage struct {
	dir      string
	maxBytes int64
}

// New creates dir if needed. maxBytes <= 0 disables the size limit.
func New(dir string, maxBytes int64) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating upload directory %s", dir)
	}
	return &Storage{dir: dir, maxBytes: maxBytes}, nil
}

// Save copies r into a new file named after originalName's extension and returns the stored
// name and the number of bytes written.
func (s *Storage) Save(originalName string, r io.Reader) (string, int64, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext

	f, err := os.OpenFile(s.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating upload file")
	}

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}

	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = FileTooLargeError
	}
	if err != nil {
		os.Remove(s.path(name))
		return "", 0, err
	}

	return name, n, nil
}

func (s *Storage) Open(name string) (io.ReadCloser, error) {
	return os.Open(s.path(name))
}

// Remove deletes a stored file. Removing a file that does not exist is not an error.
func (s *Storage) Remove(name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// path keeps names inside the upload directory.
func (s *Storage) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
