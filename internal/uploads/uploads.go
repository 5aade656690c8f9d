// Package uploads stores profile images on the local filesystem and maps
// them to public URLs.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/uservault/backend/internal/config"
	"github.com/uservault/backend/internal/utils"
)

// imageTypeExtensions whitelists the accepted image content types and the
// extension each is stored under.
var imageTypeExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
	"image/avif": "avif",
}

// Store writes uploaded images into a directory and serves them under a
// public URL prefix.
type Store struct {
	dir     string
	baseURL string
	maxSize int64
}

// NewStore creates the upload directory if needed and returns a Store
func NewStore(cfg *config.UploadSettings) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &Store{
		dir:     cfg.Dir,
		baseURL: cfg.BaseURL,
		maxSize: cfg.MaxSize,
	}, nil
}

// Dir returns the filesystem directory images are written to
func (s *Store) Dir() string {
	return s.dir
}

// Save validates and persists an uploaded image, returning the stored
// filename. Names are prefixed with a millisecond timestamp so repeated
// uploads of the same file never collide.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if s.maxSize > 0 && header.Size > s.maxSize {
		return "", utils.NewBadRequestError(fmt.Sprintf("Image exceeds the maximum size of %d bytes", s.maxSize))
	}

	contentType, err := detectContentType(file, header)
	if err != nil {
		return "", err
	}

	if _, ok := imageTypeExtensions[contentType]; !ok {
		return "", utils.NewBadRequestError("Invalid image type")
	}

	filename := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), sanitizeFilename(header.Filename))

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", utils.NewInternalServerError(fmt.Errorf("failed to create image file: %w", err))
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", utils.NewInternalServerError(fmt.Errorf("failed to write image file: %w", err))
	}

	log.Info().
		Str("filename", filename).
		Str("content_type", contentType).
		Int64("size", header.Size).
		Msg("Profile image stored")

	return filename, nil
}

// Remove deletes a stored image. A missing file is not an error; the record
// may point at an image that was already cleaned up.
func (s *Store) Remove(filename string) error {
	if filename == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, filepath.Base(filename)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}

// PublicURL returns the URL path a stored filename is served under
func (s *Store) PublicURL(filename string) string {
	if filename == "" {
		return ""
	}
	return path.Join(s.baseURL, filename)
}

// detectContentType prefers the declared part header but falls back to
// sniffing the first bytes. The reader is rewound afterwards.
func detectContentType(file multipart.File, header *multipart.FileHeader) (string, error) {
	declared := header.Header.Get("Content-Type")
	if declared != "" {
		if _, ok := imageTypeExtensions[declared]; ok {
			return declared, nil
		}
	}

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", utils.NewInternalServerError(fmt.Errorf("failed to read image: %w", err))
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", utils.NewInternalServerError(fmt.Errorf("failed to rewind image: %w", err))
	}

	sniffed := http.DetectContentType(buf[:n])
	if declared != "" && sniffed != declared {
		return declared, nil
	}
	return sniffed, nil
}

// sanitizeFilename strips path components and replaces whitespace so the
// stored name is safe to serve.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "-")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "image"
	}
	return name
}
