package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"regexp"
	"slices"
	"strings"
)

// DefaultMaxImageSize is the upload limit for profile images.
const DefaultMaxImageSize int64 = 5 << 20

// File is the metadata of a stored file.
type File struct {
	Key      string
	Size     int64
	MIMEType string
	URL      string
}

// Storage stores files under slash-separated keys.
type Storage interface {
	// Save writes the uploaded file under key, replacing an existing one.
	Save(ctx context.Context, fh *multipart.FileHeader, key string) (*File, error)
	// Delete removes the file. Missing files are ErrFileNotFound.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL of key.
	URL(key string) string
}

// imageExtensions maps the accepted profile image types to their extension.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
}

// GetMIMEType sniffs the first 512 bytes of the file. The client supplied
// Content-Type is ignored.
func GetMIMEType(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	if n == 0 {
		return "", ErrEmptyFile
	}

	mimeType := http.DetectContentType(buf[:n])
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return mimeType, nil
}

// ValidateSize fails with ErrFileTooLarge when the file exceeds maxBytes.
func ValidateSize(fh *multipart.FileHeader, maxBytes int64) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if fh.Size > maxBytes {
		return fmt.Errorf("%w: %d > %d bytes", ErrFileTooLarge, fh.Size, maxBytes)
	}
	return nil
}

// ValidateMIMEType checks the sniffed type against allowed and returns it.
func ValidateMIMEType(fh *multipart.FileHeader, allowed ...string) (string, error) {
	mimeType, err := GetMIMEType(fh)
	if err != nil {
		return "", err
	}
	if !slices.Contains(allowed, mimeType) {
		return "", fmt.Errorf("%w: %s", ErrMIMETypeNotAllowed, mimeType)
	}
	return mimeType, nil
}

// ValidateImage accepts JPEG and PNG files up to maxBytes and returns the
// sniffed MIME type.
func ValidateImage(fh *multipart.FileHeader, maxBytes int64) (string, error) {
	if err := ValidateSize(fh, maxBytes); err != nil {
		return "", err
	}
	if fh.Size == 0 {
		return "", ErrEmptyFile
	}
	return ValidateMIMEType(fh, "image/jpeg", "image/png")
}

// Hash returns the hex SHA-256 of the file contents.
func Hash(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashFile, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

var unsafeSegment = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// ProfileImageKey names an image by owner and content:
// profile-images/<userID>/<sha256>.<ext>. Uploading the same picture twice
// yields the same key.
func ProfileImageKey(userID string, fh *multipart.FileHeader, mimeType string) (string, error) {
	ext, ok := imageExtensions[mimeType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMIMETypeNotAllowed, mimeType)
	}

	owner := unsafeSegment.ReplaceAllString(userID, "")
	if owner == "" {
		return "", fmt.Errorf("%w: empty owner", ErrInvalidPath)
	}

	sum, err := Hash(fh)
	if err != nil {
		return "", err
	}
	return path.Join("profile-images", owner, sum+"."+ext), nil
}

// cleanKey normalizes a storage key and rejects traversal.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(strings.ReplaceAll(key, "\\", "/"), "/")
	if key == "" || slices.Contains(strings.Split(key, "/"), "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return path.Clean(key), nil
}

func classifyContextError(err error, operation string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", ErrOperationTimeout, operation)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s", ErrOperationCanceled, operation)
	}
	return err
}
