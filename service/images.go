// Package service holds the image lifecycle logic shared by both API
// surfaces
package service

import (
	"fmt"
	"io"
	"mime/multipart"

	"feedhub/social-api/apperr"
	"feedhub/social-api/storage"

	"github.com/gabriel-vasile/mimetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Images ties uploaded files to the storage backend and retires the ones
// no live post references anymore
type Images struct {
	Store storage.Store
}

func NewImages(s storage.Store) *Images {
	return &Images{Store: s}
}

// Accept sniffs the uploaded file's real content, admits only PNG and
// JPEG, and stores it under a fresh key. Headers alone are easy to spoof
// so the bytes themselves are checked
func (i *Images) Accept(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", apperr.New(apperr.UnsupportedFileType, "No image provided")
	}

	f, err := fh.Open()
	if err != nil {
		return "", apperr.Wrap(err, "Internal server error")
	}
	defer f.Close()

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		return "", apperr.Wrap(err, "Internal server error")
	}

	if !mime.Is("image/png") && !mime.Is("image/jpeg") {
		return "", apperr.New(apperr.UnsupportedFileType, "Only PNG and JPEG images are accepted")
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", apperr.Wrap(err, "Internal server error")
	}

	id, err := gonanoid.Generate(keyAlphabet, 16)
	if err != nil {
		return "", apperr.Wrap(err, "Internal server error")
	}

	key := fmt.Sprintf("%s%s", id, mime.Extension())

	if err := i.Store.Save(key, mime.String(), fh.Size, f); err != nil {
		return "", apperr.Wrap(err, "Internal server error")
	}

	return key, nil
}

// Retire deletes a file that is no longer referenced by any post.
// Best-effort and fire-and-forget: a missing or undeletable file must
// never block the logical operation that triggered the retirement
func (i *Images) Retire(key string) {
	if key == "" {
		return
	}

	go func() {
		if err := i.Store.Remove(key); err != nil {
			zap.L().Warn("Failed to retire image", zap.String("key", key), zap.Error(err))
		}
	}()
}
