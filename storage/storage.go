// Package storage abstracts where uploaded images live. Two backends are
// supported: a plain directory on disk and an S3 bucket
package storage

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
)

// Store holds uploaded image files under opaque keys
type Store interface {
	// Save stores the content under key and returns the key actually used
	Save(key, contentType string, size int64, r io.Reader) error
	// Open streams a stored file back
	Open(key string) (io.ReadCloser, error)
	// Remove deletes a stored file. Removing a missing file is an error
	// the caller may choose to ignore
	Remove(key string) error
}

// New builds the backend selected in the configuration
func New() (Store, error) {
	switch viper.GetString("storage.type") {
	case "s3":
		return NewS3()
	case "local":
		return NewLocal(viper.GetString("storage.local_dir"))
	default:
		return nil, fmt.Errorf("invalid storage type %q", viper.GetString("storage.type"))
	}
}
