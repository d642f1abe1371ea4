// Package util contains small helpers that don't fit any other package
package util

import "math/rand"

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandStr returns a random alphanumeric string of length n. Not
// cryptographically secure, only used for request IDs
func RandStr(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
