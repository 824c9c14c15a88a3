// Package upload validates and stores product images.
package upload

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoFile means the form carried no usable file.
	ErrNoFile = errors.New("upload: no file provided")
	// ErrUnsupportedType means the filename extension is not an allowed image format.
	ErrUnsupportedType = errors.New("upload: unsupported image type")
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Allowed reports whether the filename has a permitted image extension,
// case-insensitively.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Sanitize reduces a client-supplied filename to a safe base name: path
// separators are stripped, spaces become underscores and anything outside
// [A-Za-z0-9._-] is dropped.
func Sanitize(filename string) string {
	// Clients may send Windows-style paths; take the last segment of either form.
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		filename = filename[i+1:]
	}
	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "._")
}

// Save validates the uploaded image and writes it into dir under a
// collision-proof name of the form <token>_<sanitized>, returning the stored
// filename. Nothing touches the disk until validation passed.
func Save(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	if header == nil || header.Filename == "" {
		return "", ErrNoFile
	}
	if !Allowed(header.Filename) {
		return "", ErrUnsupportedType
	}
	name := Sanitize(header.Filename)
	if name == "" {
		return "", ErrNoFile
	}

	token := make([]byte, 8)
	if _, err := rand.Read(token); err != nil {
		return "", fmt.Errorf("upload: generate token: %w", err)
	}
	stored := hex.EncodeToString(token) + "_" + name

	dst, err := os.Create(filepath.Join(dir, stored))
	if err != nil {
		return "", fmt.Errorf("upload: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("upload: write file: %w", err)
	}
	return stored, nil
}
