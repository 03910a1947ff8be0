package fileformat

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UniqueFormat replaces the base name of an uploaded file with a random UUID,
// keeping only a lower-cased extension.
func UniqueFormat(fn string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(fn)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return uuid.NewString() + ext
}
