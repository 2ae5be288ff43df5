package workspace

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/renameio/v2"
)

// WriteFile replaces the file at path with data through a temporary file
// renamed over it, so readers observe either the old or the new content.
// An existing file keeps its permissions; a new one gets perm.
func WriteFile(path string, data []byte, perm fs.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := renameio.WriteFile(path, data, perm); err != nil {
		return ErrWriteFile.With(slog.String("file", path)).Wrap(err)
	}

	return nil
}
