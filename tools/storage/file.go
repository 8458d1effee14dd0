package storage

import (
	"context"
	"io"
	"os"
)

// FileRecipeSource reads recipe text from a local file.
type FileRecipeSource struct {
	FilePath string
}

func NewFileRecipeSource(filePath string) *FileRecipeSource {
	return &FileRecipeSource{FilePath: filePath}
}

func (r *FileRecipeSource) Load(ctx context.Context) ([]byte, error) {
	return os.ReadFile(r.FilePath)
}

// ReaderRecipeSource reads recipe text from a stream such as stdin. The
// stream is consumed by the first Load.
type ReaderRecipeSource struct {
	r io.Reader
}

func NewReaderRecipeSource(r io.Reader) *ReaderRecipeSource {
	return &ReaderRecipeSource{r: r}
}

func (s *ReaderRecipeSource) Load(ctx context.Context) ([]byte, error) {
	return io.ReadAll(s.r)
}
