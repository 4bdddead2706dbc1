package fixture

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// maxDocumentSize caps how much of a fixture document is read into memory.
const maxDocumentSize = 16 << 20

// Loader reads a raw fixture document. Paths ending in ".gz" are decompressed.
type Loader interface {
	Load(ctx context.Context, path string) ([]byte, error)
}

// fileLoader implements Loader for the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based document loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "fixture-loader").Logger(),
	}
}

// Load reads the document at path.
func (l *fileLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", path).Msg("loading fixture document")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open fixture document")
		return nil, fmt.Errorf("failed to open fixture document %s: %w", path, err)
	}
	defer file.Close()

	data, err := readDocument(file, path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read fixture document")
		return nil, err
	}

	l.logger.Info().
		Str("file", path).
		Int("bytes", len(data)).
		Msg("fixture document loaded successfully")

	return data, nil
}

// readDocument reads r fully, decompressing it when name has a ".gz" suffix.
func readDocument(r io.Reader, name string) ([]byte, error) {
	if strings.HasSuffix(name, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading fixture document %s: %w", name, err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("fixture document %s exceeds %d bytes", name, maxDocumentSize)
	}
	return data, nil
}
