package source

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"moviedex/internal/movie"
)

//go:embed dataset/movies.json
var bundledDataset []byte

// Bundled serves the static dataset shipped with the binary, or a JSON file
// of the same shape when Path is set.
type Bundled struct {
	Path string
}

func NewBundled(path string) *Bundled {
	return &Bundled{Path: path}
}

func (b *Bundled) Movies(ctx context.Context) ([]movie.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := bundledDataset
	if b.Path != "" {
		data, err := os.ReadFile(b.Path)
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		raw = data
	}
	return Decode(raw)
}

// Decode parses a dataset document: a JSON array of movie records.
func Decode(raw []byte) ([]movie.Movie, error) {
	var movies []movie.Movie
	if err := json.Unmarshal(raw, &movies); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if movies == nil {
		movies = []movie.Movie{}
	}
	return movies, nil
}
