package watchlist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	domain "github.com/riskibarqy/cbb-tracker/internal/domain/watchlist"
	"github.com/riskibarqy/cbb-tracker/internal/usecase"
	"gopkg.in/yaml.v3"
)

// YAMLRepository stores the watchlist as players.yaml:
//
//	season: 2025-26
//	division: D1
//	players:
//	  - name: Cooper Flagg
//	    team: Duke
type YAMLRepository struct {
	path string
}

func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: strings.TrimSpace(path)}
}

func (r *YAMLRepository) Path() string {
	return r.path
}

// Load fails with a configuration error when the file is missing.
func (r *YAMLRepository) Load(_ context.Context) (domain.List, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.List{}, usecase.MarkConfiguration(fmt.Errorf("watchlist %s not found, create it first: %w", r.path, err))
		}
		return domain.List{}, fmt.Errorf("read watchlist %s: %w", r.path, err)
	}

	var list domain.List
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return domain.List{}, usecase.MarkConfiguration(fmt.Errorf("decode watchlist %s: %w", r.path, err))
	}
	if err := list.Validate(); err != nil {
		return domain.List{}, usecase.MarkConfiguration(fmt.Errorf("validate watchlist %s: %w", r.path, err))
	}
	return list, nil
}

// Save replaces the file through a temp file in the same directory.
func (r *YAMLRepository) Save(_ context.Context, list domain.List) error {
	if list.Players == nil {
		list.Players = []domain.Entry{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".players-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp watchlist: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp watchlist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp watchlist: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace watchlist %s: %w", r.path, err)
	}
	return nil
}
