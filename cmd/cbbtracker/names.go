package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/cbb-tracker/internal/infrastructure/watchlist"
)

// readNamesFile loads player names from a .txt (one per line), .csv (a
// "name" column, else the first column) or .json (strings or {"name": ...}
// objects) file.
func readNamesFile(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVNames(path)
	case ".json":
		return readJSONNames(path)
	default:
		names, err := watchlist.LoadNames(path)
		if err != nil {
			return nil, err
		}
		if names == nil {
			return nil, fmt.Errorf("names file %s not found", path)
		}
		return names, nil
	}
}

func readCSVNames(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open names file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read names file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	column := 0
	start := 0
	for i, header := range records[0] {
		if strings.EqualFold(strings.TrimSpace(header), "name") {
			column, start = i, 1
			break
		}
	}

	names := make([]string, 0, len(records))
	for _, record := range records[start:] {
		if column >= len(record) {
			continue
		}
		if name := strings.TrimSpace(record[column]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func readJSONNames(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read names file %s: %w", path, err)
	}

	var items []any
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode names file %s: %w", path, err)
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		var name string
		switch v := item.(type) {
		case string:
			name = v
		case map[string]any:
			name, _ = v["name"].(string)
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
