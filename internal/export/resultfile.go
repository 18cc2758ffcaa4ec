// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	yaml "go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-scout/pkg/types"
)

// ResultParams records the request settings that produced a result file.
type ResultParams struct {
	MaxResults int    `yaml:"max_results"`
	SortBy     string `yaml:"sort_by,omitempty"`
	SortOrder  string `yaml:"sort_order,omitempty"`
	Start      int    `yaml:"start,omitempty"`
}

// ResultSummary holds totals for a result file.
type ResultSummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// ResultFile is the on-disk YAML document for a saved query result.
type ResultFile struct {
	Query   string         `yaml:"query"`
	Params  ResultParams   `yaml:"params"`
	Records []types.Record `yaml:"records"`
	Summary ResultSummary  `yaml:"summary"`
}

// NewResultFile assembles a result file for the given query and records.
func NewResultFile(query string, params ResultParams, records []types.Record) *ResultFile {
	return &ResultFile{
		Query:   query,
		Params:  params,
		Records: records,
		Summary: ResultSummary{
			Total:     len(records),
			Timestamp: time.Now().UTC(),
		},
	}
}

// WriteResultFile marshals rf to YAML at path.
func WriteResultFile(path string, rf *ResultFile) error {
	data, err := yaml.Marshal(rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing result file %s: %w", path, err)
	}
	return nil
}

// ReadResultFile loads a result file written by WriteResultFile.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file %s: %w", path, err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file %s: %w", path, err)
	}
	return &rf, nil
}
