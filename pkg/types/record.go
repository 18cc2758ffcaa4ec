// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for arxiv-scout.
package types

import "time"

// Record is the normalized form of one arXiv feed entry. Every field has
// a zero-value default: a partially populated upstream entry produces a
// partially populated Record, never an error.
type Record struct {
	// ID is the stable arXiv identifier with any version suffix removed
	// (e.g. "2301.12345").
	ID string `json:"id" yaml:"id"`

	// VersionedID is the identifier as returned by the API, including the
	// version marker when one is present (e.g. "2301.12345v2").
	VersionedID string `json:"versioned_id,omitempty" yaml:"versioned_id,omitempty"`

	// Title is the paper title with internal whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in feed order.
	Authors []string `json:"authors" yaml:"authors"`

	// Affiliations lists author affiliations in feed order. The feed does
	// not guarantee one affiliation per author.
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`

	// Abstract is the paper abstract with internal whitespace collapsed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Published is the submission date formatted as YYYY-MM-DD, empty when
	// the feed timestamp could not be parsed. PublishedAt carries the full
	// timestamp and is zero in the same case.
	Published   string    `json:"published" yaml:"published"`
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`

	// Updated and UpdatedAt mirror Published for the last-revision time.
	Updated   string    `json:"updated" yaml:"updated"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`

	// PrimaryCategory is the main arXiv subject class (e.g. "cs.LG").
	PrimaryCategory string `json:"primary_category" yaml:"primary_category"`

	// Categories lists all subject classes in feed order.
	Categories []string `json:"categories" yaml:"categories"`

	DOI        string `json:"doi,omitempty" yaml:"doi,omitempty"`
	JournalRef string `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`
	Comment    string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// Links maps a link kind to its URL. "pdf" and "abstract" are always
	// classified when present; other relations keep their rel value as key.
	Links map[string]string `json:"links" yaml:"links"`

	// ArxivURL and PDFURL are synthesized from ID, independent of whatever
	// links the raw entry carried.
	ArxivURL string `json:"arxiv_url" yaml:"arxiv_url"`
	PDFURL   string `json:"pdf_url" yaml:"pdf_url"`
}

// Year returns the publication year, or 0 when no publish timestamp parsed.
func (r Record) Year() int {
	if r.PublishedAt.IsZero() {
		return 0
	}
	return r.PublishedAt.Year()
}
