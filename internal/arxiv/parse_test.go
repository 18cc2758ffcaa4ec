// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"encoding/xml"
	"testing"
)

const sampleEntryXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <entry>
    <id>http://arxiv.org/abs/2106.01234v1</id>
    <title>  A   Study
of  X </title>
    <summary>
      We study   X in depth.
    </summary>
    <published>2021-06-02T17:59:58Z</published>
    <updated>2021-06-03T09:00:00Z</updated>
    <author><name>Ada Lovelace</name><arxiv:affiliation>Analytical Engine Lab</arxiv:affiliation></author>
    <author><name>Charles Babbage</name></author>
    <arxiv:primary_category term="cs.LG"/>
    <category term="cs.LG"/>
    <category term="stat.ML"/>
    <arxiv:doi>10.1000/xyz123</arxiv:doi>
    <arxiv:journal_ref>J. Stud. X 1 (2021) 1-10</arxiv:journal_ref>
    <arxiv:comment>10 pages, 3 figures</arxiv:comment>
    <link href="http://arxiv.org/abs/2106.01234v1" rel="alternate" type="text/html"/>
    <link href="http://arxiv.org/pdf/2106.01234v1" rel="related" type="application/pdf" title="pdf"/>
    <link href="http://example.org/related" rel="related" type="text/html"/>
  </entry>
</feed>`

func decodeFeed(t *testing.T, raw string) feed {
	t.Helper()
	var f feed
	if err := xml.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("decoding test feed: %v", err)
	}
	return f
}

func TestParseEntryEndToEnd(t *testing.T) {
	f := decodeFeed(t, sampleEntryXML)
	if len(f.Entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(f.Entries))
	}

	rec := parseEntry(f.Entries[0])

	if rec.ID != "2106.01234" {
		t.Errorf("ID = %q, want %q", rec.ID, "2106.01234")
	}
	if rec.VersionedID != "2106.01234v1" {
		t.Errorf("VersionedID = %q, want %q", rec.VersionedID, "2106.01234v1")
	}
	if rec.Title != "A Study of X" {
		t.Errorf("Title = %q, want %q", rec.Title, "A Study of X")
	}
	if rec.Abstract != "We study X in depth." {
		t.Errorf("Abstract = %q, want %q", rec.Abstract, "We study X in depth.")
	}
	if len(rec.Authors) != 2 || rec.Authors[0] != "Ada Lovelace" || rec.Authors[1] != "Charles Babbage" {
		t.Errorf("Authors = %v", rec.Authors)
	}
	if len(rec.Affiliations) != 1 || rec.Affiliations[0] != "Analytical Engine Lab" {
		t.Errorf("Affiliations = %v", rec.Affiliations)
	}
	if rec.Published != "2021-06-02" {
		t.Errorf("Published = %q, want %q", rec.Published, "2021-06-02")
	}
	if rec.PublishedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("timestamps should parse")
	}
	if rec.PrimaryCategory != "cs.LG" {
		t.Errorf("PrimaryCategory = %q", rec.PrimaryCategory)
	}
	if len(rec.Categories) != 2 || rec.Categories[1] != "stat.ML" {
		t.Errorf("Categories = %v", rec.Categories)
	}
	if rec.DOI != "10.1000/xyz123" {
		t.Errorf("DOI = %q", rec.DOI)
	}
	if rec.JournalRef == "" || rec.Comment == "" {
		t.Error("journal_ref and comment should carry through")
	}

	if rec.ArxivURL != "https://arxiv.org/abs/2106.01234" {
		t.Errorf("ArxivURL = %q", rec.ArxivURL)
	}
	if rec.PDFURL != "https://arxiv.org/pdf/2106.01234.pdf" {
		t.Errorf("PDFURL = %q", rec.PDFURL)
	}

	// Link partitioning: media type wins over relation.
	if rec.Links["pdf"] != "http://arxiv.org/pdf/2106.01234v1" {
		t.Errorf(`Links["pdf"] = %q`, rec.Links["pdf"])
	}
	if rec.Links["abstract"] != "http://arxiv.org/abs/2106.01234v1" {
		t.Errorf(`Links["abstract"] = %q`, rec.Links["abstract"])
	}
	if rec.Links["related"] != "http://example.org/related" {
		t.Errorf(`Links["related"] = %q`, rec.Links["related"])
	}
}

func TestParseEntryDefaults(t *testing.T) {
	const raw = `<feed xmlns="http://www.w3.org/2005/Atom">
  <entry><id>http://arxiv.org/abs/2301.00001v2</id></entry>
</feed>`
	f := decodeFeed(t, raw)
	rec := parseEntry(f.Entries[0])

	if rec.ID != "2301.00001" {
		t.Errorf("ID = %q, want %q", rec.ID, "2301.00001")
	}
	if rec.Title != "" || rec.Abstract != "" || rec.Published != "" {
		t.Errorf("optional fields should default to empty, got %+v", rec)
	}
	if !rec.PublishedAt.IsZero() {
		t.Error("PublishedAt should be zero when the element is missing")
	}
	if len(rec.Authors) != 0 || len(rec.Categories) != 0 {
		t.Errorf("sequences should default to empty, got %+v", rec)
	}
	if len(rec.Links) != 0 {
		t.Errorf("Links = %v, want empty", rec.Links)
	}
}

func TestParseEntryNoIdentifier(t *testing.T) {
	rec := parseEntry(entry{Title: "Orphan"})
	if rec.ID != "" {
		t.Errorf("ID = %q, want empty", rec.ID)
	}
	if rec.ArxivURL != "" || rec.PDFURL != "" {
		t.Error("derived URLs should be empty without an identifier")
	}
}

func TestParseEntryLinkRelDefaultsToAlternate(t *testing.T) {
	rec := parseEntry(entry{
		ID:    "http://arxiv.org/abs/2301.00001v1",
		Links: []link{{Href: "http://arxiv.org/abs/2301.00001v1"}},
	})
	if rec.Links["abstract"] == "" {
		t.Error("a link with no rel should classify as abstract")
	}
}

func TestParseFeedTimeInvalid(t *testing.T) {
	at, display := parseFeedTime("not-a-timestamp")
	if !at.IsZero() || display != "" {
		t.Errorf("parseFeedTime = (%v, %q), want zero values", at, display)
	}
}

func TestParseEntryOldStyleIdentifier(t *testing.T) {
	// The identifier keeps only the last path segment, so old-style IDs
	// lose the archive prefix here. CleanID handles full normalization
	// for caller-supplied identifiers.
	rec := parseEntry(entry{ID: "http://arxiv.org/abs/quant-ph/0201082v1"})
	if rec.VersionedID != "0201082v1" {
		t.Errorf("VersionedID = %q, want %q", rec.VersionedID, "0201082v1")
	}
	if rec.ID != "0201082" {
		t.Errorf("ID = %q, want %q", rec.ID, "0201082")
	}
}

func TestCleanID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://arxiv.org/abs/2301.12345v2", "2301.12345"},
		{"http://arxiv.org/abs/2301.12345", "2301.12345"},
		{"https://arxiv.org/pdf/2301.12345v1", "2301.12345"},
		{"https://arxiv.org/abs/quant-ph/0201082v1", "quant-ph/0201082"},
		{"quant-ph/0201082v1", "quant-ph/0201082"},
		{"2301.12345v3", "2301.12345"},
		{"2301.12345", "2301.12345"},
		{"  2301.12345v1 ", "2301.12345"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanID(tt.in); got != tt.want {
				t.Errorf("CleanID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
