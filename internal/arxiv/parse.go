// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"encoding/xml"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-scout/pkg/types"
)

// canonicalBase is the public arXiv site used to synthesize record URLs.
const canonicalBase = "https://arxiv.org"

// Atom feed XML structures. encoding/xml matches local element names, so
// the fields from the http://arxiv.org/schemas/atom namespace (doi,
// comment, journal_ref, primary_category, affiliation) decode without
// explicit namespace handling.
type feed struct {
	XMLName      xml.Name `xml:"feed"`
	TotalResults int      `xml:"totalResults"`
	StartIndex   int      `xml:"startIndex"`
	Entries      []entry  `xml:"entry"`
}

type entry struct {
	ID              string     `xml:"id"`
	Title           string     `xml:"title"`
	Summary         string     `xml:"summary"`
	Published       string     `xml:"published"`
	Updated         string     `xml:"updated"`
	Authors         []author   `xml:"author"`
	Categories      []category `xml:"category"`
	PrimaryCategory category   `xml:"primary_category"`
	Links           []link     `xml:"link"`
	DOI             string     `xml:"doi"`
	JournalRef      string     `xml:"journal_ref"`
	Comment         string     `xml:"comment"`
}

type author struct {
	Name        string `xml:"name"`
	Affiliation string `xml:"affiliation"`
}

type category struct {
	Term string `xml:"term,attr"`
}

type link struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

var versionSuffix = regexp.MustCompile(`v\d+$`)

// parseEntry normalizes one feed entry into a Record. Missing or
// malformed fields degrade to zero values; parseEntry never fails.
func parseEntry(e entry) types.Record {
	versioned := lastSegment(e.ID)
	id := versionSuffix.ReplaceAllString(versioned, "")

	rec := types.Record{
		ID:              id,
		VersionedID:     versioned,
		Title:           collapseSpace(e.Title),
		Abstract:        collapseSpace(e.Summary),
		PrimaryCategory: e.PrimaryCategory.Term,
		DOI:             strings.TrimSpace(e.DOI),
		JournalRef:      strings.TrimSpace(e.JournalRef),
		Comment:         strings.TrimSpace(e.Comment),
		Links:           make(map[string]string),
	}

	if id != "" {
		rec.ArxivURL = canonicalBase + "/abs/" + id
		rec.PDFURL = canonicalBase + "/pdf/" + id + ".pdf"
	}

	for _, a := range e.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			rec.Authors = append(rec.Authors, name)
		}
		if aff := strings.TrimSpace(a.Affiliation); aff != "" {
			rec.Affiliations = append(rec.Affiliations, aff)
		}
	}
	for _, c := range e.Categories {
		if c.Term != "" {
			rec.Categories = append(rec.Categories, c.Term)
		}
	}

	rec.PublishedAt, rec.Published = parseFeedTime(e.Published)
	rec.UpdatedAt, rec.Updated = parseFeedTime(e.Updated)

	for _, l := range e.Links {
		rel := l.Rel
		if rel == "" {
			rel = "alternate"
		}
		switch {
		case l.Type == "application/pdf":
			rec.Links["pdf"] = l.Href
		case rel == "alternate":
			rec.Links["abstract"] = l.Href
		default:
			rec.Links[rel] = l.Href
		}
	}

	return rec
}

// parseFeedTime parses an RFC 3339 timestamp from the feed. Unparseable
// values yield a zero time and an empty display date.
func parseFeedTime(s string) (time.Time, string) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ""
	}
	return t, t.Format("2006-01-02")
}

// collapseSpace trims s and folds internal whitespace runs, newlines
// included, to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// lastSegment returns the portion of the identifier URL after the final
// slash. Entries without an identifier produce "".
func lastSegment(idURL string) string {
	idURL = strings.TrimSpace(idURL)
	if i := strings.LastIndex(idURL, "/"); i >= 0 {
		return idURL[i+1:]
	}
	return idURL
}
