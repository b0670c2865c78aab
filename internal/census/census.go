// Package census inventories the tags used across a corpus and compares
// them with the known dialect vocabulary. It is read-only analytics: no
// repair semantics, no writes.
package census

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// KnownTags is the AIML 1.x vocabulary, void elements included.
var KnownTags = map[string]bool{
	"aiml": true, "category": true, "pattern": true, "template": true,
	"srai": true, "star": true, "that": true, "topic": true, "think": true,
	"random": true, "li": true, "set": true, "get": true, "bot": true,
	"condition": true, "sr": true, "person": true, "person2": true,
	"gender": true, "formal": true, "lowercase": true, "uppercase": true,
	"sentence": true, "date": true, "id": true, "size": true,
	"version": true, "input": true, "br": true, "hr": true, "img": true,
	"link": true, "meta": true,
}

// TagCount is one corpus-wide tag tally.
type TagCount struct {
	Name  string
	Count int
	Known bool
}

// Report is the census over one directory.
type Report struct {
	FilesScanned int
	Tags         []TagCount // descending count, ties by name
}

// Unknown returns the tallies for tags outside the known vocabulary.
func (r Report) Unknown() []TagCount {
	var out []TagCount
	for _, t := range r.Tags {
		if !t.Known {
			out = append(out, t)
		}
	}
	return out
}

// ScanDir tokenizes every matching file directly inside dir and tallies tag
// usage. The lenient HTML tokenizer is used deliberately: census input is
// routinely malformed and the tokenizer never fails, it just keeps going.
// Unreadable files are skipped; the census is best-effort by contract.
func ScanDir(dir, ext string) (Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Report{}, fmt.Errorf("list %s: %w", dir, err)
	}
	counts := make(map[string]int)
	var report Report
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		report.FilesScanned++
		countTags(string(raw), counts)
	}
	report.Tags = make([]TagCount, 0, len(counts))
	for name, n := range counts {
		report.Tags = append(report.Tags, TagCount{Name: name, Count: n, Known: KnownTags[name]})
	}
	sort.Slice(report.Tags, func(i, j int) bool {
		if report.Tags[i].Count != report.Tags[j].Count {
			return report.Tags[i].Count > report.Tags[j].Count
		}
		return report.Tags[i].Name < report.Tags[j].Name
	})
	return report, nil
}

func countTags(content string, counts map[string]int) {
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or undecipherable input; either way this file is done.
			return
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			counts[strings.ToLower(string(name))]++
		}
	}
}
