// Package validate checks documents against the structural contract the
// downstream consumers require: a well-formed parse, the expected root
// element, and at least one knowledge record.
package validate

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// Outcome is the result of one structural check. When WellFormed is false
// the structural fields are zero and Diagnostic carries the parser's
// complaint.
type Outcome struct {
	WellFormed  bool
	RootTag     string
	RecordCount int
	Diagnostic  string
}

// Acceptable reports whether the document can be consumed downstream: it
// parsed, its root element matches wantRoot, and it holds at least one
// record.
func (o Outcome) Acceptable(wantRoot string) bool {
	return o.WellFormed && o.RootTag == wantRoot && o.RecordCount >= 1
}

// Check parses content with a strict markup parser and reports the outcome.
// It never fails outward: parser errors are captured into the diagnostic.
func Check(content, recordTag string) Outcome {
	dec := xml.NewDecoder(strings.NewReader(content))
	var root string
	records := 0
	depth := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Outcome{Diagnostic: err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if root != "" {
					return Outcome{Diagnostic: "content after document element"}
				}
				root = t.Name.Local
			}
			if t.Name.Local == recordTag {
				records++
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(strings.TrimSpace(string(t))) > 0 {
				return Outcome{Diagnostic: "text outside document element"}
			}
		}
	}
	if root == "" {
		return Outcome{Diagnostic: "no root element"}
	}
	return Outcome{WellFormed: true, RootTag: root, RecordCount: records}
}
