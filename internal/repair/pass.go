// Package repair implements the textual repair passes applied to malformed
// AIML documents before structural validation. Every pass works on raw text:
// the input is, by construction, not yet parseable, so nothing in this
// package may depend on a parse tree.
package repair

import "regexp"

// DefaultRootTag is the expected root element of a dialogue corpus file.
const DefaultRootTag = "aiml"

// Pass is one independent textual transformation targeting a single class of
// malformation. Apply returns the rewritten content and whether anything
// changed. Passes are deterministic and total: the worst case is a no-op,
// never a failure, and they must tolerate input that is not well-formed.
type Pass struct {
	Name  string
	Apply func(content string) (string, bool)
}

// tagSpanRe matches one complete tag (opening, closing or self-closing).
// Several passes use it to scope rewrites to markup and leave text alone.
var tagSpanRe = regexp.MustCompile(`</?[A-Za-z][^<>]*>`)

// Pipeline threads a document through an ordered set of passes.
type Pipeline struct {
	passes []Pass
}

// Options configure pipeline construction.
type Options struct {
	// RootTag is the expected document root element. Empty means
	// DefaultRootTag.
	RootTag string

	// SpeculativeTagRecovery appends the bare-word wrapping pass to the
	// chain. The heuristic can corrupt legitimate text content and is
	// therefore excluded from the default order.
	SpeculativeTagRecovery bool
}

// NewPipeline builds the default pass chain. The order is load-bearing: each
// pass's output must remain syntactically consistent input for the next, so
// tag syntax is repaired before entities are escaped and entities are
// escaped before the tag-scoped attribute passes run.
func NewPipeline(opts Options) *Pipeline {
	root := opts.RootTag
	if root == "" {
		root = DefaultRootTag
	}
	passes := []Pass{
		{Name: "strip-unbound-prefixes", Apply: StripUnboundPrefixes},
		{Name: "truncate-after-root", Apply: TruncateAfterRoot(root)},
		{Name: "normalize-malformed-tags", Apply: NormalizeMalformedTags},
		{Name: "escape-entities", Apply: EscapeEntities},
		{Name: "close-void-elements", Apply: CloseVoidElements},
		{Name: "dedup-attributes", Apply: DedupAttributes},
		{Name: "sanitize-bytes", Apply: SanitizeBytes},
	}
	if opts.SpeculativeTagRecovery {
		passes = append(passes, Pass{Name: "wrap-bare-words", Apply: WrapBareWords})
	}
	return &Pipeline{passes: passes}
}

// Run applies every pass in order and returns the final content plus the
// tally: the number of passes whose output differed from their input, not
// the number of individual rewrites. Running Run again over its own output
// yields a zero tally.
func (p *Pipeline) Run(content string) (string, int) {
	tally := 0
	for _, pass := range p.passes {
		next, fixed := pass.Apply(content)
		if fixed {
			tally++
		}
		content = next
	}
	return content, tally
}

// Passes returns the configured pass chain in execution order.
func (p *Pipeline) Passes() []Pass {
	out := make([]Pass, len(p.passes))
	copy(out, p.passes)
	return out
}
