// Package outline extracts the heading structure from markdown plan
// documents and renders them to HTML with stable anchor ids.
package outline

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Section is one heading-delimited region of a plan document.
type Section struct {
	Level   int    `json:"level"`
	Title   string `json:"title"`
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Document is the parsed form of a plan: the ordered outline, a flat list
// of list-item steps, and the rendered HTML with slugged heading anchors.
type Document struct {
	Sections []Section `json:"sections"`
	Steps    []string  `json:"steps"`
	HTML     string    `json:"html"`
}

var (
	headingPattern   = regexp.MustCompile(`^(#{1,6}) +(.*)$`)
	orderedPattern   = regexp.MustCompile(`^\s*\d+\. +(.*)$`)
	unorderedPattern = regexp.MustCompile(`^\s*[-*] +(.*)$`)
	nonSlugPattern   = regexp.MustCompile(`[^a-z0-9]+`)
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithASTTransformers(headingIDTransformer()),
	),
)

// Parse scans markdown text into sections and steps and renders it to HTML.
// Lines before the first heading are discarded; an empty document yields
// empty sections, empty steps and an empty HTML string.
func Parse(markdown string) Document {
	var doc Document

	if strings.TrimSpace(markdown) == "" {
		return doc
	}

	var current *Section
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.Join(body, "\n")
		doc.Sections = append(doc.Sections, *current)
		current = nil
		body = nil
	}

	for _, line := range strings.Split(markdown, "\n") {
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			flush()
			title := strings.TrimSpace(m[2])
			current = &Section{
				Level: len(m[1]),
				Title: title,
				ID:    Slug(title),
			}
			continue
		}

		if current != nil {
			body = append(body, line)
		}

		if m := orderedPattern.FindStringSubmatch(line); m != nil {
			doc.Steps = append(doc.Steps, strings.TrimSpace(m[1]))
		} else if m := unorderedPattern.FindStringSubmatch(line); m != nil {
			doc.Steps = append(doc.Steps, strings.TrimSpace(m[1]))
		}
	}
	flush()

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err == nil {
		doc.HTML = buf.String()
	}

	return doc
}

// Slug derives an anchor id from a heading title: lowercase, every run of
// characters outside [a-z0-9] collapsed to a single hyphen. Duplicate
// headings yield duplicate ids; anchor navigation between duplicates is a
// known limitation.
func Slug(title string) string {
	s := nonSlugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}
