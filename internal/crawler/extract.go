package crawler

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// minParagraphRunes is the trimmed length a paragraph must exceed to be kept.
// Shorter fragments are nav crumbs and button labels more often than prose.
const minParagraphRunes = 20

// Extractor distills fetched HTML into a PageRecord. It is a pure
// transformation: no network, no clock, no side effects. The underlying
// parser is error-tolerant, so malformed markup yields empty fields rather
// than an error.
type Extractor struct{}

// NewExtractor returns a ready Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the fetched document and returns the record for pageURL.
// ScrapedAt is left zero; the engine stamps it.
func (e *Extractor) Extract(pageURL string, res *FetchResult) (*PageRecord, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	doc, err := e.parse(res)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	doc.Find("script, style").Remove()

	return &PageRecord{
		URL:        pageURL,
		Domain:     base.Host,
		Title:      extractTitle(doc),
		Headings:   extractHeadings(doc),
		Paragraphs: extractParagraphs(doc),
		Links:      extractLinks(doc, base),
	}, nil
}

// parse decodes the body to UTF-8 using the Content-Type charset when one is
// declared, falling back to the raw bytes when decoding cannot be set up.
func (e *Extractor) parse(res *FetchResult) (*goquery.Document, error) {
	reader, err := charset.NewReader(bytes.NewReader(res.Body), res.ContentType)
	if err != nil {
		return goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	}
	return goquery.NewDocumentFromReader(reader)
}

func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return NoTitle
	}
	return title
}

// extractHeadings returns every h1-h3 in document order, trimmed. No length
// filtering: empty headings stay, mirroring what the page actually says.
func extractHeadings(doc *goquery.Document) []string {
	headings := []string{}
	doc.Find("h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, strings.TrimSpace(s.Text()))
	})
	return headings
}

func extractParagraphs(doc *goquery.Document) []string {
	paragraphs := []string{}
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if utf8.RuneCountInString(text) > minParagraphRunes {
			paragraphs = append(paragraphs, text)
		}
	})
	return paragraphs
}

// extractLinks resolves every anchor href against base and keeps absolute
// http(s) URLs on the same host, deduplicated in first-discovery order.
// Fragments are dropped so #-variants of one page collapse to a single URL.
func extractLinks(doc *goquery.Document, base *url.URL) []string {
	links := []string{}
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		parsed, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(parsed)
		resolved.Fragment = ""
		if !isWebScheme(resolved.Scheme) || !sameHost(base, resolved) {
			return
		}
		link := resolved.String()
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})
	return links
}
