// Package render converts sanitized description HTML into the caller's
// requested output format.
package render

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"linkscout-engine/internal/domain"
)

// StripAttributes removes every attribute from the selection's element
// nodes, recursively. Detail-page markup carries tracking attributes that
// have no business in an exported description.
func StripAttributes(sel *goquery.Selection) *goquery.Selection {
	for _, n := range sel.Nodes {
		stripNode(n)
	}
	return sel
}

func stripNode(n *html.Node) {
	if n.Type == html.ElementNode {
		n.Attr = nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		stripNode(c)
	}
}

// Description renders sanitized HTML into the requested format. HTML is a
// passthrough; markdown and plain are pure text transforms.
func Description(htmlText string, format domain.DescriptionFormat) (string, error) {
	switch format {
	case domain.FormatMarkdown:
		return ToMarkdown(htmlText)
	case domain.FormatPlain:
		return ToPlain(htmlText)
	default:
		return htmlText, nil
	}
}

func ToMarkdown(htmlText string) (string, error) {
	conv := md.NewConverter("", true, nil)
	out, err := conv.ConvertString(htmlText)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func ToPlain(htmlText string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return "", fmt.Errorf("render plain: %w", err)
	}
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
