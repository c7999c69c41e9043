package importer

import (
	"io"
	"strings"

	"github.com/vannrr/fmark/internal/model"
	"golang.org/x/net/html"
)

// FallbackCategory is used for links that sit outside any folder.
const FallbackCategory = "Imported"

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns one record
// per link, with the name of its innermost folder as the category. Links
// that cannot form a valid record (no href, say) are skipped rather than
// failing the whole import.
func ParseHTMLBookmarks(r io.Reader) ([]model.Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var records []model.Record

	// Folder names nest; the innermost one is the category.
	var folderStack []string
	var pendingFolder string

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition; becomes current on the next DL.
				if name := getTextContent(n); name != "" {
					pendingFolder = name
				}
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}
				title := getTextContent(n)
				if title == "" {
					title = href // fallback to URL as title
				}
				category := FallbackCategory
				if len(folderStack) > 0 {
					category = folderStack[len(folderStack)-1]
				}
				rec, err := model.New(sanitize(title), sanitize(category), href)
				if err != nil {
					return
				}
				records = append(records, rec)
				return

			case "dl":
				pushed := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushed = true
				}
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}
				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return records, nil
}

// sanitize drops the brace characters the file format reserves for tags.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '{' || r == '}' {
			return -1
		}
		return r
	}, s)
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
