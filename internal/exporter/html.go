package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vannrr/fmark/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the collection as Netscape bookmark HTML, one folder
// per category. The records are expected in sort order, so each category
// forms one contiguous folder.
func ExportHTML(records []model.Record) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	category := ""
	for _, r := range records {
		if r.Category != category {
			if category != "" {
				b.WriteString("    </DL><p>\n")
			}
			category = r.Category
			fmt.Fprintf(&b, "    <DT><H3>%s</H3>\n", html.EscapeString(category))
			b.WriteString("    <DL><p>\n")
		}
		fmt.Fprintf(&b,
			"        <DT><A HREF=\"%s\">%s</A>\n",
			html.EscapeString(r.URL),
			html.EscapeString(r.Title),
		)
	}
	if category != "" {
		b.WriteString("    </DL><p>\n")
	}

	b.WriteString("</DL><p>\n")
	return b.String()
}
