package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/vannrr/fmark/internal/app"
	"github.com/vannrr/fmark/internal/codec"
	"github.com/vannrr/fmark/internal/config"
	"github.com/vannrr/fmark/internal/exporter"
	"github.com/vannrr/fmark/internal/importer"
	"github.com/vannrr/fmark/internal/menu"
	"github.com/vannrr/fmark/internal/model"
	"github.com/vannrr/fmark/internal/picker"
	"github.com/vannrr/fmark/internal/search"
	"github.com/vannrr/fmark/internal/store"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help":
			printHelp()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: fmark import <file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		default:
			if !strings.HasPrefix(os.Args[1], "-") {
				// Treat bare words as a quick-search query.
				runQuickSearch(strings.Join(os.Args[1:], " "))
				return
			}
		}
	}

	runSession(os.Args[1:])
}

func printHelp() {
	help := `fmark - bookmark the web from a menu

Usage:
  fmark [OPTIONS]          Open the bookmark menu
  fmark <query>            Quick search titles, then open
  fmark import <file>      Import bookmarks from Netscape HTML
  fmark export [path]      Export bookmarks to Netscape HTML
  fmark help               Show this help

Options:
  -m, --menu      Menu program: bemenu, dmenu, rofi, fzf, or builtin.
                  Default: bemenu
  -b, --browser   Browser to open bookmarks with. Default: firefox
  -p, --path      Path to the bookmark file. Default: $HOME/.bookmarks
  -r, --rows      Number of rows in the menu. Default: 20
  -h, --help      Show this help message and exit

Environment:
  FMARK_DEFAULT_OPTS   Default options, e.g. '--menu dmenu --rows 15'.
                       Explicit flags take precedence.

Config file:
  ~/.config/fmark/config.json with any of: menu, browser, path, rows.

File format:
  One bookmark per line, tagged fields padded into columns:
  {T}Project's Github {C}Development {U}https://github.com/vannrr/fmark
`
	fmt.Print(help)
}

// loadConfig resolves settings and handles the help flag.
func loadConfig(args []string) config.Config {
	cfg, help, err := config.Load(args)
	if err != nil {
		fatal(err)
	}
	if help {
		printHelp()
		os.Exit(0)
	}
	return cfg
}

// openStore opens the bookmark file. The default path is seeded with one
// example entry on first run; an explicitly configured path must exist.
func openStore(cfg config.Config) *store.Store {
	def, err := config.Default()
	if err != nil {
		fatal(err)
	}
	if _, err := os.Stat(cfg.Path); errors.Is(err, os.ErrNotExist) {
		if cfg.Path != def.Path {
			fatal(fmt.Errorf("bookmark file not found: %s", cfg.Path))
		}
		seed := codec.Serialize([]model.Record{{
			Title:    "Project's Github",
			Category: "Development",
			URL:      "https://github.com/vannrr/fmark",
		}})
		if err := os.WriteFile(cfg.Path, []byte(seed), 0644); err != nil {
			fatal(fmt.Errorf("create bookmark file %s: %w", cfg.Path, err))
		}
	}

	s, err := store.Open(cfg.Path)
	if err != nil {
		fatal(err)
	}
	return s
}

// newMenu builds the configured selector. Anything except builtin must be
// resolvable on PATH.
func newMenu(cfg config.Config) menu.Menu {
	if cfg.Menu == config.BuiltinMenu {
		return picker.New(cfg.Rows)
	}
	m, err := menu.NewCommand(cfg.Menu, cfg.Rows)
	if err != nil {
		fatal(err)
	}
	return m
}

// runSession runs the full interactive menu session.
func runSession(args []string) {
	cfg := loadConfig(args)
	s := openStore(cfg)

	// Catch a misconfigured browser before the user picks anything.
	if _, err := exec.LookPath(cfg.Browser); err != nil {
		fatal(fmt.Errorf("browser %s was not found in PATH", cfg.Browser))
	}

	a := app.New(app.Params{
		Store:   s,
		Menu:    newMenu(cfg),
		Browser: app.ExecBrowser{Program: cfg.Browser},
	})
	if err := a.Run(); err != nil {
		fatal(err)
	}
}

// runQuickSearch fuzzy-matches titles and opens the chosen bookmark.
func runQuickSearch(query string) {
	cfg := loadConfig(nil)
	s := openStore(cfg)

	results := search.Titles(s.Snapshot(), query)
	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		return
	}

	var rec model.Record
	if len(results) == 1 {
		rec = results[0].Record
		fmt.Printf("Opening: %s\n", rec.Title)
	} else {
		matched := make([]model.Record, len(results))
		for i, res := range results {
			matched[i] = res.Record
		}
		rendered := menu.Render(matched)
		choice, err := newMenu(cfg).Choose(rendered, "", "bookmarks")
		if err != nil {
			fatal(err)
		}
		res := menu.Resolve(choice, rendered)
		if res.Kind != menu.Selected {
			return
		}
		rec = matched[res.Index]
	}

	browser := app.ExecBrowser{Program: cfg.Browser}
	if err := browser.Open(rec.URL); err != nil {
		fatal(err)
	}
}

// runImport merges a Netscape bookmark HTML file into the collection.
func runImport(filePath string) {
	cfg := loadConfig(nil)
	s := openStore(cfg)

	file, err := os.Open(filePath)
	if err != nil {
		fatal(fmt.Errorf("open %s: %w", filePath, err))
	}
	defer file.Close()

	records, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		fatal(fmt.Errorf("parse %s: %w", filePath, err))
	}

	existing := make(map[model.Record]bool)
	for _, r := range s.Snapshot() {
		existing[r] = true
	}

	added, skipped := 0, 0
	for _, rec := range records {
		if existing[rec] {
			skipped++
			continue
		}
		if _, err := s.Add(rec); err != nil {
			skipped++
			continue
		}
		existing[rec] = true
		added++
	}

	if err := s.Save(); err != nil {
		fatal(err)
	}

	fmt.Printf("Imported %d bookmarks", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport writes the collection out as Netscape bookmark HTML.
func runExport(outputPath string) {
	cfg := loadConfig(nil)
	s := openStore(cfg)

	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fatal(err)
		}
	}

	if err := os.WriteFile(outputPath, []byte(exporter.ExportHTML(s.Snapshot())), 0644); err != nil {
		fatal(fmt.Errorf("write %s: %w", outputPath, err))
	}

	fmt.Printf("Exported %d bookmarks to %s\n", s.Len(), outputPath)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "fmark: %v\n", err)
	os.Exit(1)
}
