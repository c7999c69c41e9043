// Package app orchestrates the user-facing verbs over the store and the
// selector bridge. One App runs one interactive session: pick a bookmark,
// pick an action, repeat until the list is cancelled.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/vannrr/fmark/internal/menu"
	"github.com/vannrr/fmark/internal/model"
	"github.com/vannrr/fmark/internal/store"
)

// addEntry is the sentinel list line that starts the create flow.
const addEntry = "{+} add bookmark"

const (
	optGoto   = "goto"
	optCopy   = "copy"
	optModify = "modify"
	optRemove = "remove"
	optCancel = "cancel"
)

var options = []string{optGoto, optCopy, optModify, optRemove, optCancel}

// Browser opens a URL. The real one spawns an external program; tests
// substitute a recorder.
type Browser interface {
	Open(url string) error
}

// ExecBrowser launches the configured browser binary with the URL as its
// only argument, without waiting for it to exit.
type ExecBrowser struct {
	Program string
}

// Open implements Browser.
func (b ExecBrowser) Open(url string) error {
	cmd := exec.Command(b.Program, url)
	if err := cmd.Start(); err != nil {
		return &menu.SpawnError{Program: b.Program, Err: err}
	}
	// The browser outlives this process.
	return cmd.Process.Release()
}

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	Write(text string) error
}

type systemClipboard struct{}

func (systemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

// App is the dispatcher for one session.
type App struct {
	store     *store.Store
	menu      menu.Menu
	browser   Browser
	clipboard Clipboard
	stderr    io.Writer
}

// Params configures New. Clipboard and Stderr may be nil; the system
// clipboard and os.Stderr are used.
type Params struct {
	Store     *store.Store
	Menu      menu.Menu
	Browser   Browser
	Clipboard Clipboard
	Stderr    io.Writer
}

// New creates an App.
func New(p Params) *App {
	a := &App{
		store:     p.Store,
		menu:      p.Menu,
		browser:   p.Browser,
		clipboard: p.Clipboard,
		stderr:    p.Stderr,
	}
	if a.clipboard == nil {
		a.clipboard = systemClipboard{}
	}
	if a.stderr == nil {
		a.stderr = os.Stderr
	}
	return a
}

// Run shows the bookmark list until the user cancels out of it.
func (a *App) Run() error {
	for {
		rendered := menu.Render(a.store.Snapshot())
		lines := append(slices.Clone(rendered), addEntry)

		choice, err := a.menu.Choose(lines, "", "bookmarks")
		if err != nil {
			return err
		}
		if choice == addEntry {
			if err := a.Create(""); err != nil {
				return err
			}
			continue
		}

		switch res := menu.Resolve(choice, rendered); res.Kind {
		case menu.Cancelled:
			return nil
		case menu.Raw:
			// Typed text that matches nothing starts a create flow
			// with the text as the title.
			if err := a.Create(res.Text); err != nil {
				return err
			}
		case menu.Selected:
			if err := a.act(res.Index); err != nil {
				return err
			}
		}
	}
}

// act asks which verb to apply to the selected record.
func (a *App) act(index int) error {
	choice, err := a.menu.Choose(options, "", "options")
	if err != nil {
		return err
	}
	switch choice {
	case optGoto:
		return a.Go(index)
	case optCopy:
		return a.Copy(index)
	case optModify:
		return a.Modify(index)
	case optRemove:
		return a.Delete(index)
	default:
		return nil
	}
}

// View renders the list once with no side effects.
func (a *App) View() error {
	_, err := a.menu.Choose(menu.Render(a.store.Snapshot()), "", "bookmarks")
	return err
}

// Go opens the record's URL in the browser. A launch failure is reported
// but does not end the session.
func (a *App) Go(index int) error {
	rec, err := a.store.At(index)
	if err != nil {
		return err
	}
	if err := a.browser.Open(rec.URL); err != nil {
		fmt.Fprintf(a.stderr, "fmark: %v\n", err)
	}
	return nil
}

// Copy puts the record's URL on the clipboard.
func (a *App) Copy(index int) error {
	rec, err := a.store.At(index)
	if err != nil {
		return err
	}
	if err := a.clipboard.Write(rec.URL); err != nil {
		fmt.Fprintf(a.stderr, "fmark: copy url: %v\n", err)
	}
	return nil
}

// Create prompts for the three fields and inserts the result. Cancelling
// any prompt abandons the flow with nothing inserted; a field the store
// rejects aborts this action only.
func (a *App) Create(title string) error {
	rec, ok, err := a.promptRecord(model.Record{Title: title})
	if err != nil || !ok {
		return err
	}
	if _, err := a.store.Add(rec); err != nil {
		return a.reportValidation(err)
	}
	return a.persist()
}

// Modify re-prompts every field of the record at index, pre-filled with the
// current values, then replaces it. Cancelling any prompt leaves the store
// untouched.
func (a *App) Modify(index int) error {
	rec, err := a.store.At(index)
	if err != nil {
		return err
	}
	updated, ok, err := a.promptRecord(rec)
	if err != nil || !ok {
		return err
	}
	if updated == rec {
		return nil
	}
	if _, err := a.store.Update(index, updated); err != nil {
		return a.reportValidation(err)
	}
	return a.persist()
}

// Delete removes the record at index after a confirmation prompt.
func (a *App) Delete(index int) error {
	rec, err := a.store.At(index)
	if err != nil {
		return err
	}
	answer, err := a.menu.Choose([]string{"yes", "no"}, "", fmt.Sprintf("Remove %s? (yes/no)", rec.Title))
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
		return nil
	}
	if err := a.store.Remove(index); err != nil {
		return err
	}
	return a.persist()
}

// promptRecord collects title, category, and url in sequence. ok is false
// when the user cancelled a prompt.
func (a *App) promptRecord(initial model.Record) (rec model.Record, ok bool, err error) {
	title, err := a.prompt("title", initial.Title, nil)
	if err != nil || title == "" {
		return model.Record{}, false, err
	}
	category, err := a.prompt("category", initial.Category, a.store.Categories())
	if err != nil || category == "" {
		return model.Record{}, false, err
	}
	url, err := a.prompt("url", initial.URL, nil)
	if err != nil || url == "" {
		return model.Record{}, false, err
	}
	return model.Record{Title: title, Category: category, URL: url}, true, nil
}

// prompt runs one field prompt. The current value is offered as a
// selectable item and marked, so accepting it is a single keystroke.
func (a *App) prompt(name, current string, items []string) (string, error) {
	if current != "" && !slices.Contains(items, current) {
		items = append([]string{current}, items...)
	}
	choice, err := a.menu.Choose(items, current, name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(choice), nil
}

// reportValidation downgrades a rejected field to a per-action abort; any
// other store error ends the session.
func (a *App) reportValidation(err error) error {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(a.stderr, "fmark: %v\n", verr)
		return nil
	}
	return err
}

// persist writes the collection through to disk. A failure here means the
// mutation exists only in memory, which the user has to hear about.
func (a *App) persist() error {
	if err := a.store.Save(); err != nil {
		return fmt.Errorf("bookmarks changed in memory but could not be saved: %w", err)
	}
	return nil
}
