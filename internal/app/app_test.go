package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vannrr/fmark/internal/app"
	"github.com/vannrr/fmark/internal/menu"
	"github.com/vannrr/fmark/internal/store"
	"gotest.tools/v3/assert"
)

// scriptedMenu feeds canned answers to successive Choose calls and records
// what it was asked.
type scriptedMenu struct {
	answers []string
	prompts []string
}

func (m *scriptedMenu) Choose(items []string, current, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if len(m.answers) == 0 {
		return "", nil
	}
	answer := m.answers[0]
	m.answers = m.answers[1:]
	return answer, nil
}

type fakeBrowser struct {
	opened []string
}

func (b *fakeBrowser) Open(url string) error {
	b.opened = append(b.opened, url)
	return nil
}

type fakeClipboard struct {
	copied []string
}

func (c *fakeClipboard) Write(text string) error {
	c.copied = append(c.copied, text)
	return nil
}

func openStore(t *testing.T, contents string) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks")
	if contents != "" {
		assert.NilError(t, os.WriteFile(path, []byte(contents), 0644))
	}
	s, err := store.Open(path)
	assert.NilError(t, err)
	return s
}

const twoRecordFile = "{T}A {C}Development {U}https://a.test\n{T}B {C}Development {U}https://b.test\n"

func TestRun_CancelledListEndsSession(t *testing.T) {
	s := openStore(t, twoRecordFile)
	m := &scriptedMenu{answers: []string{""}}

	a := app.New(app.Params{Store: s, Menu: m, Browser: &fakeBrowser{}, Clipboard: &fakeClipboard{}})
	assert.NilError(t, a.Run())
	assert.Equal(t, s.Len(), 2)
}

func TestRun_GotoOpensBrowser(t *testing.T) {
	s := openStore(t, twoRecordFile)
	rendered := menu.Render(s.Snapshot())
	browser := &fakeBrowser{}
	m := &scriptedMenu{answers: []string{rendered[1], "goto", ""}}

	a := app.New(app.Params{Store: s, Menu: m, Browser: browser, Clipboard: &fakeClipboard{}})
	assert.NilError(t, a.Run())

	assert.DeepEqual(t, browser.opened, []string{"https://b.test"})
}

func TestRun_CopyPutsURLOnClipboard(t *testing.T) {
	s := openStore(t, twoRecordFile)
	rendered := menu.Render(s.Snapshot())
	clip := &fakeClipboard{}
	m := &scriptedMenu{answers: []string{rendered[0], "copy", ""}}

	a := app.New(app.Params{Store: s, Menu: m, Browser: &fakeBrowser{}, Clipboard: clip})
	assert.NilError(t, a.Run())

	assert.DeepEqual(t, clip.copied, []string{"https://a.test"})
}

func TestRun_CreateViaSentinel(t *testing.T) {
	s := openStore(t, "")
	m := &scriptedMenu{answers: []string{
		"{+} add bookmark",
		"Project's Github",
		"Development",
		"https://github.com/vannrr/fmark",
		"", // cancel the list afterwards
	}}

	a := app.New(app.Params{Store: s, Menu: m, Browser: &fakeBrowser{}, Clipboard: &fakeClipboard{}})
	assert.NilError(t, a.Run())

	data, err := os.ReadFile(s.Path())
	assert.NilError(t, err)
	assert.Equal(t, string(data), "{T}Project's Github {C}Development {U}https://github.com/vannrr/fmark\n")
	assert.DeepEqual(t, m.prompts, []string{"bookmarks", "title", "category", "url", "bookmarks"})
}

func TestRun_RawInputPrefillsTitle(t *testing.T) {
	s := openStore(t, "")
	m := &scriptedMenu{answers: []string{
		"My New Bookmark", // typed into the list, matches nothing
		"My New Bookmark", // accepted at the title prompt
		"Reading",
		"https://read.test",
		"",
	}}

	a := app.New(app.Params{Store: s, Menu: m, Browser: &fakeBrowser{}, Clipboard: &fakeClipboard{}})
	assert.NilError(t, a.Run())

	assert.Equal(t, s.Len(), 1)
	rec, err := s.At(0)
	assert.NilError(t, err)
	assert.Equal(t, rec.Title, "My New Bookmark")
}

func TestRun_CancelledPromptAbortsCreateWithoutPartialInsert(t *testing.T) {
	s := openStore(t, "")
	m := &scriptedMenu{answers: []string{
		"{+} add bookmark",
		"A Title",
		"", // cancel at the category prompt
		"", // then cancel the list
	}}

	a := app.New(app.Params{Store: s, Menu: m, Browser: &fakeBrowser{}, Clipboard: &fakeClipboard{}})
	assert.NilError(t, a.Run())

	assert.Equal(t, s.Len(), 0)
	_, err := os.ReadFile(s.Path())
	assert.Assert(t, os.IsNotExist(err))
}

func TestRun_ModifyReordersAndPersists(t *testing.T) {
	s := openStore(t, "{T}First {C}B {U}https://b.test\n{T}Last {C}Z {U}https://z.test\n")
	rendered := menu.Render(s.Snapshot())
	m := &scriptedMenu{answers: []string{
		rendered[1], // pick "Last"
		"modify",
		"Last",
		"A", // move it to the front
		"https://z.test",
		"",
	}}

	a := app.New(app.Params{Store: s, Menu: m, Browser: &fakeBrowser{}, Clipboard: &fakeClipboard{}})
	assert.NilError(t, a.Run())

	first, err := s.At(0)
	assert.NilError(t, err)
	assert.Equal(t, first.Category, "A")

	data, err := os.ReadFile(s.Path())
	assert.NilError(t, err)
	assert.Equal(t, string(data), "{T}Last  {C}A {U}https://z.test\n{T}First {C}B {U}https://b.test\n")
}

func TestRun_ModifyCancelledFieldLeavesStoreUntouched(t *testing.T) {
	s := openStore(t, twoRecordFile)
	rendered := menu.Render(s.Snapshot())
	m := &scriptedMenu{answers: []string{
		rendered[0],
		"modify",
		"Renamed",
		"", // cancel at the category prompt
		"",
	}}

	a := app.New(app.Params{Store: s, Menu: m, Browser: &fakeBrowser{}, Clipboard: &fakeClipboard{}})
	assert.NilError(t, a.Run())

	rec, err := s.At(0)
	assert.NilError(t, err)
	assert.Equal(t, rec.Title, "A")
}

func TestRun_RemoveAfterConfirmation(t *testing.T) {
	s := openStore(t, twoRecordFile)
	rendered := menu.Render(s.Snapshot())
	m := &scriptedMenu{answers: []string{
		rendered[1],
		"remove",
		"yes",
		"",
	}}

	a := app.New(app.Params{Store: s, Menu: m, Browser: &fakeBrowser{}, Clipboard: &fakeClipboard{}})
	assert.NilError(t, a.Run())

	data, err := os.ReadFile(s.Path())
	assert.NilError(t, err)
	assert.Equal(t, string(data), "{T}A {C}Development {U}https://a.test\n")
}

func TestRun_RemoveDeclined(t *testing.T) {
	s := openStore(t, twoRecordFile)
	rendered := menu.Render(s.Snapshot())
	m := &scriptedMenu{answers: []string{
		rendered[1],
		"remove",
		"no",
		"",
	}}

	a := app.New(app.Params{Store: s, Menu: m, Browser: &fakeBrowser{}, Clipboard: &fakeClipboard{}})
	assert.NilError(t, a.Run())
	assert.Equal(t, s.Len(), 2)
}

func TestView_NoMutation(t *testing.T) {
	s := openStore(t, twoRecordFile)
	rendered := menu.Render(s.Snapshot())
	m := &scriptedMenu{answers: []string{rendered[0]}}

	a := app.New(app.Params{Store: s, Menu: m, Browser: &fakeBrowser{}, Clipboard: &fakeClipboard{}})
	assert.NilError(t, a.View())

	assert.Equal(t, s.Len(), 2)
	data, err := os.ReadFile(s.Path())
	assert.NilError(t, err)
	assert.Equal(t, string(data), twoRecordFile)
}

func TestRun_OptionsCancelReturnsToList(t *testing.T) {
	s := openStore(t, twoRecordFile)
	rendered := menu.Render(s.Snapshot())
	m := &scriptedMenu{answers: []string{
		rendered[0],
		"cancel",
		"",
	}}

	a := app.New(app.Params{Store: s, Menu: m, Browser: &fakeBrowser{}, Clipboard: &fakeClipboard{}})
	assert.NilError(t, a.Run())
	assert.DeepEqual(t, m.prompts, []string{"bookmarks", "options", "bookmarks"})
}
