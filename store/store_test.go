package store

import (
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"stylesync/editor"
	"stylesync/style"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "scopes.db"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openStore(t)

	if err := s.Put("home", "section", "padding: 10px;"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put("home", "row", "padding: 20px;"); err != nil {
		t.Fatalf("Put() replace error = %v", err)
	}

	rec, err := s.Get("home")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.CSS != "padding: 20px;" || rec.Level != "row" {
		t.Errorf("Get() = %+v", rec)
	}
	if rec.Updated.IsZero() {
		t.Error("Updated not set")
	}
	if ctx, err := rec.Context(); err != nil || ctx != style.EditingContextRow {
		t.Errorf("Context() = %v, %v", ctx, err)
	}

	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) error = %v", err)
	}
	if css, err := s.CSS(""); err != nil || css != "" {
		t.Errorf("CSS(\"\") = %q, %v", css, err)
	}
}

func TestStore_PutValidation(t *testing.T) {
	s := openStore(t)

	if err := s.Put("home", "galaxy", ""); !errors.Is(err, style.ErrInvalidEditingContext) {
		t.Errorf("Put(bad level) error = %v", err)
	}
	if err := s.Put("Home Page", "page", ""); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Put(bad id) error = %v", err)
	}
	if err := s.Put("main", LevelSite, "color: red"); err != nil {
		t.Errorf("Put(site) error = %v", err)
	}
	rec, _ := s.Get("main")
	if ctx, err := rec.Context(); err != nil || ctx != style.EditingContextPage {
		t.Errorf("site scope context = %v, %v", ctx, err)
	}
}

func TestStore_ListAndDelete(t *testing.T) {
	s := openStore(t)

	for _, id := range []string{"row-10", "row-2", "page"} {
		if err := s.Put(id, "row", ""); err != nil {
			t.Fatal(err)
		}
	}
	recs, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var ids []string
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	if len(ids) != 3 || ids[0] != "page" || ids[1] != "row-2" || ids[2] != "row-10" {
		t.Errorf("List() order = %q", ids)
	}

	if err := s.Delete("row-2"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("row-2"); err != nil {
		t.Errorf("Delete() of missing scope error = %v", err)
	}
	if recs, _ := s.List(); len(recs) != 2 {
		t.Errorf("List() after delete has %d entries", len(recs))
	}
}

func TestID(t *testing.T) {
	if id, err := ID("Home Page"); err != nil || id != "home-page" {
		t.Errorf("ID() = %q, %v", id, err)
	}
	if _, err := ID("!!!"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("ID(!!!) error = %v", err)
	}
}

func TestStore_RecorderPersistsEditorChanges(t *testing.T) {
	s := openStore(t)
	if err := s.Put("hero", "section", "background-color: #fff; color: #fff;"); err != nil {
		t.Fatal(err)
	}
	rec, _ := s.Get("hero")

	// the load time heal is written back right away
	ed := editor.New(style.EditingContextSection, rec.CSS, s.Recorder("hero", "section"))
	if css, _ := s.CSS("hero"); css != "background-color: #fff;\n" {
		t.Errorf("healed CSS = %q", css)
	}

	if err := ed.UpdateProperty(style.PropPadding, "12"); err != nil {
		t.Fatal(err)
	}
	if css, _ := s.CSS("hero"); css != ed.CSS() {
		t.Errorf("stored CSS = %q, editor has %q", css, ed.CSS())
	}
}
