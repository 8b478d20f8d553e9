package savegame

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/hangman/game"
)

func testSnapshot() game.Snapshot {
	return game.Snapshot{
		Version:  game.SnapshotVersion,
		Word:     "mango",
		Alphabet: "aeglmnopr",
		Guessed:  "mep",
		Turn:     2,
		State:    "in_progress",
	}
}

func TestValidName(t *testing.T) {
	is := is.New(t)
	for _, tc := range []struct {
		name  string
		valid bool
	}{
		{"game1", true},
		{"my_save_2", true},
		{"_", true},
		{"", false},
		{"Game", false},
		{"my-save", false},
		{"my save", false},
		{"../etc", false},
		{"café", false},
	} {
		err := ValidName(tc.name)
		is.Equal(err == nil, tc.valid)
		if !tc.valid {
			is.True(errors.Is(err, ErrInvalidName))
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	is := is.New(t)
	store := NewStore(filepath.Join(t.TempDir(), "saved_games"))
	snap := testSnapshot()

	is.NoErr(store.Save("first", snap, false))
	g, err := store.Load("first")
	is.NoErr(err)
	is.Equal(g.Snapshot(), snap)
	is.Equal(g.Obfuscated(), "m _ _ _ _")
	is.Equal(g.Turn(), 2)
}

func TestSaveDoesNotOverwriteWithoutConsent(t *testing.T) {
	is := is.New(t)
	store := NewStore(t.TempDir())
	snap := testSnapshot()
	is.NoErr(store.Save("slot", snap, false))

	later := snap
	later.Guessed = "mepa"
	err := store.Save("slot", later, false)
	is.True(errors.Is(err, ErrExists))
	g, err := store.Load("slot")
	is.NoErr(err)
	is.Equal(g.Snapshot().Guessed, "mep")

	is.NoErr(store.Save("slot", later, true))
	g, err = store.Load("slot")
	is.NoErr(err)
	is.Equal(g.Snapshot().Guessed, "mepa")
}

func TestSaveRejectsBadName(t *testing.T) {
	is := is.New(t)
	store := NewStore(t.TempDir())
	err := store.Save("Bad Name", testSnapshot(), false)
	is.True(errors.Is(err, ErrInvalidName))
}

func TestList(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	store := NewStore(dir)

	names, err := store.List()
	is.NoErr(err)
	is.Equal(len(names), 0)

	is.NoErr(store.Save("zeta", testSnapshot(), false))
	is.NoErr(store.Save("alpha", testSnapshot(), false))
	is.NoErr(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	is.NoErr(os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755))

	names, err = store.List()
	is.NoErr(err)
	is.Equal(names, []string{"alpha", "zeta"})
}

func TestListMissingDir(t *testing.T) {
	is := is.New(t)
	store := NewStore(filepath.Join(t.TempDir(), "never_created"))
	names, err := store.List()
	is.NoErr(err)
	is.Equal(len(names), 0)
}

func TestLoadMissing(t *testing.T) {
	is := is.New(t)
	store := NewStore(t.TempDir())
	_, err := store.Load("nothing")
	is.True(errors.Is(err, fs.ErrNotExist))
}

func TestLoadDetectsTampering(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	store := NewStore(dir)
	is.NoErr(store.Save("slot", testSnapshot(), false))

	path := filepath.Join(dir, "slot"+FileExtension)
	bts, err := os.ReadFile(path)
	is.NoErr(err)
	tampered := strings.Replace(string(bts), "word: mango", "word: grape", 1)
	is.True(tampered != string(bts))
	is.NoErr(os.WriteFile(path, []byte(tampered), 0o644))

	_, err = store.Load("slot")
	is.True(errors.Is(err, ErrCorrupt))
}

func TestLoadGarbage(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	store := NewStore(dir)
	is.NoErr(os.WriteFile(filepath.Join(dir, "junk"+FileExtension), []byte("{{{ not yaml"), 0o644))
	_, err := store.Load("junk")
	is.True(errors.Is(err, ErrCorrupt))

	is.NoErr(os.WriteFile(filepath.Join(dir, "old"+FileExtension), []byte("format: 9\n"), 0o644))
	_, err = store.Load("old")
	is.True(errors.Is(err, ErrCorrupt))
}

func TestLoadRejectsImpossibleState(t *testing.T) {
	is := is.New(t)
	store := NewStore(t.TempDir())
	snap := testSnapshot()
	snap.Turn = 5
	// The checksum is valid, but the turn does not match the misses.
	is.NoErr(store.Save("bad", snap, false))
	_, err := store.Load("bad")
	is.True(errors.Is(err, ErrCorrupt))
	is.True(errors.Is(err, game.ErrInvalidSnapshot))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	store := NewStore(dir)
	is.NoErr(store.Save("slot", testSnapshot(), false))
	entries, err := os.ReadDir(dir)
	is.NoErr(err)
	is.Equal(len(entries), 1)
	is.Equal(entries[0].Name(), "slot"+FileExtension)
}
