package store

import (
	"sort"
	"testing"
	"time"

	"github.com/impodog/termichess/internal/errors"
	"github.com/impodog/termichess/internal/testutil"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", 0)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	s := openMemory(t)

	testutil.AssertNoError(t, s.Save("lobby", "record-1"))
	testutil.AssertNoError(t, s.Save("lobby", "record-2"))

	snap, err := s.Load("lobby")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, snap.Board, "record-2")
	testutil.AssertFalse(t, snap.Saved.IsZero(), "saved time should be set")
}

func TestLoad_Missing(t *testing.T) {
	s := openMemory(t)

	_, err := s.Load("nowhere")
	testutil.AssertErrorIs(t, err, errors.ErrRoomNotFound)
}

func TestDelete(t *testing.T) {
	s := openMemory(t)

	testutil.AssertNoError(t, s.Save("a", "x"))
	testutil.AssertNoError(t, s.Delete("a"))
	testutil.AssertNoError(t, s.Delete("never-saved"))

	_, err := s.Load("a")
	testutil.AssertErrorIs(t, err, errors.ErrRoomNotFound)
}

func TestRooms(t *testing.T) {
	s := openMemory(t)

	for _, room := range []string{"red", "green", "blue"} {
		testutil.AssertNoError(t, s.Save(room, "b"))
	}
	testutil.AssertNoError(t, s.Delete("green"))

	rooms, err := s.Rooms()
	testutil.AssertNoError(t, err)
	sort.Strings(rooms)
	testutil.AssertEqual(t, rooms, []string{"blue", "red"})
}

func TestOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, time.Hour)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, s.Save("kept", "board"))
	testutil.AssertNoError(t, s.Close())

	s, err = Open(dir, time.Hour)
	testutil.AssertNoError(t, err)
	defer s.Close()

	snap, err := s.Load("kept")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, snap.Board, "board")
}
