package output

import (
	"bytes"
	stderrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/leelasd/colvars/errors"
	"github.com/leelasd/colvars/logging"
)

type memChannel struct {
	bytes.Buffer
	closed int
}

func (c *memChannel) Close() error {
	c.closed++
	return nil
}

// memOpener keeps every channel it ever opened so tests can inspect them
// after close.
type memOpener struct {
	opened map[string][]*memChannel
	fail   map[string]error
}

func newMemOpener() *memOpener {
	return &memOpener{opened: make(map[string][]*memChannel)}
}

func (o *memOpener) Open(name string) (io.WriteCloser, error) {
	if err := o.fail[name]; err != nil {
		return nil, err
	}
	c := &memChannel{}
	o.opened[name] = append(o.opened[name], c)
	return c, nil
}

func TestManager_GetSameHandle(t *testing.T) {
	opener := newMemOpener()
	m := NewManager(opener, nil)

	first, err := m.Get("traj")
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	second, err := m.Get("traj")
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if first != second {
		t.Error("same name must return the same handle")
	}
	if len(opener.opened["traj"]) != 1 {
		t.Errorf("opened %d handles, want 1", len(opener.opened["traj"]))
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestManager_OpenFailure(t *testing.T) {
	opener := newMemOpener()
	opener.fail = map[string]error{"bad": stderrors.New("permission denied")}
	sink := &logging.TestSink{}
	m := NewManager(opener, sink)

	_, err := m.Get("bad")
	if !errors.IsFile(err) {
		t.Fatalf("got %v, want file error", err)
	}
	if len(sink.Errors) != 1 || !strings.Contains(sink.Errors[0], "bad") {
		t.Errorf("open failure not reported through sink: %v", sink.Errors)
	}
	if m.Len() != 0 {
		t.Error("failed open must not leave a bookkeeping entry")
	}
}

func TestManager_CloseSemantics(t *testing.T) {
	opener := newMemOpener()
	sink := &logging.TestSink{}
	m := NewManager(opener, sink)

	if _, err := m.Get("traj"); err != nil {
		t.Fatal(err)
	}
	if err := m.Close("traj"); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if opener.opened["traj"][0].closed != 1 {
		t.Error("handle not closed")
	}

	// Second close in a row is a bug error.
	if err := m.Close("traj"); !errors.IsBug(err) {
		t.Errorf("double close: got %v, want bug error", err)
	}
	// Closing a never-opened name is a bug error too.
	if err := m.Close("never"); !errors.IsBug(err) {
		t.Errorf("unopened close: got %v, want bug error", err)
	}
	if len(sink.Errors) != 2 {
		t.Errorf("bug errors reported %d times, want 2", len(sink.Errors))
	}
}

func TestManager_ReopenAfterClose(t *testing.T) {
	opener := newMemOpener()
	m := NewManager(opener, nil)

	if _, err := m.Get("traj"); err != nil {
		t.Fatal(err)
	}
	if err := m.Close("traj"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get("traj"); err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
	if len(opener.opened["traj"]) != 2 {
		t.Errorf("opened %d handles, want 2", len(opener.opened["traj"]))
	}
}

func TestManager_CloseAll(t *testing.T) {
	opener := newMemOpener()
	m := NewManager(opener, nil)

	for _, name := range []string{"a", "b", "c"} {
		if _, err := m.Get(name); err != nil {
			t.Fatal(err)
		}
	}

	if err := m.CloseAll(); err != nil {
		t.Fatalf("CloseAll: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after CloseAll", m.Len())
	}
	for name, handles := range opener.opened {
		if handles[0].closed != 1 {
			t.Errorf("channel %q not closed", name)
		}
	}
}

func TestManager_WriteThrough(t *testing.T) {
	opener := newMemOpener()
	m := NewManager(opener, nil)

	w, err := m.Get("colvars.traj")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "# step x\n"); err != nil {
		t.Fatal(err)
	}
	if got := opener.opened["colvars.traj"][0].String(); got != "# step x\n" {
		t.Errorf("written %q", got)
	}
}
