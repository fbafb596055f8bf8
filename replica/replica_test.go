package replica

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/leelasd/colvars/errors"
)

func TestDisabled(t *testing.T) {
	var c Comm = Disabled{}

	if c.Enabled() {
		t.Error("Disabled must report Enabled() == false")
	}
	if c.Index() != 0 {
		t.Errorf("Index() = %d, want 0", c.Index())
	}
	if c.Count() != 1 {
		t.Errorf("Count() = %d, want 1", c.Count())
	}
	if err := c.Barrier(); err != nil {
		t.Errorf("Barrier() = %v, want no-op", err)
	}
	if err := c.Send([]byte("x"), 1); !errors.IsUnsupported(err) {
		t.Errorf("Send = %v, want unsupported", err)
	}
	if _, err := c.Recv(make([]byte, 8), 1); !errors.IsUnsupported(err) {
		t.Errorf("Recv = %v, want unsupported", err)
	}
}

func TestLocalHub_SendRecv(t *testing.T) {
	hub := NewLocalHub(2)
	a := hub.Replica(0)
	b := hub.Replica(1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.Send([]byte("exchange:300K"), 1); err != nil {
			t.Errorf("Send: %v", err)
		}
	}()

	buf := make([]byte, 64)
	n, err := b.Recv(buf, 0)
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if got := string(buf[:n]); got != "exchange:300K" {
		t.Errorf("payload = %q", got)
	}
	wg.Wait()
}

func TestLocalHub_PayloadAtomic(t *testing.T) {
	// Messages from the same sender arrive whole and in order.
	hub := NewLocalHub(2)
	a := hub.Replica(0)
	b := hub.Replica(1)

	const msgs = 50
	go func() {
		for i := 0; i < msgs; i++ {
			msg := bytes.Repeat([]byte{byte(i)}, 32)
			if err := a.Send(msg, 1); err != nil {
				t.Errorf("Send %d: %v", i, err)
				return
			}
		}
	}()

	buf := make([]byte, 32)
	for i := 0; i < msgs; i++ {
		n, err := b.Recv(buf, 0)
		if err != nil {
			t.Fatalf("Recv %d: %v", i, err)
		}
		if n != 32 {
			t.Fatalf("Recv %d: %d bytes", i, n)
		}
		for _, c := range buf[:n] {
			if c != byte(i) {
				t.Fatalf("message %d interleaved: %v", i, buf[:n])
			}
		}
	}
}

func TestLocalHub_SenderBufferReuse(t *testing.T) {
	hub := NewLocalHub(2)
	a := hub.Replica(0)
	b := hub.Replica(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		msg := []byte("first")
		if err := a.Send(msg, 1); err != nil {
			t.Errorf("Send: %v", err)
		}
		copy(msg, "XXXXX") // must not affect the delivered payload
	}()

	buf := make([]byte, 16)
	n, err := b.Recv(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	<-done
	if got := string(buf[:n]); got != "first" {
		t.Errorf("payload = %q, want %q", got, "first")
	}
}

func TestLocalHub_ShortBuffer(t *testing.T) {
	hub := NewLocalHub(2)
	a := hub.Replica(0)
	b := hub.Replica(1)

	go a.Send(make([]byte, 100), 1)

	_, err := b.Recv(make([]byte, 10), 0)
	if !errors.IsInput(err) {
		t.Errorf("short buffer: got %v, want input error", err)
	}
}

func TestLocalHub_BadPeers(t *testing.T) {
	hub := NewLocalHub(2)
	c := hub.Replica(0)

	if err := c.Send([]byte("x"), 5); !errors.IsInput(err) {
		t.Errorf("send to out-of-range peer: %v", err)
	}
	if err := c.Send([]byte("x"), 0); !errors.IsInput(err) {
		t.Errorf("send to self: %v", err)
	}
	if _, err := c.Recv(make([]byte, 4), -1); !errors.IsInput(err) {
		t.Errorf("recv from out-of-range peer: %v", err)
	}
}

func TestLocalHub_Barrier(t *testing.T) {
	const n = 4
	const rounds = 10
	hub := NewLocalHub(n)

	// Counter per round: every replica must observe all n arrivals of the
	// previous round before any replica proceeds past the barrier.
	var counters [rounds]int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			c := hub.Replica(idx)
			for r := 0; r < rounds; r++ {
				atomic.AddInt32(&counters[r], 1)
				if err := c.Barrier(); err != nil {
					t.Errorf("replica %d barrier: %v", idx, err)
					return
				}
				if got := atomic.LoadInt32(&counters[r]); got != n {
					t.Errorf("round %d: replica %d passed barrier with %d arrivals", r, idx, got)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestLocalHub_ReplicaView(t *testing.T) {
	hub := NewLocalHub(3)
	for i := 0; i < 3; i++ {
		c := hub.Replica(i)
		if !c.Enabled() {
			t.Errorf("replica %d not enabled", i)
		}
		if c.Index() != i {
			t.Errorf("replica %d reports index %d", i, c.Index())
		}
		if c.Count() != 3 {
			t.Errorf("replica %d reports count %d", i, c.Count())
		}
	}
}

func TestLocalHub_RingExchange(t *testing.T) {
	// Each replica sends its index to the next and receives from the
	// previous, a miniature replica-exchange pattern.
	const n = 3
	hub := NewLocalHub(n)

	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			c := hub.Replica(idx)
			next := (idx + 1) % n
			prev := (idx + n - 1) % n

			errc := make(chan error, 1)
			go func() {
				errc <- c.Send([]byte(fmt.Sprintf("from-%d", idx)), next)
			}()

			buf := make([]byte, 16)
			nr, err := c.Recv(buf, prev)
			if err != nil {
				t.Errorf("replica %d recv: %v", idx, err)
				return
			}
			if err := <-errc; err != nil {
				t.Errorf("replica %d send: %v", idx, err)
				return
			}
			results[idx] = string(buf[:nr])
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		want := fmt.Sprintf("from-%d", (i+n-1)%n)
		if results[i] != want {
			t.Errorf("replica %d received %q, want %q", i, results[i], want)
		}
	}
}
