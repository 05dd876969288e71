package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dalbodeule/loco-gate/internal/logging"
)

func newTestRegistry(timeout time.Duration) *Registry {
	return NewRegistry(logging.NewLeveledJSONLogger("test", logging.ErrorLevel), timeout)
}

func TestRegisterRequestedIdentity(t *testing.T) {
	r := newTestRegistry(time.Second)

	sess, err := r.Register("alice", "My-App")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if sess.Identity != "my-app" {
		t.Fatalf("identity = %q, want normalized %q", sess.Identity, "my-app")
	}
	if sess.State() != StatePending {
		t.Fatalf("state = %q, want %q before mux attach", sess.State(), StatePending)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
}

func TestRegisterInvalidIdentity(t *testing.T) {
	r := newTestRegistry(time.Second)

	for _, bad := range []string{"-app", "app-", "has space", "UPPER_UNDER!"} {
		if _, err := r.Register("alice", bad); !errors.Is(err, ErrInvalidIdentity) {
			t.Errorf("Register(%q) err = %v, want ErrInvalidIdentity", bad, err)
		}
	}
}

func TestRegisterConcurrentSameIdentity(t *testing.T) {
	r := newTestRegistry(time.Second)

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = r.Register("racer", "contested")
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrIdentityInUse):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("winners = %d, want exactly 1", won)
	}
}

func TestRegisterRandomIdentity(t *testing.T) {
	r := newTestRegistry(time.Second)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		sess, err := r.Register("bob", "")
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if sess.Identity == "" {
			t.Fatal("random identity is empty")
		}
		if seen[sess.Identity] {
			t.Fatalf("identity %q allocated twice", sess.Identity)
		}
		seen[sess.Identity] = true
	}
}

func TestLookupRequiresActive(t *testing.T) {
	r := newTestRegistry(time.Second)

	sess, err := r.Register("alice", "app")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// PENDING sessions are not routable yet.
	if _, err := r.Lookup("app"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup(pending) err = %v, want ErrNotFound", err)
	}

	sess.AttachMux(nil)
	got, err := r.Lookup("app")
	if err != nil {
		t.Fatalf("Lookup(active): %v", err)
	}
	if got.ID != sess.ID {
		t.Fatalf("Lookup returned session %q, want %q", got.ID, sess.ID)
	}
}

func TestHeartbeatAndExpiry(t *testing.T) {
	r := newTestRegistry(50 * time.Millisecond)

	sess, err := r.Register("alice", "app")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	sess.AttachMux(nil)

	if err := r.Heartbeat(sess.ID); err != nil {
		t.Fatalf("Heartbeat: %v", err)
	}

	// Fresh heartbeat keeps the session alive.
	if n := r.Sweep(time.Now()); n != 0 {
		t.Fatalf("Sweep(fresh) expired %d, want 0", n)
	}

	// Past the timeout the sweep must release it.
	if n := r.Sweep(time.Now().Add(time.Second)); n != 1 {
		t.Fatalf("Sweep(stale) expired %d, want 1", n)
	}
	if _, err := r.Lookup("app"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup after expiry err = %v, want ErrNotFound", err)
	}
	if err := r.Heartbeat(sess.ID); !errors.Is(err, ErrExpired) {
		t.Fatalf("Heartbeat after expiry err = %v, want ErrExpired", err)
	}
	if sess.State() != StateClosed {
		t.Fatalf("state after expiry = %q, want %q", sess.State(), StateClosed)
	}
}

func TestReleaseFreesIdentity(t *testing.T) {
	r := newTestRegistry(time.Second)

	first, err := r.Register("alice", "app")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := r.Register("bob", "app"); !errors.Is(err, ErrIdentityInUse) {
		t.Fatalf("second Register err = %v, want ErrIdentityInUse", err)
	}

	r.Release(first.ID)
	r.Release(first.ID) // idempotent

	second, err := r.Register("bob", "app")
	if err != nil {
		t.Fatalf("Register after release: %v", err)
	}
	if second.Identity != "app" {
		t.Fatalf("identity = %q, want %q", second.Identity, "app")
	}
}

func TestSnapshots(t *testing.T) {
	r := newTestRegistry(time.Second)

	sess, err := r.Register("alice", "app")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	sess.AttachMux(nil)
	sess.AddTransfer(100, 200)

	snaps := r.Snapshots()
	if len(snaps) != 1 {
		t.Fatalf("Snapshots len = %d, want 1", len(snaps))
	}
	snap := snaps[0]
	if snap.Identity != "app" || snap.State != StateActive {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.BytesIn != 100 || snap.BytesOut != 200 {
		t.Fatalf("transfer = %d/%d, want 100/200", snap.BytesIn, snap.BytesOut)
	}
}
