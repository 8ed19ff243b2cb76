package deque

import "testing"

// The command interpreter's lexer only ever uses a Deque[rune] as a LIFO
// pushback buffer: OfferLast pushes a rune back, PollLast retrieves the
// most recently pushed-back one first. These tests exercise the deque the
// way that lexer does, plus the rest of the API it doesn't use.

func TestEmptyDequeReportsErrors(t *testing.T) {
	d := NewDeque[rune]()

	if !d.IsEmpty() {
		t.Fatalf("expected new deque to be empty")
	}
	if d.Size() != 0 {
		t.Fatalf("expected size 0, got %d", d.Size())
	}
	if _, err := d.PeekLast(); err == nil {
		t.Fatalf("expected error on PeekLast for empty deque")
	}
	if _, err := d.PollLast(); err == nil {
		t.Fatalf("expected error on PollLast for empty deque")
	}
}

func TestPushbackIsLastInFirstOut(t *testing.T) {
	d := NewDeque[rune]()

	// A lexer that reads '1', '2', '3' and then needs to unread them in
	// the order it read them must see them back out in reverse.
	for _, r := range "123" {
		if _, err := d.OfferLast(r); err != nil {
			t.Fatalf("OfferLast(%q) failed: %v", r, err)
		}
	}
	if d.Size() != 3 {
		t.Fatalf("expected size 3, got %d", d.Size())
	}

	want := []rune{'3', '2', '1'}
	for _, expect := range want {
		got, err := d.PollLast()
		if err != nil || got != expect {
			t.Fatalf("PollLast() = %q, %v, want %q", got, err, expect)
		}
	}
	if !d.IsEmpty() {
		t.Fatalf("expected empty deque after draining pushback buffer")
	}
}

func TestPeekLastDoesNotConsume(t *testing.T) {
	d := NewDeque[rune]()
	if _, err := d.OfferLast('?'); err != nil {
		t.Fatalf("OfferLast failed: %v", err)
	}

	if r, err := d.PeekLast(); err != nil || r != '?' {
		t.Fatalf("PeekLast() = %q, %v, want '?'", r, err)
	}
	if d.Size() != 1 {
		t.Fatalf("expected PeekLast to leave the rune in place, size = %d", d.Size())
	}
	if r, err := d.PollLast(); err != nil || r != '?' {
		t.Fatalf("PollLast() = %q, %v, want '?'", r, err)
	}
}

func TestOfferFirstAndPollFirst(t *testing.T) {
	d := NewDeque[rune]()

	if _, err := d.OfferFirst('a'); err != nil {
		t.Fatalf("OfferFirst failed: %v", err)
	}
	if _, err := d.OfferFirst('b'); err != nil {
		t.Fatalf("OfferFirst failed: %v", err)
	}

	// Most recently offered to the front comes out first.
	if r, err := d.PollFirst(); err != nil || r != 'b' {
		t.Fatalf("PollFirst() = %q, %v, want 'b'", r, err)
	}
	if r, err := d.PeekFirst(); err != nil || r != 'a' {
		t.Fatalf("PeekFirst() = %q, %v, want 'a'", r, err)
	}
}

func TestRemoveExistingAndNonExisting(t *testing.T) {
	d := NewDeque[rune]()
	for _, r := range "abc" {
		if _, err := d.OfferLast(r); err != nil {
			t.Fatalf("OfferLast(%q) failed: %v", r, err)
		}
	}

	if removed := d.Remove('b'); !removed {
		t.Fatalf("Remove('b') expected true, got false")
	}
	if d.Size() != 2 {
		t.Fatalf("expected size 2 after removal, got %d", d.Size())
	}
	if removed := d.Remove('z'); removed {
		t.Fatalf("Remove('z') expected false, got true")
	}
}
