package contact

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	alice = Contact{Name: "Alice", Phone: "555-0100", Email: "alice@example.com"}
	bob   = Contact{Name: "Bob", Phone: "555-0101", Email: "bob@example.com"}
)

func TestContact_Validate(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		wantErr bool
	}{
		{name: "complete", contact: alice},
		{name: "missing name", contact: Contact{Phone: "1", Email: "e"}, wantErr: true},
		{name: "blank phone", contact: Contact{Name: "n", Phone: "   ", Email: "e"}, wantErr: true},
		{name: "missing email", contact: Contact{Name: "n", Phone: "1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.contact.Validate()
			if tt.wantErr && !errors.Is(err, ErrMissingField) {
				t.Errorf("Validate() error = %v, want ErrMissingField", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestContact_String(t *testing.T) {
	want := "Name: Alice, Phone: 555-0100, Email: alice@example.com"
	if got := alice.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestList_AddThenFindAnyCase(t *testing.T) {
	// Given a list with one contact
	l := &List{}
	l.Add(alice)

	for _, name := range []string{"Alice", "alice", "ALICE", "aLiCe"} {
		t.Run(name, func(t *testing.T) {
			// When Find is called with a differently cased name
			got, ok := l.Find(name)

			// Then the contact is returned
			if !ok {
				t.Fatalf("Find(%q) found = false, want true", name)
			}
			if got != alice {
				t.Errorf("Find(%q) = %+v, want %+v", name, got, alice)
			}
		})
	}
}

func TestList_FindReturnsFirstMatch(t *testing.T) {
	dup := Contact{Name: "alice", Phone: "555-9999", Email: "other@example.com"}
	l := NewList(alice, dup)

	got, ok := l.Find("ALICE")
	if !ok || got != alice {
		t.Errorf("Find() = %+v, %v; want first match %+v", got, ok, alice)
	}
}

func TestList_FindIsExact(t *testing.T) {
	l := NewList(alice)
	if _, ok := l.Find("Ali"); ok {
		t.Error("Find(prefix) found = true, want false")
	}
}

func TestList_DeleteNoMatch(t *testing.T) {
	tests := []struct {
		name string
		list *List
	}{
		{name: "empty list", list: &List{}},
		{name: "non-matching list", list: NewList(alice, bob)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given a list without "Carol"
			before := tt.list.All()

			// When Delete is called
			removed := tt.list.Delete("Carol")

			// Then nothing is removed and the list is unchanged
			if removed {
				t.Error("Delete() = true, want false")
			}
			if diff := cmp.Diff(before, tt.list.All()); diff != "" {
				t.Errorf("list changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestList_DeleteRemovesExactlyOne(t *testing.T) {
	// Given two contacts sharing a name in different case
	dup := Contact{Name: "ALICE", Phone: "555-9999", Email: "other@example.com"}
	l := NewList(alice, bob, dup)

	// When Delete is called with a third casing
	if !l.Delete("alice") {
		t.Fatal("Delete() = false, want true")
	}

	// Then only the first match is gone
	want := []Contact{bob, dup}
	if diff := cmp.Diff(want, l.All()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestList_AllPreservesInsertionOrder(t *testing.T) {
	l := &List{}
	l.Add(bob)
	l.Add(alice)

	want := []Contact{bob, alice}
	if diff := cmp.Diff(want, l.All()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestList_AllReturnsCopy(t *testing.T) {
	l := NewList(alice)
	out := l.All()
	out[0].Name = "Mallory"

	if got, _ := l.Find("Alice"); got != alice {
		t.Errorf("list mutated through All() result: %+v", got)
	}
}

func TestNewList_CopiesInput(t *testing.T) {
	in := []Contact{alice}
	l := NewList(in...)
	in[0].Name = "Mallory"

	if _, ok := l.Find("Alice"); !ok {
		t.Error("NewList should copy its input")
	}
}

func TestList_RemoveMatchesAllFields(t *testing.T) {
	a1 := Contact{Name: "Alice", Phone: "1", Email: "a1@x"}
	a2 := Contact{Name: "Alice", Phone: "2", Email: "a2@x"}

	tests := []struct {
		name   string
		remove Contact
		want   []Contact
		ok     bool
	}{
		{name: "second of two same-named", remove: a2, want: []Contact{a1}, ok: true},
		{name: "first of two same-named", remove: a1, want: []Contact{a2}, ok: true},
		{name: "name case differs", remove: Contact{Name: "alice", Phone: "1", Email: "a1@x"}, want: []Contact{a1, a2}},
		{name: "no match", remove: Contact{Name: "Bob", Phone: "3", Email: "b@x"}, want: []Contact{a1, a2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewList(a1, a2)
			if got := l.Remove(tt.remove); got != tt.ok {
				t.Errorf("Remove() = %v, want %v", got, tt.ok)
			}
			if diff := cmp.Diff(tt.want, l.All()); diff != "" {
				t.Errorf("All() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
