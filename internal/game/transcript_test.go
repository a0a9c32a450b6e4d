package game

import "testing"

func TestTranscriptPreservesOrder(t *testing.T) {
	tr := NewTranscript()
	tr.AddSystem("rules")
	tr.AddPlayer("I open the door")
	tr.AddNarrator("It creaks open.")
	tr.AddPlayer("I step inside")

	want := []Message{
		{Role: RoleSystem, Content: "rules"},
		{Role: RoleUser, Content: "I open the door"},
		{Role: RoleAssistant, Content: "It creaks open."},
		{Role: RoleUser, Content: "I step inside"},
	}

	got := tr.Messages()
	if len(got) != len(want) {
		t.Fatalf("Messages() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTranscriptSnapshotIsIsolated(t *testing.T) {
	tr := NewTranscript()
	tr.AddPlayer("first")

	snapshot := tr.Messages()
	snapshot[0].Content = "tampered"
	tr.AddNarrator("second")

	if got := tr.Messages()[0].Content; got != "first" {
		t.Errorf("transcript content = %q after snapshot mutation, want %q", got, "first")
	}
	if tr.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tr.Len())
	}
}

func TestTranscriptTail(t *testing.T) {
	tr := NewTranscript()
	tr.AddPlayer("one")
	tr.AddNarrator("two")
	tr.AddPlayer("three")
	tr.AddNarrator("four")

	tail := tr.Tail(2)
	if len(tail) != 2 {
		t.Fatalf("Tail(2) returned %d entries, want 2", len(tail))
	}
	if tail[0].Content != "three" || tail[1].Content != "four" {
		t.Errorf("Tail(2) = %q, %q, want the last two entries", tail[0].Content, tail[1].Content)
	}

	if got := tr.Tail(10); len(got) != 4 {
		t.Errorf("Tail(10) returned %d entries, want all 4", len(got))
	}
	if got := tr.Tail(0); len(got) != 0 {
		t.Errorf("Tail(0) returned %d entries, want none", len(got))
	}

	tail[0].Content = "tampered"
	if got := tr.Messages()[2].Content; got != "three" {
		t.Errorf("transcript content = %q after tail mutation, want %q", got, "three")
	}
}
