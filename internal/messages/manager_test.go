package messages

import (
	"testing"

	"github.com/as2js-go/as2js/internal/token"
)

func TestEmitBelowFloorIsDropped(t *testing.T) {
	mgr := NewManager()
	mgr.Floor = ERROR
	var got []Message
	mgr.SetSink(func(m Message) { got = append(got, m) })

	mgr.Emit(WARNING, CodeNameNotFound, token.Position{}, "ignored")
	if len(got) != 0 {
		t.Fatalf("expected warning below floor to be dropped, got %v", got)
	}
	if mgr.Warnings() != 0 {
		t.Fatalf("dropped message should not increment counters")
	}
}

func TestFatalAlwaysEmitted(t *testing.T) {
	mgr := NewManager()
	mgr.Floor = OFF + 100 // absurdly high floor
	var got []Message
	mgr.SetSink(func(m Message) { got = append(got, m) })

	mgr.Emit(FATAL, CodeDatabaseLoadFailure, token.Position{}, "boom")
	if len(got) != 1 {
		t.Fatalf("expected fatal message to bypass floor, got %d", len(got))
	}
}

func TestCountersIncrement(t *testing.T) {
	mgr := NewManager()
	mgr.SetSink(func(Message) {})

	mgr.Emit(WARNING, CodeNameNotFound, token.Position{}, "w1")
	mgr.Emit(ERROR, CodeNameNotFound, token.Position{}, "e1")
	mgr.Emit(ERROR, CodeNameNotFound, token.Position{}, "e2")

	if mgr.Warnings() != 1 {
		t.Fatalf("warnings = %d, want 1", mgr.Warnings())
	}
	if mgr.Errors() != 2 {
		t.Fatalf("errors = %d, want 2", mgr.Errors())
	}

	mgr.Reset()
	if mgr.Warnings() != 0 || mgr.Errors() != 0 {
		t.Fatal("Reset should zero both counters")
	}
}

func TestFormatMatchesWireFormat(t *testing.T) {
	m := Message{
		Level: ERROR,
		Code:  CodeNameNotFound,
		Pos:   token.Position{Filename: "a.as", Line: 3, Column: 5},
		Text:  "undefined identifier 'x'",
	}
	got := m.Format()
	want := "error:name-not-found: in a.as(3:5): undefined identifier 'x'"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatWithoutFilename(t *testing.T) {
	m := Message{Level: WARNING, Code: CodeUnnamedForwardEnum, Text: "no position"}
	got := m.Format()
	want := "warning:unnamed-forward-enum: no position"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatWithSourceRendersCaret(t *testing.T) {
	mgr := NewManager()
	mgr.SetSource("a.as", "var x = 1;\nvar y;")
	m := Message{Level: ERROR, Code: CodeNameNotFound, Pos: token.Position{Filename: "a.as", Line: 1, Column: 5}, Text: "bad"}
	out := mgr.FormatWithSource(m)
	if !contains(out, "var x = 1;") || !contains(out, "^") {
		t.Fatalf("expected caret-annotated output, got:\n%s", out)
	}
}

func contains(s, sub string) bool {
	return len(s) >= len(sub) && (func() bool {
		for i := 0; i+len(sub) <= len(s); i++ {
			if s[i:i+len(sub)] == sub {
				return true
			}
		}
		return false
	})()
}
