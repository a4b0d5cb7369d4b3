package gcode

import "testing"

func TestParseEmpty(t *testing.T) {
	moves := Parse("")
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for empty input, got %d", len(moves))
	}
}

func TestParseCommentsOnly(t *testing.T) {
	code := "; a comment\n(parenthetical)\n"
	moves := Parse(code)
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for comments-only input, got %d", len(moves))
	}
}

func TestParseRapidMove(t *testing.T) {
	moves := Parse("G0 X10.000 Y20.000\n")
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	m := moves[0]
	if m.Type != MoveRapid {
		t.Errorf("expected MoveRapid, got %d", m.Type)
	}
	if m.ToX != 10 || m.ToY != 20 {
		t.Errorf("expected to (10,20), got (%.3f, %.3f)", m.ToX, m.ToY)
	}
}

func TestParseArcMoveCapturesIJ(t *testing.T) {
	moves := Parse("G0 X10 Y0\nG2 X0 Y10 Z-1 I-10 J0 F800\n")
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	m := moves[1]
	if m.Type != MoveCWArc {
		t.Errorf("expected MoveCWArc, got %d", m.Type)
	}
	if m.I != -10 || m.J != 0 {
		t.Errorf("expected I=-10 J=0, got I=%.3f J=%.3f", m.I, m.J)
	}
	if m.ToZ != -1 {
		t.Errorf("expected ToZ=-1, got %.3f", m.ToZ)
	}
}

func TestParseClassifiesPlungeAndRetract(t *testing.T) {
	code := "G0 X0 Y0\nG1 Z-5 F300\nG0 Z10\n"
	moves := Parse(code)
	if len(moves) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(moves))
	}
	if moves[1].Type != MovePlunge {
		t.Errorf("expected MovePlunge, got %d", moves[1].Type)
	}
	if moves[2].Type != MoveRetract {
		t.Errorf("expected MoveRetract, got %d", moves[2].Type)
	}
}
