package script

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/pinchzoom/pkg/geom"
	"github.com/OpenTraceLab/pinchzoom/pkg/zoom"
)

func mustParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser returned error: %v", err)
	}
	return p
}

func newRunner(t *testing.T) *Runner {
	t.Helper()
	img, err := zoom.NewImageGeometry(geom.Size{Width: 200, Height: 400})
	if err != nil {
		t.Fatalf("NewImageGeometry returned error: %v", err)
	}
	c, err := zoom.New(img, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return NewRunner(c)
}

func run(t *testing.T, src string) error {
	t.Helper()
	s, err := mustParser(t).ParseString(src)
	if err != nil {
		t.Fatalf("ParseString returned error: %v", err)
	}
	return newRunner(t).Run(s)
}

func TestParseSteps(t *testing.T) {
	src := `
# pinch then release
viewport 400 400
start
move (100,100) (200.5,100@-3,7) delta 10,-2
end 50,0
cancel
wait 300ms
zoom 2
tap
expect scale 1.25
`
	s, err := mustParser(t).ParseString(src)
	if err != nil {
		t.Fatalf("ParseString returned error: %v", err)
	}
	if len(s.Steps) != 9 {
		t.Fatalf("parsed %d steps, want 9", len(s.Steps))
	}

	vp := s.Steps[0].Viewport
	if vp == nil || vp.Width != 400 || vp.Height != 400 {
		t.Fatalf("viewport step = %+v", vp)
	}

	mv := s.Steps[2].Move
	if mv == nil || len(mv.Touches) != 2 {
		t.Fatalf("move step = %+v", mv)
	}
	if mv.Touches[1].Page.X != 200.5 || mv.Touches[1].Local == nil || mv.Touches[1].Local.X != -3 {
		t.Fatalf("second touch = %+v", mv.Touches[1])
	}
	if mv.Delta == nil || mv.Delta.Y != -2 {
		t.Fatalf("move delta = %+v", mv.Delta)
	}

	if rel := s.Steps[3].Release; rel == nil || rel.Kind != "end" || rel.Delta == nil || rel.Delta.X != 50 {
		t.Fatalf("end step = %+v", rel)
	}
	if rel := s.Steps[4].Release; rel == nil || rel.Kind != "cancel" || rel.Delta != nil {
		t.Fatalf("cancel step = %+v", rel)
	}
	if w := s.Steps[5].Wait; w == nil || w.Millis != 300 {
		t.Fatalf("wait step = %+v", w)
	}
	if e := s.Steps[8].Expect; e == nil || e.Field != "scale" || e.Value != 1.25 {
		t.Fatalf("expect step = %+v", e)
	}
	if s.Steps[8].Pos.Line != 11 {
		t.Fatalf("expect step line = %d, want 11", s.Steps[8].Pos.Line)
	}
}

func TestParseRejectsUnknownStep(t *testing.T) {
	if _, err := mustParser(t).ParseString("rotate 90\n"); err == nil {
		t.Fatalf("expected parse error for unknown step")
	}
}

func TestRunProportionalPinch(t *testing.T) {
	err := run(t, `
viewport 400 400
start
move (150,200) (250,200)
move (125,200) (275,200)
expect scale 1.25
end
wait 300
expect scale 1.25
`)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestRunPanWithinBounds(t *testing.T) {
	err := run(t, `
viewport 400 400
zoom 2
wait 300
start
move (10,10) delta 50,0
expect tx 50
end 50,0
wait 300
expect scale 2
expect tx 50
expect ty 0
`)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestRunPanSnapsBack(t *testing.T) {
	err := run(t, `
viewport 400 400
start
move (10,10) delta 90,-900
expect ty -900
cancel 90,-900
wait 300
expect tx 0
expect ty -200
`)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestRunDoubleTap(t *testing.T) {
	err := run(t, `
viewport 400 400
tap
wait 120
tap
wait 300
expect scale 4
wait 500
tap
wait 100
tap
wait 300
expect scale 1
`)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestRunReportsFailedExpectation(t *testing.T) {
	err := run(t, `
viewport 400 400
expect scale 2
`)
	if !errors.Is(err, ErrExpectation) {
		t.Fatalf("Run error = %v, want ErrExpectation", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("error %q should name the line", err)
	}
}

func TestRunTrace(t *testing.T) {
	s, err := mustParser(t).ParseString("viewport 400 400\nstart\nmove (1,1) delta 5,5\n")
	if err != nil {
		t.Fatalf("ParseString returned error: %v", err)
	}
	r := newRunner(t)
	var buf bytes.Buffer
	r.Trace = &buf
	if err := r.Run(s); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("trace has %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "tx=5.00") || !strings.Contains(lines[2], "state=Panning") {
		t.Fatalf("unexpected trace line %q", lines[2])
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pinch.gesture")
	if err := os.WriteFile(path, []byte("viewport 10 10\n"), 0o644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	s, err := mustParser(t).ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}
	if len(s.Steps) != 1 {
		t.Fatalf("parsed %d steps, want 1", len(s.Steps))
	}
}

func TestParseFileReportsPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gesture")
	if err := os.WriteFile(path, []byte("viewport 10 10\nrotate 90\n"), 0o644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	_, err := mustParser(t).ParseFile(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), path+":2:") {
		t.Fatalf("error %q does not name %s line 2", err, path)
	}

	if _, err := mustParser(t).ParseFile(filepath.Join(t.TempDir(), "missing.gesture")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseNamedReader(t *testing.T) {
	s, err := mustParser(t).Parse("inline", strings.NewReader("start\nend 5,0\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(s.Steps) != 2 || s.Steps[1].Release == nil || s.Steps[1].Release.Delta.X != 5 {
		t.Fatalf("unexpected steps: %+v", s.Steps)
	}
}
