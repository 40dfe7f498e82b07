package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tomz197/invaders/internal/config"
)

func TestChunkWriterPaintAppliesOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.Paint(0, 0, 'A')
	cw.Paint(5, 1, Empty)

	if out.Len() != 0 {
		t.Fatal("Paint wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "\033[3;4HA\033[4;9H "
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestChunkWriterFlushesLargeBuffers(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	payload := strings.Repeat("x", 3*maxChunkSize+17)
	cw.WriteAt(1, 1, payload)
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if out.String() != "\033[1;1H"+payload {
		t.Errorf("flushed %d bytes, want %d", out.Len(), len(payload)+6)
	}
	if err := cw.Flush(); err != nil || out.Len() != len(payload)+6 {
		t.Error("second Flush should write nothing")
	}
}

func TestCenterOffsets(t *testing.T) {
	grid := config.Grid{Cols: 40, Rows: 20}

	col, row, err := CenterOffsets(grid, 80, 24)
	if err != nil {
		t.Fatalf("CenterOffsets: %v", err)
	}
	if col != 20 || row != 2 {
		t.Errorf("offsets = (%d,%d), want (20,2)", col, row)
	}

	_, _, err = CenterOffsets(grid, 39, 24)
	if !errors.Is(err, ErrTerminalTooSmall) {
		t.Errorf("err = %v, want ErrTerminalTooSmall", err)
	}
}

func TestDrawBorderNeedsRoom(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	cw.DrawBorder(testGrid)
	_ = cw.Flush()
	if out.Len() != 0 {
		t.Errorf("border drawn without room: %q", out.String())
	}

	out.Reset()
	cw = NewChunkWriter(&out, 1, 1)
	cw.DrawBorder(testGrid)
	_ = cw.Flush()
	got := out.String()
	if !strings.Contains(got, "\033[1;1H┌──────┐") {
		t.Errorf("missing top border in %q", got)
	}
	if !strings.Contains(got, "\033[6;1H└──────┘") {
		t.Errorf("missing bottom border in %q", got)
	}
	if strings.Count(got, "│") != 2*testGrid.Rows {
		t.Errorf("side bars = %d, want %d", strings.Count(got, "│"), 2*testGrid.Rows)
	}
}

func TestScreenSequences(t *testing.T) {
	var out bytes.Buffer
	if err := EnterScreen(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), seqEnterAltScreen) || !strings.Contains(out.String(), seqHideCursor) {
		t.Errorf("EnterScreen = %q", out.String())
	}
	out.Reset()
	if err := LeaveScreen(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), seqLeaveAltScreen) || !strings.Contains(out.String(), seqShowCursor) {
		t.Errorf("LeaveScreen = %q", out.String())
	}
}
