package picture

import (
	"errors"
	"image"
	"image/color"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gg-companion/canvas"
)

func testFace(t *testing.T) text.Face {
	t.Helper()
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource() error = %v", err)
	}
	return source.Face(12)
}

func drawSample(c canvas.Canvas, face text.Face) {
	path := gg.NewPath()
	path.Rectangle(10, 10, 50, 30)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	c.Save()
	c.Translate(5, 5)
	c.Scale(2, 2)
	c.Rotate(math.Pi / 8)
	c.ClipRect(0, 0, 100, 100)
	c.FillPath(path, gg.Red, gg.FillRuleEvenOdd)
	c.StrokePath(path, gg.Blue, gg.DefaultStroke().WithWidth(3))
	c.Restore()
	c.FillRect(1, 2, 3, 4, gg.Green)
	c.DrawImage(img, 20, 20, 8, 8)
	c.DrawText("Hello", 30, 40, face, gg.Black)
	c.DrawHyperlink("https://example.com", 10, 5)
	c.DrawSectionLink("intro", 10, 5)
	c.DrawSection("intro")
	c.SetZIndex(0)
}

func TestRecorderRecordsEveryCall(t *testing.T) {
	rec := BeginRecording(200, 100)
	drawSample(rec, testFace(t))

	want := []OpType{
		OpSave, OpTranslate, OpScale, OpRotate, OpClipRect, OpFillPath, OpStrokePath,
		OpRestore, OpFillRect, OpDrawImage, OpDrawText, OpHyperlink, OpSectionLink,
		OpSection, OpSetZIndex,
	}
	if rec.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", rec.Len(), len(want))
	}

	pic := rec.EndRecording()
	defer pic.Close()

	for i, op := range pic.Ops() {
		if op.Type() != want[i] {
			t.Errorf("op[%d] = %v, want %v", i, op.Type(), want[i])
		}
	}
	if pic.Bounds().Width != 200 || pic.Bounds().Height != 100 {
		t.Errorf("Bounds() = %v, want 200x100", pic.Bounds())
	}
	paths, images, faces := pic.Resources().Counts()
	if paths != 2 || images != 1 || faces != 1 {
		t.Errorf("Counts() = %d, %d, %d, want 2, 1, 1", paths, images, faces)
	}
}

func TestPlaybackReproducesRecording(t *testing.T) {
	face := testFace(t)
	pic := Record(200, 100, func(c canvas.Canvas) { drawSample(c, face) })
	defer pic.Close()

	// Replaying onto a second recorder must issue the same calls.
	copyRec := BeginRecording(200, 100)
	if err := pic.Playback(copyRec); err != nil {
		t.Fatalf("Playback() error = %v", err)
	}
	replayed := copyRec.EndRecording()
	defer replayed.Close()

	if !reflect.DeepEqual(pic.Ops(), replayed.Ops()) {
		t.Error("replayed ops differ from the original recording")
	}
}

func TestRecorderClonesPaths(t *testing.T) {
	path := gg.NewPath()
	path.Rectangle(0, 0, 10, 10)

	rec := BeginRecording(100, 100)
	rec.FillPath(path, gg.Red, gg.FillRuleNonZero)
	pic := rec.EndRecording()
	defer pic.Close()

	path.LineTo(500, 500)

	stored := pic.Resources().Path(pic.Ops()[0].(FillPathOp).Path)
	if got := len(stored.Elements()); got != 5 {
		t.Errorf("recorded path has %d elements, want 5", got)
	}
}

func TestRecorderNormalizesText(t *testing.T) {
	rec := BeginRecording(100, 100)
	rec.DrawText("e\u0301", 0, 10, testFace(t), gg.Black)
	pic := rec.EndRecording()
	defer pic.Close()

	if got := pic.Ops()[0].(DrawTextOp).Text; got != "\u00e9" {
		t.Errorf("recorded text = %q, want NFC %q", got, "\u00e9")
	}
}

func TestRecorderDropsNilAndEmpty(t *testing.T) {
	rec := BeginRecording(100, 100)
	rec.FillPath(nil, gg.Red, gg.FillRuleNonZero)
	rec.StrokePath(nil, gg.Red, gg.DefaultStroke())
	rec.ClipPath(nil, gg.FillRuleNonZero)
	rec.DrawImage(nil, 0, 0, 1, 1)
	rec.DrawText("", 0, 0, testFace(t), gg.Black)
	rec.DrawText("x", 0, 0, nil, gg.Black)
	if rec.Len() != 0 {
		t.Errorf("Len() = %d, want 0", rec.Len())
	}
}

func TestRecorderSnapshotIsolation(t *testing.T) {
	rec := BeginRecording(100, 100)
	rec.FillRect(0, 0, 10, 10, gg.Red)

	snap := rec.Snapshot()
	defer snap.Close()

	rec.FillRect(10, 10, 10, 10, gg.Blue)
	path := gg.NewPath()
	path.Rectangle(0, 0, 1, 1)
	rec.FillPath(path, gg.Green, gg.FillRuleNonZero)

	out := BeginRecording(100, 100)
	if err := snap.DrawOn(out); err != nil {
		t.Fatalf("DrawOn() error = %v", err)
	}
	if out.Len() != 1 {
		t.Errorf("snapshot replayed %d ops, want 1", out.Len())
	}

	// Closing the recorder must not affect an existing snapshot.
	_ = rec.Close()
	out2 := BeginRecording(100, 100)
	if err := snap.DrawOn(out2); err != nil {
		t.Fatalf("DrawOn() after recorder Close error = %v", err)
	}
	if out2.Len() != 1 {
		t.Errorf("snapshot replayed %d ops after recorder Close, want 1", out2.Len())
	}
}

func TestRecorderDropsCallsAfterEnd(t *testing.T) {
	rec := BeginRecording(100, 100)
	rec.FillRect(0, 0, 1, 1, gg.Red)
	pic := rec.EndRecording()
	defer pic.Close()

	rec.FillRect(0, 0, 1, 1, gg.Blue)
	if pic.Len() != 1 {
		t.Errorf("picture Len() = %d after recorder reuse, want 1", pic.Len())
	}
	if rec.Len() != 0 {
		t.Errorf("finished recorder Len() = %d, want 0", rec.Len())
	}
}

func TestPictureRefCounting(t *testing.T) {
	pic := Record(10, 10, func(c canvas.Canvas) { c.FillRect(0, 0, 1, 1, gg.Red) })

	pic.Retain()
	if err := pic.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if pic.Released() {
		t.Fatal("picture released while a reference remains")
	}
	if err := pic.Playback(BeginRecording(10, 10)); err != nil {
		t.Errorf("Playback() with a live reference error = %v", err)
	}

	_ = pic.Close()
	if !pic.Released() {
		t.Fatal("picture not released after last Close")
	}
	if err := pic.Playback(BeginRecording(10, 10)); !errors.Is(err, ErrReleased) {
		t.Errorf("Playback() after release error = %v, want ErrReleased", err)
	}

	// Extra Close and Retain after release are no-ops.
	if err := pic.Close(); err != nil {
		t.Errorf("Close() after release error = %v", err)
	}
	pic.Retain()
	if !pic.Released() {
		t.Error("Retain() must not revive a released picture")
	}
}

func TestPictureConcurrentPlayback(t *testing.T) {
	face := testFace(t)
	pic := Record(200, 100, func(c canvas.Canvas) { drawSample(c, face) })
	defer pic.Close()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := BeginRecording(200, 100)
			if err := pic.Playback(rec); err != nil {
				t.Errorf("Playback() error = %v", err)
			}
			if rec.Len() != pic.Len() {
				t.Errorf("replayed %d ops, want %d", rec.Len(), pic.Len())
			}
		}()
	}
	wg.Wait()
}

func TestOpTypeString(t *testing.T) {
	tests := []struct {
		op   OpType
		want string
	}{
		{OpSave, "Save"},
		{OpFillPath, "FillPath"},
		{OpDrawText, "DrawText"},
		{OpSetZIndex, "SetZIndex"},
		{OpType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("OpType(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestResourcePoolFaceDedup(t *testing.T) {
	face := testFace(t)
	p := NewResourcePool()
	a := p.AddFace(face)
	b := p.AddFace(face)
	if a != b {
		t.Errorf("AddFace() returned %d and %d for the same face", a, b)
	}
	if p.Face(a) != face {
		t.Error("Face() did not return the stored face")
	}
	if p.Path(99) != nil || p.Image(99) != nil || p.Face(99) != nil {
		t.Error("out of range references should return nil")
	}
}
