// Package picture records drawing into immutable, replayable pictures.
//
// A [Recorder] is a canvas.Canvas that captures every call as a typed
// operation instead of rasterising it. [Recorder.EndRecording] returns a
// [Picture]: an immutable list of operations plus the resources they
// reference (cloned paths, images, font faces). A Picture can be replayed
// onto any canvas.Canvas any number of times and always issues the same
// calls, so rasterising it twice at the same scale yields identical pixels.
//
// # Example
//
//	rec := picture.BeginRecording(595, 842)
//	rec.FillRect(50, 50, 200, 100, gg.Red)
//	pic := rec.EndRecording()
//	defer pic.Close()
//
//	_ = pic.Playback(rasterCanvas)
//
// # Ownership
//
// Pictures are reference counted in the manner of Skia's SkPicture. The
// creator holds one reference; [Picture.Retain] adds another and every
// holder calls [Picture.Close] once. The resources are dropped when the last
// reference goes away, after which Playback fails with [ErrReleased].
//
// # Thread Safety
//
// Recorder is NOT safe for concurrent use. A Picture is immutable and may be
// played back from multiple goroutines at once.
package picture
