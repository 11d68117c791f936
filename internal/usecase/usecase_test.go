package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Axiom-208/Youtube-Clippa/internal/types"
)

func TestRun_CutsOneClipPerTopicInOrder(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	workDir, clipsDir := makeDirs(t, tmp)

	media := &fakeMediaTool{duration: 10 * time.Minute}
	uc := New(Deps{
		Source: &fakeSource{},
		Media:  media,
		ASR:    fakeASR{tr: testTranscript()},
		Topics: fakeSegmenter{topics: []types.Topic{
			{Title: "Intro", StartTime: "0:00", EndTime: "1:00"},
			{Title: "Middle", StartTime: "1:00", EndTime: "3:30"},
			{Title: "Wrap Up", StartTime: "3:30", EndTime: "5:00"},
		}},
	})

	res, err := uc.Run(context.Background(), Input{
		URL:      "https://www.youtube.com/watch?v=abc123",
		WorkDir:  workDir,
		ClipsDir: clipsDir,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(res.Chapters) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(res.Chapters))
	}
	if len(media.cutStarts) != 3 {
		t.Fatalf("expected 3 cut invocations, got %d", len(media.cutStarts))
	}
	for i := 1; i < len(media.cutStarts); i++ {
		if media.cutStarts[i] < media.cutStarts[i-1] {
			t.Fatalf("cut order does not follow topic order: %v", media.cutStarts)
		}
	}
	if got := res.Chapters[2].ClipPath; filepath.Base(got) != "clip_3_Wrap_Up.mp4" {
		t.Fatalf("unexpected clip path: %s", got)
	}
	for _, ch := range res.Chapters {
		fi, err := os.Stat(ch.ClipPath)
		if err != nil {
			t.Fatalf("clip file missing: %v", err)
		}
		if fi.Size() == 0 {
			t.Fatalf("clip file empty: %s", ch.ClipPath)
		}
		if ch.Start >= ch.End {
			t.Fatalf("chapter %q has start >= end", ch.Title)
		}
	}

	b, err := os.ReadFile(res.TranscriptPath)
	if err != nil {
		t.Fatalf("read transcript artifact: %v", err)
	}
	if !strings.Contains(string(b), "Text: hello world") {
		t.Fatalf("transcript artifact missing segment text: %q", string(b))
	}
	if _, err := os.Stat(res.TopicsPath); err != nil {
		t.Fatalf("topic segments artifact missing: %v", err)
	}
}

func TestRun_EmptySegmentationYieldsEmptyChapters(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	workDir, clipsDir := makeDirs(t, tmp)

	media := &fakeMediaTool{duration: time.Minute}
	uc := New(Deps{
		Source: &fakeSource{},
		Media:  media,
		ASR:    fakeASR{tr: testTranscript()},
		Topics: fakeSegmenter{},
	})

	res, err := uc.Run(context.Background(), Input{
		URL:      "https://www.youtube.com/watch?v=abc123",
		WorkDir:  workDir,
		ClipsDir: clipsDir,
	})
	if err != nil {
		t.Fatalf("expected success on empty segmentation, got %v", err)
	}
	if len(res.Chapters) != 0 {
		t.Fatalf("expected empty chapter list, got %d", len(res.Chapters))
	}
	if len(media.cutStarts) != 0 {
		t.Fatalf("expected zero cut invocations, got %d", len(media.cutStarts))
	}
}

func TestRun_DownloadFailureSkipsAllCutting(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	workDir, clipsDir := makeDirs(t, tmp)

	media := &fakeMediaTool{duration: time.Minute}
	uc := New(Deps{
		Source: &fakeSource{err: errors.New("network unreachable")},
		Media:  media,
		ASR:    fakeASR{},
		Topics: fakeSegmenter{topics: []types.Topic{{Title: "X", StartTime: "0:00", EndTime: "0:10"}}},
	})

	_, err := uc.Run(context.Background(), Input{
		URL:      "https://www.youtube.com/watch?v=abc123",
		WorkDir:  workDir,
		ClipsDir: clipsDir,
	})
	var de *types.DownloadError
	if !errors.As(err, &de) {
		t.Fatalf("expected DownloadError, got %v", err)
	}
	if len(media.cutStarts) != 0 {
		t.Fatalf("expected zero cut invocations after download failure, got %d", len(media.cutStarts))
	}
	if media.extractCalls != 0 {
		t.Fatalf("expected no audio extraction after download failure")
	}
}

func TestRun_TranscriptionFailure(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	workDir, clipsDir := makeDirs(t, tmp)

	uc := New(Deps{
		Source: &fakeSource{},
		Media:  &fakeMediaTool{duration: time.Minute},
		ASR:    fakeASR{err: errors.New("quota exceeded")},
		Topics: fakeSegmenter{},
	})

	_, err := uc.Run(context.Background(), Input{
		URL:      "https://www.youtube.com/watch?v=abc123",
		WorkDir:  workDir,
		ClipsDir: clipsDir,
	})
	var te *types.TranscriptionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TranscriptionError, got %v", err)
	}
}

func TestRun_EndBeyondSourceDurationFailsClip(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	workDir, clipsDir := makeDirs(t, tmp)

	media := &fakeMediaTool{duration: 2 * time.Minute}
	uc := New(Deps{
		Source: &fakeSource{},
		Media:  media,
		ASR:    fakeASR{tr: testTranscript()},
		Topics: fakeSegmenter{topics: []types.Topic{
			{Title: "Fits", StartTime: "0:00", EndTime: "1:00"},
			{Title: "Overruns", StartTime: "1:00", EndTime: "9:00"},
		}},
	})

	_, err := uc.Run(context.Background(), Input{
		URL:      "https://www.youtube.com/watch?v=abc123",
		WorkDir:  workDir,
		ClipsDir: clipsDir,
	})
	var ce *types.ClipError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ClipError, got %v", err)
	}
	if ce.Title != "Overruns" {
		t.Fatalf("expected the overrunning topic to fail, got %q", ce.Title)
	}
	// The first clip was already cut; the failure aborts the rest of the job.
	if len(media.cutStarts) != 1 {
		t.Fatalf("expected 1 cut before abort, got %d", len(media.cutStarts))
	}
}

func TestRun_InvertedRangeFailsClip(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	workDir, clipsDir := makeDirs(t, tmp)

	media := &fakeMediaTool{duration: 10 * time.Minute}
	uc := New(Deps{
		Source: &fakeSource{},
		Media:  media,
		ASR:    fakeASR{tr: testTranscript()},
		Topics: fakeSegmenter{topics: []types.Topic{
			{Title: "Backwards", StartTime: "2:00", EndTime: "1:00"},
		}},
	})

	_, err := uc.Run(context.Background(), Input{
		URL:      "https://www.youtube.com/watch?v=abc123",
		WorkDir:  workDir,
		ClipsDir: clipsDir,
	})
	var ce *types.ClipError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ClipError, got %v", err)
	}
	if len(media.cutStarts) != 0 {
		t.Fatalf("expected zero cut invocations for inverted range, got %d", len(media.cutStarts))
	}
}

func TestRun_CutFailureAbortsRemainingClips(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	workDir, clipsDir := makeDirs(t, tmp)

	media := &fakeMediaTool{duration: 10 * time.Minute, failCutAt: 2}
	uc := New(Deps{
		Source: &fakeSource{},
		Media:  media,
		ASR:    fakeASR{tr: testTranscript()},
		Topics: fakeSegmenter{topics: []types.Topic{
			{Title: "A", StartTime: "0:00", EndTime: "1:00"},
			{Title: "B", StartTime: "1:00", EndTime: "2:00"},
			{Title: "C", StartTime: "2:00", EndTime: "3:00"},
		}},
	})

	_, err := uc.Run(context.Background(), Input{
		URL:      "https://www.youtube.com/watch?v=abc123",
		WorkDir:  workDir,
		ClipsDir: clipsDir,
	})
	var ce *types.ClipError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ClipError, got %v", err)
	}
	if len(media.cutStarts) != 2 {
		t.Fatalf("expected cutting to stop at the failed clip, got %d invocations", len(media.cutStarts))
	}
}

func makeDirs(t *testing.T, tmp string) (workDir, clipsDir string) {
	t.Helper()
	workDir = filepath.Join(tmp, "job")
	clipsDir = filepath.Join(tmp, "chapters")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		t.Fatalf("mkdir work dir: %v", err)
	}
	if err := os.MkdirAll(clipsDir, 0o755); err != nil {
		t.Fatalf("mkdir clips dir: %v", err)
	}
	return workDir, clipsDir
}

type fakeSource struct {
	err   error
	calls int
}

func (f *fakeSource) FetchVideo(_ context.Context, _, outMP4 string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outMP4, []byte("video"), 0o644)
}

type fakeMediaTool struct {
	duration     time.Duration
	failCutAt    int // 1-based index of the cut call that fails; 0 = never
	cutStarts    []time.Duration
	extractCalls int
}

func (f *fakeMediaTool) ExtractAudioMP3(_ context.Context, _, outMP3 string) error {
	f.extractCalls++
	return os.WriteFile(outMP3, []byte("audio"), 0o644)
}

func (f *fakeMediaTool) CutClip(_ context.Context, _ string, start, _ time.Duration, outMP4 string) error {
	f.cutStarts = append(f.cutStarts, start)
	if f.failCutAt > 0 && len(f.cutStarts) == f.failCutAt {
		return errors.New("tool exited with status 1")
	}
	return os.WriteFile(outMP4, []byte("clip"), 0o644)
}

func (f *fakeMediaTool) ProbeDuration(_ context.Context, _ string) (time.Duration, error) {
	return f.duration, nil
}

type fakeASR struct {
	tr  types.Transcript
	err error
}

func (f fakeASR) Transcribe(_ context.Context, _ string) (types.Transcript, error) {
	if f.err != nil {
		return types.Transcript{}, f.err
	}
	return f.tr, nil
}

type fakeSegmenter struct {
	topics []types.Topic
	err    error
}

func (f fakeSegmenter) SegmentTopics(_ context.Context, _ string) ([]types.Topic, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.topics, nil
}

func testTranscript() types.Transcript {
	return types.Transcript{
		Segments: []types.Segment{
			{Start: 0, End: 2.5, Text: "hello world"},
			{Start: 2.5, End: 5, Text: "this is a test"},
		},
	}
}
