package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Axiom-208/Youtube-Clippa/internal/domain/chapters"
	"github.com/Axiom-208/Youtube-Clippa/internal/domain/timecode"
	"github.com/Axiom-208/Youtube-Clippa/internal/ports"
	"github.com/Axiom-208/Youtube-Clippa/internal/types"
)

type Deps struct {
	Source ports.VideoSource
	Media  ports.MediaTool
	ASR    ports.Transcriber
	Topics ports.Segmenter
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	URL      string
	WorkDir  string // per-job intermediates; caller creates it
	ClipsDir string // chapter clips; caller creates it
	Logf     func(format string, args ...any)
}

type Result struct {
	Chapters       []types.Chapter
	VideoPath      string
	AudioPath      string
	TranscriptPath string
	TopicsPath     string
}

// Run executes one job start to finish: download, extract audio, transcribe,
// segment, cut one clip per topic in order. Any step failure aborts the job;
// nothing is retried and no partial chapter list is returned.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	videoPath := filepath.Join(in.WorkDir, "video.mp4")
	logf("downloading %s", in.URL)
	if err := u.d.Source.FetchVideo(ctx, in.URL, videoPath); err != nil {
		return Result{}, &types.DownloadError{URL: in.URL, Err: err}
	}

	audioPath := filepath.Join(in.WorkDir, "audio.mp3")
	logf("extracting audio")
	if err := u.d.Media.ExtractAudioMP3(ctx, videoPath, audioPath); err != nil {
		return Result{}, &types.ExtractionError{Video: videoPath, Err: err}
	}

	logf("transcribing audio")
	tr, err := u.d.ASR.Transcribe(ctx, audioPath)
	if err != nil {
		return Result{}, &types.TranscriptionError{Err: err}
	}
	transcriptPath := filepath.Join(in.WorkDir, "transcript.txt")
	if err := writeTranscript(transcriptPath, tr); err != nil {
		return Result{}, &types.TranscriptionError{Err: err}
	}

	logf("segmenting transcript into topics")
	topics, err := u.d.Topics.SegmentTopics(ctx, tr.FullText())
	if err != nil {
		return Result{}, &types.SegmentationError{Err: err}
	}
	topicsPath := filepath.Join(in.WorkDir, "topic_segments.json")
	if err := writeTopics(topicsPath, topics); err != nil {
		return Result{}, &types.SegmentationError{Err: err}
	}

	chs, err := chapters.Build(topics, in.ClipsDir)
	if err != nil {
		return Result{}, &types.SegmentationError{Err: err}
	}
	logf("segmenter returned %d topics", len(chs))

	if len(chs) > 0 {
		srcDur, err := u.d.Media.ProbeDuration(ctx, videoPath)
		if err != nil {
			return Result{}, fmt.Errorf("probe source duration: %w", err)
		}
		for i, ch := range chs {
			if err := u.cutChapter(ctx, videoPath, ch, srcDur); err != nil {
				return Result{}, err
			}
			logf("created clip %d/%d: %s", i+1, len(chs), filepath.Base(ch.ClipPath))
		}
	}

	return Result{
		Chapters:       chs,
		VideoPath:      videoPath,
		AudioPath:      audioPath,
		TranscriptPath: transcriptPath,
		TopicsPath:     topicsPath,
	}, nil
}

func (u Usecase) cutChapter(ctx context.Context, videoPath string, ch types.Chapter, srcDur time.Duration) error {
	if ch.Start >= ch.End {
		return &types.ClipError{Title: ch.Title, Err: fmt.Errorf("start %s >= end %s", ch.Start, ch.End)}
	}
	if ch.End > srcDur {
		return &types.ClipError{Title: ch.Title, Err: fmt.Errorf("end %s beyond source duration %s", ch.End, srcDur)}
	}
	if err := u.d.Media.CutClip(ctx, videoPath, ch.Start, ch.End, ch.ClipPath); err != nil {
		return &types.ClipError{Title: ch.Title, Err: err}
	}
	fi, err := os.Stat(ch.ClipPath)
	if err != nil {
		return &types.ClipError{Title: ch.Title, Err: fmt.Errorf("clip file missing after cut: %w", err)}
	}
	if fi.Size() == 0 {
		return &types.ClipError{Title: ch.Title, Err: errors.New("clip file is empty")}
	}
	return nil
}

func writeTranscript(path string, tr types.Transcript) error {
	var b strings.Builder
	for _, s := range tr.Segments {
		fmt.Fprintf(&b, "Start: %s, End: %s, Text: %s\n",
			timecode.Format(secToDur(s.Start)),
			timecode.Format(secToDur(s.End)),
			s.Text,
		)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeTopics(path string, topics []types.Topic) error {
	if topics == nil {
		topics = []types.Topic{}
	}
	b, err := json.MarshalIndent(types.TopicList{Topics: topics}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal topic segments: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

func secToDur(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
