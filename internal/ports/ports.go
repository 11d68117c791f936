package ports

import (
	"context"
	"time"

	"github.com/Axiom-208/Youtube-Clippa/internal/types"
)

type VideoSource interface {
	FetchVideo(ctx context.Context, url, outMP4 string) error
}

type MediaTool interface {
	ExtractAudioMP3(ctx context.Context, inMP4, outMP3 string) error
	CutClip(ctx context.Context, inMP4 string, start, end time.Duration, outMP4 string) error
	ProbeDuration(ctx context.Context, inMP4 string) (time.Duration, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (types.Transcript, error)
}

type Segmenter interface {
	SegmentTopics(ctx context.Context, transcript string) ([]types.Topic, error)
}
