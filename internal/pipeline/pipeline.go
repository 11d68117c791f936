package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Axiom-208/Youtube-Clippa/internal/ports"
	"github.com/Axiom-208/Youtube-Clippa/internal/ports/adapters/ffmpeg"
	"github.com/Axiom-208/Youtube-Clippa/internal/ports/adapters/openai"
	"github.com/Axiom-208/Youtube-Clippa/internal/ports/adapters/ytdlp"
	"github.com/Axiom-208/Youtube-Clippa/internal/types"
	"github.com/Axiom-208/Youtube-Clippa/internal/usecase"
)

type Config struct {
	// OutDir holds the produced chapter clips. Defaults to "chapters".
	OutDir string

	// WorkDir is the base directory for per-job intermediates (video, audio,
	// transcript, topic segments). Defaults to ".cache".
	WorkDir string

	YTDLPPath   string
	FFmpegPath  string
	FFprobePath string

	OpenAIAPIKey    string
	TranscribeModel string
	SegmentModel    string

	Logf func(format string, args ...any)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.OpenAIAPIKey) == "" {
		return &types.ConfigError{Err: errors.New("OPENAI_API_KEY is required")}
	}
	return nil
}

// Pipeline wires the adapters once at startup and runs one job per submitted
// URL. Runs are synchronous; the caller decides whether to serialize them.
type Pipeline struct {
	cfg  Config
	uc   usecase.Usecase
	logf func(format string, args ...any)
}

func New(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	ai := openai.New(cfg.OpenAIAPIKey, cfg.TranscribeModel, cfg.SegmentModel)
	uc := usecase.New(usecase.Deps{
		Source: ytdlp.New(cfg.YTDLPPath),
		Media:  ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath),
		ASR:    ai,
		Topics: ai,
	})
	return &Pipeline{cfg: cfg, uc: uc, logf: logf}, nil
}

// ClipsDir is where chapter clips land; the web layer serves files out of it.
func (p *Pipeline) ClipsDir() string {
	if p.cfg.OutDir == "" {
		return "chapters"
	}
	return p.cfg.OutDir
}

// ProcessVideo runs the whole pipeline for one URL and returns the ordered
// chapter list. Intermediates stay in the job's work dir; no cleanup happens
// here.
func (p *Pipeline) ProcessVideo(ctx context.Context, url string) ([]types.Chapter, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("url is empty")
	}

	jobID := uuid.New()
	workRoot := p.cfg.WorkDir
	if workRoot == "" {
		workRoot = ".cache"
	}
	jobDir := filepath.Join(workRoot, "jobs", buildJobDirName(time.Now().UTC(), jobID))
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return nil, err
	}
	clipsDir := p.ClipsDir()
	if err := os.MkdirAll(clipsDir, 0o755); err != nil {
		return nil, err
	}
	p.logf("job %s: workspace %s", jobID, jobDir)

	res, err := p.uc.Run(ctx, usecase.Input{
		URL:      url,
		WorkDir:  jobDir,
		ClipsDir: clipsDir,
		Logf:     p.logf,
	})
	if err != nil {
		return nil, err
	}

	if err := writeManifest(filepath.Join(jobDir, "manifest.json"), url, res.Chapters); err != nil {
		return nil, err
	}
	p.logf("job %s: %d chapters", jobID, len(res.Chapters))
	return res.Chapters, nil
}

func buildJobDirName(now time.Time, id uuid.UUID) string {
	ts := now.UTC().Format("20060102-150405Z")
	return fmt.Sprintf("%s-%s", ts, id.String()[:8])
}

func writeManifest(path, url string, chs []types.Chapter) error {
	m := types.Manifest{URL: url, Chapters: make([]types.ManifestChapter, 0, len(chs))}
	for i, ch := range chs {
		m.Chapters = append(m.Chapters, types.ManifestChapter{
			Index:    i + 1,
			Title:    ch.Title,
			StartSec: ch.Start.Seconds(),
			EndSec:   ch.End.Seconds(),
			File:     filepath.ToSlash(filepath.Base(ch.ClipPath)),
		})
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// ensure adapters implement ports
var _ ports.VideoSource = (*ytdlp.Adapter)(nil)
var _ ports.MediaTool = (*ffmpeg.Adapter)(nil)
var _ ports.Transcriber = (*openai.Adapter)(nil)
var _ ports.Segmenter = (*openai.Adapter)(nil)
