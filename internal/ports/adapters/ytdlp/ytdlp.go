package ytdlp

import (
	"context"
	"fmt"
	"os/exec"
)

type Adapter struct {
	bin string
}

func New(binPath string) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	return &Adapter{bin: binPath}
}

func (a *Adapter) FetchVideo(ctx context.Context, url, outMP4 string) error {
	cmd := exec.CommandContext(ctx, a.bin,
		"-f", "bestvideo+bestaudio/best",
		"--merge-output-format", "mp4",
		"--no-playlist",
		"-o", outMP4,
		url,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("yt-dlp download: %w\n%s", err, string(b))
	}
	return nil
}

// CheckInstalled reports whether the yt-dlp binary is runnable. Used at
// startup so a missing tool surfaces before the first job, not during it.
func (a *Adapter) CheckInstalled(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, a.bin, "--version")
	if b, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("yt-dlp not runnable at %q: %w\n%s", a.bin, err, string(b))
	}
	return nil
}
