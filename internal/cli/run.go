package cli

import (
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/Axiom-208/Youtube-Clippa/internal/pipeline"
	"github.com/Axiom-208/Youtube-Clippa/internal/ports/adapters/ytdlp"
	"github.com/Axiom-208/Youtube-Clippa/internal/web"
)

func run(cmd *cobra.Command) error {
	addr, _ := cmd.Flags().GetString("addr")
	outDir, _ := cmd.Flags().GetString("out")
	workDir, _ := cmd.Flags().GetString("work")

	// API_KEY is the legacy variable name; OPENAI_API_KEY wins when both are set.
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("API_KEY")
	}

	cfg := pipeline.Config{
		OutDir:  outDir,
		WorkDir: workDir,

		YTDLPPath:   getenvDefault("YTDLP_PATH", "yt-dlp"),
		FFmpegPath:  getenvDefault("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: getenvDefault("FFPROBE_PATH", "ffprobe"),

		OpenAIAPIKey:    apiKey,
		TranscribeModel: os.Getenv("TRANSCRIBE_MODEL"),
		SegmentModel:    os.Getenv("SEGMENT_MODEL"),

		Logf: log.Printf,
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if err := ytdlp.New(cfg.YTDLPPath).CheckInstalled(cmd.Context()); err != nil {
		log.Printf("warning: %v", err)
	}

	srv, err := web.NewServer(p, p.ClipsDir())
	if err != nil {
		return err
	}

	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
