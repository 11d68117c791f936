// Package chapters turns the segmenter's topics into chapter records with
// filesystem-safe clip paths. Topic time ranges are taken as-is: ordering and
// overlap are the segmenter's contract, and a bad range surfaces later as a
// clip-cut failure.
package chapters

import (
	"fmt"
	"path/filepath"

	"github.com/Axiom-208/Youtube-Clippa/internal/domain/timecode"
	"github.com/Axiom-208/Youtube-Clippa/internal/types"
)

// Build converts topics into chapters rooted at clipsDir, preserving topic
// order. An empty topic list yields an empty chapter list.
func Build(topics []types.Topic, clipsDir string) ([]types.Chapter, error) {
	out := make([]types.Chapter, 0, len(topics))
	for i, tp := range topics {
		start, err := timecode.Parse(tp.StartTime)
		if err != nil {
			return nil, fmt.Errorf("topic %d %q: %w", i+1, tp.Title, err)
		}
		end, err := timecode.Parse(tp.EndTime)
		if err != nil {
			return nil, fmt.Errorf("topic %d %q: %w", i+1, tp.Title, err)
		}
		out = append(out, types.Chapter{
			Title:    tp.Title,
			Start:    start,
			End:      end,
			ClipPath: filepath.Join(clipsDir, ClipFilename(i+1, tp.Title)),
		})
	}
	return out, nil
}

// ClipFilename builds "clip_<n>_<Sanitized_Title>.mp4".
func ClipFilename(n int, title string) string {
	return fmt.Sprintf("clip_%d_%s.mp4", n, SanitizeTitle(title))
}

// SanitizeTitle keeps letters, digits and underscores; spaces and everything
// else become underscores so titles are safe as filenames.
func SanitizeTitle(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
