package types

import (
	"strings"
	"time"
)

type Transcript struct {
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// FullText joins all segment texts into the single transcript string that is
// fed to the topic segmenter.
func (t Transcript) FullText() string {
	parts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		txt := strings.TrimSpace(s.Text)
		if txt == "" {
			continue
		}
		parts = append(parts, txt)
	}
	return strings.Join(parts, " ")
}

// Topic is the segmenter's wire form: times are "m:ss" strings as returned by
// the analysis model.
type Topic struct {
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type TopicList struct {
	Topics []Topic `json:"topics"`
}

// Chapter is a titled time-bounded slice of the source video, materialized as
// its own clip file. Immutable once built.
type Chapter struct {
	Title    string
	Start    time.Duration
	End      time.Duration
	ClipPath string
}

type Manifest struct {
	URL      string            `json:"url"`
	Chapters []ManifestChapter `json:"chapters"`
}

type ManifestChapter struct {
	Index    int     `json:"index"`
	Title    string  `json:"title"`
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	File     string  `json:"file"`
}
