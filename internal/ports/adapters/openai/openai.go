package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/Axiom-208/Youtube-Clippa/internal/types"
)

const (
	defaultTranscribeModel = goopenai.Whisper1
	defaultSegmentModel    = "gpt-4-turbo"

	segmentTemperature = 0.3
)

type Adapter struct {
	client          *goopenai.Client
	transcribeModel string
	segmentModel    string
}

func New(apiKey, transcribeModel, segmentModel string) *Adapter {
	if transcribeModel == "" {
		transcribeModel = defaultTranscribeModel
	}
	if segmentModel == "" {
		segmentModel = defaultSegmentModel
	}
	return &Adapter{
		client:          goopenai.NewClient(apiKey),
		transcribeModel: transcribeModel,
		segmentModel:    segmentModel,
	}
}

func (a *Adapter) Transcribe(ctx context.Context, audioPath string) (types.Transcript, error) {
	resp, err := a.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    a.transcribeModel,
		FilePath: audioPath,
		Format:   goopenai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []goopenai.TranscriptionTimestampGranularity{
			goopenai.TranscriptionTimestampGranularitySegment,
		},
	})
	if err != nil {
		return types.Transcript{}, fmt.Errorf("whisper transcription: %w", err)
	}

	tr := types.Transcript{Segments: make([]types.Segment, 0, len(resp.Segments))}
	for _, s := range resp.Segments {
		tr.Segments = append(tr.Segments, types.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  strings.TrimSpace(s.Text),
		})
	}
	return tr, nil
}

func (a *Adapter) SegmentTopics(ctx context.Context, transcript string) ([]types.Topic, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, nil
	}

	resp, err := a.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       a.segmentModel,
		Temperature: segmentTemperature,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role:    goopenai.ChatMessageRoleSystem,
				Content: "You are an expert at identifying coherent topic segments in educational videos.",
			},
			{
				Role:    goopenai.ChatMessageRoleUser,
				Content: buildPrompt(transcript),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("topic analysis: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("topic analysis: empty response")
	}

	clean, err := extractJSONObject(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	var out types.TopicList
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return nil, fmt.Errorf("parse topic segments: %w", err)
	}
	return out.Topics, nil
}

func buildPrompt(transcript string) string {
	return "Analyse this video transcript and identify distinct topic segments that would work well as " +
		"standalone clips for platforms like TikTok. For each segment, provide:\n" +
		"1. A descriptive title\n" +
		"2. The start time\n" +
		"3. The end time\n\n" +
		"Format your response as JSON with the following structure:\n" +
		`{"topics": [{"title": "Topic Title", "start_time": "m:ss", "end_time": "m:ss"}]}` +
		"\n\nTranscript:\n" + transcript
}

// extractJSONObject tolerates markdown fences or prose around the model's JSON
// even though JSON mode is requested.
func extractJSONObject(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errors.New("topic analysis: empty content")
	}

	if strings.HasPrefix(t, "```") {
		if i := strings.Index(t, "\n"); i >= 0 {
			t = t[i+1:]
		}
		if j := strings.LastIndex(t, "```"); j >= 0 {
			t = t[:j]
		}
		t = strings.TrimSpace(t)
	}

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		return t[start : end+1], nil
	}

	return "", fmt.Errorf("topic analysis: could not locate JSON object in: %q", truncate(t, 200))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
