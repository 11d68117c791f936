package types

import "fmt"

// Each pipeline step wraps its failure in a dedicated error type so callers
// can tell which stage aborted the job with errors.As. No step is retried and
// no partial chapter list survives a failure.

// DownloadError means the source adapter could not fetch the URL.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string { return fmt.Sprintf("download %s: %v", e.URL, e.Err) }
func (e *DownloadError) Unwrap() error { return e.Err }

// ExtractionError means audio could not be extracted from the downloaded video.
type ExtractionError struct {
	Video string
	Err   error
}

func (e *ExtractionError) Error() string { return fmt.Sprintf("extract audio from %s: %v", e.Video, e.Err) }
func (e *ExtractionError) Unwrap() error { return e.Err }

// TranscriptionError means the speech API failed (auth, quota, network).
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string { return fmt.Sprintf("transcribe: %v", e.Err) }
func (e *TranscriptionError) Unwrap() error { return e.Err }

// SegmentationError means the analysis model failed to produce usable topic
// segments from the transcript.
type SegmentationError struct {
	Err error
}

func (e *SegmentationError) Error() string { return fmt.Sprintf("segment topics: %v", e.Err) }
func (e *SegmentationError) Unwrap() error { return e.Err }

// ClipError means one clip-cut invocation failed; it names the topic so the
// offending range is visible in logs.
type ClipError struct {
	Title string
	Err   error
}

func (e *ClipError) Error() string { return fmt.Sprintf("cut clip %q: %v", e.Title, e.Err) }
func (e *ClipError) Unwrap() error { return e.Err }

// ConfigError is fatal at startup; the service refuses to serve without a
// valid configuration.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("config: %v", e.Err) }
func (e *ConfigError) Unwrap() error { return e.Err }
