// Package timecode converts between the "m:ss" time strings used by the topic
// segmenter and time.Duration.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parse accepts "m:ss", "h:mm:ss" or plain seconds.
func Parse(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch len(parts) {
	case 1:
		sec, err := parseInt(parts[0])
		if err != nil {
			return 0, fmt.Errorf("parse timecode %q: %w", s, err)
		}
		return time.Duration(sec) * time.Second, nil
	case 2:
		m, err1 := parseInt(parts[0])
		sec, err2 := parseInt(parts[1])
		if err1 != nil || err2 != nil {
			return 0, fmt.Errorf("parse timecode %q", s)
		}
		return time.Duration(m*60+sec) * time.Second, nil
	case 3:
		h, err1 := parseInt(parts[0])
		m, err2 := parseInt(parts[1])
		sec, err3 := parseInt(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, fmt.Errorf("parse timecode %q", s)
		}
		return time.Duration(h*3600+m*60+sec) * time.Second, nil
	default:
		return 0, fmt.Errorf("parse timecode %q: too many parts", s)
	}
}

// Format renders a duration as "m:ss", matching the segmenter's wire form.
// Minutes are not wrapped at an hour, so 90 minutes renders as "90:00".
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
