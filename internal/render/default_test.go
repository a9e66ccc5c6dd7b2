package render

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestRenderLoop(t *testing.T) {
	var out bytes.Buffer
	r := &DefaultRenderer{Out: &out}

	frames := 0
	r.RenderLoop(time.Millisecond, func(frame uint64) bool {
		if frame == 0 {
			r.AddDecoration(2, 5, "hit", 1)
		}
		frames++
		return frame < 2
	})
	if frames != 3 {
		t.Errorf("rendered %d frames, expected 3", frames)
	}
	s := out.String()
	if !strings.Contains(s, "\033[2;5Hhit") {
		t.Errorf("decoration not drawn: %q", s)
	}
	if !strings.Contains(s, "\033[2;5H   ") {
		t.Errorf("decoration not cleared: %q", s)
	}
	if len(r.decorations) != 0 {
		t.Errorf("%d decorations left", len(r.decorations))
	}
}
