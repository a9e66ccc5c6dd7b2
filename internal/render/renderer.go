package render

import (
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	Size() (rows, columns int)
	AddDecoration(row, col int, content string, frames int)
	RenderLoop(framePeriod time.Duration, render func(frame uint64) bool)
	Fill(row, column int, message string)
}
