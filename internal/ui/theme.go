package ui

import "image/color"

var (
	colIdleBG   = color.NRGBA{20, 20, 40, 255}
	colIdleOrb  = color.NRGBA{150, 180, 255, 255}
	colCanvasBG = color.NRGBA{10, 10, 20, 255}
)

const (
	idlePrompt   = "click or press space to start dreaming"
	runningHints = "S snapshot   ESC stop"
)
