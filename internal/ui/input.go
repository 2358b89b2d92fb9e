package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	isKeyJustPressed   = inpututil.IsKeyJustPressed
	isMouseJustPressed = inpututil.IsMouseButtonJustPressed
	justTouched        = func() bool { return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 }
	windowClosing      = ebiten.IsWindowBeingClosed
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(
	key func(ebiten.Key) bool,
	mouse func(ebiten.MouseButton) bool,
	touch func() bool,
	closing func() bool,
) func() {
	oldKey := isKeyJustPressed
	oldMouse := isMouseJustPressed
	oldTouch := justTouched
	oldClosing := windowClosing
	isKeyJustPressed = key
	isMouseJustPressed = mouse
	justTouched = touch
	windowClosing = closing
	return func() {
		isKeyJustPressed = oldKey
		isMouseJustPressed = oldMouse
		justTouched = oldTouch
		windowClosing = oldClosing
	}
}

// startGesture reports a click, tap, Space or Enter this tick.
func startGesture() bool {
	return isMouseJustPressed(ebiten.MouseButtonLeft) ||
		justTouched() ||
		isKeyJustPressed(ebiten.KeySpace) ||
		isKeyJustPressed(ebiten.KeyEnter)
}
