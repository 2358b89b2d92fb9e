//go:build js && !test

package ui

import "syscall/js"

// initJS exposes helper functions for browser-based tests and page glue.
func (g *Game) initJS() {
	js.Global().Set("startDream", js.FuncOf(func(js.Value, []js.Value) any {
		g.startRequested = true
		return nil
	}))
	js.Global().Set("stopDream", js.FuncOf(func(js.Value, []js.Value) any {
		g.stopRequested = true
		return nil
	}))
}

// reportStateJS publishes the run state for tests.
func (g *Game) reportStateJS() {
	pop := 0
	if s := g.ctrl.State(); s != nil {
		pop = s.Population()
	}
	js.Global().Set("__population", js.ValueOf(pop))
	js.Global().Set("__status", js.ValueOf(g.ctrl.Status().String()))
}
