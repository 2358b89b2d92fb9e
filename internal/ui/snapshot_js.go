//go:build js

package ui

import (
	"errors"
	"path/filepath"
	"syscall/js"
)

// saveSnapshot offers PNG data as a browser download named after path.
var saveSnapshot = func(path string, data []byte) error {
	doc := js.Global().Get("document")
	if doc.IsUndefined() {
		return errors.New("snapshot: no document")
	}
	arr := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arr, data)
	blob := js.Global().Get("Blob").New([]any{arr}, map[string]any{"type": "image/png"})
	url := js.Global().Get("URL").Call("createObjectURL", blob)
	a := doc.Call("createElement", "a")
	a.Set("href", url)
	a.Set("download", filepath.Base(path))
	doc.Get("body").Call("appendChild", a)
	a.Call("click")
	a.Call("remove")
	js.Global().Get("URL").Call("revokeObjectURL", url)
	return nil
}
