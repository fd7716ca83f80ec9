//go:build js && wasm

package main

import (
	"log/slog"
	"syscall/js"

	"github.com/gogpu/mandelbrot"
)

func main() {
	mandelbrot.SetLogger(slog.Default())
	b := newBridge()

	api := js.Global().Get("Object").New()
	api.Set("alloc", js.FuncOf(func(_ js.Value, args []js.Value) any {
		h, err := b.alloc(args[0].Int())
		if err != nil {
			return jsError(err)
		}
		return int(h)
	}))
	api.Set("dealloc", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if err := b.dealloc(mandelbrot.Handle(args[0].Int())); err != nil {
			return jsError(err)
		}
		return js.Undefined()
	}))
	api.Set("calculate", js.FuncOf(func(_ js.Value, args []js.Value) any {
		err := b.calculate(mandelbrot.Handle(args[0].Int()),
			args[1].Int(), args[2].Int(), args[3].Int(),
			args[4].Float(), args[5].Float(), args[6].Float())
		if err != nil {
			return jsError(err)
		}
		return js.Undefined()
	}))
	// copyTo(handle, width, height, Uint8ClampedArray) copies the frame out
	// of wasm memory into an ImageData buffer.
	api.Set("copyTo", js.FuncOf(func(_ js.Value, args []js.Value) any {
		px, err := b.pixels(mandelbrot.Handle(args[0].Int()), args[1].Int(), args[2].Int())
		if err != nil {
			return jsError(err)
		}
		return js.CopyBytesToJS(args[3], px)
	}))
	api.Set("keyDown", js.FuncOf(func(_ js.Value, args []js.Value) any {
		b.keyDown(args[0].String())
		return js.Undefined()
	}))
	api.Set("keyUp", js.FuncOf(func(_ js.Value, args []js.Value) any {
		b.keyUp(args[0].String())
		return js.Undefined()
	}))
	api.Set("update", js.FuncOf(func(_ js.Value, _ []js.Value) any {
		v := b.update()
		return map[string]any{
			"re":         v.CenterReal,
			"im":         v.CenterImag,
			"zoom":       v.Zoom,
			"iterations": v.MaxIterations,
		}
	}))
	js.Global().Set("mandelbrot", api)

	// Signal readiness, then keep the runtime alive for callbacks.
	if ready := js.Global().Get("onMandelbrotReady"); ready.Type() == js.TypeFunction {
		ready.Invoke()
	}
	select {}
}

func jsError(err error) js.Value {
	return js.Global().Get("Error").New(err.Error())
}
