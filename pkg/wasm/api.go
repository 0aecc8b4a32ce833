//go:build js && wasm

package wasm

import (
	"syscall/js"

	"github.com/eddndev/achronyme-core/internal/handles"
	"github.com/eddndev/achronyme-core/internal/interp/builtins"
	"github.com/eddndev/achronyme-core/internal/runtime"
	"github.com/eddndev/achronyme-core/pkg/soc"
)

// bridge owns one engine session and the handle table for bulk data.
type bridge struct {
	engine *soc.Engine
	table  *handles.Table[runtime.Value]
}

// RegisterAPI installs the SOC object on the JavaScript global scope. The
// evaluate entry point returns {value} or {error}; the fast paths trade in
// integer handles so tensor data crosses the boundary without per-element
// conversion.
func RegisterAPI() {
	b := &bridge{
		engine: soc.New(),
		table:  handles.NewTable[runtime.Value](),
	}

	api := js.Global().Get("Object").New()
	api.Set("evaluate", js.FuncOf(b.evaluate))
	api.Set("createTensorFromBuffer", js.FuncOf(b.createTensorFromBuffer))
	api.Set("linspace_fast", js.FuncOf(b.linspaceFast))
	api.Set("fft_fast", js.FuncOf(b.fftFast))
	api.Set("readTensor", js.FuncOf(b.readTensor))
	api.Set("dispose", js.FuncOf(b.dispose))
	js.Global().Set("SOC", api)
}

func errorResult(err error) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", err.Error())
	return result
}

func (b *bridge) evaluate(this js.Value, args []js.Value) any {
	if len(args) != 1 {
		return errorResult(runtime.NewArityError("evaluate", 1, len(args)))
	}
	v, err := b.engine.Evaluate(args[0].String())
	if err != nil {
		return errorResult(err)
	}
	result := js.Global().Get("Object").New()
	result.Set("value", v.String())
	return result
}

// createTensorFromBuffer copies a Float64Array into a rank-1 tensor owned
// by the handle table and returns its handle.
func (b *bridge) createTensorFromBuffer(this js.Value, args []js.Value) any {
	if len(args) != 1 {
		return js.ValueOf(0)
	}
	src := args[0]
	n := src.Length()
	data := make([]float64, n)
	for k := 0; k < n; k++ {
		data[k] = src.Index(k).Float()
	}
	tensor, err := runtime.NewRealTensor(data, []int{n})
	if err != nil {
		return js.ValueOf(0)
	}
	return js.ValueOf(b.table.Put(tensor))
}

func (b *bridge) linspaceFast(this js.Value, args []js.Value) any {
	if len(args) != 3 {
		return js.ValueOf(0)
	}
	n := args[2].Int()
	data, err := builtins.Linspace(args[0].Float(), args[1].Float(), n)
	if err != nil {
		return js.ValueOf(0)
	}
	tensor, err := runtime.NewRealTensor(data, []int{len(data)})
	if err != nil {
		return js.ValueOf(0)
	}
	return js.ValueOf(b.table.Put(tensor))
}

// fftFast transforms the tensor behind a handle and returns a new handle
// to the complex result.
func (b *bridge) fftFast(this js.Value, args []js.Value) any {
	if len(args) != 1 {
		return js.ValueOf(0)
	}
	v, err := b.table.Get(int32(args[0].Int()))
	if err != nil {
		return js.ValueOf(0)
	}
	var input []complex128
	switch t := v.(type) {
	case *runtime.RealTensor:
		input = make([]complex128, len(t.Data))
		for k, x := range t.Data {
			input[k] = complex(x, 0)
		}
	case *runtime.ComplexTensor:
		input = t.Data
	default:
		return js.ValueOf(0)
	}
	out, err := builtins.FFT(input)
	if err != nil {
		return js.ValueOf(0)
	}
	tensor, err := runtime.NewComplexTensor(out, []int{len(out)})
	if err != nil {
		return js.ValueOf(0)
	}
	return js.ValueOf(b.table.Put(tensor))
}

// readTensor copies a real tensor's data back out as a Float64Array; a
// complex tensor comes back as interleaved [re, im] pairs.
func (b *bridge) readTensor(this js.Value, args []js.Value) any {
	if len(args) != 1 {
		return js.Null()
	}
	v, err := b.table.Get(int32(args[0].Int()))
	if err != nil {
		return js.Null()
	}
	var data []float64
	switch t := v.(type) {
	case *runtime.RealTensor:
		data = t.Data
	case *runtime.ComplexTensor:
		data = make([]float64, 0, 2*len(t.Data))
		for _, z := range t.Data {
			data = append(data, real(z), imag(z))
		}
	default:
		return js.Null()
	}
	out := js.Global().Get("Float64Array").New(len(data))
	for k, x := range data {
		out.SetIndex(k, x)
	}
	return out
}

func (b *bridge) dispose(this js.Value, args []js.Value) any {
	if len(args) != 1 {
		return js.ValueOf(false)
	}
	return js.ValueOf(b.table.Dispose(int32(args[0].Int())) == nil)
}
