//go:build js && wasm

// Package main is the WebAssembly entry point for the SOC interpreter. It
// exports the SOC API to JavaScript and keeps the module alive to serve
// calls.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o soc.wasm ./cmd/soc-wasm
//
// Usage from JavaScript:
//
//	<script src="wasm_exec.js"></script>
//	<script>
//	  const go = new Go();
//	  WebAssembly.instantiateStreaming(fetch("soc.wasm"), go.importObject)
//	    .then((result) => {
//	      go.run(result.instance);
//	      // window.SOC.evaluate("1 + 2") is now available
//	    });
//	</script>
package main

import (
	"syscall/js"

	"github.com/eddndev/achronyme-core/pkg/wasm"
)

func main() {
	// The module must stay resident: returning from main would tear down
	// every exported function.
	done := make(chan struct{})

	wasm.RegisterAPI()
	js.Global().Get("console").Call("log", "SOC WASM module initialized")

	<-done
}
