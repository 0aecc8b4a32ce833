// Package wasm exports the SOC API to JavaScript when built for js/wasm:
// evaluate(source) plus the handle-based fast paths for bulk numeric data
// (createTensorFromBuffer, linspace_fast, fft_fast, readTensor, dispose).
package wasm
