//go:build js && wasm
// +build js,wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/LFlinn-scottLogic/CyberChef/server/internal/pkg/encryption"
)

func main() {
	fmt.Println("RC6 WASM module initialized")

	encryption.RegisterWasmFunctions()

	// Export a ready flag to signal that WASM is ready
	js.Global().Set("RC6Ready", js.ValueOf(true))

	// Keep the program running; required for Go WASM programs
	<-make(chan struct{})
}
