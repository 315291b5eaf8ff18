//go:build js && wasm
// +build js,wasm

package encryption

import (
	"crypto/rand"
	"encoding/hex"
	"syscall/js"
)

// Browser bindings: RC6Crypto.Encrypt / Decrypt / GenerateIV. All byte
// arguments and results cross the boundary hex-encoded.

func errObject(msg string) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("error", msg)
	return obj
}

// runCipherOp drives one ECB/CBC operation from hex-encoded arguments
func runCipherOp(encrypting bool, keyHex, inputHex, ivHex, modeName string) js.Value {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return errObject("invalid key hex")
	}
	input, err := hex.DecodeString(inputHex)
	if err != nil {
		return errObject("invalid input hex")
	}
	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return errObject("invalid iv hex")
	}

	cipher, err := NewRC6(key)
	if err != nil {
		return errObject(err.Error())
	}

	mode := GetMode(modeName)
	if mode == nil {
		return errObject("unknown mode: " + modeName)
	}

	var out []byte
	if encrypting {
		out, err = mode.Encrypt(cipher, input, iv)
	} else {
		out, err = mode.Decrypt(cipher, input, iv)
	}
	if err != nil {
		return errObject(err.Error())
	}

	result := js.Global().Get("Object").New()
	result.Set("output", hex.EncodeToString(out))
	return result
}

func registerWasm() {
	// RC6Crypto.Encrypt(keyHex, plaintextHex, ivHex, mode) -> {output} | {error}
	encrypt := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 4 {
			return errObject("insufficient args")
		}
		return runCipherOp(true, args[0].String(), args[1].String(), args[2].String(), args[3].String())
	})

	// RC6Crypto.Decrypt(keyHex, ciphertextHex, ivHex, mode) -> {output} | {error}
	decrypt := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 4 {
			return errObject("insufficient args")
		}
		return runCipherOp(false, args[0].String(), args[1].String(), args[2].String(), args[3].String())
	})

	// RC6Crypto.GenerateIV() -> {iv}
	generateIV := js.FuncOf(func(this js.Value, args []js.Value) any {
		iv := make([]byte, RC6BlockSize)
		rand.Read(iv)
		result := js.Global().Get("Object").New()
		result.Set("iv", hex.EncodeToString(iv))
		return result
	})

	wasmObj := js.Global().Get("RC6Crypto")
	if wasmObj.Type() == js.TypeUndefined {
		wasmObj = js.Global().Get("Object").New()
		js.Global().Set("RC6Crypto", wasmObj)
	}
	wasmObj.Set("Encrypt", encrypt)
	wasmObj.Set("Decrypt", decrypt)
	wasmObj.Set("GenerateIV", generateIV)
}

// RegisterWasmFunctions registers all WASM functions with JavaScript
func RegisterWasmFunctions() {
	registerWasm()
}
