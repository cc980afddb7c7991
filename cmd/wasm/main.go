//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"syscall/js"

	"github.com/smallyu/go-ecpoint/pkg/ecpoint"
)

func main() {
	c := make(chan struct{}, 0)

	fmt.Println("Go ECPoint WASM Initialized")

	// Expose Go functions to JS
	js.Global().Set("GoECPoint", map[string]interface{}{
		"FindPoints": js.FuncOf(FindPoints),
		"SqrtMod":    js.FuncOf(SqrtMod),
	})

	<-c
}

// FindPoints searches y^2 = x^3 + ax + b mod p.
// Arguments:
// 0: a (decimal string)
// 1: b (decimal string)
// 2: mod (decimal string)
// 3: optional start x (decimal string)
// Returns:
// JSON string { x, y1, y2, square, nonResidue } or an "error: ..." string
func FindPoints(this js.Value, args []js.Value) interface{} {
	if len(args) != 3 && len(args) != 4 {
		return "error: expected 3 or 4 arguments (a, b, mod[, start])"
	}

	ints, err := parseArgs(args)
	if err != nil {
		return err.Error()
	}
	var start *big.Int
	if len(ints) == 4 {
		start = ints[3]
	}

	pair, err := ecpoint.FindPointsFrom(context.Background(), ints[0], ints[1], ints[2], start)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	// Numbers travel as strings; JS numbers cannot hold field elements.
	resp := map[string]string{
		"x":          pair.First.X.String(),
		"y1":         pair.First.Y.String(),
		"y2":         pair.Second.Y.String(),
		"square":     pair.RHS.String(),
		"nonResidue": pair.NonResidue.String(),
	}
	respBytes, _ := json.Marshal(resp)
	return string(respBytes)
}

// SqrtMod returns both square roots of a residue.
// Arguments:
// 0: square, 1: mod (decimal strings)
// Returns:
// JSON array of two decimal strings or an "error: ..." string
func SqrtMod(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (square, mod)"
	}

	ints, err := parseArgs(args)
	if err != nil {
		return err.Error()
	}
	square, mod := ints[0], ints[1]

	ok, err := ecpoint.IsQuadraticResidue(square, mod)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	if !ok {
		return "error: not a quadratic residue"
	}
	z, err := ecpoint.FindNonResidue(mod)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	r1, r2, err := ecpoint.SqrtMod(square, z, mod)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	respBytes, _ := json.Marshal([]string{r1.String(), r2.String()})
	return string(respBytes)
}

// Helpers

func parseArgs(args []js.Value) ([]*big.Int, error) {
	out := make([]*big.Int, len(args))
	for i, arg := range args {
		v, ok := new(big.Int).SetString(arg.String(), 10)
		if !ok {
			return nil, fmt.Errorf("error: argument %d is not an integer: %q", i, arg.String())
		}
		out[i] = v
	}
	return out, nil
}
