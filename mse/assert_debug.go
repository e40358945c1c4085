//go:build msedebug

package mse

import "fmt"

func assertRGBALength(length int) {
	if length < 0 || length%4 != 0 {
		panic(fmt.Sprintf("mse: RGBA length %d is not a non-negative multiple of 4", length))
	}
}
