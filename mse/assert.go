//go:build !msedebug

package mse

func assertRGBALength(int) {}
