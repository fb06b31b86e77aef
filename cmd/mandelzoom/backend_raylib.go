//go:build !glfw

package main

// raylib and go-gl/glfw each bundle their own copy of GLFW, so a binary
// links exactly one of them. Build with -tags glfw for the go-gl front end.
import _ "github.com/san-kum/mandelzoom/internal/gui"
