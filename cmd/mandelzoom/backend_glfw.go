//go:build glfw

package main

import _ "github.com/san-kum/mandelzoom/internal/glview"
