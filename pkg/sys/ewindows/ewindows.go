//go:build windows

// Package ewindows provides extra Windows-specific utilities.
package ewindows

import "golang.org/x/sys/windows"

var kernel32 = windows.NewLazySystemDLL("kernel32.dll")
