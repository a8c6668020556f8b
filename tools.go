// ABOUTME: Build constraint file to pin the Charm TUI modules in go.mod
// ABOUTME: Only compiled with the tools tag, so it never reaches the binary

//go:build tools

package tools

import (
	_ "github.com/charmbracelet/bubbles"
	_ "github.com/charmbracelet/bubbletea"
	_ "github.com/charmbracelet/huh"
	_ "github.com/charmbracelet/lipgloss"
)
