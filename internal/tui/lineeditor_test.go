package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineEditor_InsertAndMove(t *testing.T) {
	var l lineEditor

	for _, r := range "acd" {
		l.Insert(r)
	}
	l.Left()
	l.Left()
	l.Insert('b')
	assert.Equal(t, "abcd", l.String())
	assert.Equal(t, 2, l.Cursor())

	l.End()
	assert.Equal(t, 4, l.Cursor())
	l.Home()
	assert.Equal(t, 0, l.Cursor())
}

func TestLineEditor_BackspaceDelete(t *testing.T) {
	var l lineEditor
	for _, r := range "abc" {
		l.Insert(r)
	}

	assert.True(t, l.Backspace())
	assert.Equal(t, "ab", l.String())

	l.Home()
	assert.False(t, l.Backspace(), "backspace at start is a no-op")
	assert.True(t, l.Delete())
	assert.Equal(t, "b", l.String())

	l.End()
	assert.False(t, l.Delete(), "delete at end is a no-op")
}

func TestLineEditor_Clear(t *testing.T) {
	var l lineEditor
	assert.False(t, l.Clear())

	l.Insert('x')
	assert.True(t, l.Clear())
	assert.Equal(t, "", l.String())
	assert.Equal(t, 0, l.Cursor())
}

func TestLineEditor_Unicode(t *testing.T) {
	var l lineEditor
	for _, r := range "日本語" {
		l.Insert(r)
	}
	assert.Equal(t, "日本語", l.String())
	l.Backspace()
	assert.Equal(t, "日本", l.String())
}

func TestPalette_MatchFgClamps(t *testing.T) {
	p := defaultPalette()

	low := p.matchFg(0, 1)
	high := p.matchFg(2, 1)
	mid := p.matchFg(0.5, 1)
	assert.NotEqual(t, low, high)
	assert.NotEqual(t, low, mid)

	// Degenerate best score must not divide by zero.
	assert.Equal(t, low, p.matchFg(0, 0))
}
