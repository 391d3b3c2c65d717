package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/algebra/internal/presentation/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|___/")
}

func TestStyle_PlainWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	s := tui.NewStyle(&buf)

	// A bytes.Buffer is not a TTY, so no escape sequences are emitted.
	assert.Equal(t, "Algebra.divisionZeroOne", s.Rule("Algebra.divisionZeroOne"))
	assert.Equal(t, "x", s.After("x"))
	assert.Equal(t, "y", s.Before("y"))
	assert.False(t, strings.Contains(s.Faint("z"), "\x1b"))
}

func TestNewRenderer(t *testing.T) {
	render := tui.NewRenderer()
	out, err := render("# Reduction\n\n`x`")
	require.NoError(t, err)
	assert.Contains(t, out, "Reduction")
}
