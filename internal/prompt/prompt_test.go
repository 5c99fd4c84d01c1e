package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_ByNumber(t *testing.T) {
	var out bytes.Buffer
	p := NewLine(strings.NewReader("2\n"), &out)

	idx, err := p.Select("Select project type:", []string{"Frontend", "Backend"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "1) Frontend")
	assert.Contains(t, out.String(), "2) Backend")
}

func TestSelect_ByLabel(t *testing.T) {
	p := NewLine(strings.NewReader("backend\n"), &bytes.Buffer{})

	idx, err := p.Select("type", []string{"Frontend", "Backend"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestSelect_Reasks(t *testing.T) {
	var out bytes.Buffer
	p := NewLine(strings.NewReader("9\nabc\n1\n"), &out)

	idx, err := p.Select("type", []string{"Frontend", "Backend"})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid choice"))
}

func TestSelect_GivesUp(t *testing.T) {
	p := NewLine(strings.NewReader("x\ny\nz\n1\n"), &bytes.Buffer{})

	_, err := p.Select("type", []string{"Frontend"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid choice")
}

func TestSelect_NoOptions(t *testing.T) {
	p := NewLine(strings.NewReader("1\n"), &bytes.Buffer{})

	_, err := p.Select("type", nil)
	assert.Error(t, err)
}

func TestSelect_EOF(t *testing.T) {
	p := NewLine(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Select("type", []string{"Frontend"})
	assert.True(t, errors.Is(err, ErrAborted))
}

func TestInput_Default(t *testing.T) {
	var out bytes.Buffer
	p := NewLine(strings.NewReader("\n"), &out)

	answer, err := p.Input("Project name", "demo-app")
	require.NoError(t, err)
	assert.Equal(t, "demo-app", answer)
	assert.Contains(t, out.String(), "(demo-app)")
}

func TestInput_Override(t *testing.T) {
	p := NewLine(strings.NewReader("  other-app  \n"), &bytes.Buffer{})

	answer, err := p.Input("Project name", "demo-app")
	require.NoError(t, err)
	assert.Equal(t, "other-app", answer)
}

func TestInput_LastLineWithoutNewline(t *testing.T) {
	p := NewLine(strings.NewReader("npm"), &bytes.Buffer{})

	answer, err := p.Input("Cache", "")
	require.NoError(t, err)
	assert.Equal(t, "npm", answer)
}

func TestInput_EOF(t *testing.T) {
	p := NewLine(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Input("Cache", "npm")
	assert.True(t, errors.Is(err, ErrAborted))
}
