package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	c, err := parseArgs([]string{"-w", "3", "--no-color", "--steps", "100,100", "400,300"})
	require.NoError(t, err)
	assert.Equal(t, 3, c.workers)
	assert.False(t, c.color)
	assert.True(t, c.steps)
	assert.Equal(t, []string{"100,100", "400,300"}, c.sites)
	assert.Equal(t, "20,20 20,0 0,0 0,20", c.gauge)

	_, err = parseArgs(nil)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	png := filepath.Join(t.TempDir(), "out.png")
	c, err := parseArgs([]string{"--no-color", "--png", png, "100,100", "400,300", "200,500"})
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(c, &stdout, &stderr))

	out := stdout.String()
	assert.Contains(t, out, "sites 3")
	assert.Contains(t, out, "b3s_chosen_vertex (")
	assert.Contains(t, out, "scale=20")
	assert.NotContains(t, out, "step")
	assert.NotContains(t, out, "\x1b[")
	assert.Empty(t, stderr.String())

	st, err := os.Stat(png)
	require.NoError(t, err)
	assert.NotZero(t, st.Size())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestRun_Preview(t *testing.T) {
	png := filepath.Join(t.TempDir(), "out.png")
	c, err := parseArgs([]string{"--no-color", "--preview", "--png", png, "100,100", "400,300"})
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, run(c, &stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), "]1337;File=;inline=1:")

	err = run(c, brokenWriter{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preview: closed")
}

func TestRun_BadGauge(t *testing.T) {
	c, err := parseArgs([]string{"-g", "0,0 10,10 10,0 0,10", "1,1", "5,5"})
	require.NoError(t, err)
	err = run(c, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not convex")
}
