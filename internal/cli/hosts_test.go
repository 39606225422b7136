package cli

import (
	"bytes"
	"strings"
	"testing"

	rrerrors "github.com/rileyhilliard/fleettop/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListHosts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listHosts(&buf, testEntries, ""))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(testEntries)+2, "header, rule, one line per host")
	assert.Contains(t, lines[0], "ALIAS")
	assert.Contains(t, lines[0], "HOSTNAME")
	assert.Contains(t, out, "gpu-b")
	assert.Contains(t, out, "2222")
}

func TestListHosts_Pattern(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listHosts(&buf, testEntries, "gpu-*"))

	out := buf.String()
	assert.Contains(t, out, "gpu-a")
	assert.Contains(t, out, "gpu-b")
	assert.NotContains(t, out, "web-1")
	assert.NotContains(t, out, "db-1")
}

func TestListHosts_EmptyFieldsShowDash(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listHosts(&buf, testEntries, "web-1"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"web-1", "10.0.0.1", "-", "-"}, strings.Fields(lines[2]))
}

func TestListHosts_NoMatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listHosts(&buf, testEntries, "cache-*"))
	assert.Equal(t, "No hosts in ~/.ssh/config match 'cache-*'\n", buf.String())

	buf.Reset()
	require.NoError(t, listHosts(&buf, nil, ""))
	assert.Equal(t, "No hosts in ~/.ssh/config\n", buf.String())
}

func TestListHosts_BadPattern(t *testing.T) {
	var buf bytes.Buffer
	err := listHosts(&buf, testEntries, "gpu-[")
	require.Error(t, err)
	assert.True(t, rrerrors.IsCode(err, rrerrors.ErrRange))
}
