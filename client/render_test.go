package client_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tatertot/apartmentsapi/client"
)

func TestRenderTableHidesDistance2ForNonDev(t *testing.T) {
	var buf bytes.Buffer
	client.RenderTable(&buf, sampleRows(), false)

	out := buf.String()
	assert.Contains(t, out, "DIST1")
	assert.NotContains(t, out, "DIST2")
	assert.Contains(t, out, "The Meadows")
	assert.Contains(t, out, "5 row(s)")
}

func TestRenderTableShowsDistance2ForDev(t *testing.T) {
	var buf bytes.Buffer
	client.RenderTable(&buf, sampleRows(), true)

	out := buf.String()
	assert.Contains(t, out, "DIST2")
	assert.Contains(t, out, "38.5")
}

func TestRenderTableNullsAsDash(t *testing.T) {
	var buf bytes.Buffer
	client.RenderTable(&buf, sampleRows(), true)

	// Terracina has no price, distances or link.
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "Terracina") {
			assert.GreaterOrEqual(t, strings.Count(line, "-"), 4)
			return
		}
	}
	t.Fatal("Terracina row not rendered")
}
