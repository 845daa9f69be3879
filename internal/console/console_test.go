package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBanner_PlainWhenNotTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := New(&buf)
	c.Banner("MULTI-AGENT SESSION", "Repository: x")

	rule := strings.Repeat("=", BannerWidth)
	want := "\n" + rule + "\n MULTI-AGENT SESSION\n Repository: x\n" + rule + "\n"
	assert.Equal(t, want, buf.String())
}

func TestSection(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf).Section("PHASE 1: REPOSITORY DISCOVERY")

	rule := strings.Repeat("=", SectionWidth)
	assert.Equal(t, "\n"+rule+"\n PHASE 1: REPOSITORY DISCOVERY\n"+rule+"\n", buf.String())
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Truncate("short", 50))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "✅✅", Truncate("✅✅✅", 2))
}
