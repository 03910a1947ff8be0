package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	out := string(Render("**Origin** of species\n\nsee https://example.com"))

	assert.Contains(t, out, "<strong>Origin</strong>")
	assert.Contains(t, out, `href="https://example.com"`)
	assert.Contains(t, out, `rel="nofollow"`)
}

func TestRenderDropsScripts(t *testing.T) {
	out := string(Render("hello <script>alert(1)</script> <img src=x onerror=alert(1)>"))

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "onerror")
	assert.True(t, strings.HasPrefix(out, "<p>hello"))
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", string(Render("   ")))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Dune & friends", StripTags("<b>Dune</b> & friends"))
	assert.Equal(t, "Tom's book", StripTags("Tom's book"))
	assert.Equal(t, "", StripTags("<script>x</script>"))
}
