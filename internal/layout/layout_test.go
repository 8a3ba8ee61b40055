package layout

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	opts := Default()

	assert.NotEmpty(t, opts.Nav.Title.Icon)
	assert.NotEmpty(t, opts.Nav.Title.Text)
	assert.NotNil(t, opts.Links)
	assert.Empty(t, opts.Links)
}

// TestDefault_Immutable checks that changing a returned copy does not leak
// into later calls.
func TestDefault_Immutable(t *testing.T) {
	opts := Default()
	opts.Nav.Title.Text = "changed"
	opts.Links = append(opts.Links, Link{Text: "Blog", URL: "/blog"})

	again := Default()
	assert.Equal(t, "Documentation", again.Nav.Title.Text)
	assert.Empty(t, again.Links)
}

func TestEncode_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Default(), FormatYAML))

	assert.Equal(t, `nav:
  title:
    icon: book-open
    text: Documentation
links: []
`, buf.String())
}

func TestEncode_JSON(t *testing.T) {
	var buf bytes.Buffer
	opts := Default()
	opts.Links = []Link{{Text: "GitHub", URL: "https://example.com/repo"}}
	require.NoError(t, Encode(&buf, opts, FormatJSON))

	var decoded Options
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, opts, decoded)
}

// TestEncode_NilLinks ensures an unset link list is written as an empty
// list rather than null.
func TestEncode_NilLinks(t *testing.T) {
	opts := Options{Nav: Nav{Title: Title{Text: "Docs"}}}

	var jsonBuf bytes.Buffer
	require.NoError(t, Encode(&jsonBuf, opts, FormatJSON))
	assert.Contains(t, jsonBuf.String(), `"links": []`)

	var yamlBuf bytes.Buffer
	require.NoError(t, Encode(&yamlBuf, opts, "yml"))
	var generic map[string]any
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &generic))
	assert.Equal(t, []any{}, generic["links"])
}

func TestEncode_UnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, Default(), "toml")
	assert.ErrorContains(t, err, "unsupported layout format")
}
