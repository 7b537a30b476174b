package templates

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefinesEveryPage(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	for _, name := range []string{"header", "footer", "register.tmpl", "login.tmpl", "upload.tmpl", "mcq.tmpl", "scores.tmpl"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestHeaderEscapesFlash(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "header", map[string]interface{}{
		"Title": "Login",
		"Flash": "<script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}
