package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func looseFrom(t *testing.T, raw string) looseBody {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
	return readLooseBody(c)
}

func TestReadLooseBodyNonObjects(t *testing.T) {
	for _, raw := range []string{``, `null`, `[1,2]`, `"text"`, `{broken`} {
		assert.Empty(t, looseFrom(t, raw), raw)
	}
}

func TestLooseBodyTruthy(t *testing.T) {
	b := looseFrom(t, `{"t":true,"f":false,"one":1,"zero":0,"s":"no","empty":"","null":null,"obj":{},"list":[]}`)

	for key, want := range map[string]bool{
		"t": true, "f": false, "one": true, "zero": false, "s": true,
		"empty": false, "null": false, "obj": true, "list": true, "absent": false,
	} {
		assert.Equal(t, want, b.truthy(key), key)
	}
}

func TestLooseBodyInteger(t *testing.T) {
	b := looseFrom(t, `{"n":7,"f":7.9,"s":" 14 ","bad":"dias","b":true,"neg":-3}`)

	assert.Equal(t, 7, b.integer("n"))
	assert.Equal(t, 7, b.integer("f"))
	assert.Equal(t, 14, b.integer("s"))
	assert.Equal(t, 0, b.integer("bad"))
	assert.Equal(t, 0, b.integer("b"))
	assert.Equal(t, -3, b.integer("neg"))
	assert.Equal(t, 0, b.integer("absent"))
}

func TestDecodeGenerateRequest(t *testing.T) {
	b := looseFrom(t, `{"formData":{"idea":12345678901,"niche":"a","subniche":false,"risk":["x"]},`+
		`"extracted":{"allThemes":["um",2,null],"anchorQuestions":"x","rawExcerpt":"trecho"},"allowOpenAI":1}`)

	req := decodeGenerateRequest(b)
	assert.Equal(t, "12345678901", req.FormData.Idea)
	assert.Equal(t, "a", req.FormData.Niche)
	assert.Empty(t, req.FormData.Subniche)
	assert.Empty(t, req.FormData.Risk)
	assert.Equal(t, []string{"um", "2", ""}, req.Extracted.AllThemes)
	assert.Empty(t, req.Extracted.AnchorQuestions)
	assert.Equal(t, "trecho", req.Extracted.RawExcerpt)
	assert.True(t, req.AllowOpenAI)
}
