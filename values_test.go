package formhandler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formhandler"
	"github.com/dmitrymomot/formhandler/pkg/rules"
)

func TestDataFromValues(t *testing.T) {
	t.Parallel()

	data := formhandler.DataFromValues(url.Values{
		"name": {"John"},
		"tags": {"go", "rust"},
	})
	assert.Equal(t, "John", data["name"])
	assert.Equal(t, []string{"go", "rust"}, data["tags"])
}

func TestDataSource_Lookup(t *testing.T) {
	t.Parallel()

	data := formhandler.DataSource{"name": "John", "age": 30, "tags": []string{"go"}}

	v, ok := data.Lookup("name")
	assert.True(t, ok)
	assert.Equal(t, "John", v)

	v, ok = data.Lookup("age")
	assert.True(t, ok)
	assert.Equal(t, "30", v)

	v, _ = data.Lookup("tags")
	assert.Equal(t, "go", v)

	_, ok = data.Lookup("missing")
	assert.False(t, ok)
}

func TestExecute_ScalarValues(t *testing.T) {
	t.Parallel()

	set := rules.NewSet().
		Add("age", rules.Shorthand(rules.TypeInt)).
		Add("scores", rules.Shorthand(rules.TypeNumber))

	h := execute(t, formhandler.DataSource{"age": 30, "scores": []any{1.5, "2"}}, set)
	require.True(t, h.Succeeds(), h.Errors().Map())
	assert.Equal(t, int64(30), h.Data()["age"])
	assert.Equal(t, []any{1.5, float64(2)}, h.Data()["scores"])
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	form := url.Values{"email": {"john@example.com"}, "account_types": {"personal", "business"}}
	r := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	data, files, err := formhandler.FromRequest(r, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)

	set := rules.NewSet().
		Add("email", rules.Shorthand(rules.TypeEmail)).
		Add("account_types", rules.Declaration{Type: rules.TypeChoice, Options: rules.Options{
			Choices: []string{"personal", "business"},
		}})

	h := formhandler.New(data, files, set)
	ok, err := h.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, ok, h.Errors().Map())
	assert.Equal(t, []any{"personal", "business"}, h.Data()["account_types"])
}
