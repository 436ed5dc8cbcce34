package standards

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStandardsRoutes(t *testing.T) {
	h := SetupRoutes(loadDefault(t))

	cases := []struct {
		path string
		want int
	}{
		{"/regions", http.StatusOK},
		{"/regions/cook", http.StatusOK},
		{"/regions/atlantis", http.StatusNotFound},
		{"/regions/cook/towns", http.StatusOK},
		{"/regions/cook/zips", http.StatusOK},
		{"/regions/cook/zips/60601", http.StatusOK},
		{"/regions/cook/zips/00000", http.StatusNotFound},
		{"/regions/cook/zips/606", http.StatusBadRequest},
		{"/regions/cook/zips/60601?bedrooms=x", http.StatusBadRequest},
		{"/regions/cook/resolve?q=Evanston", http.StatusOK},
		{"/issues", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, get(t, h, tc.path).Code)
		})
	}
}

func TestGetStandard(t *testing.T) {
	h := SetupRoutes(loadDefault(t))

	rec := get(t, h, "/regions/cook/zips/60601")
	require.Equal(t, http.StatusOK, rec.Code)
	var all StandardOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Equal(t, "J", all.Tier)
	assert.Equal(t, 1435, all.Amounts["1br"])
	assert.Len(t, all.Amounts, NumCategories)

	rec = get(t, h, "/regions/cook/zips/60601?bedrooms=1")
	require.Equal(t, http.StatusOK, rec.Code)
	var one StandardOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &one))
	require.NotNil(t, one.Amount)
	assert.Equal(t, 1435, *one.Amount)
	assert.Nil(t, one.Amounts)
}

func TestResolveHandler(t *testing.T) {
	h := SetupRoutes(loadDefault(t))

	rec := get(t, h, "/regions/cook/resolve?q=evanston")
	require.Equal(t, http.StatusOK, rec.Code)
	var out ResolveOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, []string{"60201", "60202", "60203", "60204"}, out.Zips)

	rec = get(t, h, "/regions/cook/resolve?q=Atlantis")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotNil(t, out.Zips)
	assert.Empty(t, out.Zips)
}

func TestListRegions(t *testing.T) {
	rec := get(t, SetupRoutes(loadDefault(t)), "/regions")
	var out []RegionOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "cook", out[0].Key)
	assert.Equal(t, 188, out[0].ZipCount)
	assert.Empty(t, out[0].Explainer)
}
