package standards

import (
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefault(t *testing.T) *Registry {
	t.Helper()
	reg, err := Default()
	require.NoError(t, err)
	return reg
}

func loadWithFixture(t *testing.T) *Registry {
	t.Helper()
	reg, err := Load(embeddedCook(t), os.DirFS("testdata"))
	require.NoError(t, err)
	return reg
}

func embeddedCook(t *testing.T) fstest.MapFS {
	t.Helper()
	data, err := dataFS.ReadFile("data/cook.yaml")
	require.NoError(t, err)
	return fstest.MapFS{"cook.yaml": {Data: data}}
}

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, Studio, CategoryFor(-3))
	assert.Equal(t, Studio, CategoryFor(0))
	assert.Equal(t, TwoBR, CategoryFor(2))
	assert.Equal(t, FourBR, CategoryFor(4))
	assert.Equal(t, FourBR, CategoryFor(9))
	assert.Equal(t, "studio", Studio.String())
	assert.Equal(t, "3br", ThreeBR.String())
	assert.Equal(t, "2 Bedroom", TwoBR.Label())
}

func TestCookPaymentStandard(t *testing.T) {
	reg := loadDefault(t)

	got, err := reg.PaymentStandard("cook", "60601", 1)
	require.NoError(t, err)
	assert.Equal(t, 1435, got)

	// Counts past 4BR use the 4BR amount.
	four, err := reg.PaymentStandard("cook", "60601", 4)
	require.NoError(t, err)
	seven, err := reg.PaymentStandard("cook", "60601", 7)
	require.NoError(t, err)
	assert.Equal(t, four, seven)

	_, err = reg.PaymentStandard("cook", "00000", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = reg.PaymentStandard("atlantis", "60601", 1)
	assert.ErrorIs(t, err, ErrUnknownRegion)
}

func TestCookCompleteness(t *testing.T) {
	reg := loadDefault(t)
	zips := reg.ZipCodes("cook")
	require.Len(t, zips, 188)
	for _, z := range zips {
		for b := 0; b < NumCategories; b++ {
			amt, err := reg.PaymentStandard("cook", z, b)
			require.NoError(t, err, "zip %s bedrooms %d", z, b)
			assert.Positive(t, amt)
		}
	}
	assert.Empty(t, reg.Issues())
}

func TestCookResolveLocation(t *testing.T) {
	reg := loadDefault(t)

	assert.Equal(t, []string{"60601"}, reg.ResolveLocation("cook", "60601"))
	assert.Equal(t, []string{"60601"}, reg.ResolveLocation("cook", "  60601 "))
	assert.Equal(t, []string{}, reg.ResolveLocation("cook", "00000"))
	assert.Equal(t, []string{"60201", "60202", "60203", "60204"}, reg.ResolveLocation("cook", "Evanston"))
	assert.Equal(t, []string{"60201", "60202", "60203", "60204"}, reg.ResolveLocation("cook", "EVANSTON"))
	assert.Equal(t, []string{}, reg.ResolveLocation("cook", "Evan"))
	assert.Equal(t, []string{}, reg.ResolveLocation("cook", ""))
	assert.Equal(t, []string{}, reg.ResolveLocation("cook", "6060"))
	assert.Equal(t, []string{}, reg.ResolveLocation("atlantis", "60601"))

	// Callers cannot mutate the town index through the result.
	zips := reg.ResolveLocation("cook", "Evanston")
	zips[0] = "xxxxx"
	assert.Equal(t, "60201", reg.ResolveLocation("cook", "Evanston")[0])
}

func TestResolveAll(t *testing.T) {
	reg := loadDefault(t)
	zips, unresolved := reg.ResolveAll("cook", []string{"60202", "Evanston", "Atlantis", "60601", "00000"})
	assert.Equal(t, []string{"60202", "60201", "60203", "60204", "60601"}, zips)
	assert.Equal(t, []string{"Atlantis", "00000"}, unresolved)

	zips, unresolved = reg.ResolveAll("cook", nil)
	assert.NotNil(t, zips)
	assert.NotNil(t, unresolved)
}

func TestCookTownsSorted(t *testing.T) {
	towns := loadDefault(t).Towns("cook")
	require.NotEmpty(t, towns)
	assert.IsIncreasing(t, towns)
	assert.Contains(t, towns, "Oak Park")
	assert.Equal(t, []string{}, loadDefault(t).Towns("atlantis"))
}

func TestDirectRegion(t *testing.T) {
	reg := loadWithFixture(t)

	region, ok := reg.Region("sample-direct")
	require.True(t, ok)
	assert.Equal(t, SchemeDirect, region.Scheme)
	assert.Equal(t, "2026-02-01", region.EffectiveDate.Format(DateLayout))

	got, err := reg.PaymentStandard("sample-direct", "99502", 2)
	require.NoError(t, err)
	assert.Equal(t, 1350, got)

	got, err = reg.PaymentStandard("sample-direct", "99501", 12)
	require.NoError(t, err)
	assert.Equal(t, 1900, got)

	assert.Equal(t, []string{"60601", "99501", "99502"}, reg.ZipCodes("sample-direct"))
	assert.Equal(t, []string{"Alder", "Birch", "Cedar Falls"}, reg.Towns("sample-direct"))
	assert.Equal(t, []string{"99501", "99502"}, reg.ResolveLocation("sample-direct", "alder"))
	assert.Equal(t, []string{}, reg.ResolveLocation("sample-direct", "99503"))

	_, isTiered := region.Tier("99501")
	assert.False(t, isTiered)

	assert.Equal(t, []string{"cook", "sample-direct"}, reg.RegionsForZip("60601"))
	keys := []string{}
	for _, r := range reg.Regions() {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"cook", "sample-direct"}, keys)
}

func TestIssues(t *testing.T) {
	issues := loadWithFixture(t).Issues()

	kinds := map[IssueKind][]string{}
	for _, is := range issues {
		assert.Equal(t, "sample-direct", is.Region)
		kinds[is.Kind] = append(kinds[is.Kind], is.Subject)
	}
	assert.Equal(t, []string{"Cedar Falls"}, kinds[IssueTownZipUnpriced])
	assert.Equal(t, []string{"60601"}, kinds[IssueCrossRegionZip])
	assert.Empty(t, kinds[IssueTierMissing])
}

func TestTierMissingIssue(t *testing.T) {
	fsys := fstest.MapFS{"t.yaml": {Data: []byte(`
key: t
name: T
effective_date: "2026-01-01"
scheme: tiered
tiers:
  "A": [1, 2, 3, 4, 5]
zips:
  "11111": "A"
  "22222": "B"
`)}}
	reg, err := Load(fsys)
	require.NoError(t, err)

	issues := reg.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, IssueTierMissing, issues[0].Kind)
	assert.Equal(t, "22222", issues[0].Subject)

	// The ZIP is still listed but has no standard.
	assert.Equal(t, []string{"22222"}, reg.ResolveLocation("t", "22222"))
	_, err = reg.PaymentStandard("t", "22222", 1)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadRejectsBadData(t *testing.T) {
	header := "key: x\nname: X\neffective_date: \"2026-01-01\"\n"

	cases := []struct {
		name string
		body string
	}{
		{"missing key", "name: X\neffective_date: \"2026-01-01\"\nscheme: tiered\n"},
		{"missing name", "key: x\neffective_date: \"2026-01-01\"\nscheme: tiered\n"},
		{"bad date", "key: x\nname: X\neffective_date: \"Jan 1\"\nscheme: tiered\n"},
		{"unknown scheme", header + "scheme: banded\n"},
		{"short amounts", header + "scheme: tiered\ntiers:\n  \"A\": [1, 2, 3]\n"},
		{"negative amount", header + "scheme: direct\namounts:\n  \"11111\": [1, 2, -3, 4, 5]\n"},
		{"malformed zip", header + "scheme: tiered\ntiers:\n  \"A\": [1, 2, 3, 4, 5]\nzips:\n  \"1234\": \"A\"\n"},
		{"duplicate zip", header + "scheme: tiered\ntiers:\n  \"A\": [1, 2, 3, 4, 5]\nzips:\n  \"11111\": \"A\"\n  \"11111\": \"A\"\n"},
		{"tiered with amounts", header + "scheme: tiered\namounts:\n  \"11111\": [1, 2, 3, 4, 5]\n"},
		{"direct with tiers", header + "scheme: direct\ntiers:\n  \"A\": [1, 2, 3, 4, 5]\n"},
		{"unknown field", header + "scheme: tiered\ncounty: y\n"},
		{"town collision", header + "scheme: tiered\ntowns:\n  Oak Park: [\"11111\"]\n  OAK PARK: [\"11111\"]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(fstest.MapFS{"r.yaml": {Data: []byte(tc.body)}})
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsDuplicateRegion(t *testing.T) {
	body := []byte("key: x\nname: X\neffective_date: \"2026-01-01\"\nscheme: direct\n")
	_, err := Load(fstest.MapFS{"a.yaml": {Data: body}, "b.yaml": {Data: body}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate region key")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STANDARDS_DIR", "testdata")
	reg, err := LoadFromEnv()
	require.NoError(t, err)
	_, ok := reg.Region("sample-direct")
	assert.True(t, ok)

	t.Setenv("STANDARDS_DIR", "")
	reg, err = LoadFromEnv()
	require.NoError(t, err)
	assert.Len(t, reg.Regions(), 1)
}
