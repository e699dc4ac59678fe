package resolver

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/kamusis/wuwa-assets/internal/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(pairs ...string) *assets.Table {
	entries := make([]assets.Entry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, assets.Entry{Key: pairs[i], URL: pairs[i+1]})
	}
	return assets.NewTable(entries)
}

func TestResolver_JiyanExample(t *testing.T) {
	r := New(table("jiyan_icon", "U1", "jiyan_splash_art", "U2"), nil)

	u, ok := r.Icon("jiyan")
	assert.True(t, ok)
	assert.Equal(t, "U1", u)

	u, ok = r.Portrait("jiyan")
	assert.True(t, ok)
	assert.Equal(t, "U2", u)

	_, ok = r.Fuzzy("unknown")
	assert.False(t, ok)
}

func TestIcon_ExactKeyWins(t *testing.T) {
	r := New(table(
		"jiyan_icon_old", "OLD",
		"jiyan_banner", "B",
		"jiyan_icon", "EXACT",
	), nil)
	u, ok := r.Icon("Jiyan")
	require.True(t, ok)
	assert.Equal(t, "EXACT", u)
}

func TestIcon_SearchPrefersIconThenAny(t *testing.T) {
	r := New(table(
		"changli_banner", "B",
		"changli_mini_icon", "I",
	), nil)
	res, ok := r.Resolve(KindIcon, "changli")
	require.True(t, ok)
	assert.Equal(t, "I", res.URL)
	assert.Equal(t, RuleSearch, res.Rule)

	r = New(table("changli_banner", "B", "changli_wallpaper", "W"), nil)
	res, ok = r.Resolve(KindIcon, "changli")
	require.True(t, ok)
	assert.Equal(t, "B", res.URL)
	assert.Equal(t, RuleSearchAny, res.Rule)
}

func TestIcon_SubstringIsNotTokenAware(t *testing.T) {
	r := New(table("yinlin_icon", "Y"), nil)
	u, ok := r.Icon("lin")
	require.True(t, ok)
	assert.Equal(t, "Y", u)
}

func TestPortrait_Chain(t *testing.T) {
	r := New(table("encore_splash", "S", "encore_icon", "I"), nil)
	u, _ := r.Portrait("encore")
	assert.Equal(t, "S", u)

	r = New(table("encore_icon", "I", "encore_full_splash_v2", "S2"), nil)
	u, _ = r.Portrait("encore")
	assert.Equal(t, "S2", u)

	r = New(table("encore_icon", "I"), nil)
	u, _ = r.Portrait("encore")
	assert.Equal(t, "I", u)

	r = New(table("encore_splash", "S", "encore_splash_art", "SA"), nil)
	u, _ = r.Portrait("encore")
	assert.Equal(t, "SA", u)
}

func TestCard_FallsBackToIcon(t *testing.T) {
	r := New(table("verina_icon", "I", "verina_splash_art", "S"), nil)
	card, ok := r.Card("verina")
	require.True(t, ok)
	icon, _ := r.Icon("verina")
	assert.Equal(t, icon, card)

	res, _ := r.Resolve(KindCard, "verina")
	assert.Equal(t, RuleIconFallback, res.Rule)
}

func TestCard_ExactThenSearch(t *testing.T) {
	r := New(table("calcharo_icon", "I", "calcharo_card_alt", "CA", "calcharo_card", "C"), nil)
	u, _ := r.Card("calcharo")
	assert.Equal(t, "C", u)

	r = New(table("calcharo_icon", "I", "calcharo_card_alt", "CA"), nil)
	u, _ = r.Card("calcharo")
	assert.Equal(t, "CA", u)
}

func TestCard_Overrides(t *testing.T) {
	tbl := table(
		"rover_aero_card", "RC",
		"item_rover_s_waveband__aero_", "WAVE",
		"rover_spectro_icon", "SI",
	)
	r := New(tbl, DefaultCardOverrides())

	u, ok := r.Card("rover-aero")
	require.True(t, ok)
	assert.Equal(t, "WAVE", u)

	// Override key absent from the table: fall through to the normal chain.
	u, ok = r.Card("Rover Spectro")
	require.True(t, ok)
	assert.Equal(t, "SI", u)

	// Overrides never affect the icon chain.
	u, _ = r.Icon("rover_aero")
	assert.NotEqual(t, "WAVE", u)
}

func TestFuzzy_Chain(t *testing.T) {
	r := New(table(
		"emerald_of_genesis_weapon", "W",
		"emerald_of_genesis", "EXACT",
	), nil)
	u, _ := r.Fuzzy("Emerald of Genesis")
	assert.Equal(t, "EXACT", u)

	r = New(table(
		"weapon_emerald_of_genesis_icon_2", "I2",
		"emerald_of_genesis_icon", "I",
	), nil)
	u, _ = r.Fuzzy("Emerald of Genesis")
	assert.Equal(t, "I", u)

	r = New(table(
		"emerald_of_genesis_art", "A",
		"weapon_emerald_of_genesis_icon_2", "I2",
	), nil)
	u, _ = r.Fuzzy("Emerald of Genesis")
	assert.Equal(t, "I2", u)

	r = New(table("emerald_of_genesis_art", "A"), nil)
	u, _ = r.Fuzzy("Emerald of Genesis")
	assert.Equal(t, "A", u)
}

func TestResolve_BlankAndUnknown(t *testing.T) {
	r := New(table("a_icon", "I", "b_c", "X"), nil)
	for _, id := range []string{"", " ", "--", "()"} {
		_, ok := r.Resolve(KindIcon, id)
		assert.False(t, ok, "id %q", id)
	}
	_, ok := r.Resolve(Kind("banner"), "a")
	assert.False(t, ok)
}

func TestResolve_Deterministic(t *testing.T) {
	r := New(table("jiyan_icon", "U1", "jiyan_card_x", "C", "mortefi_banner", "M"), DefaultCardOverrides())
	for _, k := range Kinds {
		for _, id := range []string{"jiyan", "mortefi", "nobody", "rover_aero"} {
			a, okA := r.Resolve(k, id)
			b, okB := r.Resolve(k, id)
			assert.Equal(t, okA, okB)
			assert.Equal(t, a, b)
		}
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("card")
	require.NoError(t, err)
	assert.Equal(t, KindCard, k)

	_, err = ParseKind("banner")
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestNormalizeOverrides(t *testing.T) {
	got := NormalizeOverrides([]Override{
		{ID: "Rover (Havoc)", Key: "item_rover_s_waveband__havoc_"},
		{ID: "  ", Key: "x"},
		{ID: "y", Key: ""},
	})
	assert.Equal(t, []Override{{ID: "rover_havoc_", Key: "item_rover_s_waveband__havoc_"}}, got)
}
