package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnose_RecordsAllCandidates(t *testing.T) {
	res := Categorize(table(
		"jiyan_blade_icon", "1",
		"verina_icon", "2",
		"chixia_sword_card", "3",
	), NameSet{
		Characters: []string{"Jiyan", "Verina", "Chixia"},
		Weapons:    []string{"Jiyan Blade", "Blade"},
	}, Options{Diagnose: true})

	require.Len(t, res.Ambiguities, 2)

	a := res.Ambiguities[0]
	assert.Equal(t, "jiyan_blade_icon", a.Key)
	assert.Equal(t, Placement{Characters, "Jiyan"}, a.Chosen)
	assert.Equal(t, []Placement{
		{Weapons, "Jiyan Blade"},
		{Weapons, "Blade"},
	}, a.Alternatives)

	b := res.Ambiguities[1]
	assert.Equal(t, "chixia_sword_card", b.Key)
	assert.Equal(t, Placement{Characters, "Chixia"}, b.Chosen)
	assert.Equal(t, []Placement{{Weapons, "sword"}}, b.Alternatives)
}

func TestDiagnose_DoesNotChangePlacement(t *testing.T) {
	tbl := table("jiyan_blade_icon", "1", "blade_icon", "2", "misc", "3")
	names := NameSet{Characters: []string{"Jiyan"}, Weapons: []string{"Blade"}}

	plain := Categorize(tbl, names, Options{})
	diag := Categorize(tbl, names, Options{Diagnose: true})
	for k := range tbl.All() {
		a, _ := plain.Placement(k)
		b, _ := diag.Placement(k)
		assert.Equal(t, a, b, k)
	}
	assert.Empty(t, plain.Ambiguities)
}

func TestScanner_FirstCandidateMatchesPlacement(t *testing.T) {
	names := NameSet{
		Characters: []string{"Lin", "Yinlin", "Jinhsi"},
		Echoes:     []string{"Inferno Rider"},
		Weapons:    []string{"Ages of Harvest"},
	}
	log := Options{}.logger()
	order := []categoryCandidates{
		{Characters, buildCandidates(Characters, names.Characters, log)},
		{Echoes, buildCandidates(Echoes, names.Echoes, log)},
		{Weapons, buildCandidates(Weapons, names.Weapons, log)},
		{Weapons, weaponTypeCandidates()},
	}
	sc := newScanner(order)
	for _, key := range []string{"yinlin_icon", "inferno_rider_icon", "jinhsi_ages_of_harvest", "gauntlets_01", "nothing"} {
		got := sc.candidates(key)
		want := place(key, order)
		if want.Category == Other {
			assert.Empty(t, got, key)
			continue
		}
		require.NotEmpty(t, got, key)
		assert.Equal(t, want, got[0], key)
	}
}

func TestScanner_NoCandidates(t *testing.T) {
	sc := newScanner(nil)
	assert.Nil(t, sc.candidates("anything"))
	_, ok := sc.ambiguity("anything", Placement{Other, "anything"})
	assert.False(t, ok)
}
