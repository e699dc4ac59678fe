package resolver

import "github.com/kamusis/wuwa-assets/internal/assets"

// Override borrows the art stored under Key for the entity whose normalized
// id equals ID. It only applies when Key exists in the table.
type Override struct {
	ID  string `yaml:"id" json:"id"`
	Key string `yaml:"key" json:"key"`
}

// DefaultCardOverrides are the alternate-element Rover variants, whose card
// art is the matching Waveband item.
func DefaultCardOverrides() []Override {
	return []Override{
		{ID: "rover_aero", Key: "item_rover_s_waveband__aero_"},
		{ID: "rover_spectro", Key: "item_rover_s_waveband__spectro_"},
	}
}

// NormalizeOverrides canonicalizes the ids of user-supplied overrides and
// drops entries with a blank id or key. Keys are table keys and stay verbatim.
func NormalizeOverrides(in []Override) []Override {
	out := make([]Override, 0, len(in))
	for _, o := range in {
		id := assets.NormalizeKey(o.ID)
		if assets.IsBlankKey(id) || o.Key == "" {
			continue
		}
		out = append(out, Override{ID: id, Key: o.Key})
	}
	return out
}
