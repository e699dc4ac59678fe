package categorize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatten lists (category, name, key, url) in document order.
func flatten(r *Result) [][4]string {
	var out [][4]string
	for _, c := range Categories {
		if c == Other {
			for k, u := range r.Other.All() {
				out = append(out, [4]string{string(c), k, k, u})
			}
			continue
		}
		b := r.Bucket(c)
		for _, name := range b.Names() {
			g, _ := b.Group(name)
			for k, u := range g.All() {
				out = append(out, [4]string{string(c), name, k, u})
			}
		}
	}
	return out
}

func TestReadFile_WrittenDocumentReadsBack(t *testing.T) {
	want := sampleResult()
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(want, f)
			require.NoError(t, err)
			p := filepath.Join(t.TempDir(), "categorized."+string(f))
			require.NoError(t, WriteFile(p, data))

			got, err := ReadFile(p)
			require.NoError(t, err)
			assert.Equal(t, flatten(want), flatten(got))
			assert.Equal(t, want.Total(), got.Total())

			pl, ok := got.Placement("broadblade_icon")
			require.True(t, ok)
			assert.Equal(t, Placement{Category: Weapons, Name: "broadblade"}, pl)
		})
	}
}

func TestDecode_MissingBucketsAreEmpty(t *testing.T) {
	res, err := Decode([]byte(`{"other":{"a":"A"}}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Characters.Len())
	assert.Equal(t, 1, res.Other.Len())

	res, err = Decode(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total())
}

func TestDecode_Malformed(t *testing.T) {
	cases := []struct {
		name string
		f    Format
		doc  string
	}{
		{"invalid json", FormatJSON, `{"characters":`},
		{"json array root", FormatJSON, `[]`},
		{"json bucket not object", FormatJSON, `{"characters":[]}`},
		{"json group not object", FormatJSON, `{"weapons":{"sword":"x"}}`},
		{"json url not string", FormatJSON, `{"characters":{"Jiyan":{"jiyan_icon":1}}}`},
		{"yaml list root", FormatYAML, "- a\n"},
		{"yaml other not mapping", FormatYAML, "other: [a]\n"},
		{"yaml url not string", FormatYAML, "echoes:\n  Fallacy:\n    fallacy_icon: 3\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc), tc.f)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBadDocument), "got %v", err)
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "none.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.NotEmpty(t, errors.FlattenHints(err))
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("echoes")
	require.NoError(t, err)
	assert.Equal(t, Echoes, c)

	_, err = ParseCategory("sonatas")
	require.Error(t, err)
}
