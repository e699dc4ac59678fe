package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return NewTable([]Entry{
		{Key: "yinlin_icon", URL: "U1"},
		{Key: "lingyang_splash_art", URL: "U2"},
		{Key: "jiyan_icon", URL: "U3"},
		{Key: "lingyang_icon", URL: "U4"},
	})
}

func TestTable_LookupAndOrder(t *testing.T) {
	tbl := sampleTable()
	require.Equal(t, 4, tbl.Len())

	u, ok := tbl.Lookup("jiyan_icon")
	assert.True(t, ok)
	assert.Equal(t, "U3", u)

	_, ok = tbl.Lookup("jiyan")
	assert.False(t, ok)

	assert.Equal(t, []string{"yinlin_icon", "lingyang_splash_art", "jiyan_icon", "lingyang_icon"}, tbl.Keys())
}

func TestTable_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	tbl := NewTable([]Entry{
		{Key: "a", URL: "1"},
		{Key: "b", URL: "2"},
		{Key: "a", URL: "3"},
	})
	assert.Equal(t, []string{"a", "b"}, tbl.Keys())
	u, _ := tbl.Lookup("a")
	assert.Equal(t, "3", u)
}

func TestTable_NilIsEmpty(t *testing.T) {
	var tbl *Table
	assert.Equal(t, 0, tbl.Len())
	_, ok := tbl.Lookup("x")
	assert.False(t, ok)
	assert.Empty(t, tbl.Search(""))
}

func TestSearch_SubstringInTableOrder(t *testing.T) {
	got := sampleTable().Search("lin")
	assert.Equal(t, []Match{
		{Key: "yinlin_icon", URL: "U1"},
		{Key: "lingyang_splash_art", URL: "U2"},
		{Key: "lingyang_icon", URL: "U4"},
	}, got)
}

func TestSearch_EmptyQueryMatchesAll(t *testing.T) {
	assert.Len(t, sampleTable().Search(""), 4)
}

func TestSearch_NoMatch(t *testing.T) {
	assert.Empty(t, sampleTable().Search("camellya"))
}

func TestFirst(t *testing.T) {
	m, ok := First(sampleTable().Search("lingyang"), "icon")
	require.True(t, ok)
	assert.Equal(t, "lingyang_icon", m.Key)

	_, ok = First(nil, "icon")
	assert.False(t, ok)
}
