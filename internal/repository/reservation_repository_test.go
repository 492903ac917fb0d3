package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListFilterEmpty(t *testing.T) {
	cond, args := buildListFilter(ListQuery{})
	assert.Equal(t, "1=1", cond)
	assert.Empty(t, args)
}

func TestBuildListFilterScopeIDs(t *testing.T) {
	cond, args := buildListFilter(ListQuery{ApartmentID: "apt-1", RoomID: "room-2"})
	assert.Equal(t, "apartment_id = ? AND room_id = ?", cond)
	assert.Equal(t, []any{"apt-1", "room-2"}, args)
}

func TestBuildListFilterKeyword(t *testing.T) {
	cond, args := buildListFilter(ListQuery{Keyword: "Ada"})
	assert.Contains(t, cond, "LOWER(guest_name) LIKE ?")
	assert.Contains(t, cond, "LOWER(COALESCE(guest_email,'')) LIKE ?")
	assert.Contains(t, cond, "LOWER(COALESCE(guest_phone,'')) LIKE ?")
	assert.Contains(t, cond, "LOWER(COALESCE(notes,'')) LIKE ?")
	// Matching is case-insensitive: the argument is lowercased once.
	assert.Equal(t, []any{"%ada%", "%ada%", "%ada%", "%ada%"}, args)
}

func TestBuildListFilterTags(t *testing.T) {
	cond, args := buildListFilter(ListQuery{Tags: []string{"vip", " corporate ", ""}})
	// Any-of semantics: tag conditions join with OR, blanks are dropped.
	assert.Contains(t, cond, "FIND_IN_SET(?, COALESCE(tags,'')) > 0 OR FIND_IN_SET(?, COALESCE(tags,'')) > 0")
	assert.Equal(t, []any{"vip", "corporate"}, args)
}

func TestBuildListFilterCombined(t *testing.T) {
	cond, args := buildListFilter(ListQuery{
		ApartmentID: "apt-1",
		Keyword:     "obi",
		Tags:        []string{"vip"},
	})
	assert.Contains(t, cond, "apartment_id = ?")
	assert.Contains(t, cond, " AND ")
	assert.Len(t, args, 6)
}

func TestEncodeTags(t *testing.T) {
	assert.Equal(t, "", encodeTags(nil))
	assert.Equal(t, "vip,corporate", encodeTags([]string{"vip", "corporate"}))
	// Commas inside a tag would corrupt the stored list, so they are
	// replaced before joining.
	assert.Equal(t, "a b,c", encodeTags([]string{" a,b ", "c", "  "}))
}

func TestDecodeTags(t *testing.T) {
	assert.Nil(t, decodeTags(""))
	assert.Equal(t, []string{"vip", "corporate"}, decodeTags("vip, corporate"))
	assert.Equal(t, []string{"solo"}, decodeTags("solo,,"))
}
