package querystate_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders-admin/internal/querystate"
)

func TestDecode_Defaults(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{name: "empty", query: ""},
		{name: "question mark only", query: "?"},
		{name: "garbage page", query: "page=abc"},
		{name: "zero page", query: "page=0"},
		{name: "negative page", query: "page=-3"},
		{name: "broken escape", query: "customer=%zz"},
		{name: "empty filters", query: "customer=&status=&country="},
		{name: "blank filters", query: "customer=+++&status=%20"},
		{name: "edit without id", query: "dialog=edit"},
		{name: "edit with bad id", query: "dialog=edit&id=x"},
		{name: "unknown dialog", query: "dialog=wizard"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := querystate.Decode(tc.query)
			assert.Equal(t, querystate.State{Page: 1}, s)
			assert.Equal(t, "", querystate.Encode(s))
		})
	}
}

func TestDecode_Values(t *testing.T) {
	s := querystate.Decode("?customer=Asha&status=Order+Placed&country=India&page=3&dialog=edit&id=42")

	assert.Equal(t, querystate.State{
		Customer: "Asha",
		Status:   "Order Placed",
		Country:  "India",
		Page:     3,
		Dialog:   querystate.DialogEdit,
		EditID:   42,
	}, s)
}

func TestEncode_Canonical(t *testing.T) {
	// Семантически равные состояния кодируются одинаково.
	assert.Equal(t, querystate.Encode(querystate.State{}), querystate.Encode(querystate.State{Status: ""}))
	assert.Equal(t, querystate.Encode(querystate.State{Page: 1}), querystate.Encode(querystate.State{Page: 0}))
	assert.Equal(t, "", querystate.Encode(querystate.State{Customer: "  ", Page: 1}))

	got := querystate.Encode(querystate.State{Country: "India", Customer: "Asha", Page: 2})
	assert.Equal(t, "country=India&customer=Asha&page=2", got)

	got = querystate.Encode(querystate.State{Dialog: querystate.DialogCreate, EditID: 9})
	assert.Equal(t, "dialog=create", got)

	got = querystate.Encode(querystate.State{Status: "Order Shipped", Dialog: querystate.DialogEdit, EditID: 5})
	assert.Equal(t, "dialog=edit&id=5&status=Order+Shipped", got)
}

func TestRoundTrip_CanonicalStates(t *testing.T) {
	states := []querystate.State{
		{Page: 1},
		{Customer: "Asha", Page: 1},
		{Customer: "a&b=c", Status: "Delivered", Country: "United Kingdom", Page: 7},
		{Status: "Order Placed", Page: 2, Dialog: querystate.DialogCreate},
		{Country: "Germany", Page: 1, Dialog: querystate.DialogEdit, EditID: 12},
	}

	for _, s := range states {
		require.Equal(t, s, querystate.Decode(querystate.Encode(s)), "state %+v", s)
	}
}

func TestCanonicalizationIdempotence(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	keys := []string{"customer", "status", "country", "page", "dialog", "id", "junk"}
	vals := []string{"", " ", "Asha", "Order+Placed", "0", "-1", "3", "edit", "create", "%zz", "x%20y"}

	for i := 0; i < 500; i++ {
		var parts []string
		for j := 0; j < rnd.Intn(6); j++ {
			parts = append(parts, keys[rnd.Intn(len(keys))]+"="+vals[rnd.Intn(len(vals))])
		}
		q := strings.Join(parts, "&")

		once := querystate.Encode(querystate.Decode(q))
		twice := querystate.Encode(querystate.Decode(once))
		require.Equal(t, once, twice, "query %q", q)
	}
}

func TestFetchKey_IgnoresPageAndDialog(t *testing.T) {
	a := querystate.State{Status: "Delivered", Page: 1}
	b := querystate.State{Status: "Delivered", Page: 4, Dialog: querystate.DialogEdit, EditID: 3}

	assert.Equal(t, a.FetchKey(), b.FetchKey())
	assert.NotEqual(t, a.FetchKey(), a.WithStatus("Order Placed").FetchKey())
}

func TestWithFilters_ResetsPage(t *testing.T) {
	s := querystate.State{Customer: "old", Page: 5, Dialog: querystate.DialogCreate}

	next := s.WithFilters("new", "Delivered", "")
	assert.Equal(t, 1, next.Page)
	assert.Equal(t, "new", next.Customer)
	assert.Equal(t, querystate.DialogCreate, next.Dialog)
	// Исходное значение не изменилось.
	assert.Equal(t, 5, s.Page)

	assert.Equal(t, 1, s.WithStatus("Delivered").Page)
	assert.Equal(t, "old", s.WithStatus("Delivered").Customer)
	assert.Equal(t, 1, s.WithoutFilters().Page)
	assert.False(t, s.WithoutFilters().HasFilters())
}

func TestDialogTransitions(t *testing.T) {
	s := querystate.State{Customer: "Asha", Page: 2}

	edit := s.WithEditDialog(8)
	assert.Equal(t, "customer=Asha&dialog=edit&id=8&page=2", querystate.Encode(edit))

	closed := edit.WithoutDialog()
	assert.Equal(t, "customer=Asha&page=2", querystate.Encode(closed))

	assert.Equal(t, querystate.DialogNone, s.WithEditDialog(0).Dialog)
}
