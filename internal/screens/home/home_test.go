package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dojocards/internal/deck"
	"github.com/abhisek/dojocards/internal/history"
	"github.com/abhisek/dojocards/internal/router"
	"github.com/abhisek/dojocards/internal/screens/cardstats"
	"github.com/abhisek/dojocards/internal/screens/drill"
	"github.com/abhisek/dojocards/internal/store/storetest"
)

type fakeProgress map[string]float64

func (f fakeProgress) Percent(_ context.Context, beltID string, category deck.Category) float64 {
	return f[beltID+"/"+string(category)]
}

func testDeps(catalog *deck.Catalog, prog fakeProgress) Deps {
	return Deps{
		Catalog:  catalog,
		Progress: prog,
		Stats:    history.NewStore(storetest.NewMemoryKV(nil)),
	}
}

func TestHomeScreen_Menu(t *testing.T) {
	h := New(testDeps(deck.DefaultCatalog(), fakeProgress{"gokyu/recite": 0.25}), "gokyu")

	require.Len(t, h.menu.Items, 5)
	assert.Equal(t, "All", h.menu.Items[0].Label)
	assert.Equal(t, "Recite", h.menu.Items[1].Label)
	assert.Equal(t, "25%", h.menu.Items[1].Detail)
	assert.Empty(t, h.menu.Items[2].Detail)
	assert.Equal(t, "Gokyu", h.HeaderBelt().Name)
	assert.Contains(t, h.View(100, 30), "Gokyu belt (Yellow)")
}

func TestHomeScreen_UnknownBeltFallsBack(t *testing.T) {
	h := New(testDeps(deck.DefaultCatalog(), fakeProgress{}), "shodan")
	assert.Equal(t, "Gokyu", h.HeaderBelt().Name)
}

func TestHomeScreen_EnterOpensDrill(t *testing.T) {
	h := New(testDeps(deck.DefaultCatalog(), fakeProgress{}), "gokyu")

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Nil(t, cmd)
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	d, ok := push.Screen.(*drill.DrillScreen)
	require.True(t, ok)
	assert.Equal(t, "Recite", d.Title())
}

func TestHomeScreen_CardStats(t *testing.T) {
	h := New(testDeps(deck.DefaultCatalog(), fakeProgress{}), "gokyu")
	h.menu.Selected = 3

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*cardstats.CardStatsScreen)
	assert.True(t, ok)
}

func TestHomeScreen_ResumeRefreshesProgress(t *testing.T) {
	prog := fakeProgress{}
	h := New(testDeps(deck.DefaultCatalog(), prog), "gokyu")
	h.menu.Selected = 2
	assert.Empty(t, h.menu.Items[0].Detail)

	prog["gokyu/all"] = 0.5
	h.Resume()

	assert.Equal(t, "50%", h.menu.Items[0].Detail)
	assert.Equal(t, 2, h.menu.Selected, "selection survives refresh")
}

func TestHomeScreen_SwitchBelt(t *testing.T) {
	catalog := deck.DefaultCatalog()
	require.NoError(t, catalog.Enable("nikyu"))
	h := New(testDeps(catalog, fakeProgress{"nikyu/all": 0.1}), "gokyu")

	h.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, "Nikyu", h.HeaderBelt().Name)
	assert.Equal(t, "10%", h.menu.Items[0].Detail)

	h.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, "Gokyu", h.HeaderBelt().Name)

	h.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.Equal(t, "Nikyu", h.HeaderBelt().Name)
}

func TestHomeScreen_NoEnabledBelts(t *testing.T) {
	h := New(testDeps(&deck.Catalog{}, fakeProgress{}), "gokyu")

	assert.True(t, h.menu.Items[0].Disabled)
	assert.Equal(t, 3, h.menu.Selected, "first enabled item is Card Stats")
	assert.Contains(t, h.View(100, 30), "No belts have decks yet.")
	assert.Empty(t, h.HeaderBelt().Name)
}
