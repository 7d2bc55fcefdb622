package ui_test

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/linemk/grouparena/internal/catalog"
	"github.com/linemk/grouparena/internal/domain/models"
	"github.com/linemk/grouparena/internal/ui"
	"github.com/stretchr/testify/assert"
)

// fakeProvider - фиктивный поставщик каталога
type fakeProvider struct {
	cat    *catalog.Catalog
	failed bool
}

func (f *fakeProvider) Catalog() *catalog.Catalog { return f.cat }
func (f *fakeProvider) Failed() bool              { return f.failed }

func newController() *ui.Controller {
	doc := &models.Document{Categories: []models.Category{
		{Name: "Party", Games: []models.RawGame{
			{Name: "Charades", Description: "Act it out", Players: "4+"},
			{Name: "Truth or Dare", Description: "Classic"},
		}},
		{Name: "Word", Games: []models.RawGame{
			{Name: "Word Chain", Description: "Last letter starts the next word"},
		}},
	}}
	p := &fakeProvider{cat: catalog.New(doc, catalog.MinSize)}
	return ui.NewController(p, rand.New(rand.NewSource(1)))
}

func TestDispatch_Filter(t *testing.T) {
	c := newController()

	res, err := c.Dispatch(ui.State{Query: "charades"}, ui.Action{Kind: ui.ActionFilter, Category: "word"})
	assert.NoError(t, err)
	assert.True(t, res.ListDirty)
	assert.Equal(t, ui.CategoryFilter("word"), res.State.ActiveFilter)
	assert.Empty(t, res.State.Query)
	assert.NotEmpty(t, res.Games)
	for _, g := range res.Games {
		assert.Equal(t, "Word", g.Category)
	}

	res, err = c.Dispatch(res.State, ui.Action{Kind: ui.ActionAll})
	assert.NoError(t, err)
	assert.Nil(t, res.State.ActiveFilter)
	assert.Len(t, res.Games, catalog.MinSize)
}

func TestDispatch_FilterCategoryNamedAll(t *testing.T) {
	doc := &models.Document{Categories: []models.Category{
		{Name: "Party", Games: []models.RawGame{{Name: "Charades"}}},
		{Name: "party", Games: []models.RawGame{{Name: "Mafia"}}},
		{Name: "All", Games: []models.RawGame{{Name: "Everything Goes"}}},
	}}
	c := ui.NewController(&fakeProvider{cat: catalog.New(doc, 0)}, nil)

	res, err := c.Dispatch(ui.State{}, ui.Action{Kind: ui.ActionFilter, Category: "All"})
	assert.NoError(t, err)
	assert.Equal(t, ui.CategoryFilter("All"), res.State.ActiveFilter)
	if assert.Len(t, res.Games, 1) {
		assert.Equal(t, "Everything Goes", res.Games[0].Name)
	}

	// записи выбираются без учёта регистра
	res, err = c.Dispatch(res.State, ui.Action{Kind: ui.ActionFilter, Category: "party"})
	assert.NoError(t, err)
	assert.Len(t, res.Games, 2)

	res, err = c.Dispatch(res.State, ui.Action{Kind: ui.ActionAll})
	assert.NoError(t, err)
	assert.Nil(t, res.State.ActiveFilter)
	assert.Len(t, res.Games, 3)
}

func TestDispatch_Search(t *testing.T) {
	c := newController()
	state := ui.State{ActiveFilter: ui.CategoryFilter("Word")}

	res, err := c.Dispatch(state, ui.Action{Kind: ui.ActionSearch, Query: "  CHARADES (variant 3) "})
	assert.NoError(t, err)
	assert.Equal(t, ui.CategoryFilter("Word"), res.State.ActiveFilter, "search keeps the active filter")
	if assert.Len(t, res.Games, 1) {
		assert.Equal(t, "Charades (Variant 3)", res.Games[0].Name)
	}

	res, err = c.Dispatch(res.State, ui.Action{Kind: ui.ActionSearch, Query: "zzz-nothing"})
	assert.NoError(t, err)
	assert.Empty(t, res.Games)

	// пустой запрос возвращает вид активной категории
	res, err = c.Dispatch(res.State, ui.Action{Kind: ui.ActionSearch, Query: "   "})
	assert.NoError(t, err)
	assert.NotEmpty(t, res.Games)
	for _, g := range res.Games {
		assert.Equal(t, "Word", g.Category)
	}
}

func TestDispatch_Shuffle(t *testing.T) {
	c := newController()
	state := ui.State{ActiveFilter: ui.CategoryFilter("party"), Query: ""}

	res, err := c.Dispatch(state, ui.Action{Kind: ui.ActionShuffle})
	assert.NoError(t, err)
	assert.False(t, res.ListDirty, "shuffle does not re-render the list")
	assert.Equal(t, ui.CategoryFilter("party"), res.State.ActiveFilter)
	if assert.NotNil(t, res.Overlay) && assert.NotNil(t, res.State.Overlay) {
		assert.Equal(t, res.Overlay.ID, *res.State.Overlay)
	}
}

func TestDispatch_Copy(t *testing.T) {
	c := newController()

	res, err := c.Dispatch(ui.State{}, ui.Action{Kind: ui.ActionCopy, GameID: 0})
	assert.NoError(t, err)
	if assert.NotNil(t, res.Clipboard) {
		assert.Equal(t, "Charades\nCategory: Party\nPlayers: 4+\n\nDescription:\nAct it out\n\nRules:\nRules for Charades.", res.Clipboard.Text)
		assert.Equal(t, ui.CopyConfirmation, res.Clipboard.Confirmation)
		assert.Equal(t, int64(1400), res.Clipboard.ResetAfterMs)
		assert.Equal(t, ui.CardCopyFailure, res.Clipboard.FailureMessage)
	}
	assert.Nil(t, res.Overlay)

	res, err = c.Dispatch(ui.State{}, ui.Action{Kind: ui.ActionCopy, GameID: 0, FromModal: true})
	assert.NoError(t, err)
	assert.Equal(t, ui.ModalCopyFailure, res.Clipboard.FailureMessage)
}

func TestDispatch_DetailsReplacesOverlay(t *testing.T) {
	c := newController()
	state := ui.State{}

	for _, id := range []int{0, 5, 219} {
		res, err := c.Dispatch(state, ui.Action{Kind: ui.ActionDetails, GameID: id})
		assert.NoError(t, err)
		assert.Equal(t, id, res.Overlay.ID)
		assert.Equal(t, id, *res.State.Overlay)
		state = res.State
	}

	res, err := c.Dispatch(state, ui.Action{Kind: ui.ActionClose})
	assert.NoError(t, err)
	assert.Nil(t, res.Overlay)
	assert.Nil(t, res.State.Overlay)
}

func TestDispatch_Details_FullDescription(t *testing.T) {
	long := strings.Repeat("x", 200)
	doc := &models.Document{Categories: []models.Category{
		{Name: "Long", Games: []models.RawGame{{Name: "Long One", Description: long}}},
	}}
	c := ui.NewController(&fakeProvider{cat: catalog.New(doc, 1)}, nil)

	res, err := c.Dispatch(ui.State{}, ui.Action{Kind: ui.ActionDetails, GameID: 0})
	assert.NoError(t, err)
	assert.Equal(t, long, res.Overlay.Description)
}

func TestDispatch_Errors(t *testing.T) {
	c := newController()

	_, err := c.Dispatch(ui.State{}, ui.Action{Kind: "dance"})
	assert.True(t, errors.Is(err, ui.ErrUnknownAction))

	_, err = c.Dispatch(ui.State{}, ui.Action{Kind: ui.ActionDetails, GameID: 10000})
	assert.True(t, errors.Is(err, ui.ErrGameNotFound))
}

func TestDispatch_FailedCatalogIsNoop(t *testing.T) {
	c := ui.NewController(&fakeProvider{cat: catalog.Empty(), failed: true}, nil)

	for _, a := range []ui.Action{
		{Kind: ui.ActionShuffle},
		{Kind: ui.ActionCopy, GameID: 3},
		{Kind: ui.ActionDetails, GameID: 3},
		{Kind: ui.ActionFilter, Category: "Party"},
		{Kind: ui.ActionSearch, Query: "x"},
	} {
		res, err := c.Dispatch(ui.State{}, a)
		assert.NoError(t, err, "action %s", a.Kind)
		assert.True(t, res.Failed)
		assert.Nil(t, res.Overlay)
		assert.Nil(t, res.Clipboard)
		assert.Empty(t, res.Games)
	}
}

func TestView_DropsUnknownOverlay(t *testing.T) {
	c := newController()
	bad := 9999
	res := c.View(ui.State{Overlay: &bad})
	assert.Nil(t, res.Overlay)
	assert.Nil(t, res.State.Overlay)
	assert.Len(t, res.Games, catalog.MinSize)
}
