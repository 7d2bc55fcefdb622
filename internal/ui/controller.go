package ui

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/linemk/grouparena/internal/catalog"
	"github.com/linemk/grouparena/internal/domain/models"
)

// ActionKind - тег действия пользователя
type ActionKind string

const (
	ActionAll     ActionKind = "all"
	ActionFilter  ActionKind = "filter"
	ActionSearch  ActionKind = "search"
	ActionShuffle ActionKind = "shuffle"
	ActionCopy    ActionKind = "copy"
	ActionDetails ActionKind = "details"
	ActionClose   ActionKind = "close"
)

const (
	CopyConfirmation = "✅ Copied"
	CopyResetDelay   = 1400 * time.Millisecond

	CardCopyFailure  = "Could not copy. Please try manual copy."
	ModalCopyFailure = "Could not copy to clipboard."
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrGameNotFound  = errors.New("game not found")
)

// CatalogProvider отдаёт загруженный каталог
type CatalogProvider interface {
	Catalog() *catalog.Catalog
	Failed() bool
}

// Action - действие пользователя
type Action struct {
	Kind      ActionKind `json:"kind" validate:"required,oneof=all filter search shuffle copy details close"`
	Category  string     `json:"category,omitempty" validate:"max=128"`
	Query     string     `json:"query,omitempty" validate:"max=256"`
	GameID    int        `json:"gameId" validate:"gte=0"`
	FromModal bool       `json:"fromModal,omitempty"`
}

// State - состояние интерфейса: активный фильтр, строка поиска и открытое окно.
// ActiveFilter == nil - выбрана кнопка All, иначе ключ категории как в документе.
type State struct {
	ActiveFilter *string `json:"activeFilter,omitempty" validate:"omitempty,max=128"`
	Query        string `json:"query" validate:"max=256"`
	Overlay      *int   `json:"overlay,omitempty"`
}

// Clipboard - данные для записи в буфер обмена на стороне клиента
type Clipboard struct {
	Text           string `json:"text"`
	Confirmation   string `json:"confirmation"`
	ResetAfterMs   int64  `json:"resetAfterMs"`
	FailureMessage string `json:"failureMessage"`
}

// Result - итог обработки действия
type Result struct {
	State      State
	Games      []models.Game // список, соответствующий состоянию
	ListDirty  bool          // список нужно перерисовать
	Overlay    *models.Game  // не больше одного окна
	Clipboard  *Clipboard
	Failed     bool // каталог не загрузился
	Categories []string
}

type handlerFunc func(c *catalog.Catalog, state State, action Action) (State, *Result, error)

// Controller обрабатывает действия через таблицу обработчиков
type Controller struct {
	provider CatalogProvider
	handlers map[ActionKind]handlerFunc

	mu  sync.Mutex
	rng *rand.Rand
}

func NewController(provider CatalogProvider, rng *rand.Rand) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c := &Controller{
		provider: provider,
		rng:      rng,
	}
	c.handlers = map[ActionKind]handlerFunc{
		ActionAll:     c.showAll,
		ActionFilter:  c.filter,
		ActionSearch:  c.search,
		ActionShuffle: c.shuffle,
		ActionCopy:    c.copyGame,
		ActionDetails: c.details,
		ActionClose:   c.close,
	}
	return c
}

// Dispatch применяет действие к состоянию
func (c *Controller) Dispatch(state State, action Action) (*Result, error) {
	h, ok := c.handlers[action.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action.Kind)
	}

	cat := c.provider.Catalog()
	next, res, err := h(cat, state, action)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = &Result{}
	}
	c.complete(cat, next, res)
	return res, nil
}

// View возвращает результат для состояния без действия (первая отрисовка страницы)
func (c *Controller) View(state State) *Result {
	res := &Result{ListDirty: true}
	c.complete(c.provider.Catalog(), state, res)
	return res
}

func (c *Controller) complete(cat *catalog.Catalog, state State, res *Result) {
	res.State = state
	res.Games = cat.View(state.ActiveFilter, state.Query)
	res.Categories = cat.Categories()
	res.Failed = c.provider.Failed()
	if state.Overlay != nil && res.Overlay == nil {
		if g, ok := cat.Get(*state.Overlay); ok {
			res.Overlay = &g
		} else {
			res.State.Overlay = nil
		}
	}
}

func (c *Controller) showAll(cat *catalog.Catalog, state State, action Action) (State, *Result, error) {
	state.ActiveFilter = nil
	state.Query = ""
	return state, &Result{ListDirty: true}, nil
}

func (c *Controller) filter(cat *catalog.Catalog, state State, action Action) (State, *Result, error) {
	state.ActiveFilter = CategoryFilter(action.Category)
	state.Query = ""
	return state, &Result{ListDirty: true}, nil
}

// CategoryFilter - фильтр по одной категории
func CategoryFilter(category string) *string {
	return &category
}

func (c *Controller) search(cat *catalog.Catalog, state State, action Action) (State, *Result, error) {
	state.Query = catalog.NormalizeQuery(action.Query)
	return state, &Result{ListDirty: true}, nil
}

// shuffle открывает случайную игру, фильтр и список не меняются
func (c *Controller) shuffle(cat *catalog.Catalog, state State, action Action) (State, *Result, error) {
	c.mu.Lock()
	g, ok := cat.Random(c.rng)
	c.mu.Unlock()
	if !ok {
		return state, nil, nil
	}
	return openOverlay(state, g)
}

func (c *Controller) copyGame(cat *catalog.Catalog, state State, action Action) (State, *Result, error) {
	g, ok, err := lookup(cat, action.GameID)
	if err != nil || !ok {
		return state, nil, err
	}
	failure := CardCopyFailure
	if action.FromModal {
		failure = ModalCopyFailure
	}
	return state, &Result{Clipboard: &Clipboard{
		Text:           catalog.FormatFull(g),
		Confirmation:   CopyConfirmation,
		ResetAfterMs:   CopyResetDelay.Milliseconds(),
		FailureMessage: failure,
	}}, nil
}

func (c *Controller) details(cat *catalog.Catalog, state State, action Action) (State, *Result, error) {
	g, ok, err := lookup(cat, action.GameID)
	if err != nil || !ok {
		return state, nil, err
	}
	return openOverlay(state, g)
}

func (c *Controller) close(cat *catalog.Catalog, state State, action Action) (State, *Result, error) {
	state.Overlay = nil
	return state, nil, nil
}

// новое окно всегда заменяет предыдущее
func openOverlay(state State, g models.Game) (State, *Result, error) {
	id := g.ID
	state.Overlay = &id
	return state, &Result{Overlay: &g}, nil
}

// на пустом каталоге действия с записями ничего не делают
func lookup(cat *catalog.Catalog, id int) (models.Game, bool, error) {
	if cat.Len() == 0 {
		return models.Game{}, false, nil
	}
	g, ok := cat.Get(id)
	if !ok {
		return models.Game{}, false, fmt.Errorf("%w: %d", ErrGameNotFound, id)
	}
	return g, true, nil
}
