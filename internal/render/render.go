package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/linemk/grouparena/internal/catalog"
	"github.com/linemk/grouparena/internal/domain/models"
	"github.com/linemk/grouparena/internal/theme"
	"github.com/linemk/grouparena/internal/ui"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	PageHome  = "home"
	PageGames = "games"
)

// PageData - данные для отрисовки полной страницы
type PageData struct {
	Page     string
	Title    string
	Theme    theme.Theme
	Greeting string
	View     *ui.Result // только для страницы каталога
}

// Renderer отрисовывает страницы и фрагменты каталога
type Renderer struct {
	tmpl *template.Template
}

// New разбирает встроенные шаблоны
func New() (*Renderer, error) {
	const op = "render.New"

	funcs := template.FuncMap{
		"truncate": func(s string) string {
			return catalog.Truncate(s, catalog.DescriptionLimit)
		},
		// кнопка активна только для точного ключа, даже если ключи отличаются регистром
		"isActive": func(active *string, category string) bool {
			return active != nil && *active == category
		},
		"copyText":   catalog.FormatFull,
		"themeLabel": theme.Label,
	}

	tmpl, err := template.New("grouparena").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page отрисовывает полную страницу
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, "page", data)
}

// Navbar отрисовывает фрагмент навигации
func (r *Renderer) Navbar(w io.Writer, t theme.Theme) error {
	return r.tmpl.ExecuteTemplate(w, "navbar", PageData{Theme: t})
}

// Filters отрисовывает кнопки фильтров
func (r *Renderer) Filters(w io.Writer, res *ui.Result) error {
	return r.tmpl.ExecuteTemplate(w, "filters", res)
}

// List отрисовывает список карточек либо сообщение об ошибке/пустом результате
func (r *Renderer) List(w io.Writer, res *ui.Result) error {
	return r.tmpl.ExecuteTemplate(w, "list", res)
}

// Modal отрисовывает окно с подробностями игры
func (r *Renderer) Modal(w io.Writer, g *models.Game) error {
	if g == nil {
		return nil
	}
	return r.tmpl.ExecuteTemplate(w, "modal", g)
}

// Greeting подбирает приветствие по часу суток
func Greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good morning"
	case hour >= 12 && hour < 18:
		return "Good afternoon"
	case hour >= 18 && hour < 22:
		return "Good evening"
	default:
		return "Good night"
	}
}
