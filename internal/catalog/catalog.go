package catalog

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/linemk/grouparena/internal/domain/models"
)

const (
	// DefaultName подставляется, если у записи нет имени
	DefaultName = "Untitled"
	// MinSize - минимальный размер каталога, до которого он добивается вариантами
	MinSize = 220
	// VariantDescriptionSuffix дописывается к описанию синтетических вариантов
	VariantDescriptionSuffix = " — Variant edition for more variety."
	// DescriptionLimit - длина описания в карточке
	DescriptionLimit = 140

	rulesTemplate   = "Rules for %s."
	rulesFallback   = "this game"
	variantTemplate = "%s (Variant %d)"
	ellipsis        = "…"
)

// Catalog - неизменяемый набор записей, собирается один раз при загрузке
type Catalog struct {
	games      []models.Game
	categories []string
}

// New нормализует документ и добивает каталог до minSize записей
func New(doc *models.Document, minSize int) *Catalog {
	if doc == nil {
		return Empty()
	}
	return &Catalog{
		games:      Pad(Normalize(doc), minSize),
		categories: doc.CategoryNames(),
	}
}

// Empty возвращает пустой каталог (например, после неудачной загрузки)
func Empty() *Catalog {
	return &Catalog{}
}

// Normalize разворачивает документ в плоский список с заполненными значениями по умолчанию
func Normalize(doc *models.Document) []models.Game {
	var games []models.Game
	for _, c := range doc.Categories {
		for _, raw := range c.Games {
			games = append(games, normalizeOne(raw, c.Name, len(games)))
		}
	}
	return games
}

func normalizeOne(raw models.RawGame, category string, id int) models.Game {
	name := raw.Name
	if name == "" {
		name = DefaultName
	}
	rules := raw.Rules
	if rules == "" {
		subject := raw.Name
		if subject == "" {
			subject = rulesFallback
		}
		rules = fmt.Sprintf(rulesTemplate, subject)
	}
	return models.Game{
		ID:          id,
		Name:        name,
		Category:    category,
		Description: raw.Description,
		Players:     raw.Players,
		Rules:       rules,
	}
}

// Pad циклически дублирует исходные записи, пока их не станет minSize.
// Вариант i берётся из base[i % n] и получает номер i/n + 1.
func Pad(base []models.Game, minSize int) []models.Game {
	n := len(base)
	if n == 0 || n >= minSize {
		return base
	}

	games := make([]models.Game, n, minSize)
	copy(games, base)
	for i := 0; len(games) < minSize; i++ {
		src := base[i%n]
		clone := src
		clone.ID = len(games)
		clone.Variant = i/n + 1
		clone.Name = fmt.Sprintf(variantTemplate, src.Name, clone.Variant)
		clone.Description = src.Description + VariantDescriptionSuffix
		games = append(games, clone)
	}
	return games
}

// Games возвращает все записи каталога
func (c *Catalog) Games() []models.Game {
	return c.games
}

// Categories возвращает ключи категорий исходного документа
func (c *Catalog) Categories() []string {
	return c.categories
}

// Len - количество записей
func (c *Catalog) Len() int {
	return len(c.games)
}

// Get возвращает запись по идентификатору
func (c *Catalog) Get(id int) (models.Game, bool) {
	if id < 0 || id >= len(c.games) {
		return models.Game{}, false
	}
	return c.games[id], true
}

// Filter отбирает записи категории без учёта регистра.
// Полный список отдаёт View с пустым фильтром, ключ "All" здесь обычная категория.
func (c *Catalog) Filter(category string) []models.Game {
	var out []models.Game
	for _, g := range c.games {
		if strings.EqualFold(g.Category, category) {
			out = append(out, g)
		}
	}
	return out
}

// NormalizeQuery приводит поисковый запрос к нижнему регистру и обрезает пробелы
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Search ищет подстроку в имени и описании по всему каталогу, фильтр категории не учитывается.
// Для пустого запроса возвращает ok == false.
func (c *Catalog) Search(query string) (games []models.Game, ok bool) {
	q := NormalizeQuery(query)
	if q == "" {
		return nil, false
	}
	for _, g := range c.games {
		if strings.Contains(strings.ToLower(g.Name+" "+g.Description), q) {
			games = append(games, g)
		}
	}
	return games, true
}

// View возвращает список, соответствующий активному фильтру и строке поиска.
// category == nil означает кнопку All.
func (c *Catalog) View(category *string, query string) []models.Game {
	if games, ok := c.Search(query); ok {
		return games
	}
	if category == nil {
		return c.games
	}
	return c.Filter(*category)
}

// Random выбирает случайную запись; для пустого каталога ok == false
func (c *Catalog) Random(rng *rand.Rand) (models.Game, bool) {
	if len(c.games) == 0 {
		return models.Game{}, false
	}
	var idx int
	if rng != nil {
		idx = rng.Intn(len(c.games))
	} else {
		idx = rand.Intn(len(c.games))
	}
	return c.games[idx], true
}

// FormatFull сериализует запись в текст для буфера обмена
func FormatFull(g models.Game) string {
	return fmt.Sprintf("%s\nCategory: %s\nPlayers: %s\n\nDescription:\n%s\n\nRules:\n%s",
		g.Name, g.Category, g.Players, g.Description, g.Rules)
}

// Truncate обрезает строку до n символов, последний заменяется многоточием
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	return string(runes[:n-1]) + ellipsis
}
