package models

// RawGame представляет запись игры в исходном JSON-документе.
// Все поля, кроме name, необязательные.
type RawGame struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Players     string `json:"players,omitempty"`
	Rules       string `json:"rules,omitempty"`
}

// Category - категория и её игры в порядке объявления
type Category struct {
	Name  string
	Games []RawGame
}

// Document - исходный документ каталога, категории идут в порядке объявления
type Document struct {
	Categories []Category
}

// CategoryNames возвращает ключи категорий в порядке объявления
func (d *Document) CategoryNames() []string {
	names := make([]string, 0, len(d.Categories))
	for _, c := range d.Categories {
		names = append(names, c.Name)
	}
	return names
}

// Game представляет нормализованную запись каталога
type Game struct {
	ID          int    `json:"id"` // позиция в общем списке
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Players     string `json:"players"`
	Rules       string `json:"rules"`
	Variant     int    `json:"variant,omitempty"` // 0 для исходных записей
}
