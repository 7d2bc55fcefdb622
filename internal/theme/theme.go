package theme

import "errors"

// Theme - цветовая тема сайта
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"

	// Default применяется, если сохранённого значения нет
	Default = Dark
)

var ErrUnknownTheme = errors.New("unknown theme")

// Parse разбирает имя темы
func Parse(name string) (Theme, error) {
	switch Theme(name) {
	case Dark, Light:
		return Theme(name), nil
	default:
		return "", ErrUnknownTheme
	}
}

// Toggle переключает тему; всё, кроме тёмной, переключается на тёмную
func Toggle(t Theme) Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Label - подпись кнопки переключения для текущей темы
func Label(t Theme) string {
	if t == Dark {
		return "☀️ Light"
	}
	return "🌙 Dark"
}
