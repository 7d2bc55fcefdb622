package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/linemk/grouparena/internal/domain/models"
)

var (
	ErrDocumentMalformed = errors.New("catalog document is malformed")
	ErrCatalogEmpty      = errors.New("catalog is empty")
)

// Source описывает источник документа каталога
type Source interface {
	Load(ctx context.Context) (*models.Document, error)
}

// FileSource читает документ каталога из JSON-файла
type FileSource struct {
	path string
}

// NewFileSource создаёт источник для файла по пути path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(ctx context.Context) (*models.Document, error) {
	const op = "storage.FileSource.Load"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %s: %w", op, s.path, err)
	}

	doc, err := DecodeDocument(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc, nil
}

// DecodeDocument разбирает JSON вида {"categories": {"<name>": [...]}}.
// Порядок ключей объекта categories сохраняется, поэтому он читается потоково, а не в map.
// Отсутствующий объект categories даёт пустой документ.
func DecodeDocument(r io.Reader) (*models.Document, error) {
	dec := json.NewDecoder(r)
	doc := &models.Document{}

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if key != "categories" {
			// прочие поля документа не используются
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrDocumentMalformed, err)
			}
			continue
		}
		categories, err := decodeCategories(dec)
		if err != nil {
			return nil, err
		}
		doc.Categories = categories
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeCategories(dec *json.Decoder) ([]models.Category, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentMalformed, err)
	}
	if tok == nil {
		// "categories": null
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: categories must be an object", ErrDocumentMalformed)
	}

	var categories []models.Category
	// повторный ключ заменяет значение, но остаётся на месте первого
	seen := make(map[string]int)
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		var games []models.RawGame
		if err := dec.Decode(&games); err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", ErrDocumentMalformed, name, err)
		}
		if i, ok := seen[name]; ok {
			categories[i].Games = games
			continue
		}
		seen[name] = len(categories)
		categories = append(categories, models.Category{Name: name, Games: games})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return categories, nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentMalformed, err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: unexpected token %v", ErrDocumentMalformed, tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentMalformed, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrDocumentMalformed, want, tok)
	}
	return nil
}
