package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/linemk/grouparena/internal/domain/models"
)

var ErrDuplicateCategory = errors.New("duplicate category")

// CatalogStorage описывает работу с каталогом в БД
type CatalogStorage interface {
	Source
	// ReplaceDocument полностью перезаписывает каталог в одной транзакции
	ReplaceDocument(ctx context.Context, doc *models.Document) error
}

// catalogRepository - реализация CatalogStorage поверх PostgreSQL
type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository создаёт репозиторий каталога
func NewCatalogRepository(db *sql.DB) CatalogStorage {
	return &catalogRepository{db: db}
}

const loadCatalogQuery = `SELECT c.name, g.id IS NOT NULL, COALESCE(g.name, ''), COALESCE(g.description, ''), COALESCE(g.players, ''), COALESCE(g.rules, '')
FROM categories c LEFT JOIN games g ON g.category_id = c.id
ORDER BY c.position, g.position`

// Load собирает документ из таблиц categories и games с сохранением порядка
func (r *catalogRepository) Load(ctx context.Context) (*models.Document, error) {
	const op = "storage.catalogRepository.Load"

	rows, err := r.db.QueryContext(ctx, loadCatalogQuery)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	doc := &models.Document{}
	for rows.Next() {
		var (
			category string
			hasGame  bool
			game     models.RawGame
		)
		if err := rows.Scan(&category, &hasGame, &game.Name, &game.Description, &game.Players, &game.Rules); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		// строки отсортированы по категориям, новая категория начинается при смене имени
		n := len(doc.Categories)
		if n == 0 || doc.Categories[n-1].Name != category {
			doc.Categories = append(doc.Categories, models.Category{Name: category})
			n++
		}
		if hasGame {
			doc.Categories[n-1].Games = append(doc.Categories[n-1].Games, game)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrCatalogEmpty)
	}
	return doc, nil
}

func (r *catalogRepository) ReplaceDocument(ctx context.Context, doc *models.Document) (err error) {
	const op = "storage.catalogRepository.ReplaceDocument"

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM games"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM categories"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for cPos, c := range doc.Categories {
		var categoryID int64
		err = tx.QueryRowContext(ctx,
			"INSERT INTO categories (position, name) VALUES ($1, $2) RETURNING id",
			cPos, c.Name,
		).Scan(&categoryID)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
				err = fmt.Errorf("%s: %w: %s", op, ErrDuplicateCategory, c.Name)
				return err
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		for gPos, g := range c.Games {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO games (category_id, position, name, description, players, rules) VALUES ($1, $2, $3, $4, $5, $6)",
				categoryID, gPos, g.Name, nullable(g.Description), nullable(g.Players), nullable(g.Rules),
			)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit: %w", op, err)
	}
	return nil
}

// пустые необязательные поля хранятся как NULL
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
