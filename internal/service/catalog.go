package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/linemk/grouparena/internal/catalog"
	sl "github.com/linemk/grouparena/internal/lib/logger"
	"github.com/linemk/grouparena/internal/storage"
)

// CatalogService загружает каталог один раз и дальше отдаёт его только на чтение
type CatalogService struct {
	log     *slog.Logger
	source  storage.Source
	minSize int

	once    sync.Once
	catalog *catalog.Catalog
	loadErr error
}

func NewCatalogService(log *slog.Logger, source storage.Source, minSize int) *CatalogService {
	return &CatalogService{
		log:     log,
		source:  source,
		minSize: minSize,
		catalog: catalog.Empty(),
	}
}

// Init загружает документ из источника. Повторные вызовы ничего не делают.
// При ошибке каталог остаётся пустым до конца жизни процесса, повторной попытки нет.
func (s *CatalogService) Init(ctx context.Context) {
	s.once.Do(func() {
		const op = "service.CatalogService.Init"
		logger := s.log.With(slog.String("op", op))

		doc, err := s.source.Load(ctx)
		if err != nil {
			logger.Error("failed to load games", sl.Err(err))
			s.loadErr = err
			return
		}

		s.catalog = catalog.New(doc, s.minSize)
		logger.Info("catalog loaded",
			slog.Int("categories", len(s.catalog.Categories())),
			slog.Int("games", s.catalog.Len()),
		)
	})
}

// Catalog возвращает загруженный каталог (пустой, если загрузка не удалась)
func (s *CatalogService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Failed сообщает, завершилась ли загрузка ошибкой
func (s *CatalogService) Failed() bool {
	return s.loadErr != nil
}

func (s *CatalogService) LoadError() error {
	return s.loadErr
}
