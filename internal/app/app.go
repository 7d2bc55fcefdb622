package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/linemk/grouparena/internal/config"
	"github.com/linemk/grouparena/internal/render"
	"github.com/linemk/grouparena/internal/service"
	"github.com/linemk/grouparena/internal/storage"
	"github.com/linemk/grouparena/internal/theme"
	"github.com/linemk/grouparena/internal/ui"
)

type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	DB         *sql.DB // nil, если каталог читается из файла
	Catalog    *service.CatalogService
	Controller *ui.Controller
	Renderer   *render.Renderer
	Themes     *theme.CookieStore
	Now        func() time.Time
}

// NewApp создаёт новый экземпляр App и загружает каталог
func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: log,
		Now:    time.Now,
	}

	source, err := app.newSource()
	if err != nil {
		return nil, err
	}

	themes, err := theme.NewCookieStore(cfg.Theme.Secret, cfg.Theme.CookieName, cfg.Theme.TTL)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create theme store: %w", err)
	}
	app.Themes = themes

	renderer, err := render.New()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	app.Renderer = renderer

	app.Catalog = service.NewCatalogService(log, source, cfg.Catalog.MinSize)
	// ошибка загрузки не фатальна: страница покажет сообщение, каталог останется пустым
	app.Catalog.Init(ctx)
	app.Controller = ui.NewController(app.Catalog, nil)

	return app, nil
}

func (a *App) newSource() (storage.Source, error) {
	switch a.Config.Catalog.Source {
	case config.SourcePostgres:
		db, err := OpenDB(a.Config.Database)
		if err != nil {
			return nil, err
		}
		a.DB = db
		return storage.NewCatalogRepository(db), nil
	case config.SourceFile, "":
		return storage.NewFileSource(a.Config.Catalog.Path), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", a.Config.Catalog.Source)
	}
}

// Close закрывает подключение к БД, если оно было открыто
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// OpenDB реализует подключение к БД через DSN
func OpenDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD environment variable is not set")
	}
	db, err := sql.Open("postgres", BuildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// BuildDSN собирает DSN для обычных SQL запросов
func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)
}
