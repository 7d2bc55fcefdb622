package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// источники каталога
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	Env        string           `yaml:"env" env-default:"development"` // environment
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Database   DatabaseConfig   `yaml:"database"`
	Theme      ThemeConfig      `yaml:"theme"`
	CORS       CORSConfig       `yaml:"cors"`
	Migrations MigrationsConfig `yaml:"migrations"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// CatalogConfig откуда брать каталог и до какого размера его добивать
type CatalogConfig struct {
	Source  string `yaml:"source" env:"CATALOG_SOURCE" env-default:"file"`
	Path    string `yaml:"path" env:"CATALOG_PATH" env-default:"./data/games.json"`
	MinSize int    `yaml:"min_size" env-default:"220"`
}

// DatabaseConfig структура по работе с БД, нужна только для source: postgres
type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user"`
	Password string `yaml:"-" env:"DB_PASSWORD"`
	Name     string `yaml:"name"`
}

// ThemeConfig настройка cookie с темой
type ThemeConfig struct {
	Secret     string        `yaml:"-" env:"THEME_SECRET"`
	CookieName string        `yaml:"cookie_name" env-default:"ga_theme"`
	TTL        time.Duration `yaml:"ttl" env-default:"8760h"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env-default:"http://localhost:*"`
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

// MustLoad - если не загружаем - паникуем
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

// fetchConfigPath берёт путь из флага -config или CONFIG_PATH.
// Флаг регистрируется только если его ещё нет, чтобы команды могли объявлять свои флаги.
func fetchConfigPath() string {
	if flag.Lookup("config") == nil {
		flag.String("config", "", "path to config file")
	}
	if !flag.Parsed() {
		flag.Parse()
	}

	path := flag.Lookup("config").Value.String()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s: %v", configPath, err)
	}

	return &cfg
}
