package theme

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName - ключ, под которым хранится выбранная тема
const CookieName = "ga_theme"

// CookieStore хранит выбранную тему в подписанной (HS256) cookie
type CookieStore struct {
	secret []byte
	name   string
	ttl    time.Duration
	now    func() time.Time
}

// NewCookieStore создаёт хранилище; пустое имя заменяется на CookieName
func NewCookieStore(secret, name string, ttl time.Duration) (*CookieStore, error) {
	if secret == "" {
		return nil, errors.New("theme secret is not set")
	}
	if name == "" {
		name = CookieName
	}
	return &CookieStore{
		secret: []byte(secret),
		name:   name,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// NewToken подписывает тему в JWT
func (s *CookieStore) NewToken(t Theme) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"theme": string(t),
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken проверяет подпись и возвращает тему из токена
func (s *CookieStore) ParseToken(tokenStr string) (Theme, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Проверка алгоритма
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid theme token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid theme token claims")
	}
	name, ok := claims["theme"].(string)
	if !ok {
		return "", errors.New("invalid theme token claims: theme not found")
	}
	return Parse(name)
}

// Read возвращает сохранённую тему; при отсутствии или порче cookie - тему по умолчанию
func (s *CookieStore) Read(r *http.Request) Theme {
	c, err := r.Cookie(s.name)
	if err != nil {
		return Default
	}
	t, err := s.ParseToken(c.Value)
	if err != nil {
		return Default
	}
	return t
}

// Write сохраняет тему в cookie ответа
func (s *CookieStore) Write(w http.ResponseWriter, t Theme) error {
	token, err := s.NewToken(t)
	if err != nil {
		return fmt.Errorf("failed to sign theme token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
