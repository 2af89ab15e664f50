// service содержит бизнес-логику gympro-backend:
// аутентификацию тренеров и клиентов, выпуск/проверку/ротацию токенов
// и доменный CRUD (клиенты, упражнения, уведомления, журнал тренировок)
// через интерфейсы из пакета storage.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//   - Ошибки возвращаются и далее маппятся HTTP-слоем на статусы
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"github.com/kelvin100238453/gympro-backend/internal/cache"
	"github.com/kelvin100238453/gympro-backend/internal/config"
	"github.com/kelvin100238453/gympro-backend/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или принципал не найден.
	// Оба случая неразличимы для вызывающего. HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — access-токен не парсится или подпись неверна.
	// Фатально для сессии: клиентский протокол не должен пытаться обновиться. HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — токен корректен, но срок действия истёк.
	// Для access-токена восстановимо через refresh. HTTP 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked — refresh-токен уже был использован (ротация) или отозван. HTTP 401.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrEmailTaken — email уже занят другим тренером. HTTP 400.
	ErrEmailTaken = errors.New("email already taken")

	// ErrNameTaken — имя уже занято другим клиентом. HTTP 400.
	ErrNameTaken = errors.New("name already taken")

	// ErrEmptyPassword — пароль пустой; проверяется до хэширования и похода в БД. HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInvalidArgument — некорректные входные данные (email, UUID, пустые поля). HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound — сущность не найдена. HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied — операция недоступна для роли или чужой записи. HTTP 403.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrRefreshTokenCollision — исчерпаны попытки сгенерировать уникальный refresh-токен
	// (редкий случай коллизий при сохранении хэша в БД после нескольких ретраев). HTTP 500.
	ErrRefreshTokenCollision = errors.New("refresh token collision")
)

// Service описывает бизнес-логику gympro-backend.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig
	rcache  cache.RefreshCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

// SetRefreshCache устанавливает кэш refresh-токенов (опционально).
func (s *Service) SetRefreshCache(c cache.RefreshCache) {
	s.rcache = c
}
