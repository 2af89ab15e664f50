package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore — инжектируемое хранилище пары токенов.
// Сессия либо целиком есть (оба токена), либо целиком отсутствует:
// Save и Clear всегда работают с парой атомарно, частичных состояний нет.
type TokenStore interface {
	// Tokens возвращает сохранённую пару. Отсутствие сессии — пустые строки, не ошибка.
	Tokens() (access, refresh string, err error)
	// Save атомарно сохраняет пару.
	Save(access, refresh string) error
	// Clear атомарно удаляет пару.
	Clear() error
}

// tokenFile — формат файла на диске. Ключи фиксированы: accessToken/refreshToken.
type tokenFile struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// FileStore хранит пару токенов в JSON-файле (0600).
// Запись идёт через временный файл и rename, чтобы читатель никогда
// не увидел наполовину записанную пару.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore создает файловое хранилище по указанному пути.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStorePath возвращает путь к файлу токенов по умолчанию
// ($XDG_CONFIG_HOME/gympro/session.json или ~/.config/gympro/session.json).
func DefaultStorePath() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "gympro", "session.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gympro", "session.json")
}

func (s *FileStore) Tokens() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", nil
		}
		return "", "", err
	}

	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", "", err
	}

	return tf.AccessToken, tf.RefreshToken, nil
}

func (s *FileStore) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	b, err := json.MarshalIndent(tokenFile{AccessToken: access, RefreshToken: refresh}, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

// MemStore — хранилище в памяти (тесты и короткоживущие процессы).
type MemStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Tokens() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh, nil
}

func (s *MemStore) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = access, refresh
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = "", ""
	return nil
}
