// session реализует клиентскую сторону протокола сессии gympro-backend:
// логин, хранение пары токенов, подстановку access-токена в запросы,
// прозрачное обновление по refresh-токену и ровно один повтор
// исходного запроса после успешного обновления.
//
// Машина состояний одного защищённого вызова выражена явно (callState +
// функция перехода в Do), поэтому ограничение "не более одного refresh на
// вызов" и терминальность logout гарантированы структурно, а не соглашением.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoSession — сессии нет: токены отсутствуют, обновление отклонено или
// токен безнадёжно битый. Вызывающему не возвращается никакой частичный
// ответ; лечится только повторным логином.
var ErrNoSession = errors.New("session: not logged in")

// callState — состояние машины одного защищённого вызова.
type callState int

const (
	stateStart callState = iota
	stateAttempt1
	stateRefreshing
	stateAttempt2
	stateDone
	stateLoggedOut
)

const defaultRefreshTimeout = 10 * time.Second

// Client — HTTP-клиент с прозрачным обновлением access-токена.
// Безопасен для конкурентного использования, если потокобезопасен TokenStore.
type Client struct {
	baseURL        string
	http           *http.Client
	store          TokenStore
	refreshTimeout time.Duration
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет транспорт (по умолчанию http.DefaultClient).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRefreshTimeout ограничивает длительность refresh-вызова.
// Без ограничения зависший refresh блокировал бы и повтор, и видимое
// состояние логина на неопределённый срок.
func WithRefreshTimeout(d time.Duration) Option {
	return func(c *Client) { c.refreshTimeout = d }
}

// New создает клиент сессии поверх заданного хранилища токенов.
func New(baseURL string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           http.DefaultClient,
		store:          store,
		refreshTimeout: defaultRefreshTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// apiError — тело ошибки сервера; Code различает восстановимый
// token_expired и фатальные отказы.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// User — санитизированный принципал из ответов auth-эндпойнтов.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// LoginClient выполняет вход клиента и сохраняет пару токенов.
func (c *Client) LoginClient(ctx context.Context, name, password string) (*User, error) {
	return c.login(ctx, "/auth/client/login", map[string]string{
		"name":     name,
		"password": password,
	})
}

// LoginTrainer выполняет вход тренера и сохраняет пару токенов.
func (c *Client) LoginTrainer(ctx context.Context, email, password string) (*User, error) {
	return c.login(ctx, "/auth/trainer/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// RegisterTrainer регистрирует тренера; успех эквивалентен логину.
func (c *Client) RegisterTrainer(ctx context.Context, name, email, password string) (*User, error) {
	return c.login(ctx, "/auth/trainer/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Logout очищает сохранённую пару токенов.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// LoggedIn сообщает, держит ли хранилище пару токенов.
func (c *Client) LoggedIn() bool {
	access, _, err := c.store.Tokens()
	return err == nil && access != ""
}

func (c *Client) login(ctx context.Context, path string, body map[string]string) (*User, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, responseError(resp)
	}

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	if out.AccessToken == "" || out.RefreshToken == "" {
		return nil, fmt.Errorf("session: server returned incomplete token pair")
	}

	// Пара сохраняется атомарно: состояние "залогинен" появляется целиком.
	if err := c.store.Save(out.AccessToken, out.RefreshToken); err != nil {
		return nil, err
	}

	return &out.User, nil
}

// Do выполняет защищённый запрос. body может быть nil; повтор после
// обновления токена переигрывает тот же body, поэтому он принимается
// срезом байт, а не потоком.
//
// Возвращает либо финальный ответ сервера (каким бы он ни был), либо
// ErrNoSession, либо транспортную ошибку. Промежуточный 401 наружу
// не отдается никогда.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var (
		resp   *http.Response
		access string
	)

	state := stateStart
	for {
		switch state {
		case stateStart:
			var err error
			access, _, err = c.store.Tokens()
			if err != nil {
				return nil, err
			}
			if access == "" {
				// Без access-токена запрос гарантированно получит 401 —
				// не тратим сетевой вызов.
				state = stateLoggedOut
				continue
			}
			state = stateAttempt1

		case stateAttempt1:
			var err error
			resp, err = c.attempt(ctx, method, path, body, access)
			if err != nil {
				return nil, err
			}

			next, err := c.classify(resp)
			if err != nil {
				return nil, err
			}
			state = next

		case stateRefreshing:
			newAccess, err := c.refresh(ctx)
			if err != nil {
				// Любой отказ обновления фатален: чистим оба токена.
				_ = c.store.Clear()
				state = stateLoggedOut
				continue
			}
			access = newAccess
			state = stateAttempt2

		case stateAttempt2:
			var err error
			resp, err = c.attempt(ctx, method, path, body, access)
			if err != nil {
				return nil, err
			}
			// Ответ повтора возвращается как есть: второго refresh не будет.
			state = stateDone

		case stateDone:
			return resp, nil

		case stateLoggedOut:
			return nil, ErrNoSession
		}
	}
}

// DoJSON — Do с декодированием успешного ответа в out.
func (c *Client) DoJSON(ctx context.Context, method, path string, body []byte, out any) error {
	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// attempt выполняет один сетевой вызов с bearer-токеном.
func (c *Client) attempt(ctx context.Context, method, path string, body []byte, access string) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+access)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}

// classify решает, куда переходить после первой попытки:
//   - не 401 — ответ финальный;
//   - 401/token_expired — идём на refresh;
//   - 401 с любым другим кодом (битый/чужой токен) — немедленный logout,
//     refresh не пытаемся: это невосстановимый отказ доверия.
func (c *Client) classify(resp *http.Response) (callState, error) {
	if resp.StatusCode != http.StatusUnauthorized {
		return stateDone, nil
	}

	b, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return 0, err
	}

	var ae apiError
	if jsonErr := json.Unmarshal(b, &ae); jsonErr == nil && ae.Code == "token_expired" {
		return stateRefreshing, nil
	}

	_ = c.store.Clear()
	return stateLoggedOut, nil
}

// refresh обменивает refresh-токен на новую пару и сохраняет её.
// Вызов ограничен по времени независимо от контекста исходного запроса.
func (c *Client) refresh(ctx context.Context) (string, error) {
	_, refresh, err := c.store.Tokens()
	if err != nil {
		return "", err
	}
	if refresh == "" {
		return "", ErrNoSession
	}

	rctx, cancel := context.WithTimeout(ctx, c.refreshTimeout)
	defer cancel()

	b, err := json.Marshal(map[string]string{"refreshToken": refresh})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(rctx, http.MethodPost, c.baseURL+"/auth/client/refresh-token", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", responseError(resp)
	}

	var out struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("session: refresh returned no access token")
	}

	// Ротация: сервер мог выдать новый refresh-токен; если нет — храним старый.
	newRefresh := out.RefreshToken
	if newRefresh == "" {
		newRefresh = refresh
	}

	if err := c.store.Save(out.AccessToken, newRefresh); err != nil {
		return "", err
	}

	return out.AccessToken, nil
}

// responseError превращает ответ с ошибкой в error с кодом и сообщением сервера.
func responseError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var ae apiError
	if err := json.Unmarshal(b, &ae); err == nil && ae.Message != "" {
		return fmt.Errorf("session: server returned %d: %s", resp.StatusCode, ae.Message)
	}

	return fmt.Errorf("session: server returned %d", resp.StatusCode)
}
