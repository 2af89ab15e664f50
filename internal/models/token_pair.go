package models

import "time"

// TokenPair — результат логина, регистрации или refresh-обмена.
// RefreshToken — непрозрачный одноразовый секрет: при каждом обмене
// он ротируется, а в БД хранится только его хэш.
type TokenPair struct {
	AccessToken     string    // короткоживущий JWT (HS256)
	RefreshToken    string    // секрет для выпуска следующей пары
	AccessExpiresAt time.Time // истечение access-токена, UTC
}
