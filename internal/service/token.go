package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kelvin100238453/gympro-backend/internal/cache"
	"github.com/kelvin100238453/gympro-backend/internal/models"
	"github.com/kelvin100238453/gympro-backend/internal/pkg/log"
	"github.com/kelvin100238453/gympro-backend/internal/storage"
)

// accessClaims — полезная нагрузка access-токена. Роль и id принципала
// зашиты в токен, чтобы авторизация не требовала похода в БД.
type accessClaims struct {
	PrincipalID string `json:"uid"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// issueTokenPair выпускает новую пару access+refresh токенов.
// Если oldRefreshHash != "", сначала атомарно отзывает старый refresh-токен
// (ротация): из двух конкурентных обновлений одним токеном преуспеет ровно одно.
func (s *Service) issueTokenPair(ctx context.Context, principal models.Principal, oldRefreshHash string) (*models.TokenPair, error) {
	const op = "service.token.issueTokenPair"

	now := time.Now().UTC()

	accessToken, err := s.generateAccessToken(ctx, principal, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if oldRefreshHash != "" {
		revoked, err := s.storage.RevokeRefreshTokenIfActive(ctx, oldRefreshHash)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if !revoked {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
		}

		if s.rcache != nil {
			if cerr := s.rcache.MarkRevoked(ctx, oldRefreshHash); cerr != nil {
				log.From(ctx).Warn("refresh_cache_revoke_failed",
					slog.String("op", op),
					slog.String("err", cerr.Error()),
				)
			}
		}
	}

	plain, err := s.generateRefreshToken(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    plain,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// generateAccessToken генерирует access-токен.
func (s *Service) generateAccessToken(ctx context.Context, principal models.Principal, now time.Time) (string, error) {
	const op = "service.token.generateAccessToken"

	lg := log.From(ctx)

	claims := accessClaims{
		PrincipalID: principal.ID.String(),
		Role:        string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Issuer,
			Subject:   principal.ID.String(),
			Audience:  jwt.ClaimStrings(s.cfg.Audience),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// validateAccessToken валидирует access-токен.
// Просроченный токен отличим от битого: ErrTokenExpired (восстановимо через
// refresh) против ErrInvalidToken (фатально).
func (s *Service) validateAccessToken(tokenStr string) (models.Principal, error) {
	const op = "service.token.validateAccessToken"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience...),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Principal{}, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return models.Principal{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return models.Principal{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	pid, err := uuid.Parse(claims.PrincipalID)
	if err != nil {
		return models.Principal{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	role := models.Role(claims.Role)
	if !role.Valid() {
		return models.Principal{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return models.Principal{ID: pid, Role: role}, nil
}

// generateRefreshToken создает новый refresh-токен, привязанный к принципалу
// и его роли: обновление пары не может сменить личность или повысить роль.
func (s *Service) generateRefreshToken(ctx context.Context, principal models.Principal) (string, error) {
	const (
		op          = "service.token.generateRefreshToken"
		maxAttempts = 5
	)

	lg := log.From(ctx)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			lg.Error("refresh_rand_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return "", fmt.Errorf("%s: %w", op, err)
		}
		plain := base64.RawURLEncoding.EncodeToString(b)
		hash := refreshHash(plain)

		now := time.Now().UTC()
		token := &models.RefreshToken{
			RefreshTokenHash: hash,
			PrincipalID:      principal.ID,
			Role:             principal.Role,
			CreatedAt:        now,
			ExpiresAt:        now.Add(s.cfg.RefreshTokenTTL),
			Revoked:          false,
		}

		if err := s.storage.SaveRefreshToken(ctx, token); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				// Редкая коллизия — пробуем сгенерировать заново.
				continue
			}

			lg.Error("save_refresh_token_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return "", fmt.Errorf("%s: %w", op, err)
		}

		if s.rcache != nil {
			entry := &cache.RefreshEntry{
				PrincipalID: principal.ID,
				Role:        principal.Role,
				Revoked:     false,
				ExpiresAt:   token.ExpiresAt,
			}
			if cerr := s.rcache.Set(ctx, hash, entry, s.cfg.RefreshTokenTTL); cerr != nil {
				lg.Warn("refresh_cache_set_failed",
					slog.String("op", op),
					slog.String("err", cerr.Error()),
				)
			}
		}

		return plain, nil
	}

	lg.Error("refresh_collision_exceeded",
		slog.String("op", op),
	)

	return "", fmt.Errorf("%s: %w", op, ErrRefreshTokenCollision)
}

// validateRefreshToken валидирует refresh-токен.
// Сначала смотрим в кэш (если сконфигурирован), затем в БД.
func (s *Service) validateRefreshToken(ctx context.Context, plain string) (*models.RefreshToken, error) {
	const op = "service.token.validateRefreshToken"

	lg := log.From(ctx)
	hash := refreshHash(plain)

	if s.rcache != nil {
		entry, ok, err := s.rcache.Get(ctx, hash)
		if err != nil {
			lg.Warn("refresh_cache_get_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		} else if ok {
			if entry.Revoked {
				lg.Warn("refresh_revoked",
					slog.String("op", op),
					slog.String("principal_id", entry.PrincipalID.String()),
				)
				return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
			}

			if time.Now().UTC().After(entry.ExpiresAt) {
				return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
			}
		}
	}

	token, err := s.storage.RefreshTokenByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("refresh_lookup_not_found",
				slog.String("op", op),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		lg.Error("refresh_lookup_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if token.Revoked {
		lg.Warn("refresh_revoked",
			slog.String("op", op),
			slog.String("principal_id", token.PrincipalID.String()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
	}

	if time.Now().UTC().After(token.ExpiresAt) {
		lg.Warn("refresh_expired",
			slog.String("op", op),
			slog.String("principal_id", token.PrincipalID.String()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
	}

	return token, nil
}
