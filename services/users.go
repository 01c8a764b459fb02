package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"encuentros/models"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/argon2"
)

// UserDirectory is the read-only view of the accounts service this module needs.
type UserDirectory interface {
	Profiles(ctx context.Context, ids []int64) (map[int64]models.UserProfile, error)
	SearchByName(ctx context.Context, q string, limit int) ([]models.UserProfile, error)
}

// UserService reads profiles from the users table, through a Redis cache when one is set.
type UserService struct {
	tx    TxRunner
	cache *redis.Client
	ttl   time.Duration
}

func NewUserService(tx TxRunner, cache *redis.Client, ttl time.Duration) *UserService {
	return &UserService{tx: tx, cache: cache, ttl: ttl}
}

func profileKey(id int64) string {
	return fmt.Sprintf("user_profile:%d", id)
}

// Profiles returns the profiles it found; unknown ids are simply absent from the map.
func (s *UserService) Profiles(ctx context.Context, ids []int64) (map[int64]models.UserProfile, error) {
	result := make(map[int64]models.UserProfile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	missing := s.fromCache(ctx, uniqueIDs(ids), result)
	if len(missing) == 0 {
		return result, nil
	}

	var users []models.User
	err := s.tx.Read(ctx).DB().
		Select("id", "name", "surname", "email", "avatar").
		Where("id IN ?", missing).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	fetched := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		p := u.Profile()
		result[p.ID] = p
		fetched = append(fetched, p)
	}
	s.toCache(ctx, fetched)
	return result, nil
}

func (s *UserService) fromCache(ctx context.Context, ids []int64, into map[int64]models.UserProfile) []int64 {
	if s.cache == nil {
		return ids
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = profileKey(id)
	}
	values, err := s.cache.MGet(ctx, keys...).Result()
	if err != nil {
		log.Printf("Warning: profile cache read failed: %v", err)
		return ids
	}

	missing := make([]int64, 0, len(ids))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		var p models.UserProfile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			missing = append(missing, ids[i])
			continue
		}
		into[p.ID] = p
	}
	return missing
}

func (s *UserService) toCache(ctx context.Context, profiles []models.UserProfile) {
	if s.cache == nil || len(profiles) == 0 {
		return
	}
	pipe := s.cache.Pipeline()
	for _, p := range profiles {
		data, err := json.Marshal(p)
		if err != nil {
			continue
		}
		pipe.Set(ctx, profileKey(p.ID), data, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Warning: profile cache write failed: %v", err)
	}
}

// likeEscaper makes user input match literally in a LIKE ... ESCAPE '!' pattern.
// '!' rather than backslash, which MySQL and Postgres treat differently in literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// SearchByName matches the prefix of name, surname or email, case-insensitively.
func (s *UserService) SearchByName(ctx context.Context, q string, limit int) ([]models.UserProfile, error) {
	pattern := likeEscaper.Replace(strings.ToLower(strings.TrimSpace(q))) + "%"
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var users []models.User
	err := s.tx.Read(ctx).DB().
		Select("id", "name", "surname", "email", "avatar").
		Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(surname) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!'", pattern, pattern, pattern).
		Order("name, surname, id").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	profiles := make([]models.UserProfile, len(users))
	for i, u := range users {
		profiles[i] = u.Profile()
	}
	return profiles, nil
}

// HashPassword returns "<salt>$<hash>" in hex, argon2id.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
