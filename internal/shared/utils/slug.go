package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const maxSlugAttempts = 1000

var ErrSlugExhausted = errors.New("no free slug candidate")

// SlugExistsFunc reports whether a slug is already taken by another row
type SlugExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Slugify converts a name to a lowercase ASCII slug.
// "Fresh Apples & Pears" -> "fresh-apples-and-pears"
func Slugify(s string) string {
	return slug.Make(strings.TrimSpace(s))
}

func IsValidSlug(s string) bool {
	return slug.IsSlug(s)
}

// RandomSlug returns "<prefix>-<n hex chars>"
func RandomSlug(prefix string, n int) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	if n > len(hex) {
		n = len(hex)
	}
	return prefix + "-" + hex[:n]
}

// BaseSlug slugifies name and falls back to a random prefixed slug
// when the name is empty or has no sluggable characters.
func BaseSlug(name, prefix string, hexLen int) string {
	if base := Slugify(name); base != "" {
		return base
	}
	return RandomSlug(prefix, hexLen)
}

// UniqueSlug tries base, base-1, base-2, ... until exists reports false.
// Candidates are truncated so that base plus suffix fits maxLen.
func UniqueSlug(ctx context.Context, base string, maxLen int, exists SlugExistsFunc) (string, error) {
	for i := 0; i < maxSlugAttempts; i++ {
		suffix := ""
		if i > 0 {
			suffix = fmt.Sprintf("-%d", i)
		}
		candidate := truncateSlug(base, maxLen-len(suffix)) + suffix

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w for %q", ErrSlugExhausted, base)
}

func truncateSlug(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	return strings.TrimRight(s[:n], "-")
}
