package phrase

import (
	"log/slog"

	"github.com/ardnew/phrasegen/modifier"
	"github.com/ardnew/phrasegen/pkg"
	"github.com/ardnew/phrasegen/variant"
)

// Error is the structured error type returned by template builds.
type Error = pkg.Error

// Predefined errors (sentinel values).
var (
	ErrInvalidPhraseType      = pkg.NewError("templates must be strings")
	ErrModifierNotFound       = pkg.NewError("modifier not found")
	ErrModifierFailed         = pkg.NewError("modifier failed")
	ErrExpansionLimitExceeded = pkg.NewError("expansion limit exceeded")

	ErrInvalidModifierRegistration = modifier.ErrInvalidRegistration
	ErrInvalidVariantFormat        = variant.ErrInvalidFormat
)

func errModifierNotFound(reg *modifier.Registry, name, token string) error {
	return ErrModifierNotFound.With(
		slog.String("modifier", name),
		slog.String("token", token),
		slog.Any("suggestions", reg.Suggest(name)),
	)
}

func errModifierFailed(err error, name, token string) error {
	return ErrModifierFailed.Wrap(err).With(
		slog.String("modifier", name),
		slog.String("token", token),
	)
}
