package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"moviedex/internal/auth"
	"moviedex/internal/library"
	"moviedex/internal/movie"
	"moviedex/internal/output"
	"moviedex/internal/profile"
)

// invalidArgument marks err as a usage problem so it maps to INVALID_ARGUMENT.
func invalidArgument(err error) error {
	return fmt.Errorf("%w: %w", movie.ErrInvalidArgument, err)
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return invalidArgument(err)
		}
		return nil
	}
}

// errorCode maps an error to the envelope code, message and field details.
func errorCode(err error) (string, string, []output.ErrorDetail) {
	var verr *profile.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]output.ErrorDetail, len(verr.Fields))
		for i, f := range verr.Fields {
			details[i] = output.ErrorDetail{Field: f.Field, Message: f.Message}
		}
		return "INVALID_ARGUMENT", "Invalid profile update", details
	case errors.Is(err, auth.ErrUnauthorized):
		return "UNAUTHORIZED", "Not logged in or invalid credentials", nil
	case errors.Is(err, movie.ErrNotFound):
		return "NOT_FOUND", err.Error(), nil
	case errors.Is(err, movie.ErrInvalidArgument), errors.Is(err, library.ErrInvalidList):
		return "INVALID_ARGUMENT", err.Error(), nil
	default:
		return "INTERNAL", err.Error(), nil
	}
}
