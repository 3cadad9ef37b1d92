package service

import (
	"fmt"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
)

func storageErr(action string, err error) error {
	return fmt.Errorf("%s: %w: %w", action, apperrors.ErrStorageUnavailable, err)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, fmt.Sprintf(format, args...))
}
