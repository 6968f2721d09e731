package models

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID generates a time-ordered record id.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}
