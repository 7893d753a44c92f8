package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrSettingsKeyRequired is returned when a settings key is blank.
	ErrSettingsKeyRequired = errors.New("settings key is required")
)
