package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateReturnSettingsCommandIsNotConstructed = errors.New(
	"UpdateReturnSettingsCommand must be created via NewUpdateReturnSettingsCommand constructor",
)

// UpdateReturnSettingsCommand represents an operator changing the global
// return policy.
type UpdateReturnSettingsCommand struct { //nolint:recvcheck //using for validation
	settings returns.Settings

	guard guard.ConstructorGuard
}

// NewUpdateReturnSettingsCommand creates a command to replace the return policy.
func NewUpdateReturnSettingsCommand(enabled bool, windowDays int) (UpdateReturnSettingsCommand, error) {
	settings, err := returns.NewSettings(enabled, windowDays)
	if err != nil {
		return UpdateReturnSettingsCommand{}, err
	}

	return UpdateReturnSettingsCommand{
		settings: settings,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateReturnSettingsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateReturnSettingsCommandIsNotConstructed)
}

// Settings returns the new return policy.
func (c UpdateReturnSettingsCommand) Settings() returns.Settings { return c.settings }
