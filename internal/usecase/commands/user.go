package commands

import (
	"context"

	"kyren/internal/usecase/shared"
)

type UserCommands interface {
	// EnsureUser registers a messenger user on first contact and returns the
	// up-to-date snapshot on every later one.
	EnsureUser(ctx context.Context, baleID, username, name string) (*shared.UserSnapshot, error)
}

type userUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewUserCommands(uow shared.UnitOfWork) UserCommands {
	return &userUseCaseImpl{uow: uow}
}

func (uc *userUseCaseImpl) EnsureUser(ctx context.Context, baleID, username, name string) (*shared.UserSnapshot, error) {
	var snap *shared.UserSnapshot
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		snap, err = tx.Users().UpsertByBaleID(ctx, baleID, username, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
