package customers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/customer"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore"
)

type Repo interface {
	Load(ctx context.Context, id uuid.UUID) (customer.Customer, int64, error)
	Save(ctx context.Context, id uuid.UUID, expectedVersion int64, events ...domain.Event) (int64, error)
}

type RegisterCustomerReq struct {
	Name        string
	Email       string
	Phone       string
	DateOfBirth time.Time
	Address     customer.Address
	License     customer.DriversLicense
}

type RegisterCustomerUsecase struct {
	repo   Repo
	logger zerolog.Logger

	now func() time.Time
}

func NewRegisterCustomerUsecase(repo Repo, logger zerolog.Logger) *RegisterCustomerUsecase {
	return &RegisterCustomerUsecase{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (u *RegisterCustomerUsecase) RegisterCustomer(ctx context.Context, req RegisterCustomerReq) (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate customer id: %w", err)
	}

	_, ev, err := customer.Register(
		id, req.Name, req.Email, req.Phone,
		req.DateOfBirth, req.Address, req.License,
		u.now(),
	)
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := u.repo.Save(ctx, id, eventstore.NoStream, ev); err != nil {
		return uuid.Nil, fmt.Errorf("save customer %s: %w", id, err)
	}

	u.logger.Info().Str("customer_id", id.String()).Msg("customer registered")
	return id, nil
}
