package customers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/customer"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore"
)

// UpdateCustomerUsecase runs the post-registration commands. A
// command whose new value equals the current one emits nothing; Save
// then skips the append entirely, so the stream does not grow and no
// downstream effects re-fire.
type UpdateCustomerUsecase struct {
	repo   Repo
	logger zerolog.Logger

	now func() time.Time
}

func NewUpdateCustomerUsecase(repo Repo, logger zerolog.Logger) *UpdateCustomerUsecase {
	return &UpdateCustomerUsecase{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

type UpdateProfileReq struct {
	Name    string
	Phone   string
	Address customer.Address
}

func (u *UpdateCustomerUsecase) UpdateCustomerProfile(ctx context.Context, id uuid.UUID, req UpdateProfileReq) error {
	return u.update(ctx, id, "update profile", func(c customer.Customer, now time.Time) (customer.Customer, customer.Event, error) {
		return c.UpdateProfile(req.Name, req.Phone, req.Address, now)
	})
}

func (u *UpdateCustomerUsecase) UpdateCustomerLicense(ctx context.Context, id uuid.UUID, license customer.DriversLicense) error {
	return u.update(ctx, id, "update license", func(c customer.Customer, now time.Time) (customer.Customer, customer.Event, error) {
		return c.UpdateDriversLicense(license, now)
	})
}

func (u *UpdateCustomerUsecase) UpdateCustomerEmail(ctx context.Context, id uuid.UUID, email string) error {
	return u.update(ctx, id, "update email", func(c customer.Customer, now time.Time) (customer.Customer, customer.Event, error) {
		return c.UpdateEmail(email, now)
	})
}

func (u *UpdateCustomerUsecase) ChangeCustomerStatus(ctx context.Context, id uuid.UUID, status customer.Status, reason string) error {
	return u.update(ctx, id, "change status", func(c customer.Customer, now time.Time) (customer.Customer, customer.Event, error) {
		return c.ChangeStatus(status, reason, now)
	})
}

func (u *UpdateCustomerUsecase) update(
	ctx context.Context,
	id uuid.UUID,
	name string,
	command func(customer.Customer, time.Time) (customer.Customer, customer.Event, error),
) error {
	err := eventstore.WithConflictRetry(ctx, 3, func(ctx context.Context) error {
		current, version, err := u.repo.Load(ctx, id)
		if err != nil {
			return err
		}

		_, ev, err := command(current, u.now())
		if err != nil {
			return err
		}

		var events []domain.Event
		if ev != nil {
			events = append(events, ev)
		}
		_, err = u.repo.Save(ctx, id, version, events...)
		return err
	})
	if err != nil {
		return err
	}

	u.logger.Info().
		Str("customer_id", id.String()).
		Str("command", name).
		Msg("customer command applied")
	return nil
}
