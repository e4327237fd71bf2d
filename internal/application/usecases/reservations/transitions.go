package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/reservation"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore"
)

// maxConflictRetries bounds how often a command re-loads and re-runs
// after losing an optimistic-concurrency race.
const maxConflictRetries = 3

// TransitionReservationUsecase runs the lifecycle commands. Each
// command is load-validate-append; a losing race against a concurrent
// writer reloads and retries a bounded number of times before the
// conflict reaches the caller.
type TransitionReservationUsecase struct {
	repo   Repo
	logger zerolog.Logger

	now func() time.Time
}

func NewTransitionReservationUsecase(repo Repo, logger zerolog.Logger) *TransitionReservationUsecase {
	return &TransitionReservationUsecase{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (u *TransitionReservationUsecase) ConfirmReservation(ctx context.Context, id uuid.UUID) error {
	return u.transition(ctx, id, "confirm", func(r reservation.Reservation, now time.Time) (reservation.Reservation, reservation.Event, error) {
		return r.Confirm(now)
	})
}

func (u *TransitionReservationUsecase) CancelReservation(ctx context.Context, id uuid.UUID, reason string) error {
	return u.transition(ctx, id, "cancel", func(r reservation.Reservation, now time.Time) (reservation.Reservation, reservation.Event, error) {
		return r.Cancel(reason, now)
	})
}

func (u *TransitionReservationUsecase) ActivateReservation(ctx context.Context, id uuid.UUID) error {
	return u.transition(ctx, id, "activate", func(r reservation.Reservation, now time.Time) (reservation.Reservation, reservation.Event, error) {
		return r.MarkAsActive(now)
	})
}

func (u *TransitionReservationUsecase) CompleteReservation(ctx context.Context, id uuid.UUID) error {
	return u.transition(ctx, id, "complete", func(r reservation.Reservation, now time.Time) (reservation.Reservation, reservation.Event, error) {
		return r.Complete(now)
	})
}

func (u *TransitionReservationUsecase) MarkReservationNoShow(ctx context.Context, id uuid.UUID) error {
	return u.transition(ctx, id, "mark no-show", func(r reservation.Reservation, now time.Time) (reservation.Reservation, reservation.Event, error) {
		return r.MarkAsNoShow(now)
	})
}

func (u *TransitionReservationUsecase) transition(
	ctx context.Context,
	id uuid.UUID,
	name string,
	command func(reservation.Reservation, time.Time) (reservation.Reservation, reservation.Event, error),
) error {
	err := eventstore.WithConflictRetry(ctx, maxConflictRetries, func(ctx context.Context) error {
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
		Str("reservation_id", id.String()).
		Str("command", name).
		Msg("reservation transition applied")
	return nil
}
