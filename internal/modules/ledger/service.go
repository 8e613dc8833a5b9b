package ledger

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"equipreserve/internal/domain"
	"equipreserve/internal/repository"
)

// missingLabel is shown where a reservation references a user or
// equipment record that has since been deleted.
const missingLabel = "not found"

type Service struct {
	reservations ReservationRepository
	equipment    EquipmentRepository
	users        UserReader
	tx           TxRunner
}

func NewService(
	reservations ReservationRepository,
	equipment EquipmentRepository,
	users UserReader,
	tx TxRunner,
) *Service {
	return &Service{
		reservations: reservations,
		equipment:    equipment,
		users:        users,
		tx:           tx,
	}
}

// Reserve creates an active reservation and flips the equipment to
// unavailable in one transaction. The equipment must exist, be marked
// available, and not be held by another active reservation.
func (s *Service) Reserve(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error) {
	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Purpose) == "" {
		return nil, ErrValidation
	}

	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var created *domain.Reservation
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		eq, err := s.equipment.GetByID(ctx, req.EquipmentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEquipmentNotFound
			}
			return err
		}

		held, err := s.reservations.HasActiveForEquipment(ctx, req.EquipmentID, "")
		if err != nil {
			return err
		}
		if held || !eq.Available {
			return ErrNotAvailable
		}

		r := &domain.Reservation{
			ID:          uuid.NewString(),
			UserID:      req.UserID,
			EquipmentID: req.EquipmentID,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Purpose:     req.Purpose,
			Status:      domain.ReservationActive,
		}
		if err := s.reservations.Insert(ctx, r); err != nil {
			return err
		}
		if _, err := s.equipment.SetAvailability(ctx, req.EquipmentID, false); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SetStatus moves a reservation through the transition set
//
//	active   -> returned | canceled
//	returned -> active
//	canceled -> active
//
// and flips the equipment's availability to match inside the same
// transaction. Reactivation fails when another active reservation took
// the equipment in the meantime.
func (s *Service) SetStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	if !status.Valid() {
		return nil, ErrValidation
	}

	var updated *domain.Reservation
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		current, err := s.reservations.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !allowedTransition(current.Status, status) {
			return ErrInvalidTransition
		}

		if status == domain.ReservationActive {
			held, err := s.reservations.HasActiveForEquipment(ctx, current.EquipmentID, current.ID)
			if err != nil {
				return err
			}
			if held {
				return ErrNotAvailable
			}
		}

		updated, err = s.reservations.SetStatus(ctx, id, status)
		if err != nil {
			return err
		}

		available := status != domain.ReservationActive
		if _, err := s.equipment.SetAvailability(ctx, current.EquipmentID, available); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			// equipment deleted since the reservation was made; the
			// status change still stands
			log.Printf("ledger: reservation %s references missing equipment %s, skipping availability flip", id, current.EquipmentID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Update replaces a reservation's references, dates, and purpose. The
// status only changes through SetStatus. Moving an active reservation
// to different equipment rehomes the availability hold.
func (s *Service) Update(ctx context.Context, id string, req UpdateReservationRequest) (*domain.Reservation, error) {
	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Purpose) == "" {
		return nil, ErrValidation
	}

	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var updated *domain.Reservation
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		current, err := s.reservations.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		eq, err := s.equipment.GetByID(ctx, req.EquipmentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEquipmentNotFound
			}
			return err
		}

		if current.Status == domain.ReservationActive && req.EquipmentID != current.EquipmentID {
			held, err := s.reservations.HasActiveForEquipment(ctx, req.EquipmentID, current.ID)
			if err != nil {
				return err
			}
			if held || !eq.Available {
				return ErrNotAvailable
			}
			if _, err := s.equipment.SetAvailability(ctx, current.EquipmentID, true); err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			if _, err := s.equipment.SetAvailability(ctx, req.EquipmentID, false); err != nil {
				return err
			}
		}

		r := &domain.Reservation{
			ID:          id,
			UserID:      req.UserID,
			EquipmentID: req.EquipmentID,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Purpose:     req.Purpose,
			Status:      current.Status,
		}
		if err := s.reservations.Update(ctx, r); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a reservation; an active one releases its equipment
// first. Deleting an id that is already gone is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		current, err := s.reservations.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}

		if current.Status == domain.ReservationActive {
			if _, err := s.equipment.SetAvailability(ctx, current.EquipmentID, true); err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
		}
		return s.reservations.Delete(ctx, id)
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*ReservationDetails, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	equipmentNames, userNames, err := s.nameIndexes(ctx)
	if err != nil {
		return nil, err
	}
	d := resolve(*r, equipmentNames, userNames)
	return &d, nil
}

// List returns reservations matching the filter, newest first is not
// guaranteed; order follows the stored array.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]ReservationDetails, error) {
	if filter.Status != "" && !domain.ReservationStatus(filter.Status).Valid() {
		return nil, ErrValidation
	}

	all, err := s.reservations.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	equipmentNames, userNames, err := s.nameIndexes(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]ReservationDetails, 0, len(all))
	for _, r := range all {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.EquipmentID != "" && r.EquipmentID != filter.EquipmentID {
			continue
		}
		if filter.Status != "" && r.Status != domain.ReservationStatus(filter.Status) {
			continue
		}

		d := resolve(r, equipmentNames, userNames)
		if query != "" && !matchesQuery(d, query) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// RebuildAvailability recomputes every equipment available flag from
// the set of active reservations and returns how many flags changed.
func (s *Service) RebuildAvailability(ctx context.Context) (int, error) {
	changed := 0
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		reservations, err := s.reservations.GetAll(ctx)
		if err != nil {
			return err
		}
		held := make(map[string]bool)
		for _, r := range reservations {
			if r.Status == domain.ReservationActive {
				held[r.EquipmentID] = true
			}
		}

		equipment, err := s.equipment.GetAll(ctx)
		if err != nil {
			return err
		}
		for _, eq := range equipment {
			want := !held[eq.ID]
			if eq.Available == want {
				continue
			}
			if _, err := s.equipment.SetAvailability(ctx, eq.ID, want); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

func (s *Service) nameIndexes(ctx context.Context) (map[string]string, map[string]string, error) {
	equipment, err := s.equipment.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	equipmentNames := make(map[string]string, len(equipment))
	for _, eq := range equipment {
		equipmentNames[eq.ID] = eq.Name
	}
	userNames := make(map[string]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.Name
	}
	return equipmentNames, userNames, nil
}

func resolve(r domain.Reservation, equipmentNames, userNames map[string]string) ReservationDetails {
	d := ReservationDetails{Reservation: r, EquipmentName: missingLabel, UserName: missingLabel}
	if name, ok := equipmentNames[r.EquipmentID]; ok {
		d.EquipmentName = name
	}
	if name, ok := userNames[r.UserID]; ok {
		d.UserName = name
	}
	return d
}

func matchesQuery(d ReservationDetails, query string) bool {
	return strings.Contains(strings.ToLower(d.EquipmentName), query) ||
		strings.Contains(strings.ToLower(d.UserName), query) ||
		strings.Contains(strings.ToLower(d.Purpose), query)
}

func allowedTransition(from, to domain.ReservationStatus) bool {
	switch from {
	case domain.ReservationActive:
		return to == domain.ReservationReturned || to == domain.ReservationCanceled
	case domain.ReservationReturned, domain.ReservationCanceled:
		return to == domain.ReservationActive
	}
	return false
}

func validateDateRange(startDate, endDate string) error {
	start, err := time.Parse(domain.DateLayout, startDate)
	if err != nil {
		return ErrValidation
	}
	end, err := time.Parse(domain.DateLayout, endDate)
	if err != nil {
		return ErrValidation
	}
	if end.Before(start) {
		return ErrValidation
	}
	return nil
}
