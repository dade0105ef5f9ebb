package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/munihub/civic-portal/internal/form"
	"github.com/munihub/civic-portal/internal/model"
	"github.com/munihub/civic-portal/internal/protocol"
	"github.com/munihub/civic-portal/internal/queue"
	"github.com/munihub/civic-portal/internal/repository"
)

// TxRunner runs a function inside one storage transaction.  Every
// repository call made with the context passed to fn joins it; an error
// rolls the whole unit back.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ItemReader loads content items.  GetForUpdate must take a row lock
// and is only legal inside a transaction.
type ItemReader interface {
	GetByID(ctx context.Context, id uint64) (*model.ContentItem, error)
	GetForUpdate(ctx context.Context, id uint64) (*model.ContentItem, error)
}

// RegistrationStore persists registrations.  Insert must translate a
// unique-key conflict on (item_id, active_user_id) into
// repository.ErrDuplicateActive.
type RegistrationStore interface {
	Insert(ctx context.Context, reg *model.Registration) error
	HasActive(ctx context.Context, itemID, userID uint64) (bool, error)
	GetForUser(ctx context.Context, id, userID uint64) (*model.Registration, error)
	ListByUser(ctx context.Context, userID uint64, page, limit int) ([]model.Registration, int, error)
	Cancel(ctx context.Context, id uint64, at time.Time) error
}

// RegistrationService orchestrates create/list/cancel of citizen
// registrations, composing the capacity ledger, the form validator and
// the protocol generator under one invariant-preserving transaction.
type RegistrationService struct {
	tx     TxRunner
	items  ItemReader
	regs   RegistrationStore
	ledger *CapacityLedger

	// publish is invoked after a successful commit; nil disables
	// publishing.  Failures are logged, never surfaced to the citizen.
	publish func(ctx context.Context, ev queue.RegistrationConfirmedEvent) error

	now func() time.Time
}

// NewRegistrationService wires the registration engine.  publish may be
// nil when no broker is configured.
func NewRegistrationService(tx TxRunner, items ItemReader, regs RegistrationStore, ledger *CapacityLedger,
	publish func(ctx context.Context, ev queue.RegistrationConfirmedEvent) error) *RegistrationService {
	return &RegistrationService{
		tx:      tx,
		items:   items,
		regs:    regs,
		ledger:  ledger,
		publish: publish,
		now:     time.Now,
	}
}

// Create registers userID on itemID with the submitted answers.
//
// The duplicate check outside the transaction is a fast path; the
// unique (item_id, active_user_id) constraint remains the authoritative
// backstop and a conflict on insert is reported as
// ErrDuplicateRegistration, never as a raw storage error.  The capacity
// check, by contrast, is only trusted inside the transaction after the
// item row is locked.
func (s *RegistrationService) Create(ctx context.Context, userID, itemID uint64, answers map[string]any) (*model.Registration, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.Status != model.StatusPublished {
		return nil, ErrNotPublished
	}
	if item.RegistrationMode != model.ModeRegistration {
		return nil, ErrRegistrationModeDisabled
	}
	if err := form.Validate(item.FormSchema, answers); err != nil {
		return nil, err
	}
	exists, err := s.regs.HasActive(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRegistration
	}

	code, err := protocol.Generate(item.Kind, s.now())
	if err != nil {
		return nil, err
	}
	reg := &model.Registration{
		ItemID:         itemID,
		UserID:         userID,
		ProtocolNumber: code,
		FormData:       answers,
	}
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		locked, err := s.items.GetForUpdate(ctx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return ErrNotFound
			}
			return err
		}
		// The item may have left PUBLISHED between the first read and
		// the lock; re-verify before taking a slot.
		if !locked.AcceptsRegistrations() {
			return ErrNotPublished
		}
		if err := s.ledger.Reserve(ctx, locked); err != nil {
			return err
		}
		if err := s.regs.Insert(ctx, reg); err != nil {
			if errors.Is(err, repository.ErrDuplicateActive) {
				return ErrDuplicateRegistration
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publish != nil {
		ev := queue.RegistrationConfirmedEvent{
			RegistrationID: reg.ID,
			ProtocolNumber: reg.ProtocolNumber,
			UserID:         userID,
			ItemID:         item.ID,
			ItemKind:       item.Kind,
			ItemTitle:      item.Title,
			StartsAt:       item.StartsAt.UTC().Format(time.RFC3339),
			ConfirmedAt:    s.now().UTC().Format(time.RFC3339),
		}
		if err := s.publish(ctx, ev); err != nil {
			log.Printf("registration: publish confirmed event failed: %v", err)
		}
	}
	return reg, nil
}

// Cancel withdraws the citizen's own registration.  Cancellation is
// only allowed before the item starts; cancelled rows are kept forever.
func (s *RegistrationService) Cancel(ctx context.Context, registrationID, userID uint64) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		reg, err := s.regs.GetForUser(ctx, registrationID, userID)
		if err != nil {
			if errors.Is(err, repository.ErrRegistrationNotFound) {
				return ErrNotFound
			}
			return err
		}
		if reg.Status == model.RegistrationCancelled {
			return ErrAlreadyCancelled
		}
		item, err := s.items.GetByID(ctx, reg.ItemID)
		if err != nil {
			return err
		}
		if !item.StartsAt.After(s.now().UTC()) {
			return ErrTooLateToCancel
		}
		return s.regs.Cancel(ctx, reg.ID, s.now())
	})
}

// ListForUser returns the caller's registrations, newest first.
func (s *RegistrationService) ListForUser(ctx context.Context, userID uint64, page, limit int) ([]model.Registration, int, error) {
	return s.regs.ListByUser(ctx, userID, page, limit)
}

// GetByID returns one registration, restricted to its owner.
func (s *RegistrationService) GetByID(ctx context.Context, registrationID, userID uint64) (*model.Registration, error) {
	reg, err := s.regs.GetForUser(ctx, registrationID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}
