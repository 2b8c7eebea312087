package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	"library-backend/internal/events"
)

type stubTx struct{}

func (stubTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubAuthorRepo struct {
	author.Repository

	createFn  func(ctx context.Context, a *author.Author) (*author.Author, error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (*author.Author, error)
	updateFn  func(ctx context.Context, a *author.Author) (*author.Author, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (s *stubAuthorRepo) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	if s.createFn != nil {
		return s.createFn(ctx, a)
	}
	a.ID = uuid.New()
	return a, nil
}

func (s *stubAuthorRepo) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, author.ErrAuthorNotFound
}

func (s *stubAuthorRepo) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, a)
	}
	return a, nil
}

func (s *stubAuthorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func TestAuthorService_Create(t *testing.T) {
	repo := &stubAuthorRepo{}
	svc := NewAuthorService(repo, events.NewBus(), stubTx{})

	birth := time.Date(1911, 12, 11, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(context.Background(), &author.CreateAuthorRequest{
		Name:      "Naguib Mahfouz",
		BirthDate: &birth,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Naguib Mahfouz", created.Name)
}

func TestAuthorService_Create_RejectsEmptyName(t *testing.T) {
	svc := NewAuthorService(&stubAuthorRepo{}, events.NewBus(), stubTx{})

	_, err := svc.Create(context.Background(), &author.CreateAuthorRequest{Name: ""})
	assert.Error(t, err)
}

func TestAuthorService_Create_RejectsFutureBirthDate(t *testing.T) {
	svc := NewAuthorService(&stubAuthorRepo{}, events.NewBus(), stubTx{})

	future := time.Now().AddDate(1, 0, 0)
	_, err := svc.Create(context.Background(), &author.CreateAuthorRequest{
		Name:      "Time Traveler",
		BirthDate: &future,
	})
	assert.Error(t, err)
}

func TestAuthorService_Update_OverwritesFields(t *testing.T) {
	existing := &author.Author{ID: uuid.New(), Name: "Old Name"}
	repo := &stubAuthorRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*author.Author, error) {
			return existing, nil
		},
	}
	svc := NewAuthorService(repo, events.NewBus(), stubTx{})

	nat := "Egyptian"
	updated, err := svc.Update(context.Background(), existing.ID, &author.UpdateAuthorRequest{
		Name:        "New Name",
		Nationality: &nat,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, &nat, updated.Nationality)
}

func TestAuthorService_Delete_PublishesBeforeRemoving(t *testing.T) {
	a := &author.Author{ID: uuid.New(), Name: "Taha Hussein"}

	var order []string
	repo := &stubAuthorRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*author.Author, error) {
			return a, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			order = append(order, "delete")
			return nil
		},
	}

	bus := events.NewBus()
	bus.OnAuthorDeleted(func(ctx context.Context, ev events.AuthorDeleted) error {
		order = append(order, "cascade")
		assert.Equal(t, *a, ev.Author)
		return nil
	})

	svc := NewAuthorService(repo, bus, stubTx{})

	require.NoError(t, svc.Delete(context.Background(), a.ID))
	assert.Equal(t, []string{"cascade", "delete"}, order, "handlers must run while the author row still exists")
}

func TestAuthorService_Delete_CascadeFailureAbortsDeletion(t *testing.T) {
	a := &author.Author{ID: uuid.New(), Name: "Taha Hussein"}
	boom := errors.New("cascade failed")

	deleteCalled := false
	repo := &stubAuthorRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*author.Author, error) {
			return a, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleteCalled = true
			return nil
		},
	}

	bus := events.NewBus()
	bus.OnAuthorDeleted(func(ctx context.Context, ev events.AuthorDeleted) error {
		return boom
	})

	svc := NewAuthorService(repo, bus, stubTx{})

	err := svc.Delete(context.Background(), a.ID)
	require.ErrorIs(t, err, boom)
	assert.False(t, deleteCalled, "a failed handler must abort the deletion")
}

func TestAuthorService_Delete_SecondDeleteFails(t *testing.T) {
	svc := NewAuthorService(&stubAuthorRepo{}, events.NewBus(), stubTx{})

	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, author.ErrAuthorNotFound)
}
