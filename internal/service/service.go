package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"craftynet/api/internal/model"
	"craftynet/api/internal/repository"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrMissingFields = errors.New("missing required fields")
	ErrDuplicate     = errors.New("duplicate record")
	ErrNotCreatable  = errors.New("resource does not support create")
	errMissingID     = errors.New("insert returned no id")
)

// InternalError is an unexpected fault whose message is safe to show.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string { return e.Err.Error() }
func (e *InternalError) Unwrap() error { return e.Err }

// Store is the query adapter the service runs statements through.
type Store interface {
	Query(ctx context.Context, query string, args ...any) (repository.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (*repository.Result, error)
}

type ResourceService struct {
	store    Store
	validate *validator.Validate
}

func NewResourceService(store Store) *ResourceService {
	return &ResourceService{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// List returns every row of the resource's table. An empty table is not an
// error.
func (s *ResourceService) List(ctx context.Context, res Resource) (repository.Rows, error) {
	rows, err := s.store.Query(ctx, res.listSQL())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", res.Path, err)
	}
	return rows, nil
}

// Get returns the row with the given id, or ErrNotFound when none matches.
func (s *ResourceService) Get(ctx context.Context, res Resource, id int64) (repository.Row, error) {
	rows, err := s.store.Query(ctx, res.getSQL(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %d: %w", res.Path, id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// Create checks rec, runs the resource guard if any and inserts one row.
// On success rec carries the generated id.
func (s *ResourceService) Create(ctx context.Context, res Resource, rec model.Record) (err error) {
	if !res.CanCreate() {
		return ErrNotCreatable
	}

	if res.Guard != nil {
		defer func() {
			if p := recover(); p != nil {
				err = &InternalError{Err: fmt.Errorf("%v", p)}
			}
		}()
	}

	if err := s.validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", ErrMissingFields, verrs.Error())
		}
		return &InternalError{Err: err}
	}

	if res.Guard != nil {
		if err := res.Guard(ctx, s.store, rec); err != nil {
			return err
		}
	}

	result, err := s.store.Exec(ctx, res.insertSQL(), rec.Values()...)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", res.Path, err)
	}

	id, ok := result.InsertedID()
	if !ok {
		return fmt.Errorf("failed to create %s: %w", res.Path, errMissingID)
	}
	rec.SetID(id)

	return nil
}
