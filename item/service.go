package item

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/mp/database"
	"github.com/kbukum/mp/database/query"
	apperrors "github.com/kbukum/mp/errors"
	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/observability"
	"github.com/kbukum/mp/validation"
)

const resourceName = "Item"

// Service exposes item operations. Every error it returns is an
// *apperrors.AppError.
type Service struct {
	repo *Repository
	log  *logger.Logger
}

// NewService creates a service over repo.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo, log: logger.WithComponent("item")}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Item, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanItemCreate)
	defer span.End()

	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	it := &Item{Name: in.Name, Description: in.Description}
	if err := s.repo.Create(ctx, it); err != nil {
		observability.SetSpanError(ctx, err)
		return nil, database.FromDatabase(err, resourceName, "")
	}

	span.SetAttributes(attribute.Int64(observability.AttrItemID, it.ID))
	s.log.WithContext(ctx).Info("item created", logger.Fields("item_id", it.ID))
	return it, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanItemGet)
	defer span.End()
	span.SetAttributes(attribute.Int64(observability.AttrItemID, id))

	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.mapError(ctx, err, id)
	}
	return it, nil
}

// Update changes only the fields present in in.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Item, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanItemUpdate)
	defer span.End()
	span.SetAttributes(attribute.Int64(observability.AttrItemID, id))

	if err := in.Validate(); err != nil {
		return nil, err
	}

	it, err := s.repo.Update(ctx, id, in.changes())
	if err != nil {
		return nil, s.mapError(ctx, err, id)
	}
	s.log.WithContext(ctx).Info("item updated", logger.Fields("item_id", id))
	return it, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanItemDelete)
	defer span.End()
	span.SetAttributes(attribute.Int64(observability.AttrItemID, id))

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(ctx, err, id)
	}
	s.log.WithContext(ctx).Info("item deleted", logger.Fields("item_id", id))
	return nil
}

func (s *Service) List(ctx context.Context, params query.Params) (*query.Result[Item], error) {
	res, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, s.mapError(ctx, err, 0)
	}
	return res, nil
}

func (s *Service) mapError(ctx context.Context, err error, id int64) *apperrors.AppError {
	var idStr string
	if id > 0 {
		idStr = strconv.FormatInt(id, 10)
	}
	appErr := database.FromDatabase(err, resourceName, idStr)
	if appErr.HTTPStatus >= 500 {
		observability.SetSpanError(ctx, err)
		s.log.WithContext(ctx).WithError(err).Error("item query failed")
	}
	return appErr
}
