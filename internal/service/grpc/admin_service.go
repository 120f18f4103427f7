package grpcsvc

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
	"github.com/vladislavdragonenkov/oms-admin/internal/service/filter"
	"github.com/vladislavdragonenkov/oms-admin/internal/service/ordersview"
)

// AdminService реализует OrderAdmin поверх хранилища и страницы заказов.
type AdminService struct {
	store  domain.OrderStore
	view   *ordersview.View
	logger *log.Entry
}

var _ OrderAdminServer = (*AdminService)(nil)

// NewAdminService конструирует сервис с зависимостями.
func NewAdminService(store domain.OrderStore, view *ordersview.View, logger *log.Entry) *AdminService {
	if logger == nil {
		logger = log.WithField("component", "grpc-api")
	}
	return &AdminService{store: store, view: view, logger: logger}
}

// ListOrders фильтрует заказы по search/status, не трогая состояние страницы.
func (s *AdminService) ListOrders(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	statusFilter, err := domain.ParseStatusFilter(stringField(req, "status"))
	if err != nil {
		return nil, s.toStatusError(err, "ListOrders")
	}
	criteria := domain.FilterCriteria{SearchTerm: stringField(req, "search"), Status: statusFilter}

	visible := filter.Apply(s.store.List(), criteria)
	return newStruct(listPayload(visible))
}

// GetOrder возвращает заказ по order_id.
func (s *AdminService) GetOrder(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	orderID, err := requiredField(req, "order_id")
	if err != nil {
		return nil, err
	}
	order, err := s.store.Get(orderID)
	if err != nil {
		return nil, s.toStatusError(err, "GetOrder")
	}
	return newStruct(orderPayload(order))
}

// OpenEdit открывает окно редактирования статуса для order_id.
func (s *AdminService) OpenEdit(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	orderID, err := requiredField(req, "order_id")
	if err != nil {
		return nil, err
	}
	if err := s.view.EditStatus(orderID); err != nil {
		return nil, s.toStatusError(err, "OpenEdit")
	}
	return newStruct(dialogPayload(s.view.DialogState()))
}

// SelectStatus коммитит выбранный статус и закрывает окно.
func (s *AdminService) SelectStatus(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw, err := requiredField(req, "status")
	if err != nil {
		return nil, err
	}
	newStatus, err := domain.ParseOrderStatus(raw)
	if err != nil {
		return nil, s.toStatusError(err, "SelectStatus")
	}
	if err := s.view.ChooseStatus(newStatus); err != nil {
		return nil, s.toStatusError(err, "SelectStatus")
	}
	return newStruct(dialogPayload(s.view.DialogState()))
}

// CancelEdit закрывает окно без изменений.
func (s *AdminService) CancelEdit(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := s.view.CancelEdit(); err != nil {
		return nil, s.toStatusError(err, "CancelEdit")
	}
	return newStruct(dialogPayload(s.view.DialogState()))
}

// GetDialog возвращает текущее состояние окна.
func (s *AdminService) GetDialog(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return newStruct(dialogPayload(s.view.DialogState()))
}

func (s *AdminService) toStatusError(err error, operation string) error {
	entry := s.logger.WithError(err).WithField("operation", operation)

	switch {
	case domain.IsNotFound(err):
		entry.Debug("order not found")
		return status.Error(codes.NotFound, err.Error())
	case domain.IsInvalidState(err):
		entry.Debug("edit session rejected transition")
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrInvalidStatus):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		entry.Error("admin operation failed")
		return status.Error(codes.Internal, "internal error")
	}
}
