package grpcsvc

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
	"github.com/vladislavdragonenkov/oms-admin/internal/service/filter"
)

func stringField(req *structpb.Struct, key string) string {
	if req == nil {
		return ""
	}
	value, ok := req.GetFields()[key]
	if !ok {
		return ""
	}
	return value.GetStringValue()
}

func requiredField(req *structpb.Struct, key string) (string, error) {
	value := stringField(req, key)
	if value == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	return value, nil
}

func newStruct(payload map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(payload)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}

func orderPayload(order domain.Order) map[string]interface{} {
	return map[string]interface{}{
		"id":            order.ID,
		"customer_name": order.CustomerName,
		"date":          order.DateString(),
		"status":        string(order.Status),
		"badge":         order.Status.BadgeVariant(),
		"total":         order.FormatTotal(),
		"total_minor":   order.TotalMinor,
	}
}

func listPayload(visible []domain.Order) map[string]interface{} {
	orders := make([]interface{}, 0, len(visible))
	for _, order := range visible {
		orders = append(orders, orderPayload(order))
	}
	payload := map[string]interface{}{
		"orders": orders,
		"count":  len(visible),
		"empty":  filter.IsEmpty(visible),
	}
	if filter.IsEmpty(visible) {
		payload["message"] = filter.EmptyStateMessage
	}
	return payload
}

func dialogPayload(state domain.EditDialogState) map[string]interface{} {
	payload := map[string]interface{}{"open": state.IsOpen}
	if state.Target != nil {
		payload["order"] = orderPayload(*state.Target)
	}
	return payload
}
