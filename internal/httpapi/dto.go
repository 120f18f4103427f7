package httpapi

import (
	"time"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
)

type orderDTO struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	Badge        string `json:"badge"`
	Total        string `json:"total"`
	TotalMinor   int64  `json:"total_minor"`
}

func toOrderDTO(order domain.Order) orderDTO {
	return orderDTO{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Date:         order.DateString(),
		Status:       string(order.Status),
		Badge:        order.Status.BadgeVariant(),
		Total:        order.FormatTotal(),
		TotalMinor:   order.TotalMinor,
	}
}

func toOrderDTOs(orders []domain.Order) []orderDTO {
	out := make([]orderDTO, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderDTO(order))
	}
	return out
}

type listResponse struct {
	Search  string     `json:"search"`
	Status  string     `json:"status"`
	Orders  []orderDTO `json:"orders"`
	Count   int        `json:"count"`
	Empty   bool       `json:"empty"`
	Message string     `json:"message,omitempty"`
}

func newListResponse(criteria domain.FilterCriteria, visible []domain.Order, emptyMessage string) listResponse {
	status := criteria.Status
	if status.IsAll() {
		status = domain.StatusFilterAll
	}
	resp := listResponse{
		Search: criteria.SearchTerm,
		Status: string(status),
		Orders: toOrderDTOs(visible),
		Count:  len(visible),
	}
	if len(visible) == 0 {
		resp.Empty = true
		resp.Message = emptyMessage
	}
	return resp
}

type dialogDTO struct {
	Open  bool      `json:"open"`
	Order *orderDTO `json:"order,omitempty"`
}

func toDialogDTO(state domain.EditDialogState) dialogDTO {
	dto := dialogDTO{Open: state.IsOpen}
	if state.Target != nil {
		order := toOrderDTO(*state.Target)
		dto.Order = &order
	}
	return dto
}

type viewResponse struct {
	listResponse
	Dialog dialogDTO `json:"dialog"`
}

type timelineEventDTO struct {
	Type     string    `json:"type"`
	Reason   string    `json:"reason"`
	Occurred time.Time `json:"occurred"`
}

type timelineResponse struct {
	OrderID string             `json:"order_id"`
	Events  []timelineEventDTO `json:"events"`
}

type statusDTO struct {
	Status string `json:"status"`
	Badge  string `json:"badge"`
}

type filterRequest struct {
	Search string `json:"search"`
	Status string `json:"status"`
}

type selectStatusRequest struct {
	Status string `json:"status"`
}
