package model

import "fmt"

type OrderStatus int

const (
	StatusPending    OrderStatus = 1
	StatusInProgress OrderStatus = 2
	StatusDelivered  OrderStatus = 3
	StatusCanceled   OrderStatus = 4
)

var AllStatuses = []OrderStatus{StatusPending, StatusInProgress, StatusDelivered, StatusCanceled}

type StatusDescriptor struct {
	Label string
	Color string
}

func (s OrderStatus) Valid() bool {
	return s >= StatusPending && s <= StatusCanceled
}

// Descriptor is total: codes outside the enum render as "Unknown".
func (s OrderStatus) Descriptor() StatusDescriptor {
	switch s {
	case StatusPending:
		return StatusDescriptor{Label: "Pending", Color: "yellow"}
	case StatusInProgress:
		return StatusDescriptor{Label: "In progress", Color: "blue"}
	case StatusDelivered:
		return StatusDescriptor{Label: "Delivered", Color: "green"}
	case StatusCanceled:
		return StatusDescriptor{Label: "Canceled", Color: "red"}
	default:
		return StatusDescriptor{Label: "Unknown", Color: "gray"}
	}
}

func (s OrderStatus) String() string {
	return s.Descriptor().Label
}

// ParseOrderStatus accepts either the numeric code or a case-insensitive label key.
func ParseOrderStatus(v string) (OrderStatus, error) {
	switch v {
	case "1", "pending":
		return StatusPending, nil
	case "2", "in-progress", "in_progress", "inprogress":
		return StatusInProgress, nil
	case "3", "delivered":
		return StatusDelivered, nil
	case "4", "canceled", "cancelled":
		return StatusCanceled, nil
	}
	return 0, fmt.Errorf("unknown order status %q", v)
}
