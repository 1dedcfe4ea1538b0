package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	catalogHandler "github.com/fekuna/omnipos-storefront/internal/catalog/handler"
	"github.com/fekuna/omnipos-storefront/internal/cli"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

// Command is the buyer's order history.
func (h *OrderHandler) Command(opts *cli.RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Show your past orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := h.uc.History(cmd.Context())
			if err != nil {
				return err
			}
			return opts.Formatter(cmd).Success(newOrderList(records, true))
		},
	}
}

// AdminCommands returns "orders" and "order-status" for the admin group.
func (h *OrderHandler) AdminCommands(opts *cli.RootOptions) []*cobra.Command {
	list := &cobra.Command{
		Use:   "orders",
		Short: "List every order in the shop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := h.uc.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			return opts.Formatter(cmd).Success(newOrderList(records, false))
		},
	}

	status := &cobra.Command{
		Use:   "order-status <order-id> <status>",
		Short: "Move an order to pending, in-progress, delivered or canceled",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := catalogHandler.ParseID(args[0])
			if err != nil {
				return err
			}
			s, err := model.ParseOrderStatus(strings.ToLower(args[1]))
			if err != nil {
				return model.NewValidationError("status", "%q is not an order status", args[1])
			}
			if err := h.uc.ChangeStatus(cmd.Context(), id, s); err != nil {
				h.logger.Error("failed to change order status",
					zap.Int64("order_id", id),
					zap.Int("status", int(s)),
					zap.Error(err),
				)
				return err
			}
			return opts.Formatter(cmd).Success(statusChanged{OrderID: id, Status: s.Descriptor().Label})
		},
	}

	return []*cobra.Command{list, status}
}

// OrderView is an order record with its status rendered for display.
type OrderView struct {
	ID       int64               `json:"id"`
	Date     time.Time           `json:"date"`
	Total    string              `json:"total"`
	Status   string              `json:"status"`
	Color    string              `json:"status_color"`
	ClientID int64               `json:"client_id"`
	Lines    []model.OrderDetail `json:"lines"`
}

type OrderList struct {
	Orders []OrderView `json:"orders"`
	own    bool
}

func newOrderList(records []model.OrderRecord, own bool) OrderList {
	views := make([]OrderView, 0, len(records))
	for _, r := range records {
		d := r.Status.Descriptor()
		views = append(views, OrderView{
			ID:       r.ID,
			Date:     r.Date.Time,
			Total:    r.Total.StringFixed(2),
			Status:   d.Label,
			Color:    d.Color,
			ClientID: r.ClientID,
			Lines:    r.Details,
		})
	}
	return OrderList{Orders: views, own: own}
}

func (l OrderList) String() string {
	if len(l.Orders) == 0 {
		if l.own {
			return "You have no orders yet."
		}
		return "No orders."
	}

	headers := []string{"ORDER", "DATE", "ITEMS", "TOTAL", "STATUS"}
	if !l.own {
		headers = append(headers, "CLIENT")
	}
	rows := make([][]string, 0, len(l.Orders))
	for _, o := range l.Orders {
		items := 0
		for _, d := range o.Lines {
			items += d.Quantity
		}
		date := "-"
		if !o.Date.IsZero() {
			date = o.Date.Local().Format(time.DateOnly)
		}
		row := []string{"#" + strconv.FormatInt(o.ID, 10), date, strconv.Itoa(items), "$" + o.Total, o.Status}
		if !l.own {
			row = append(row, strconv.FormatInt(o.ClientID, 10))
		}
		rows = append(rows, row)
	}
	return cli.Table(headers, rows)
}

type statusChanged struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

func (s statusChanged) String() string {
	return fmt.Sprintf("order %d is now %s", s.OrderID, s.Status)
}
