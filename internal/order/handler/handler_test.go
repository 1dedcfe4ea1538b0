package handler

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/cli"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrders struct {
	records []model.OrderRecord
	err     error

	changedID     int64
	changedStatus model.OrderStatus
}

func (s *stubOrders) History(ctx context.Context) ([]model.OrderRecord, error) {
	return s.records, s.err
}

func (s *stubOrders) ListAll(ctx context.Context) ([]model.OrderRecord, error) {
	return s.records, s.err
}

func (s *stubOrders) ChangeStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	s.changedID, s.changedStatus = orderID, status
	return s.err
}

func run(uc *stubOrders, args ...string) (int, string, string) {
	opts := &cli.RootOptions{}
	h := NewOrderHandler(uc, logger.NewNopLogger())
	admin := &cobra.Command{Use: "admin"}
	admin.AddCommand(h.AdminCommands(opts)...)
	root := cli.NewRootCommand(opts, h.Command(opts), admin)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	return cli.Execute(context.Background(), root, opts), out.String(), errOut.String()
}

func TestOrdersEmptyHistory(t *testing.T) {
	code, out, _ := run(&stubOrders{}, "orders")

	require.Equal(t, cli.ExitSuccess, code)
	assert.Equal(t, "You have no orders yet.\n", out)
}

func TestOrderListRendersStatus(t *testing.T) {
	uc := &stubOrders{records: []model.OrderRecord{
		{
			ID:     12,
			Date:   model.Timestamp{Time: time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)},
			Total:  decimal.NewFromInt(500),
			Status: model.StatusDelivered,
			Details: []model.OrderDetail{
				{ProductID: 1, Quantity: 2, Price: decimal.NewFromInt(100)},
				{ProductID: 2, Quantity: 3, Price: decimal.NewFromInt(100)},
			},
		},
		{ID: 13, Total: decimal.NewFromInt(10), Status: model.OrderStatus(9), ClientID: 4},
	}}

	code, out, _ := run(uc, "orders")

	require.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, out, "#12")
	assert.Contains(t, out, "Delivered")
	assert.Contains(t, out, "$500.00")
	assert.Contains(t, out, "Unknown")
	assert.NotContains(t, out, "CLIENT")
}

func TestOrderStatusChange(t *testing.T) {
	uc := &stubOrders{}

	code, out, _ := run(uc, "admin", "order-status", "12", "In-Progress")

	require.Equal(t, cli.ExitSuccess, code)
	assert.Equal(t, int64(12), uc.changedID)
	assert.Equal(t, model.StatusInProgress, uc.changedStatus)
	assert.Equal(t, "order 12 is now In progress\n", out)
}

func TestOrderStatusRejectsUnknownStatus(t *testing.T) {
	uc := &stubOrders{}

	code, _, errOut := run(uc, "admin", "order-status", "12", "shipped")

	assert.Equal(t, cli.ExitFailure, code)
	assert.Contains(t, errOut, "E002")
	assert.Zero(t, uc.changedID)
}

func TestOrderStatusForbidden(t *testing.T) {
	uc := &stubOrders{err: auth.ErrForbidden}

	code, _, errOut := run(uc, "admin", "order-status", "12", "3")

	assert.Equal(t, cli.ExitFailure, code)
	assert.Contains(t, errOut, "E004")
}
