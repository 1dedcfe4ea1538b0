package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/httpapi"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand(&RootOptions{})

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func newTestRoot(opts *RootOptions, run func(cmd *cobra.Command) error) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	child := &cobra.Command{
		Use:  "do",
		RunE: func(cmd *cobra.Command, args []string) error { return run(cmd) },
	}
	root := NewRootCommand(opts, child)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	return root, out, errOut
}

type greeting string

func (g greeting) String() string { return "hello " + string(g) }

func TestExecuteSuccessText(t *testing.T) {
	opts := &RootOptions{}
	root, out, _ := newTestRoot(opts, func(cmd *cobra.Command) error {
		return opts.Formatter(cmd).Success(greeting("ana"))
	})
	root.SetArgs([]string{"do"})

	assert.Equal(t, ExitSuccess, Execute(context.Background(), root, opts))
	assert.Equal(t, "hello ana\n", out.String())
}

func TestExecuteSuccessJSON(t *testing.T) {
	opts := &RootOptions{}
	root, out, _ := newTestRoot(opts, func(cmd *cobra.Command) error {
		return opts.Formatter(cmd).Success(map[string]int{"count": 2})
	})
	root.SetArgs([]string{"--format", "json", "do"})

	require.Equal(t, ExitSuccess, Execute(context.Background(), root, opts))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	opts := &RootOptions{}
	root, _, errOut := newTestRoot(opts, func(cmd *cobra.Command) error { return nil })
	root.SetArgs([]string{"--format", "yaml", "do"})

	assert.Equal(t, ExitCommandError, Execute(context.Background(), root, opts))
	assert.Contains(t, errOut.String(), "invalid format")
}

func TestExecuteReportsErrorsAsJSON(t *testing.T) {
	opts := &RootOptions{}
	root, out, _ := newTestRoot(opts, func(cmd *cobra.Command) error {
		return &httpapi.RequestError{Method: "GET", Path: "/cart/1", StatusCode: 503, Detail: "maintenance"}
	})
	root.SetArgs([]string{"--format", "json", "do"})

	require.Equal(t, ExitCommandError, Execute(context.Background(), root, opts))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeRequest, resp.Error.Code)
	assert.Equal(t, "maintenance", resp.Error.Message)
}

func TestDescribe(t *testing.T) {
	request := &httpapi.RequestError{Method: "POST", Path: "/order_details", StatusCode: 500, Detail: "db error"}
	partial := &checkout.PartialPurchaseError{Step: checkout.StepOrderLines, BillID: 3, OrderID: 4, Err: request}

	tests := []struct {
		name string
		err  error
		code string
		exit int
	}{
		{"validation", model.NewValidationError("quantity", "only %d in stock", 5), ErrCodeValidation, ExitFailure},
		{"not logged in", fmt.Errorf("cart: %w", auth.ErrNotAuthenticated), ErrCodeNotLoggedIn, ExitFailure},
		{"forbidden", auth.ErrForbidden, ErrCodeForbidden, ExitFailure},
		{"busy", checkout.ErrBusy, ErrCodeBusy, ExitFailure},
		{"request", request, ErrCodeRequest, ExitCommandError},
		{"partial", partial, ErrCodePartialPurchase, ExitFailure},
		{"exit error", NewExitError(ExitCommandError, "bad flag"), ErrCodeGeneric, ExitCommandError},
		{"other", errors.New("boom"), ErrCodeGeneric, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, exit, message, _ := Describe(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.exit, exit)
			assert.NotEmpty(t, message)
		})
	}

	_, _, message, details := Describe(partial)
	assert.True(t, strings.HasPrefix(message, "db error"))
	assert.Contains(t, message, "bill 3")
	assert.Equal(t, int64(4), details.(map[string]any)["order_id"])
}

func TestOutputFormatterTextError(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut, Verbose: true}

	require.NoError(t, f.Error(ErrCodeValidation, "quantity: only 5 in stock", map[string]int{"max": 5}))

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error [E002]")
	assert.Contains(t, errOut.String(), "Details:")
}

func TestVerboseLog(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	f.VerboseLog("hidden")
	assert.Empty(t, buf.String())

	f.Verbose = true
	f.VerboseLog("shown %d", 1)
	assert.Equal(t, "shown 1\n", buf.String())
}

func TestTable(t *testing.T) {
	got := Table([]string{"ID", "NAME"}, [][]string{{"1", "Headphones"}, {"22", "Mug"}})

	assert.Equal(t, "ID  NAME\n1   Headphones\n22  Mug", got)
	assert.Equal(t, "$12.50", Money(decimal.RequireFromString("12.5")))
}

func TestConfirm(t *testing.T) {
	out := &bytes.Buffer{}
	assert.True(t, Confirm(strings.NewReader("yes\n"), out, "Save?"))
	assert.Contains(t, out.String(), "Save? [y/N]")
	assert.False(t, Confirm(strings.NewReader("n\n"), out, "Save?"))
	assert.False(t, Confirm(strings.NewReader(""), out, "Save?"))
	assert.True(t, Confirm(strings.NewReader("Y"), out, "Save?"))
}
