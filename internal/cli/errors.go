package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/httpapi"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/spf13/cobra"
)

// Error codes reported in the JSON envelope and in "Error [Exxx]" text lines.
const (
	ErrCodeGeneric         = "E001"
	ErrCodeValidation      = "E002"
	ErrCodeNotLoggedIn     = "E003"
	ErrCodeForbidden       = "E004"
	ErrCodeRequest         = "E005"
	ErrCodePartialPurchase = "E006"
	ErrCodeBusy            = "E007"
)

// Describe maps an error to its code, exit status, user message and optional details.
func Describe(err error) (code string, exit int, message string, details any) {
	var (
		partial *checkout.PartialPurchaseError
		invalid *model.ValidationError
		request *httpapi.RequestError
		exitErr *ExitError
	)

	switch {
	case errors.As(err, &partial):
		msg := "purchase failed"
		if errors.As(err, &request) {
			msg = request.Message(msg)
		}
		return ErrCodePartialPurchase, ExitFailure,
			fmt.Sprintf("%s; bill %d was already created and was not rolled back", msg, partial.BillID),
			map[string]any{
				"step":          partial.Step,
				"bill_id":       partial.BillID,
				"order_id":      partial.OrderID,
				"lines_created": partial.LinesCreated,
			}
	case errors.As(err, &invalid):
		return ErrCodeValidation, ExitFailure, invalid.Error(), nil
	case errors.Is(err, auth.ErrNotAuthenticated):
		return ErrCodeNotLoggedIn, ExitFailure, "you are not logged in; run `storefront login` first", nil
	case errors.Is(err, auth.ErrForbidden):
		return ErrCodeForbidden, ExitFailure, err.Error(), nil
	case errors.Is(err, checkout.ErrBusy):
		return ErrCodeBusy, ExitFailure, err.Error(), nil
	case errors.As(err, &request):
		var d any
		if request.StatusCode != 0 {
			d = map[string]any{"status": request.StatusCode, "path": request.Path}
		}
		return ErrCodeRequest, ExitCommandError, request.Message(request.Error()), d
	case errors.As(err, &exitErr):
		return ErrCodeGeneric, exitErr.Code, exitErr.Error(), nil
	}
	return ErrCodeGeneric, ExitFailure, err.Error(), nil
}

// Execute runs root and reports any error in the selected format. It returns the
// process exit code.
func Execute(ctx context.Context, root *cobra.Command, opts *RootOptions) int {
	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	code, exit, message, details := Describe(err)
	f := opts.Formatter(root)
	if f.Format != "json" {
		f.Format = "text"
	}
	_ = f.Error(code, message, details)
	return exit
}
