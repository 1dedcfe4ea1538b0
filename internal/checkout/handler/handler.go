package handler

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	catalogHandler "github.com/fekuna/omnipos-storefront/internal/catalog/handler"
	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/cli"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	uc      checkout.UseCase
	session auth.IdentitySource
	logger  logger.ZapLogger
}

func NewCheckoutHandler(uc checkout.UseCase, sess auth.IdentitySource, log logger.ZapLogger) *CheckoutHandler {
	return &CheckoutHandler{
		uc:      uc,
		session: sess,
		logger:  log,
	}
}

// NewAdjustmentPrinter writes the server's adjustment messages to w.
func NewAdjustmentPrinter(w io.Writer) checkout.Notifier {
	return checkout.NotifierFunc(func(cart *model.Cart) {
		for _, l := range cart.Items {
			if l.Adjusted() {
				fmt.Fprintf(w, "Note: %s: %s\n", l.Product.Name, l.AdjustmentMessage)
			}
		}
	})
}

// Commands returns "cart" and "checkout".
func (h *CheckoutHandler) Commands(opts *cli.RootOptions) []*cobra.Command {
	return []*cobra.Command{h.cartCommand(opts), h.checkoutCommand(opts)}
}

func (h *CheckoutHandler) cartCommand(opts *cli.RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and change your cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart as the server holds it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := h.uc.Load(cmd.Context())
			if err != nil {
				return err
			}
			return opts.Formatter(cmd).Success(CartView{Cart: c})
		},
	}

	var qty int
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Put a product in the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := catalogHandler.ParseID(args[0])
			if err != nil {
				return err
			}
			return h.change(cmd, opts, func() (*model.Cart, error) {
				return h.uc.Add(cmd.Context(), pid, qty)
			})
		},
	}
	add.Flags().IntVar(&qty, "qty", 1, "quantity to add")

	set := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Change the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := catalogHandler.ParseID(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return model.NewValidationError("quantity", "%q is not a number", args[1])
			}
			return h.change(cmd, opts, func() (*model.Cart, error) {
				return h.uc.ChangeQuantity(cmd.Context(), pid, n)
			})
		},
	}

	remove := &cobra.Command{
		Use:     "remove <product-id>",
		Aliases: []string{"rm"},
		Short:   "Take a product out of the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := catalogHandler.ParseID(args[0])
			if err != nil {
				return err
			}
			return h.change(cmd, opts, func() (*model.Cart, error) {
				return h.uc.Remove(cmd.Context(), pid)
			})
		},
	}

	cmd.AddCommand(show, add, set, remove)
	return cmd
}

// change loads the cart first so quantity checks run against the server's
// current stock, then applies op. A rejected write still prints the cart.
func (h *CheckoutHandler) change(cmd *cobra.Command, opts *cli.RootOptions, op func() (*model.Cart, error)) error {
	if _, err := h.uc.Load(cmd.Context()); err != nil {
		return err
	}
	c, err := op()
	if err != nil {
		if c != nil {
			opts.Formatter(cmd).VerboseLog("%s", CartView{Cart: c})
		}
		return err
	}
	return opts.Formatter(cmd).Success(CartView{Cart: c})
}

type checkoutFlags struct {
	payment     string
	name        string
	lastName    string
	email       string
	phone       string
	saveProfile string
}

func (h *CheckoutHandler) checkoutCommand(opts *cli.RootOptions) *cobra.Command {
	flags := &checkoutFlags{}
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Buy everything in the cart",
		Long: `Buy everything in the cart.

Contact details default to your profile. When you change them here you are asked
whether to save them to your profile as well; --save-profile answers in advance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := auth.RequireIdentity(h.session)
			if err != nil {
				return err
			}
			decide, err := h.decider(cmd, flags.saveProfile)
			if err != nil {
				return err
			}

			form := checkout.FormFor(*id)
			fs := cmd.Flags()
			if fs.Changed("payment") {
				p := strings.ToLower(flags.payment)
				if p != "cash" && p != "card" {
					return model.NewValidationError("payment", "must be cash or card")
				}
				form.Payment = p
			}
			if fs.Changed("name") {
				form.Name = flags.name
			}
			if fs.Changed("lastname") {
				form.LastName = flags.lastName
			}
			if fs.Changed("email") {
				form.Email = flags.email
			}
			if fs.Changed("phone") {
				form.Telephone = flags.phone
			}
			if err := form.Validate(); err != nil {
				return err
			}

			if _, err := h.uc.Load(cmd.Context()); err != nil {
				return err
			}
			receipt, err := h.uc.Checkout(cmd.Context(), form, decide)
			if err != nil {
				h.logger.Error("checkout failed", zap.Int64("user_id", id.ID), zap.Error(err))
				return err
			}
			return opts.Formatter(cmd).Success(ReceiptView(*receipt))
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&flags.payment, "payment", "cash", "cash or card")
	fs.StringVar(&flags.name, "name", "", "first name for this order")
	fs.StringVar(&flags.lastName, "lastname", "", "last name for this order")
	fs.StringVar(&flags.email, "email", "", "email for this order")
	fs.StringVar(&flags.phone, "phone", "", "phone for this order, 10 to 13 digits")
	fs.StringVar(&flags.saveProfile, "save-profile", "ask", "save changed contact details: yes, no or ask")
	return cmd
}

func (h *CheckoutHandler) decider(cmd *cobra.Command, answer string) (checkout.DecideFunc, error) {
	switch strings.ToLower(answer) {
	case "yes", "y":
		return func(model.Identity, checkout.Form) checkout.Decision { return checkout.SaveAndPurchase }, nil
	case "no", "n":
		return func(model.Identity, checkout.Form) checkout.Decision { return checkout.PurchaseOnly }, nil
	case "ask":
		return func(model.Identity, checkout.Form) checkout.Decision {
			if cli.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Save these contact details to your profile?") {
				return checkout.SaveAndPurchase
			}
			return checkout.PurchaseOnly
		}, nil
	}
	return nil, model.NewValidationError("save-profile", "must be yes, no or ask")
}

type CartView struct {
	Cart *model.Cart `json:"cart"`
}

func (v CartView) String() string {
	if v.Cart.Empty() {
		return "Your cart is empty."
	}
	rows := make([][]string, 0, len(v.Cart.Items))
	for _, l := range v.Cart.Items {
		rows = append(rows, []string{
			strconv.FormatInt(l.ProductID, 10),
			l.Product.Name,
			strconv.Itoa(l.Quantity),
			cli.Money(l.Product.Price),
			cli.Money(l.Subtotal()),
		})
	}
	return cli.Table([]string{"ID", "PRODUCT", "QTY", "PRICE", "SUBTOTAL"}, rows) +
		"\nTotal: " + cli.Money(v.Cart.Total)
}

type ReceiptView checkout.Receipt

func (r ReceiptView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d placed (bill %s).\n", r.OrderID, r.BillNumber)
	fmt.Fprintf(&b, "Paid %s by %s for %d line(s).", cli.Money(r.Total), r.PaymentType, r.Lines)
	if r.ProfileSaved {
		b.WriteString("\nYour contact details were saved.")
	}
	if r.ProfileError != "" {
		fmt.Fprintf(&b, "\nYour contact details could not be saved: %s", r.ProfileError)
	}
	if r.CatalogStale {
		b.WriteString("\nThe product listing could not be refreshed and may show old stock.")
	}
	return b.String()
}
