package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/account"
	"github.com/fekuna/omnipos-storefront/internal/account/dto"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/cli"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type AccountHandler struct {
	uc      account.UseCase
	session session.UseCase
	logger  logger.ZapLogger
}

func NewAccountHandler(uc account.UseCase, sess session.UseCase, log logger.ZapLogger) *AccountHandler {
	return &AccountHandler{
		uc:      uc,
		session: sess,
		logger:  log,
	}
}

// Commands returns login, register, logout, whoami and profile.
func (h *AccountHandler) Commands(opts *cli.RootOptions) []*cobra.Command {
	return []*cobra.Command{
		h.credentialsCommand(opts, "login", "Sign in with email and password", h.uc.Login),
		h.credentialsCommand(opts, "register", "Create an account and sign in", h.uc.Register),
		h.logoutCommand(opts),
		h.whoamiCommand(opts),
		h.profileCommand(opts),
	}
}

type credentialsFunc func(ctx context.Context, email, password string) (*model.Identity, error)

func (h *AccountHandler) credentialsCommand(opts *cli.RootOptions, use, short string, fn credentialsFunc) *cobra.Command {
	var creds dto.Credentials
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := fn(cmd.Context(), strings.TrimSpace(creds.Email), creds.Password)
			if err != nil {
				h.logger.Warn("authentication failed", zap.String("command", use), zap.Error(err))
				return err
			}
			return opts.Formatter(cmd).Success(welcome(*id))
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (h *AccountHandler) logoutCommand(opts *cli.RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := h.uc.Logout(cmd.Context()); err != nil {
				return err
			}
			return opts.Formatter(cmd).Success(message("Signed out."))
		},
	}
}

func (h *AccountHandler) whoamiCommand(opts *cli.RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account and its last known cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := auth.RequireIdentity(h.session)
			if err != nil {
				return err
			}
			return opts.Formatter(cmd).Success(newWhoami(*id, h.session.LastCart()))
		},
	}
}

func (h *AccountHandler) profileCommand(opts *cli.RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your contact details",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your profile as stored on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := h.uc.Profile(cmd.Context())
			if err != nil {
				return err
			}
			return opts.Formatter(cmd).Success(Profile(*id))
		},
	}

	var input dto.ProfileInput
	update := &cobra.Command{
		Use:   "update",
		Short: "Change your name, email or phone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := auth.RequireIdentity(h.session)
			if err != nil {
				return err
			}

			merged := dto.ProfileInput{
				Name:      current.Name,
				LastName:  current.LastName,
				Email:     current.Email,
				Telephone: current.Telephone,
			}
			fs := cmd.Flags()
			if fs.Changed("name") {
				merged.Name = input.Name
			}
			if fs.Changed("lastname") {
				merged.LastName = input.LastName
			}
			if fs.Changed("email") {
				merged.Email = input.Email
			}
			if fs.Changed("phone") {
				merged.Telephone = input.Telephone
			}

			id, err := h.uc.UpdateProfile(cmd.Context(), &merged)
			if err != nil {
				h.logger.Error("failed to update profile", zap.Int64("client_id", current.ID), zap.Error(err))
				return err
			}
			return opts.Formatter(cmd).Success(Profile(*id))
		},
	}
	update.Flags().StringVar(&input.Name, "name", "", "first name")
	update.Flags().StringVar(&input.LastName, "lastname", "", "last name")
	update.Flags().StringVar(&input.Email, "email", "", "email")
	update.Flags().StringVar(&input.Telephone, "phone", "", "phone, 10 to 13 digits")

	cmd.AddCommand(show, update)
	return cmd
}

type message string

func (m message) String() string { return string(m) }

type welcome model.Identity

func (w welcome) String() string {
	id := model.Identity(w)
	name := id.FullName()
	if name == "" {
		name = id.Email
	}
	if id.IsAdmin {
		return fmt.Sprintf("Signed in as %s (admin).", name)
	}
	return fmt.Sprintf("Signed in as %s.", name)
}

type Profile model.Identity

func (p Profile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:  %s\n", model.Identity(p).FullName())
	fmt.Fprintf(&b, "Email: %s\n", p.Email)
	phone := p.Telephone
	if phone == "" {
		phone = "-"
	}
	fmt.Fprintf(&b, "Phone: %s", phone)
	if p.IsAdmin {
		b.WriteString("\nRole:  admin")
	}
	return b.String()
}

type whoami struct {
	Identity  model.Identity `json:"identity"`
	CartItems int            `json:"cart_items"`
	CartTotal string         `json:"cart_total"`
}

func newWhoami(id model.Identity, cart *model.Cart) whoami {
	w := whoami{Identity: id, CartTotal: "0.00"}
	if cart != nil {
		for _, l := range cart.Items {
			w.CartItems += l.Quantity
		}
		w.CartTotal = cart.Total.StringFixed(2)
	}
	return w
}

func (w whoami) String() string {
	s := Profile(w.Identity).String()
	if w.CartItems == 0 {
		return s + "\nCart:  empty"
	}
	return fmt.Sprintf("%s\nCart:  %d item(s), $%s", s, w.CartItems, w.CartTotal)
}
