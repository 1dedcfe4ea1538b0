package handler

import (
	"fmt"

	catalogHandler "github.com/fekuna/omnipos-storefront/internal/catalog/handler"
	"github.com/fekuna/omnipos-storefront/internal/cli"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

// productFlags are shared by create and update.
type productFlags struct {
	name       string
	price      string
	stock      int
	categoryID int64
	imageURL   string
	imagePath  string
	inactive   bool
}

func (f *productFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "product name")
	fs.StringVar(&f.price, "price", "", "unit price, e.g. 199.90")
	fs.IntVar(&f.stock, "stock", 0, "units in stock")
	fs.Int64Var(&f.categoryID, "category", 0, "category id")
	fs.StringVar(&f.imageURL, "image-url", "", "public image URL")
	fs.StringVar(&f.imagePath, "image", "", "local image file to upload")
	fs.BoolVar(&f.inactive, "inactive", false, "create or leave the product inactive")
}

func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, model.NewValidationError("price", "%q is not a number", s)
	}
	return d, nil
}

// AdminCommand returns the "product" group mounted under "admin".
func (h *ProductHandler) AdminCommand(opts *cli.RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Create, edit and (de)activate products",
	}
	cmd.AddCommand(
		h.createCommand(opts),
		h.updateCommand(opts),
		h.setActiveCommand(opts, true),
		h.setActiveCommand(opts, false),
	)
	return cmd
}

func (h *ProductHandler) createCommand(opts *cli.RootOptions) *cobra.Command {
	flags := &productFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := parsePrice(flags.price)
			if err != nil {
				return err
			}
			p, err := h.uc.CreateProduct(cmd.Context(), &dto.CreateProductInput{
				Name:       flags.name,
				Price:      price,
				Stock:      flags.stock,
				CategoryID: flags.categoryID,
				ImageURL:   flags.imageURL,
				ImagePath:  flags.imagePath,
				Active:     !flags.inactive,
			})
			if err != nil {
				h.logger.Error("failed to create product", zap.Error(err))
				return err
			}
			return opts.Formatter(cmd).Success(catalogHandler.ProductDetail(*p))
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

// updateCommand starts from the server's copy so only the given flags change.
func (h *ProductHandler) updateCommand(opts *cli.RootOptions) *cobra.Command {
	flags := &productFlags{}
	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Edit a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := catalogHandler.ParseID(args[0])
			if err != nil {
				return err
			}
			current, err := h.uc.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}

			input := &dto.UpdateProductInput{
				ID:         id,
				Name:       current.Name,
				Price:      current.Price,
				Stock:      current.Stock,
				CategoryID: current.CategoryRef(),
				ImageURL:   current.ImageURL,
				ImagePath:  flags.imagePath,
				Active:     current.Active,
			}
			fs := cmd.Flags()
			if fs.Changed("name") {
				input.Name = flags.name
			}
			if fs.Changed("price") {
				if input.Price, err = parsePrice(flags.price); err != nil {
					return err
				}
			}
			if fs.Changed("stock") {
				input.Stock = flags.stock
			}
			if fs.Changed("category") {
				input.CategoryID = flags.categoryID
			}
			if fs.Changed("image-url") {
				input.ImageURL = flags.imageURL
			}
			if fs.Changed("inactive") {
				input.Active = !flags.inactive
			}

			p, err := h.uc.UpdateProduct(cmd.Context(), input)
			if err != nil {
				h.logger.Error("failed to update product", zap.Int64("product_id", id), zap.Error(err))
				return err
			}
			return opts.Formatter(cmd).Success(catalogHandler.ProductDetail(*p))
		},
	}
	flags.register(cmd)
	return cmd
}

func (h *ProductHandler) setActiveCommand(opts *cli.RootOptions, active bool) *cobra.Command {
	use, short, verb := "activate", "Put a product back on sale", "activated"
	var aliases []string
	if !active {
		use, short, verb = "deactivate", "Take a product off sale (the API's delete)", "deactivated"
		aliases = []string{"delete"}
	}

	return &cobra.Command{
		Use:     use + " <product-id>",
		Aliases: aliases,
		Short:   short,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := catalogHandler.ParseID(args[0])
			if err != nil {
				return err
			}
			if err := h.uc.SetActive(cmd.Context(), id, active); err != nil {
				return err
			}
			return opts.Formatter(cmd).Success(result{ID: id, Message: fmt.Sprintf("product %d %s", id, verb)})
		},
	}
}

type result struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func (r result) String() string { return r.Message }
