package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/catalog"
	"github.com/fekuna/omnipos-storefront/internal/cli"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog  catalog.UseCase
	products product.UseCase
	logger   logger.ZapLogger
}

func NewCatalogHandler(cat catalog.UseCase, products product.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  cat,
		products: products,
		logger:   log,
	}
}

// Commands returns "catalog" and "categories".
func (h *CatalogHandler) Commands(opts *cli.RootOptions) []*cobra.Command {
	return []*cobra.Command{h.catalogCommand(opts), h.categoriesCommand(opts)}
}

func (h *CatalogHandler) catalogCommand(opts *cli.RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse products",
	}

	var (
		categoryID int64
		all        bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List products that can be bought",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.Formatter(cmd)
			if err := h.load(cmd.Context(), out); err != nil {
				return err
			}

			var products []model.Product
			switch {
			case all:
				products = h.catalog.All()
			case categoryID != 0:
				products = h.catalog.ActiveInCategory(categoryID)
			default:
				products = h.catalog.ActiveOnly()
			}
			return out.Success(ProductList(products))
		},
	}
	list.Flags().Int64Var(&categoryID, "category", 0, "only products in this category")
	list.Flags().BoolVar(&all, "all", false, "include inactive products")

	show := &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product as the server currently sees it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ParseID(args[0])
			if err != nil {
				return err
			}
			p, err := h.products.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			return opts.Formatter(cmd).Success(ProductDetail(*p))
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func (h *CatalogHandler) categoriesCommand(opts *cli.RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.Formatter(cmd)
			if err := h.load(cmd.Context(), out); err != nil {
				return err
			}
			return out.Success(CategoryList(h.catalog.Categories()))
		},
	}
}

// load refreshes the listing. When the API is unreachable but a snapshot was
// seeded, the snapshot is shown with a notice instead of failing.
func (h *CatalogHandler) load(ctx context.Context, out *cli.OutputFormatter) error {
	err := h.catalog.Refresh(ctx)
	if err == nil {
		return nil
	}
	fetched := h.catalog.FetchedAt()
	if fetched.IsZero() {
		return err
	}
	h.logger.Warn("serving catalog snapshot", zap.Time("fetched_at", fetched), zap.Error(err))
	out.Notice("Could not reach the store; showing the listing from %s.", fetched.Local().Format(time.DateTime))
	return nil
}

func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewValidationError("id", "%q is not a valid id", s)
	}
	return id, nil
}

type ProductList []model.Product

func (l ProductList) String() string {
	if len(l) == 0 {
		return "No products."
	}
	rows := make([][]string, 0, len(l))
	for _, p := range l {
		status := "in stock"
		switch {
		case !p.Active:
			status = "inactive"
		case p.Stock == 0:
			status = "sold out"
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			cli.Money(p.Price),
			strconv.Itoa(p.Stock),
			status,
		})
	}
	return cli.Table([]string{"ID", "NAME", "PRICE", "STOCK", "STATUS"}, rows)
}

type ProductDetail model.Product

func (p ProductDetail) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (#%d)\n", p.Name, p.ID)
	fmt.Fprintf(&b, "Price:    %s\n", cli.Money(p.Price))
	fmt.Fprintf(&b, "Stock:    %d\n", p.Stock)
	if p.Category != nil {
		fmt.Fprintf(&b, "Category: %s\n", p.Category.Name)
	} else if p.CategoryID != 0 {
		fmt.Fprintf(&b, "Category: #%d\n", p.CategoryID)
	}
	if p.ImageURL != "" {
		fmt.Fprintf(&b, "Image:    %s\n", p.ImageURL)
	}
	if !p.Active {
		b.WriteString("This product is no longer sold.\n")
	} else if p.Stock == 0 {
		b.WriteString("Sold out.\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

type CategoryList []model.Category

func (l CategoryList) String() string {
	if len(l) == 0 {
		return "No categories."
	}
	rows := make([][]string, 0, len(l))
	for _, c := range l {
		rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name})
	}
	return cli.Table([]string{"ID", "NAME"}, rows)
}
