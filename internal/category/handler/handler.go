package handler

import (
	"fmt"
	"strings"

	catalogHandler "github.com/fekuna/omnipos-storefront/internal/catalog/handler"
	"github.com/fekuna/omnipos-storefront/internal/category"
	"github.com/fekuna/omnipos-storefront/internal/category/dto"
	"github.com/fekuna/omnipos-storefront/internal/cli"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) AdminCommand(opts *cli.RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Create and delete categories",
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := h.uc.CreateCategory(cmd.Context(), &dto.CreateCategoryInput{Name: strings.Join(args, " ")})
			if err != nil {
				h.logger.Error("failed to create category", zap.Error(err))
				return err
			}
			return opts.Formatter(cmd).Success(catalogHandler.CategoryList{*c})
		},
	}

	del := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := catalogHandler.ParseID(args[0])
			if err != nil {
				return err
			}
			if err := h.uc.DeleteCategory(cmd.Context(), id); err != nil {
				h.logger.Error("failed to delete category", zap.Int64("category_id", id), zap.Error(err))
				return err
			}
			return opts.Formatter(cmd).Success(deleted(id))
		},
	}

	cmd.AddCommand(create, del)
	return cmd
}

type deleted int64

func (d deleted) String() string {
	return fmt.Sprintf("category %d deleted", int64(d))
}
