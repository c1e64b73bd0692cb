package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rl1809/stock-control/internal/adapter/codegen"
	"github.com/rl1809/stock-control/internal/adapter/handler"
	"github.com/rl1809/stock-control/internal/adapter/storage"
	"github.com/rl1809/stock-control/internal/config"
	"github.com/rl1809/stock-control/internal/core/domain"
	"github.com/rl1809/stock-control/internal/core/service"
)

// errNotice marks a command that ran but ended with a warning or error notice.
var errNotice = errors.New("operation did not succeed")

type app struct {
	inventory *service.InventoryService
	renderer  *codegen.QRRenderer
	close     func() error
}

type opener func(ctx context.Context) (*app, error)

func main() {
	log.SetFlags(0)
	root, closeApp := newRootCmd(openApp)
	err := root.Execute()
	if cerr := closeApp(); cerr != nil {
		log.Printf("close store: %v", cerr)
	}
	if err != nil {
		if !errors.Is(err, errNotice) {
			log.Print(err)
		}
		os.Exit(1)
	}
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	renderer := codegen.NewQRRenderer(cfg.CodeSize)
	return &app{
		inventory: service.NewInventoryService(store, renderer),
		renderer:  renderer,
		close:     store.Close,
	}, nil
}

// newRootCmd builds the command tree. The returned func releases whatever
// the executed command opened.
func newRootCmd(open opener) (*cobra.Command, func() error) {
	var a *app
	closeApp := func() error {
		if a == nil {
			return nil
		}
		return a.close()
	}

	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Manage the stock inventory from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = open(cmd.Context())
			return err
		},
	}

	// mutate runs op, prints its notice and then the refreshed list, which is
	// printed on warning paths too.
	mutate := func(cmd *cobra.Command, op func(ctx context.Context) handler.Notice) error {
		notice := op(cmd.Context())
		noticeErr := report(cmd.OutOrStdout(), notice)

		items, err := a.inventory.List(cmd.Context())
		if err != nil {
			listErr := report(cmd.OutOrStdout(), handler.ListNotice(err))
			if noticeErr != nil {
				return noticeErr
			}
			return listErr
		}
		printItems(cmd.OutOrStdout(), items)
		return noticeErr
	}

	add := &cobra.Command{
		Use:   "add NAME QUANTITY",
		Short: "Add an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, func(ctx context.Context) handler.Notice {
				item, err := a.inventory.Add(ctx, service.StockForm{Name: args[0], Quantity: args[1]})
				return handler.AddNotice(args[0], item, err)
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove every item with the name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, func(ctx context.Context) handler.Notice {
				_, err := a.inventory.Remove(ctx, args[0])
				return handler.RemoveNotice(args[0], err)
			})
		},
	}

	withdraw := &cobra.Command{
		Use:   "withdraw NAME QUANTITY",
		Short: "Take units out of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, func(ctx context.Context) handler.Notice {
				wd, err := a.inventory.Withdraw(ctx, service.StockForm{Name: args[0], Quantity: args[1]})
				return handler.WithdrawNotice(args[0], wd, err)
			})
		},
	}

	var newName string
	edit := &cobra.Command{
		Use:   "edit NAME QUANTITY",
		Short: "Set the quantity of an item, optionally renaming it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, func(ctx context.Context) handler.Notice {
				e, err := a.inventory.Edit(ctx, service.StockForm{Name: args[0], Quantity: args[1], NewName: newName})
				return handler.EditNotice(args[0], e, err)
			})
		},
	}
	edit.Flags().StringVar(&newName, "new-name", "", "rename the item")

	search := &cobra.Command{
		Use:   "search NAME",
		Short: "Show the stored quantity of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.inventory.Search(cmd.Context(), args[0])
			return report(cmd.OutOrStdout(), handler.SearchNotice(args[0], item, err))
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.inventory.List(cmd.Context())
			if err != nil {
				return report(cmd.OutOrStdout(), handler.ListNotice(err))
			}
			printItems(cmd.OutOrStdout(), items)
			return nil
		},
	}

	var out string
	code := &cobra.Command{
		Use:   "code",
		Short: "Generate a QR code for an item or the whole inventory",
	}
	code.PersistentFlags().StringVarP(&out, "out", "o", "", "write the PNG to this file instead of the terminal")

	codeItem := &cobra.Command{
		Use:   "item NAME",
		Short: "QR code of the first item with the name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.inventory.Search(cmd.Context(), args[0])
			if err != nil {
				return report(cmd.OutOrStdout(), handler.SearchNotice(args[0], item, err))
			}

			c, err := a.inventory.ItemCode(cmd.Context(), &item)
			if err != nil {
				return report(cmd.OutOrStdout(), handler.CodeNotice("item", err))
			}
			return writeCode(cmd.OutOrStdout(), a.renderer, c, out)
		},
	}

	codeInventory := &cobra.Command{
		Use:   "inventory",
		Short: "QR code of the whole inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.inventory.InventoryCode(cmd.Context())
			if err != nil {
				return report(cmd.OutOrStdout(), handler.CodeNotice("inventory", err))
			}
			return writeCode(cmd.OutOrStdout(), a.renderer, c, out)
		},
	}

	code.AddCommand(codeItem, codeInventory)
	root.AddCommand(add, remove, withdraw, edit, search, list, code)
	return root, closeApp
}

func report(w io.Writer, notice handler.Notice) error {
	fmt.Fprintf(w, "[%s] %s: %s\n", notice.Level, notice.Title, notice.Message)
	if notice.Level != handler.LevelInfo {
		return errNotice
	}
	return nil
}

func printItems(w io.Writer, items []domain.StockItem) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tQUANTITY")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%d\n", item.Name, item.Quantity)
	}
	tw.Flush()
}

func writeCode(w io.Writer, renderer *codegen.QRRenderer, c domain.Code, path string) error {
	if path != "" {
		if err := os.WriteFile(path, c.PNG, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(w, "wrote %s\n", path)
		return nil
	}

	art, err := renderer.Text(c.Payload)
	if err != nil {
		return report(w, handler.CodeNotice("terminal", fmt.Errorf("%w: %w", service.ErrRender, err)))
	}
	fmt.Fprint(w, art)
	fmt.Fprintln(w, c.Payload)
	return nil
}
