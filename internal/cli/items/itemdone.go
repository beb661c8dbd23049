package items

import (
	"fmt"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/models"
)

type ItemDoneCmd struct {
	ID string `arg:"" help:"Item ID to mark done."`
}

func (c *ItemDoneCmd) Run(ctx *cli.Context) error {
	item, err := ctx.Store.GetItem(c.ID)
	if err != nil {
		return err
	}

	item.Status = models.ItemStatusDone
	if err := ctx.Store.UpdateItem(item); err != nil {
		return err
	}

	fmt.Printf("Done: %s\n", item.Summary)
	return nil
}

type ItemDeleteCmd struct {
	ID string `arg:"" help:"Item ID to delete."`
}

func (c *ItemDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteItem(c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted item %s\n", c.ID)
	return nil
}
