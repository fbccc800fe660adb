package cli

import (
	"fmt"

	"github.com/julianstephens/questlog/internal/quest"
)

type BadgesCmd struct{}

func (c *BadgesCmd) ReadOnly() bool { return true }

func (c *BadgesCmd) Run(ctx *Context) error {
	state, err := ctx.Quest.State()
	if err != nil {
		return err
	}
	table := newTable("", "BADGE", "DESCRIPTION")
	for _, b := range quest.Badges {
		mark := "🔒"
		if state.HasBadge(b.ID) {
			mark = "🏅"
		}
		table.AddRow(mark, b.Name, b.Description)
	}
	ctx.printTable(table)
	ctx.printf("\n%d of %d badges earned\n", len(state.Badges), len(quest.Badges))
	return nil
}

type ShopCmd struct {
	List ShopListCmd `cmd:"" help:"List rewards for sale." default:"1"`
	Buy  ShopBuyCmd  `cmd:"" help:"Spend coins on a reward."`
}

type ShopListCmd struct{}

func (c *ShopListCmd) ReadOnly() bool { return true }

func (c *ShopListCmd) Run(ctx *Context) error {
	state, err := ctx.Quest.State()
	if err != nil {
		return err
	}
	table := newTable("ID", "REWARD", "COST", "")
	for _, item := range quest.Shop {
		afford := ""
		if state.Coins >= item.Cost {
			afford = "affordable"
		}
		table.AddRow(item.ID, item.Name, item.Cost, afford)
	}
	ctx.printTable(table)
	ctx.printf("\nYou have %d coins\n", state.Coins)
	return nil
}

type ShopBuyCmd struct {
	Item string `arg:"" help:"Shop item id."`
}

func (c *ShopBuyCmd) Run(ctx *Context) error {
	state, item, err := ctx.Quest.Buy(c.Item)
	if err != nil {
		return err
	}
	ctx.printf("Bought %s for %d coins. %d coins left.\n", item.Name, item.Cost, state.Coins)
	return nil
}

type ResetCmd struct {
	Yes   bool `help:"Confirm the reset." short:"y"`
	Diary bool `help:"Also delete every diary entry."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Yes {
		return fmt.Errorf("reset erases all progress; pass --yes to confirm")
	}
	state, err := ctx.Quest.ResetAll()
	if err != nil {
		return err
	}
	ctx.printf("Progress reset. %d starter habits restored.\n", len(state.Habits))
	if c.Diary {
		if err := ctx.Diary.Clear(); err != nil {
			return err
		}
		ctx.println("Diary cleared.")
	}
	return nil
}
