package scenes

import (
	"context"

	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/scene"
	"github.com/KirkDiggler/spix/internal/ui"
)

// barterScene trades with a merchant: wares are bought at catalog value and
// anything the player carries sells back for half, at least $1. Plot items
// and worthless junk cannot be sold.
type barterScene struct {
	content
	merchant string
	wares    []*entities.Item
}

func newBarter(c content, args ...any) (scene.Scene, error) {
	merchant, err := scene.Arg(args, 0, "")
	if err != nil {
		return nil, err
	}
	ids, err := scene.Arg[[]string](args, 1, nil)
	if err != nil {
		return nil, err
	}
	if merchant == "" || len(ids) == 0 {
		return nil, errors.InvalidArgument("barter needs a merchant and wares")
	}

	wares := make([]*entities.Item, 0, len(ids))
	for _, id := range ids {
		item, err := c.Catalog().LookupItem(id)
		if err != nil {
			return nil, err
		}
		wares = append(wares, item)
	}
	return &barterScene{content: c, merchant: merchant, wares: wares}, nil
}

func (s *barterScene) Enter(ctx context.Context) error {
	if err := s.requirePlayer(); err != nil {
		return err
	}
	s.para("wares", "merchant", s.merchant, "cash", ui.Money(s.Player().Cash))

	m := s.Menu()
	keys := listKeys(len(s.wares), "s", "l")
	for i, key := range keys {
		item := s.wares[i]
		m.Keyed(key, s.text("buy", "item", item.Name, "price", ui.Money(item.Value)), func(context.Context) error {
			s.buy(item)
			return nil
		})
	}
	m.Keyed("s", s.text("sell"), s.sell)
	m.Keyed("l", s.text("leave"), s.finish)
	return m.Run(ctx)
}

func (s *barterScene) buy(item *entities.Item) {
	player := s.Player()
	if player.Cash < item.Value {
		s.note("cannot_afford", "price", ui.Money(item.Value))
		return
	}
	player.Pay(item.Value)
	player.Inventory.Add(item.ID, 1)
	s.note("bought", "price", ui.Money(item.Value), "item", item.Name)
}

// SellPrice is what a merchant pays for one unit of item
func SellPrice(item *entities.Item) int {
	return max(1, item.Value/2)
}

func (s *barterScene) sell(ctx context.Context) error {
	player := s.Player()
	stacks, err := player.Inventory.Stacks(player.Items())
	if err != nil {
		return err
	}

	sellable := stacks[:0]
	for _, st := range stacks {
		if st.Item.Value > 0 && !st.Item.Tagged(entities.TagPlot) {
			sellable = append(sellable, st)
		}
	}
	if len(sellable) == 0 {
		s.para("nothing_to_sell", "merchant", s.merchant)
		return s.Pause(ctx)
	}

	m := s.Menu()
	keys := listKeys(len(sellable), "n")
	for i, key := range keys {
		st := sellable[i]
		price := SellPrice(st.Item)
		label := s.text("sell_item", "item", st.Item.Name, "quantity", itoa(st.Quantity), "price", ui.Money(price))
		m.Keyed(key, label, func(context.Context) error {
			player.Inventory.Remove(st.ID, 1)
			player.Cash += price
			s.note("sold", "merchant", s.merchant, "item", st.Item.Name, "price", ui.Money(price))
			return nil
		})
	}
	m.Keyed("n", s.text("keep"), nil)
	return m.Run(ctx)
}
