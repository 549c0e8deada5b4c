package scenes

import (
	"context"

	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/ui"
)

type characterSheetScene struct{ content }

func (s *characterSheetScene) Enter(ctx context.Context) error {
	if err := s.requirePlayer(); err != nil {
		return err
	}
	player := s.Player()

	s.para("heading", "name", player.Name)
	s.para("hp", "hp", itoa(player.HitPoints()), "max_hp", itoa(player.MaxHitPoints()))
	s.para("level", "level", itoa(player.Level), "exp", itoa(player.Exp), "next", itoa(player.NextLevelExp()))
	s.para("cash", "cash", ui.Money(player.Cash))

	for _, skill := range entities.AllSkills {
		rating, trained, defaulted := player.Effective(skill)
		key := "no_default"
		switch {
		case trained:
			key = "trained"
		case defaulted:
			key = "defaulting"
		}
		s.para(key, "skill", skill.Title(), "rating", itoa(rating))
	}
	s.para("gear", "weapon", player.WeaponName())

	return s.Menu().
		Keyed("w", s.text("equip"), s.equip).
		Keyed("i", s.text("inventory"), s.inventory).
		Keyed("d", s.text("done"), s.finish).
		Run(ctx)
}

func (s *characterSheetScene) equip(ctx context.Context) error {
	player := s.Player()
	s.Clear()

	weapons, err := player.Inventory.Stacks(player.Items(), entities.TagWeapon)
	if err != nil {
		return err
	}
	if len(weapons) == 0 {
		s.para("no_weapons")
		return s.Pause(ctx)
	}

	m := s.Menu()
	keys := listKeys(len(weapons), "u", "n")
	for i, key := range keys {
		weapon := weapons[i]
		m.Keyed(key, s.text("equip_item", "item", weapon.Item.Name), func(ctx context.Context) error {
			s.para("grip", "item", weapon.Item.Name)
			player.Inventory.Equip(weapon.ID)
			return s.Pause(ctx)
		})
	}
	if _, ok := player.Inventory.Equipped(); ok {
		m.Keyed("u", s.text("unequip"), func(context.Context) error {
			player.Inventory.Unequip()
			return nil
		})
	}
	m.Keyed("n", s.text("keep"), nil)
	return m.Run(ctx)
}

func (s *characterSheetScene) inventory(ctx context.Context) error {
	player := s.Player()
	s.Clear()
	s.para("dump")

	stacks, err := player.Inventory.Stacks(player.Items())
	if err != nil {
		return err
	}
	if len(stacks) == 0 {
		s.para("moths")
	}
	for _, st := range stacks {
		s.para("stack", "quantity", itoa(st.Quantity), "item", st.Item.Name)
	}
	return s.Pause(ctx)
}
