// Package sheet prints a character sheet as a one page PDF
package sheet

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/ui"
)

const (
	margin   = 48.0
	rowH     = 18.0
	labelW   = 140.0
	valueW   = 160.0
	bodySize = 11.0
)

// Generate returns PDF bytes describing p: vitals, skills, gear and the
// resolved inventory
func Generate(p *entities.Player) ([]byte, error) {
	if p == nil {
		return nil, errors.InvalidArgument("player is required")
	}

	stacks, err := p.Inventory.Stacks(p.Items())
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve inventory")
	}

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetTitle(p.Name, true)
	pdf.SetCreator("spix", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetDrawColor(40, 40, 40)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Courier", "B", 20)
	pdf.CellFormat(0, 28, tr(p.Name), "B", 1, "L", false, 0, "")
	pdf.Ln(8)

	heading := func(text string) {
		pdf.Ln(6)
		pdf.SetFont("Courier", "B", 13)
		pdf.CellFormat(0, rowH, text, "", 1, "L", false, 0, "")
	}
	row := func(label, value string) {
		pdf.SetFont("Courier", "", bodySize)
		pdf.CellFormat(labelW, rowH, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, rowH, tr(value), "", 1, "L", false, 0, "")
	}

	heading("Vitals")
	row("Hit points", fmt.Sprintf("%d / %d", p.HitPoints(), p.MaxHitPoints()))
	row("Level", fmt.Sprintf("%d", p.Level))
	row("Experience", fmt.Sprintf("%d / %d", p.Exp, p.NextLevelExp()))
	row("Cash", ui.Money(p.Cash))

	heading("Skills")
	for _, skill := range entities.AllSkills {
		rating, trained, defaulted := p.Effective(skill)
		value := fmt.Sprintf("%d", rating)
		switch {
		case trained:
		case defaulted:
			value += " (default)"
		default:
			value += " (untrained)"
		}
		row(skill.Title(), value)
	}

	heading("Gear")
	row("Weapon", p.WeaponName())
	row("Damage", p.WeaponDamage().String())

	heading("Inventory")
	if len(stacks) == 0 {
		row("(empty)", "")
	}
	for _, st := range stacks {
		row(fmt.Sprintf("%dx", st.Quantity), st.Item.Name)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to write pdf")
	}
	return buf.Bytes(), nil
}
