package export

import (
	"github.com/xuri/excelize/v2"

	"ConciliacaoFornecedores/api/constants"
)

const (
	colorHeaderFill = "4F81BD"
	colorHeaderFont = "FFFFFF"
	colorDivergent  = "FFC7CE"
	colorMatched    = "C6EFCE"

	moneyFormat = "#,##0.00"
)

// styleSet holds every style the workbook uses. Variants exist because
// a cell carries exactly one style: fill, number format and the
// unlocked flag must be baked into each combination.
type styleSet struct {
	header int

	text  int
	money int

	textDivergent  int
	moneyDivergent int
	textMatched    int
	moneyMatched   int

	detail          int
	detailDivergent int
	detailMatched   int
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "right", "bottom"}
	out := make([]excelize.Border, 0, len(sides))
	for _, s := range sides {
		out = append(out, excelize.Border{Type: s, Color: "000000", Style: 1})
	}
	return out
}

func fill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func buildStyles(f *excelize.File) (*styleSet, error) {
	numFmt := moneyFormat
	unlocked := &excelize.Protection{Locked: false}

	var (
		s   styleSet
		err error
	)
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: colorHeaderFont},
		Fill:      fill(colorHeaderFill),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	}); err != nil {
		return nil, err
	}

	if s.text, err = f.NewStyle(&excelize.Style{Border: thinBorders()}); err != nil {
		return nil, err
	}
	if s.money, err = f.NewStyle(&excelize.Style{
		Border:       thinBorders(),
		CustomNumFmt: &numFmt,
	}); err != nil {
		return nil, err
	}

	if s.textDivergent, err = f.NewStyle(&excelize.Style{
		Border: thinBorders(),
		Fill:   fill(colorDivergent),
	}); err != nil {
		return nil, err
	}
	if s.moneyDivergent, err = f.NewStyle(&excelize.Style{
		Border:       thinBorders(),
		Fill:         fill(colorDivergent),
		CustomNumFmt: &numFmt,
	}); err != nil {
		return nil, err
	}
	if s.textMatched, err = f.NewStyle(&excelize.Style{
		Border: thinBorders(),
		Fill:   fill(colorMatched),
	}); err != nil {
		return nil, err
	}
	if s.moneyMatched, err = f.NewStyle(&excelize.Style{
		Border:       thinBorders(),
		Fill:         fill(colorMatched),
		CustomNumFmt: &numFmt,
	}); err != nil {
		return nil, err
	}

	if s.detail, err = f.NewStyle(&excelize.Style{
		Border:     thinBorders(),
		Protection: unlocked,
	}); err != nil {
		return nil, err
	}
	if s.detailDivergent, err = f.NewStyle(&excelize.Style{
		Border:     thinBorders(),
		Fill:       fill(colorDivergent),
		Protection: unlocked,
	}); err != nil {
		return nil, err
	}
	if s.detailMatched, err = f.NewStyle(&excelize.Style{
		Border:     thinBorders(),
		Fill:       fill(colorMatched),
		Protection: unlocked,
	}); err != nil {
		return nil, err
	}
	return &s, nil
}

// rowStyles resolves the text/money/detail styles for a summary row of
// the given status.
func (s *styleSet) rowStyles(status string) (text, money, detail int) {
	switch status {
	case constants.StatusDivergent:
		return s.textDivergent, s.moneyDivergent, s.detailDivergent
	case constants.StatusMatched:
		return s.textMatched, s.moneyMatched, s.detailMatched
	default:
		return s.text, s.money, s.detail
	}
}
