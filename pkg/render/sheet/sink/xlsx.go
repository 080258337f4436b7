package sink

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/invoicer/pkg/render/sheet/styles"
)

// DefaultSheetName is the worksheet the invoice is written to.
const DefaultSheetName = "Invoice"

// XLSXOption configures an [XLSX] sink.
type XLSXOption func(*XLSX)

// WithSheetName sets the worksheet name.
func WithSheetName(name string) XLSXOption { return func(x *XLSX) { x.sheet = name } }

type styleKey struct {
	ref    styles.Ref
	align  Align
	format NumFormat
}

// XLSX is a [Sink] that builds an Excel workbook.
type XLSX struct {
	file    *excelize.File
	sheet   string
	palette styles.Palette
	ids     map[styleKey]int

	finalized bool
	closed    bool
}

// NewXLSX creates a workbook with a single worksheet whose styles are
// resolved through p.
func NewXLSX(p styles.Palette, opts ...XLSXOption) (*XLSX, error) {
	x := &XLSX{
		file:    excelize.NewFile(),
		sheet:   DefaultSheetName,
		palette: p,
		ids:     make(map[styleKey]int),
	}
	for _, opt := range opts {
		opt(x)
	}
	if err := x.file.SetSheetName(x.file.GetSheetName(0), x.sheet); err != nil {
		x.file.Close()
		return nil, fmt.Errorf("name sheet %q: %w", x.sheet, err)
	}
	return x, nil
}

// Sheet returns the worksheet name.
func (x *XLSX) Sheet() string { return x.sheet }

func (x *XLSX) writable() error {
	if x.finalized || x.closed {
		return ErrFinalized
	}
	return nil
}

func (x *XLSX) SetCell(c Cell) error {
	if err := x.writable(); err != nil {
		return err
	}
	name, err := excelize.CoordinatesToCellName(c.Col, c.Row)
	if err != nil {
		return err
	}
	if c.Value != nil {
		if err := x.file.SetCellValue(x.sheet, name, cellValue(c.Value)); err != nil {
			return err
		}
	}
	id, err := x.styleID(styleKey{ref: c.Style, align: c.Align, format: c.Format})
	if err != nil {
		return err
	}
	return x.file.SetCellStyle(x.sheet, name, name, id)
}

// cellValue converts values excelize cannot store natively. Decimals are
// stored as numbers so spreadsheet formulas keep working.
func cellValue(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return v
}

func (x *XLSX) styleID(k styleKey) (int, error) {
	if id, ok := x.ids[k]; ok {
		return id, nil
	}
	d, ok := styles.Resolve(x.palette, k.ref)
	if !ok {
		return 0, fmt.Errorf("palette %q has no style %q", x.palette.Name(), k.ref)
	}
	id, err := x.file.NewStyle(excelStyle(d, k.align, k.format))
	if err != nil {
		return 0, fmt.Errorf("style %q: %w", k.ref, err)
	}
	x.ids[k] = id
	return id, nil
}

func excelStyle(d styles.Descriptor, a Align, f NumFormat) *excelize.Style {
	st := &excelize.Style{
		Font: &excelize.Font{
			Family: d.Font.Family,
			Size:   d.Font.Size,
			Bold:   d.Font.Bold,
			Italic: d.Font.Italic,
			Color:  d.Font.Color,
		},
		Alignment: &excelize.Alignment{
			Horizontal: string(a.Horizontal),
			Vertical:   "center",
			WrapText:   a.Wrap,
		},
	}
	if d.Fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{d.Fill}}
	}
	if d.Bottom.Style != styles.LineNone {
		st.Border = []excelize.Border{{Type: "bottom", Color: d.Bottom.Color, Style: borderStyle(d.Bottom.Style)}}
	}
	if f != FormatGeneral {
		code := string(f)
		st.CustomNumFmt = &code
	}
	return st
}

// borderStyle maps line styles to excelize border indexes.
func borderStyle(s styles.LineStyle) int {
	switch s {
	case styles.LineThin:
		return 1
	case styles.LineMedium:
		return 2
	default:
		return 0
	}
}

func (x *XLSX) MergeRegion(row, colStart, colEnd int) error {
	if err := x.writable(); err != nil {
		return err
	}
	if colEnd < colStart {
		return fmt.Errorf("merge row %d: column range %d..%d is reversed", row, colStart, colEnd)
	}
	if colEnd == colStart {
		return nil
	}
	start, err := excelize.CoordinatesToCellName(colStart, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(colEnd, row)
	if err != nil {
		return err
	}
	return x.file.MergeCell(x.sheet, start, end)
}

func (x *XLSX) SetRowHeight(row int, height float64) error {
	if err := x.writable(); err != nil {
		return err
	}
	return x.file.SetRowHeight(x.sheet, row, height)
}

func (x *XLSX) SetColumnWidth(col int, width float64) error {
	if err := x.writable(); err != nil {
		return err
	}
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	return x.file.SetColWidth(x.sheet, name, name, width)
}

func (x *XLSX) FreezeHeader(row int) error {
	if err := x.writable(); err != nil {
		return err
	}
	top := fmt.Sprintf("A%d", row+1)
	return x.file.SetPanes(x.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      row,
		TopLeftCell: top,
		ActivePane:  "bottomLeft",
		Selection:   []excelize.Selection{{SQRef: top, ActiveCell: top, Pane: "bottomLeft"}},
	})
}

func (x *XLSX) SetPageLayout(p PageLayout) error {
	if err := x.writable(); err != nil {
		return err
	}
	orientation := string(p.Orientation)
	if orientation == "" {
		orientation = string(Portrait)
	}
	fitWidth, fitHeight := p.FitToWidth, 0
	if err := x.file.SetPageLayout(x.sheet, &excelize.PageLayoutOptions{
		Orientation: &orientation,
		FitToWidth:  &fitWidth,
		FitToHeight: &fitHeight,
	}); err != nil {
		return fmt.Errorf("page layout: %w", err)
	}
	fit := p.FitToWidth > 0
	if err := x.file.SetSheetProps(x.sheet, &excelize.SheetPropsOptions{FitToPage: &fit}); err != nil {
		return fmt.Errorf("sheet props: %w", err)
	}
	m := p.Margins
	return x.file.SetPageMargins(x.sheet, &excelize.PageLayoutMarginsOptions{
		Left:   &m.Left,
		Right:  &m.Right,
		Top:    &m.Top,
		Bottom: &m.Bottom,
	})
}

// Finalize serializes the workbook.
func (x *XLSX) Finalize() ([]byte, error) {
	if err := x.writable(); err != nil {
		return nil, err
	}
	x.finalized = true
	buf, err := x.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Close releases the workbook. Calling it again is a no-op.
func (x *XLSX) Close() error {
	if x.closed {
		return nil
	}
	x.closed = true
	return x.file.Close()
}
