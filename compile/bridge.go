package compile

import (
	"strconv"
	"strings"

	"github.com/inkwell-lang/inkwell/config"
	"github.com/inkwell-lang/inkwell/layout"
	"github.com/inkwell-lang/inkwell/layout/flow"
	"github.com/inkwell-lang/inkwell/layout/grid"
	"github.com/inkwell-lang/inkwell/layout/mathlayout"
	"github.com/inkwell-lang/inkwell/realize"
	"github.com/inkwell-lang/inkwell/value"
)

// Metrics are the fixed per-kind font sizes the bridge lays text out
// with. Style-driven sizing (reading a "text.size" property back off
// realize.Element.Styles) is a natural extension once the grammar grows
// a way to set one; until then every document shares these defaults,
// the same scope reduction flow/paragraph.go documents for glyph
// advances.
type Metrics struct {
	BodySize        float64
	BodyLineHeight  float64
	HeadingSize     [3]float64
	HeadingLineHMul float64
	ParagraphSpace  float64
	HeadingSpace    float64
}

var defaultMetrics = Metrics{
	BodySize:        11,
	BodyLineHeight:  14,
	HeadingSize:     [3]float64{20, 16, 13},
	HeadingLineHMul: 1.3,
	ParagraphSpace:  8,
	HeadingSpace:    16,
}

// bridge turns one realize pass's element tree into the flow package's
// vertical-stack input, the connective tissue between component G
// (realize) and component H (layout) that §4.6 describes only in prose.
type bridge struct {
	m           Metrics
	lineBreak   config.LineBreakConfig
	targetWidth float64
}

func newBridge(targetWidth float64, lineBreak config.LineBreakConfig) *bridge {
	return &bridge{m: defaultMetrics, lineBreak: lineBreak, targetWidth: targetWidth}
}

// Build walks the top-level elements, grouping consecutive inline-ish
// elements (text, strong, emph) into one implicit paragraph the way a
// document with no explicit #par(...) call still reads as paragraphs of
// running text, and gives every block-level kind (heading, figure,
// image, table, equation) its own Block.
func (b *bridge) Build(elements []realize.Element) []flow.Block {
	var blocks []flow.Block
	var run strings.Builder

	flushRun := func() {
		if run.Len() == 0 {
			return
		}
		blocks = append(blocks, flow.Paragraph(run.String(), b.m.BodySize, b.m.BodyLineHeight, b.targetWidth, nil, b.lineBreak, b.m.ParagraphSpace, len(blocks) == 0))
		run.Reset()
	}

	for _, el := range elements {
		switch el.Kind {
		case "text", "strong", "emph":
			run.WriteString(b.inlineText(el))
		case "heading":
			flushRun()
			blocks = append(blocks, b.headingBlock(el))
		case "figure":
			flushRun()
			blocks = append(blocks, b.figureBlock(el))
		case "image":
			flushRun()
			blocks = append(blocks, b.imageBlock(el))
		case "table":
			flushRun()
			blocks = append(blocks, b.tableBlocks(el)...)
		case "equation":
			flushRun()
			blocks = append(blocks, b.equationBlock(el))
		default:
			// Unknown/unhandled element kinds (custom show-rule output
			// that produced no recognized shape) degrade to running
			// text rather than being silently dropped.
			run.WriteString(b.inlineText(el))
		}
	}
	flushRun()
	return blocks
}

// inlineText flattens an inline element (and any nested inline children
// — strong/emph wrap further text) down to its plain text, which is all
// flow.Paragraph can consume absent a font-shaping backend (see
// layout/flow's package doc).
func (b *bridge) inlineText(el realize.Element) string {
	if el.Kind == "text" {
		if t, ok := el.Fields["text"].(string); ok {
			return t
		}
		return ""
	}
	var s strings.Builder
	for _, c := range el.Children {
		s.WriteString(b.inlineText(c))
	}
	return s.String()
}

func (b *bridge) headingBlock(el realize.Element) flow.Block {
	level := 1
	if lv, ok := el.Fields["level"]; ok {
		switch v := lv.(type) {
		case int64:
			level = int(v)
		case int:
			level = v
		}
	}
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx > 2 {
		idx = 2
	}
	size := b.m.HeadingSize[idx]
	body := b.inlineText(el)
	return flow.Paragraph(body, size, size*b.m.HeadingLineHMul, b.targetWidth, nil, b.lineBreak, b.m.HeadingSpace, false)
}

// figureBlock stacks its children (typically an image plus a caption
// paragraph) into one already-laid-out nested frame, matching how
// flow.Block.Nested is used for "already-laid-out" content elsewhere.
func (b *bridge) figureBlock(el realize.Element) flow.Block {
	inner := b.Build(el.Children)
	region := layout.Region{Current: layout.Size{W: b.targetWidth, H: 1e9}, Finite: false}
	frags, err := flow.Stack(inner, region)
	var frame layout.Frame
	if err == nil && len(frags) > 0 {
		frame = frags[0].Frame
	}
	return flow.Block{Nested: &frame, Spacing: b.m.ParagraphSpace}
}

func (b *bridge) imageBlock(el realize.Element) flow.Block {
	w, _ := toFloat(el.Fields["width"])
	h, _ := toFloat(el.Fields["height"])
	if w <= 0 {
		w = b.targetWidth
	}
	if h <= 0 {
		h = w * 0.6
	}
	frame := layout.Frame{Size: layout.Size{W: w, H: h}}
	frame.Place(0, 0, el.Fields["path"])
	return flow.Block{Nested: &frame, Spacing: b.m.ParagraphSpace}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// tableBlocks sizes el's columns and places its cells via package grid,
// then wraps every region grid.LayoutRows produced as its own flow
// Block, the same Nested-frame pattern figureBlock uses.
func (b *bridge) tableBlocks(el realize.Element) []flow.Block {
	columns, _ := el.Fields["columns"].([]string)
	if len(columns) == 0 {
		return nil
	}
	tracks := make([]grid.Track, len(columns))
	for i, spec := range columns {
		tracks[i] = parseTrack(spec)
	}

	const rowHeight = 18.0
	cells := make([]grid.Cell, 0, len(el.Children))
	for i, child := range el.Children {
		row, col := i/len(columns), i%len(columns)
		cells = append(cells, grid.Cell{
			Col: col, Row: row, ColSpan: 1, RowSpan: 1,
			Width:  b.cellIntrinsicWidth(child),
			Height: rowHeight,
			Payload: child,
		})
	}

	sized := grid.SizeColumns(tracks, cells, b.targetWidth, b.m.BodySize)
	rowHeights := make(map[int]float64)
	for _, c := range cells {
		if rowHeights[c.Row] < c.Height {
			rowHeights[c.Row] = c.Height
		}
	}

	tableHeight := 0.0
	for _, h := range rowHeights {
		tableHeight += h
	}
	region := layout.Region{Current: layout.Size{W: b.targetWidth, H: tableHeight + rowHeight}, Finite: true}
	frags, err := grid.LayoutRows(sized, cells, rowHeights, region)
	if err != nil {
		return nil
	}
	blocks := make([]flow.Block, 0, len(frags))
	for i, f := range frags {
		frame := f.Frame
		spacing := 0.0
		if i == 0 {
			spacing = b.m.ParagraphSpace
		}
		blocks = append(blocks, flow.Block{Nested: &frame, Spacing: spacing})
	}
	return blocks
}

func (b *bridge) cellIntrinsicWidth(el realize.Element) float64 {
	return float64(len([]rune(b.inlineText(el)))) * b.m.BodySize * 0.5
}

// parseTrack reads one of table()'s column specifiers: "auto", an
// absolute/em length value.ParseLength understands, or an "Nfr"
// fraction share (the one grid unit value.ParseLength doesn't cover).
func parseTrack(spec string) grid.Track {
	spec = strings.TrimSpace(spec)
	if spec == "auto" || spec == "" {
		return grid.Track{Kind: grid.TrackAuto}
	}
	if strings.HasSuffix(spec, "fr") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(spec, "fr"), 64)
		if err != nil {
			n = 1
		}
		return grid.Track{Kind: grid.TrackFraction, Fraction: value.Fraction(n)}
	}
	if length, ok := value.ParseLength(spec); ok {
		return grid.Track{Kind: grid.TrackFixed, Fixed: length}
	}
	return grid.Track{Kind: grid.TrackAuto}
}

// equationBlock tokenizes el's math source into mathlayout atoms,
// classifies each by a small fixed lexical table (§4.6's math grammar
// proper — fractions, sub/sup, fenced groups — is out of scope until the
// parser grows Math mode; see DESIGN.md), spaces them per
// mathlayout.Spacing, and resizes any fence to the run's extent via
// mathlayout.StretchDelimiters.
func (b *bridge) equationBlock(el realize.Element) flow.Block {
	body, _ := el.Fields["body"].(string)
	tokens := strings.Fields(body)
	items := make([]mathlayout.Item, len(tokens))
	for i, tok := range tokens {
		class := classifyToken(tok)
		stretchy := class == mathlayout.ClassOpen || class == mathlayout.ClassClose || class == mathlayout.ClassFence
		ascent, descent := b.m.BodySize*0.7, b.m.BodySize*0.2
		if class == mathlayout.ClassLarge {
			// Big operators (sum, prod, int) run taller than ordinary
			// glyphs; a fence enclosing one needs that extent to stretch to.
			ascent, descent = b.m.BodySize*1.3, b.m.BodySize*0.5
		} else if stretchy {
			// A fence's own glyph is shorter than body text until
			// StretchDelimiters grows it to match its enclosed extent.
			ascent, descent = b.m.BodySize*0.5, b.m.BodySize*0.1
		}
		items[i] = mathlayout.Item{
			Class:    class,
			Width:    float64(len([]rune(tok))) * b.m.BodySize * 0.5,
			Ascent:   ascent,
			Descent:  descent,
			Stretchy: stretchy,
		}
	}
	items = mathlayout.StretchDelimiters(items)

	frame := layout.Frame{}
	x := 0.0
	for i, it := range items {
		if i > 0 {
			x += float64(mathlayout.Spacing(items[i-1].Class, it.Class, false)) / 18.0 * b.m.BodySize
		}
		frame.Place(x, 0, tokens[i])
		x += it.Width
	}
	ascent, descent := mathlayout.Extent(items)
	frame.Size = layout.Size{W: x, H: ascent + descent}
	return flow.Block{Nested: &frame, Spacing: b.m.ParagraphSpace}
}

func classifyToken(tok string) mathlayout.AtomClass {
	switch tok {
	case "(", "[", "{":
		return mathlayout.ClassOpen
	case ")", "]", "}":
		return mathlayout.ClassClose
	case "|", "||":
		return mathlayout.ClassFence
	case "+", "-", "*", "/", "times", "cdot":
		return mathlayout.ClassBinary
	case "=", "<", ">", "<=", ">=", "neq", "approx":
		return mathlayout.ClassRelation
	case ",", ";":
		return mathlayout.ClassPunct
	case "sum", "prod", "int", "lim":
		return mathlayout.ClassLarge
	default:
		return mathlayout.ClassOrd
	}
}
