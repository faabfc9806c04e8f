package docgen

import "ticketdesk/models"

// The document layout is a fixed coordinate contract with the template
// artwork: all positions below are in the 400x160 base unit system of the
// original ticket design and are multiplied by RasterScale when drawn.
// Changing them breaks visual compatibility with printed tickets.

const (
	BaseWidth  = 400.0
	BaseHeight = 160.0

	// RasterScale converts base units to output pixels.
	RasterScale = 3.0
)

type point struct {
	X, Y float64
}

type rect struct {
	X, Y, W, H float64
}

// Layout holds every drawable position of the ticket document.
type Layout struct {
	LeftBar      rect
	CategoryBar  rect
	QRPanel      rect
	QR           rect
	TicketIDText point
	ArtistLines  []point
	DateLine     point
	VenueLine    point
	NameLine     point
	EmailLine    point
	PhoneLine    point
	SeatText     point

	LeftBarLabelSize float64
	CategoryTextSize float64
	TicketIDSize     float64
	ArtistTextSize   float64
	InfoTextSize     float64
	SeatTextSize     float64
}

var ticketLayout = Layout{
	LeftBar:     rect{0, 0, 50, 160},
	CategoryBar: rect{330, 0, 20, 160},
	QRPanel:     rect{350, 0, 50, 160},
	QR:          rect{355, 15, 40, 40},

	TicketIDText: point{375, 65},
	ArtistLines:  []point{{60, 30}, {60, 40}, {60, 50}},
	DateLine:     point{60, 70},
	VenueLine:    point{60, 80},
	NameLine:     point{60, 100},
	EmailLine:    point{60, 110},
	PhoneLine:    point{60, 120},
	SeatText:     point{270, 120},

	LeftBarLabelSize: 14,
	CategoryTextSize: 12,
	TicketIDSize:     6,
	ArtistTextSize:   8,
	InfoTextSize:     10,
	SeatTextSize:     12,
}

// Template is the per-category artwork descriptor. The accent bar and QR
// panel are shared by all categories; the category bar color and label vary.
type Template struct {
	Label      string
	BarColor   string
	LeftColor  string
	PanelColor string
}

var categoryTemplates = map[models.Category]Template{
	models.CategorySilver:     {Label: "Silver", BarColor: "#A16DB2", LeftColor: "#2E3A87", PanelColor: "#E5B14C"},
	models.CategorySilverPlus: {Label: "Silver Plus", BarColor: "#8E5AA3", LeftColor: "#2E3A87", PanelColor: "#E5B14C"},
	models.CategoryGold:       {Label: "Gold", BarColor: "#C8A24B", LeftColor: "#2E3A87", PanelColor: "#E5B14C"},
	models.CategoryGoldPlus:   {Label: "Gold Plus", BarColor: "#B8860B", LeftColor: "#2E3A87", PanelColor: "#E5B14C"},
	models.CategoryDiamond:    {Label: "Diamond", BarColor: "#7FB3D5", LeftColor: "#2E3A87", PanelColor: "#E5B14C"},
	models.CategoryPlatinum:   {Label: "Platinum", BarColor: "#95A5A6", LeftColor: "#2E3A87", PanelColor: "#E5B14C"},
}

// TemplateFor resolves the artwork descriptor for a category. The second
// return is false for categories with no mapped template; callers must treat
// that as a configuration error, not fall back to a default.
func TemplateFor(category models.Category) (Template, bool) {
	tpl, ok := categoryTemplates[category]
	return tpl, ok
}
