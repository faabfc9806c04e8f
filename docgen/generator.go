package docgen

import (
	"bytes"
	"fmt"
	"strings"

	"ticketdesk/internal/status"
	"ticketdesk/models"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Generator renders ticket documents: the category template artwork with the
// holder details drawn at fixed positions and the ticket_id QR composited in.
type Generator struct {
	regular *opentype.Font
	bold    *opentype.Font
}

func NewGenerator() (*Generator, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}

	return &Generator{regular: regular, bold: bold}, nil
}

// Render produces the PNG document for a ticket at the given seat. The event
// must be loaded on the ticket. Returns ErrTemplateNotConfigured when the
// category has no mapped template.
func (g *Generator) Render(ticket *models.Ticket, seatNumber string) ([]byte, error) {
	tpl, ok := TemplateFor(ticket.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", status.ErrTemplateNotConfigured, ticket.Category)
	}

	qrPNG, err := EncodeQR(ticket.TicketID)
	if err != nil {
		return nil, err
	}
	qrImg, err := imaging.Decode(bytes.NewReader(qrPNG))
	if err != nil {
		return nil, fmt.Errorf("decode qr tile: %w", err)
	}

	s := RasterScale
	l := ticketLayout

	dc := gg.NewContext(int(BaseWidth*s), int(BaseHeight*s))
	dc.SetHexColor("#FFFFFF")
	dc.Clear()

	// Template artwork: left accent bar, category bar, QR panel.
	fillRect(dc, l.LeftBar, tpl.LeftColor)
	fillRect(dc, l.CategoryBar, tpl.BarColor)
	fillRect(dc, l.QRPanel, tpl.PanelColor)

	// Vertical labels on the bars.
	dc.SetHexColor("#FFFFFF")
	if err := g.drawRotated(dc, "Event Ticket", l.LeftBar.X+l.LeftBar.W/2, BaseHeight/2, l.LeftBarLabelSize, true); err != nil {
		return nil, err
	}
	if err := g.drawRotated(dc, tpl.Label, l.CategoryBar.X+l.CategoryBar.W/2, BaseHeight/2, l.CategoryTextSize, false); err != nil {
		return nil, err
	}

	// QR tile plus the raw ticket_id underneath.
	qrSize := int(l.QR.W * s)
	tile := imaging.Resize(qrImg, qrSize, qrSize, imaging.Lanczos)
	dc.DrawImage(tile, int(l.QR.X*s), int(l.QR.Y*s))

	dc.SetHexColor("#000000")
	if err := g.setFace(dc, g.regular, l.TicketIDSize); err != nil {
		return nil, err
	}
	dc.DrawStringAnchored(ticket.TicketID, l.TicketIDText.X*s, l.TicketIDText.Y*s, 0.5, 0.5)

	// Event details on the white center area.
	event := ticket.Event
	if event == nil {
		event = &models.Event{}
	}

	if err := g.setFace(dc, g.regular, l.ArtistTextSize); err != nil {
		return nil, err
	}
	for i, line := range splitLines(event.FeaturedArtists, len(l.ArtistLines)) {
		dc.DrawString(line, l.ArtistLines[i].X*s, l.ArtistLines[i].Y*s)
	}

	if err := g.setFace(dc, g.bold, l.InfoTextSize); err != nil {
		return nil, err
	}
	dc.DrawString(fmt.Sprintf("%s | %s ONWARDS", event.Date, event.StartTime), l.DateLine.X*s, l.DateLine.Y*s)

	if err := g.setFace(dc, g.regular, l.InfoTextSize); err != nil {
		return nil, err
	}
	dc.DrawString("At "+event.Location, l.VenueLine.X*s, l.VenueLine.Y*s)
	dc.DrawString("Name : "+ticket.Name, l.NameLine.X*s, l.NameLine.Y*s)
	dc.DrawString("Email: "+ticket.Email, l.EmailLine.X*s, l.EmailLine.Y*s)
	dc.DrawString("Phone: "+ticket.Phone, l.PhoneLine.X*s, l.PhoneLine.Y*s)

	if err := g.setFace(dc, g.bold, l.SeatTextSize); err != nil {
		return nil, err
	}
	dc.DrawString("Seat Number: "+seatNumber, l.SeatText.X*s, l.SeatText.Y*s)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) setFace(dc *gg.Context, f *opentype.Font, baseSize float64) error {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    baseSize * RasterScale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("font face: %w", err)
	}
	dc.SetFontFace(face)
	return nil
}

func (g *Generator) drawRotated(dc *gg.Context, text string, x, y, size float64, bold bool) error {
	f := g.regular
	if bold {
		f = g.bold
	}
	if err := g.setFace(dc, f, size); err != nil {
		return err
	}

	s := RasterScale
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), x*s, y*s)
	dc.DrawStringAnchored(text, x*s, y*s, 0.5, 0.5)
	dc.Pop()
	return nil
}

func fillRect(dc *gg.Context, r rect, hexColor string) {
	s := RasterScale
	dc.SetHexColor(hexColor)
	dc.DrawRectangle(r.X*s, r.Y*s, r.W*s, r.H*s)
	dc.Fill()
}

// splitLines breaks the comma separated featured_artists value into at most
// max display lines.
func splitLines(artists string, max int) []string {
	if artists == "" {
		return nil
	}

	parts := strings.Split(artists, ",")
	lines := make([]string, 0, max)
	for _, p := range parts {
		if len(lines) == max {
			break
		}
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}
