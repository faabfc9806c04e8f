package docgen

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"ticketdesk/internal/status"
	"ticketdesk/models"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTicket() *models.Ticket {
	return &models.Ticket{
		TicketID:     "RAGA-NIV001-A113",
		SerialNumber: "NIV001",
		Name:         "Divya Sharma",
		Email:        "divya@example.com",
		Phone:        "9951541261",
		Category:     models.CategoryGold,
		Status:       models.StatusConfirmed,
		Event: &models.Event{
			ID:              "nirvana-2025",
			Name:            "Nirvana - Classical Music Concert",
			Location:        "Bharat Mandapam, New Delhi",
			Date:            "11 OCT 2025",
			StartTime:       "4 PM",
			FeaturedArtists: "Ustad Amjad Ali Khan, Pandit Sajan Misra, The Anirudh Varma Collective",
		},
	}
}

func TestGenerator_Render(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)

	data, err := g.Render(testTicket(), "A12")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, int(BaseWidth*RasterScale), bounds.Dx())
	assert.Equal(t, int(BaseHeight*RasterScale), bounds.Dy())
}

func TestGenerator_Render_QRSurvivesCompositing(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)

	ticket := testTicket()
	data, err := g.Render(ticket, "A12")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	// Crop the QR panel and make sure the composited code still decodes to
	// the exact ticket id.
	s := RasterScale
	panel := imaging.Crop(img, image.Rect(
		int(ticketLayout.QRPanel.X*s), 0,
		int(BaseWidth*s), int(BaseHeight*s),
	))

	decoded, err := DecodeQR(panel)
	require.NoError(t, err)
	assert.Equal(t, ticket.TicketID, decoded)
}

func TestGenerator_Render_UnmappedCategory(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)

	ticket := testTicket()
	ticket.Category = models.Category("VIP")

	_, err = g.Render(ticket, "A12")

	assert.ErrorIs(t, err, status.ErrTemplateNotConfigured)
}

func TestTemplateFor_AllCategoriesMapped(t *testing.T) {
	categories := []models.Category{
		models.CategorySilver,
		models.CategorySilverPlus,
		models.CategoryGold,
		models.CategoryGoldPlus,
		models.CategoryDiamond,
		models.CategoryPlatinum,
	}

	for _, c := range categories {
		tpl, ok := TemplateFor(c)
		assert.True(t, ok, "category %s should have a template", c)
		assert.NotEmpty(t, tpl.Label)
		assert.NotEmpty(t, tpl.BarColor)
	}
}
