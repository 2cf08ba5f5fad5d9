package service

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuPDFService_RenderMenuHTML(t *testing.T) {
	catalog, _ := newSeededCatalog(t)
	svc := NewMenuPDFService(catalog)
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) }

	html, err := svc.RenderMenuHTML()
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "Nube Alta Cafe", doc.Find("header h1").Text())

	var categories []string
	doc.Find("section.category h2").Each(func(_ int, s *goquery.Selection) {
		categories = append(categories, s.Text())
	})
	assert.Equal(t, []string{"Cafés Calientes", "Frappes", "Postres", "Bebidas Frías"}, categories)

	// unavailable products are left out
	assert.Equal(t, 0, doc.Find(`[data-product="prod-4"]`).Length())

	cappuccino := doc.Find(`[data-product="prod-1"]`)
	assert.Equal(t, "$65.00", strings.TrimSpace(cappuccino.Find(".price").Text()))

	latte := doc.Find(`[data-product="prod-2"]`)
	assert.Equal(t, "Desde $60.00", strings.TrimSpace(latte.Find(".price").Text()))
	options := latte.Find(".options").Text()
	assert.Contains(t, options, "Tamaño: Chico $60.00 · Mediano $70.00 · Grande $80.00")
	assert.Contains(t, options, "Toppings (+$10.00 c/u, 1 gratis)")
	assert.NotContains(t, options, "Jumbo")

	assert.Contains(t, doc.Find("footer").Text(), "14/03/2025")
	assert.Contains(t, html, "border-bottom: 3px solid #6b4f3a")
}

func TestMenuPDFService_EmptyCatalog(t *testing.T) {
	svc := NewMenuPDFService(NewCatalogService(nil))
	html, err := svc.RenderMenuHTML()
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("section.category").Length())
	assert.Equal(t, "Nube Alta Cafe", doc.Find("header h1").Text())
}
