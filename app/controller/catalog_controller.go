package controller

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"nube-alta-cafe/service"
	"nube-alta-cafe/utils"
)

// CatalogController exports the printable menu for the admin
type CatalogController struct {
	menuPDF *service.MenuPDFService
	catalog *service.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(menuPDF *service.MenuPDFService, catalog *service.CatalogService) *CatalogController {
	return &CatalogController{
		menuPDF: menuPDF,
		catalog: catalog,
	}
}

// validFormats is a map of valid format values
var validFormats = map[string]bool{
	"html": true,
	"pdf":  true,
}

// GenerateMenu handles GET /admin/menu?format=pdf|html
func (c *CatalogController) GenerateMenu(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GenerateMenu: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, http.MethodGet, "GenerateMenu") {
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "pdf"
	}
	if !validFormats[format] {
		log.Printf("❌ GenerateMenu: Invalid format: %s", format)
		http.Error(w, "Invalid format. Valid formats: html, pdf", http.StatusBadRequest)
		return
	}

	if len(c.catalog.Menu().Products) == 0 {
		log.Printf("⚠️  GenerateMenu: No available products")
		http.Error(w, "No available products to print", http.StatusNotFound)
		return
	}

	switch format {
	case "html":
		htmlContent, err := c.menuPDF.RenderMenuHTML()
		if err != nil {
			log.Printf("❌ GenerateMenu: Error rendering HTML: %v", err)
			http.Error(w, fmt.Sprintf("Failed to render menu: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(htmlContent)); err != nil {
			log.Printf("❌ GenerateMenu: Error writing HTML response: %v", err)
		}

	case "pdf":
		pdfData, err := c.menuPDF.GeneratePDF(r.Context())
		if err != nil {
			log.Printf("❌ GenerateMenu: Error generating PDF: %v", err)
			http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
			return
		}

		name := strings.TrimSuffix(utils.SlugFileName(c.catalog.StoreConfig().BusinessName), ".jpg")
		filename := fmt.Sprintf("menu_%s.pdf", name)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdfData); err != nil {
			log.Printf("❌ GenerateMenu: Error writing PDF response: %v", err)
		}
	}
}
