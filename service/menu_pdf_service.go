package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"nube-alta-cafe/models"
	"nube-alta-cafe/utils"
)

//go:embed templates/menu.html
var menuTemplateHTML string

var (
	menuTemplate = template.Must(template.New("menu").Parse(menuTemplateHTML))
	hexColor     = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)
)

const (
	defaultPrimaryColor = "#6b4f3a"
	uncategorizedName   = "Otros"
)

type menuItem struct {
	ID          string
	Name        string
	Description string
	Options     string
	Price       string
}

type menuSection struct {
	ID    string
	Name  string
	Items []menuItem
}

type menuPage struct {
	BusinessName  string
	LogoURL       string
	PrimaryColor  template.CSS
	WhatsAppPhone string
	GeneratedAt   string
	Sections      []menuSection
}

// MenuPDFService renders the printable menu from the current catalog snapshot
type MenuPDFService struct {
	catalog *CatalogService
	now     func() time.Time
}

// NewMenuPDFService creates a new MenuPDFService
func NewMenuPDFService(catalog *CatalogService) *MenuPDFService {
	return &MenuPDFService{catalog: catalog, now: time.Now}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// priceLabel renders the menu price of a product: its fixed price, or the
// cheapest available variant ("Desde $60.00") for variant products
func priceLabel(opts models.ProductOptions) string {
	p := opts.Product
	if !p.HasVariants {
		if p.BasePrice == nil {
			return ""
		}
		return utils.FormatMXN(*p.BasePrice)
	}
	if opts.VariantGroup == nil || len(opts.VariantGroup.Variants) == 0 {
		return "Agotado"
	}
	lowest := opts.VariantGroup.Variants[0].Price
	for _, v := range opts.VariantGroup.Variants[1:] {
		if v.Price < lowest {
			lowest = v.Price
		}
	}
	return "Desde " + utils.FormatMXN(lowest)
}

func optionsLabel(opts models.ProductOptions) string {
	var parts []string
	if opts.VariantGroup != nil && len(opts.VariantGroup.Variants) > 0 {
		names := make([]string, len(opts.VariantGroup.Variants))
		for i, v := range opts.VariantGroup.Variants {
			names[i] = fmt.Sprintf("%s %s", v.Name, utils.FormatMXN(v.Price))
		}
		parts = append(parts, opts.VariantGroup.Name+": "+strings.Join(names, " · "))
	}
	if len(opts.Toppings) > 0 {
		label := fmt.Sprintf("Toppings (+%s c/u", utils.FormatMXN(opts.Product.ExtraToppingPrice))
		if opts.Product.FreeToppingsCount > 0 {
			label += fmt.Sprintf(", %d gratis", opts.Product.FreeToppingsCount)
		}
		parts = append(parts, label+")")
	}
	return strings.Join(parts, " | ")
}

func (s *MenuPDFService) buildPage() menuPage {
	menu := s.catalog.Menu()

	color := menu.Config.PrimaryColor
	if !hexColor.MatchString(color) {
		color = defaultPrimaryColor
	}

	data := menuPage{
		BusinessName:  menu.Config.BusinessName,
		LogoURL:       menu.Config.LogoURL,
		PrimaryColor:  template.CSS(color),
		WhatsAppPhone: menu.Config.WhatsAppPhone,
		GeneratedAt:   s.now().Format("02/01/2006"),
	}

	sectionIndex := map[string]int{}
	for _, c := range menu.Categories {
		sectionIndex[c.ID] = len(data.Sections)
		data.Sections = append(data.Sections, menuSection{ID: c.ID, Name: c.Name})
	}

	for _, p := range menu.Products {
		opts, err := s.catalog.ProductOptions(p.ID)
		if err != nil {
			log.Printf("⚠️ Skipping %s in printable menu: %v", p.ID, err)
			continue
		}
		i, ok := sectionIndex[p.CategoryID]
		if !ok {
			i, ok = sectionIndex[""]
			if !ok {
				i = len(data.Sections)
				sectionIndex[""] = i
				data.Sections = append(data.Sections, menuSection{Name: uncategorizedName})
			}
		}
		data.Sections[i].Items = append(data.Sections[i].Items, menuItem{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Options:     optionsLabel(opts),
			Price:       priceLabel(opts),
		})
	}

	sections := data.Sections[:0]
	for _, sec := range data.Sections {
		if len(sec.Items) > 0 {
			sections = append(sections, sec)
		}
	}
	data.Sections = sections
	return data
}

// RenderMenuHTML renders the printable menu as an HTML document
func (s *MenuPDFService) RenderMenuHTML() (string, error) {
	var buf bytes.Buffer
	if err := menuTemplate.Execute(&buf, s.buildPage()); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF prints the rendered menu with headless Chrome
func (s *MenuPDFService) GeneratePDF(ctx context.Context) ([]byte, error) {
	html, err := s.RenderMenuHTML()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		// Wait for fonts and images to load
		chromedp.Evaluate(`
			Promise.all([
				document.fonts.ready,
				...Array.from(document.images).map(img => img.complete ? null : new Promise(resolve => {
					const timeout = setTimeout(resolve, 5000);
					img.onload = img.onerror = () => { clearTimeout(timeout); resolve(); };
				}))
			]).then(() => true)
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 8.27" x 11.69"; margins come from @page
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✅ Menu PDF generated: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}
