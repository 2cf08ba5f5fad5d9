package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"nube-alta-cafe/models"
	"nube-alta-cafe/repository"
)

// ErrProductNotFound is returned when a product id is not in the current snapshot
var ErrProductNotFound = errors.New("product not found")

const reloadTimeout = 15 * time.Second

// catalogSnapshot is an immutable view of the whole catalog.
// It is replaced as a unit on every successful reload.
type catalogSnapshot struct {
	config          models.StoreConfig
	categories      []models.Category
	products        []models.Product
	productIndex    map[string]int
	variantGroups   map[string]models.VariantGroup // productID -> group
	toppings        []models.Topping
	productToppings map[string]map[string]bool // productID -> toppingID set
	banners         []models.Banner
	bannerProducts  map[string][]string // bannerID -> productIDs
	loadedAt        time.Time
}

func emptySnapshot() *catalogSnapshot {
	return &catalogSnapshot{
		config:          models.StoreConfig{BusinessName: models.DefaultBusinessName},
		categories:      []models.Category{},
		products:        []models.Product{},
		productIndex:    map[string]int{},
		variantGroups:   map[string]models.VariantGroup{},
		toppings:        []models.Topping{},
		productToppings: map[string]map[string]bool{},
		banners:         []models.Banner{},
		bannerProducts:  map[string][]string{},
	}
}

// CatalogService keeps the in-memory catalog the storefront reads from
type CatalogService struct {
	repository repository.CatalogRepositoryInterface

	mu       sync.RWMutex
	snapshot *catalogSnapshot
}

// NewCatalogService creates a CatalogService with an empty snapshot; call Reload to fill it
func NewCatalogService(repo repository.CatalogRepositoryInterface) *CatalogService {
	return &CatalogService{
		repository: repo,
		snapshot:   emptySnapshot(),
	}
}

// Reload fetches every catalog table in parallel and swaps the snapshot.
// On failure the previous snapshot stays in place.
func (s *CatalogService) Reload(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, reloadTimeout)
	defer cancel()

	var (
		config          *models.StoreConfig
		categories      []models.Category
		products        []models.Product
		groups          []models.VariantGroup
		toppings        []models.Topping
		productToppings []models.ProductTopping
		banners         []models.Banner
		bannerProducts  []models.BannerProduct
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.repository.GetStoreConfig(gctx)
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("⚠️ Store configuration not found, using defaults")
			return nil
		}
		config = c
		return err
	})
	g.Go(func() (err error) { categories, err = s.repository.ListCategories(gctx); return })
	g.Go(func() (err error) { products, err = s.repository.ListProducts(gctx); return })
	g.Go(func() (err error) { groups, err = s.repository.ListVariantGroupsWithVariants(gctx); return })
	g.Go(func() (err error) { toppings, err = s.repository.ListToppings(gctx); return })
	g.Go(func() (err error) { productToppings, err = s.repository.ListProductToppings(gctx); return })
	g.Go(func() (err error) { banners, err = s.repository.ListBanners(gctx); return })
	g.Go(func() (err error) { bannerProducts, err = s.repository.ListBannerProducts(gctx); return })

	if err := g.Wait(); err != nil {
		log.Printf("❌ Catalog reload failed, keeping previous snapshot: %v", err)
		return fmt.Errorf("failed to reload catalog: %w", err)
	}

	next := emptySnapshot()
	if config != nil {
		next.config = *config
		if strings.TrimSpace(next.config.BusinessName) == "" {
			next.config.BusinessName = models.DefaultBusinessName
		}
	}

	next.categories = append(next.categories, categories...)
	sort.SliceStable(next.categories, func(i, j int) bool {
		return next.categories[i].Order < next.categories[j].Order
	})

	next.products = append(next.products, products...)
	for i, p := range next.products {
		next.productIndex[p.ID] = i
	}

	for _, group := range groups {
		next.variantGroups[group.ProductID] = group
	}

	next.toppings = append(next.toppings, toppings...)
	sortToppings(next.toppings)

	for _, link := range productToppings {
		set, ok := next.productToppings[link.ProductID]
		if !ok {
			set = map[string]bool{}
			next.productToppings[link.ProductID] = set
		}
		set[link.ToppingID] = true
	}

	next.banners = append(next.banners, banners...)
	sort.SliceStable(next.banners, func(i, j int) bool {
		return next.banners[i].Order < next.banners[j].Order
	})
	for _, link := range bannerProducts {
		next.bannerProducts[link.BannerID] = append(next.bannerProducts[link.BannerID], link.ProductID)
	}
	next.loadedAt = time.Now()

	s.mu.Lock()
	s.snapshot = next
	s.mu.Unlock()

	log.Printf("🔄 Catalog reloaded: %d products, %d categories, %d toppings, %d banners",
		len(next.products), len(next.categories), len(next.toppings), len(next.banners))
	return nil
}

// Watch reloads the snapshot on every change event until ctx is done or the channel closes.
// Events already queued when a reload starts are drained into that reload;
// events that arrive while it runs trigger one more reload afterwards.
func (s *CatalogService) Watch(ctx context.Context, events <-chan models.ChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			log.Printf("🔄 Catalog change on %s", ev.Table)
		drain:
			for {
				select {
				case _, ok := <-events:
					if !ok {
						break drain
					}
				default:
					break drain
				}
			}
			if err := s.Reload(ctx); err != nil {
				log.Printf("⚠️ Reload after change failed: %v", err)
			}
		}
	}
}

// sortToppings orders toppings by name using Spanish collation ("Ñ" after "N", accents ignored)
func sortToppings(toppings []models.Topping) {
	c := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(toppings, func(i, j int) bool {
		return c.CompareString(toppings[i].Name, toppings[j].Name) < 0
	})
}

func (s *CatalogService) current() *catalogSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// LoadedAt reports when the snapshot was last refreshed; zero if never
func (s *CatalogService) LoadedAt() time.Time {
	return s.current().loadedAt
}

// StoreConfig returns the full store configuration, banking details included
func (s *CatalogService) StoreConfig() models.StoreConfig {
	return s.current().config
}

// Menu returns the storefront payload: available products, active banners and
// a public configuration without banking details
func (s *CatalogService) Menu() models.MenuResponse {
	snap := s.current()

	config := snap.config
	config.BankingDetails = ""

	resp := models.MenuResponse{
		Config:         config,
		Categories:     append([]models.Category{}, snap.categories...),
		Products:       availableProducts(snap.products),
		Banners:        []models.Banner{},
		BannerProducts: map[string][]string{},
	}
	for _, b := range snap.banners {
		if !b.Active {
			continue
		}
		resp.Banners = append(resp.Banners, b)
		resp.BannerProducts[b.ID] = append([]string{}, snap.bannerProducts[b.ID]...)
	}
	return resp
}

func availableProducts(products []models.Product) []models.Product {
	out := []models.Product{}
	for _, p := range products {
		if p.Available {
			out = append(out, p)
		}
	}
	return out
}

// FilterProducts returns available products matching every non-empty filter field.
// Search is a case-insensitive substring match on name and description.
func (s *CatalogService) FilterProducts(filter models.ProductFilter) []models.Product {
	snap := s.current()

	var inBanner map[string]bool
	if filter.BannerID != "" {
		inBanner = map[string]bool{}
		for _, id := range snap.bannerProducts[filter.BannerID] {
			inBanner[id] = true
		}
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := []models.Product{}
	for _, p := range snap.products {
		if !p.Available {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if inBanner != nil && !inBanner[p.ID] {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// GetProduct returns a product from the snapshot, available or not
func (s *CatalogService) GetProduct(id string) (models.Product, error) {
	snap := s.current()
	i, ok := snap.productIndex[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%s: %w", id, ErrProductNotFound)
	}
	p := snap.products[i]
	if p.BasePrice != nil {
		price := *p.BasePrice
		p.BasePrice = &price
	}
	return p, nil
}

// ProductOptions returns what the configurator needs for a product: its variant
// group with available variants sorted by order, and the accepted active toppings
// in catalog order. Unavailable products are reported as not found.
func (s *CatalogService) ProductOptions(id string) (models.ProductOptions, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return models.ProductOptions{}, err
	}
	if !product.Available {
		return models.ProductOptions{}, fmt.Errorf("%s is not available: %w", id, ErrProductNotFound)
	}

	snap := s.current()
	opts := models.ProductOptions{Product: product, Toppings: []models.Topping{}}

	if group, ok := snap.variantGroups[id]; ok && product.HasVariants {
		g := group
		g.Variants = []models.Variant{}
		for _, v := range group.Variants {
			if v.Available {
				g.Variants = append(g.Variants, v)
			}
		}
		sort.SliceStable(g.Variants, func(i, j int) bool {
			return g.Variants[i].Order < g.Variants[j].Order
		})
		opts.VariantGroup = &g
	}

	if product.AcceptsToppings {
		accepted := snap.productToppings[id]
		for _, t := range snap.toppings {
			if t.Active && accepted[t.ID] {
				opts.Toppings = append(opts.Toppings, t)
			}
		}
	}
	return opts, nil
}

// AdminCatalog returns everything in the snapshot, including unavailable and inactive rows
func (s *CatalogService) AdminCatalog() models.MenuResponse {
	snap := s.current()
	resp := models.MenuResponse{
		Config:         snap.config,
		Categories:     append([]models.Category{}, snap.categories...),
		Products:       append([]models.Product{}, snap.products...),
		Banners:        append([]models.Banner{}, snap.banners...),
		BannerProducts: map[string][]string{},
	}
	for id, products := range snap.bannerProducts {
		resp.BannerProducts[id] = append([]string{}, products...)
	}
	return resp
}

// Toppings returns every topping, active or not, in catalog order
func (s *CatalogService) Toppings() []models.Topping {
	return append([]models.Topping{}, s.current().toppings...)
}

// AdminProductOptions returns the full variant group (unavailable variants included)
// and the ids of the toppings linked to a product
func (s *CatalogService) AdminProductOptions(id string) (*models.VariantGroup, []string, error) {
	if _, err := s.GetProduct(id); err != nil {
		return nil, nil, err
	}
	snap := s.current()

	var group *models.VariantGroup
	if g, ok := snap.variantGroups[id]; ok {
		g.Variants = append([]models.Variant{}, g.Variants...)
		group = &g
	}

	toppingIDs := []string{}
	for _, t := range snap.toppings {
		if snap.productToppings[id][t.ID] {
			toppingIDs = append(toppingIDs, t.ID)
		}
	}
	return group, toppingIDs, nil
}

// Dashboard summarizes the catalog for the admin home
func (s *CatalogService) Dashboard() models.DashboardResponse {
	snap := s.current()
	resp := models.DashboardResponse{
		Products:            len(snap.products),
		Categories:          len(snap.categories),
		Banners:             len(snap.banners),
		UnavailableProducts: []models.Product{},
	}
	for _, p := range snap.products {
		if p.Available {
			resp.AvailableProducts++
		} else {
			resp.UnavailableProducts = append(resp.UnavailableProducts, p)
		}
	}
	for _, b := range snap.banners {
		if b.Active {
			resp.ActiveBanners++
		}
	}
	return resp
}
