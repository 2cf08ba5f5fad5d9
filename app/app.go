package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"nube-alta-cafe/app/controller"
	"nube-alta-cafe/app/router"
	"nube-alta-cafe/cart"
	"nube-alta-cafe/configurator"
	"nube-alta-cafe/data"
	"nube-alta-cafe/db"
	"nube-alta-cafe/repository"
	"nube-alta-cafe/service"
)

const (
	configuratorMaxIdle = 30 * time.Minute
	cartMaxIdle         = 2 * time.Hour
	imageCacheDir       = "cache/images"
)

// Initialize wires repositories, services and controllers onto mux.
// Background workers stop when ctx is cancelled.
func Initialize(ctx context.Context, mux *http.ServeMux) error {
	catalogRepo, adminRepo, connStr, err := catalogSource(ctx)
	if err != nil {
		return err
	}

	cartRepo, err := cartRepository(ctx)
	if err != nil {
		return err
	}

	catalogService := service.NewCatalogService(catalogRepo)
	if err := catalogService.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if connStr != "" {
		go catalogService.Watch(ctx, db.ListenCatalogChanges(ctx, connStr))
	}

	imageService, err := newImageService(ctx)
	if err != nil {
		return err
	}

	auth := service.NewAuthService(os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD_HASH"), os.Getenv("SESSION_SECRET"))
	if !auth.Enabled() {
		log.Printf("⚠️ ADMIN_EMAIL, ADMIN_PASSWORD_HASH or SESSION_SECRET not set, admin panel disabled")
	}

	carts := cart.NewSessions(cartRepo)
	configurators := configurator.NewSessions()
	go sweepSessions(ctx, configurators, carts)

	adminService := service.NewAdminService(adminRepo, catalogService)
	menuPDFService := service.NewMenuPDFService(catalogService)

	controllers := &router.Controllers{
		Menu:         controller.NewMenuController(catalogService, imageService),
		Cart:         controller.NewCartController(carts, catalogService),
		Configurator: controller.NewConfiguratorController(configurators, carts, catalogService),
		Checkout:     controller.NewCheckoutController(carts, catalogService),
		AdminAuth:    controller.NewAdminAuthController(auth),
		AdminCatalog: controller.NewAdminCatalogController(adminService, catalogService),
		Catalog:      controller.NewCatalogController(menuPDFService, catalogService),
		Upload:       controller.NewUploadController(imageService),
	}

	router.SetupRoutes(mux, controllers, auth)
	return nil
}

// catalogSource returns the Postgres catalog when database variables are set,
// otherwise the read-only seed catalog (SEED_CATALOG_PATH or the bundled menu)
func catalogSource(ctx context.Context) (repository.CatalogRepositoryInterface, repository.AdminRepositoryInterface, string, error) {
	connStr, err := db.ConnString()
	if err == nil {
		if err := db.InitDB(ctx, connStr); err != nil {
			return nil, nil, "", fmt.Errorf("failed to initialize database: %w", err)
		}
		catalogRepo := repository.NewCatalogRepository()
		return catalogRepo, repository.NewAdminRepository(catalogRepo), connStr, nil
	}
	if !errors.Is(err, db.ErrNotConfigured) {
		return nil, nil, "", err
	}

	var seed *repository.SeedCatalogRepository
	if path := os.Getenv("SEED_CATALOG_PATH"); path != "" {
		seed, err = repository.LoadSeedCatalogFile(path)
	} else {
		seed, err = repository.NewSeedCatalogRepository(data.Menu)
	}
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to load seed catalog: %w", err)
	}
	log.Printf("⚠️ No database configured, serving the read-only seed catalog")
	return seed, repository.ReadOnlyAdminRepository{}, "", nil
}

// cartRepository returns the Redis cart store when REDIS_URL is set, otherwise an in-memory one
func cartRepository(ctx context.Context) (repository.CartRepositoryInterface, error) {
	ttl := 72 * time.Hour
	if hours := os.Getenv("CART_TTL_HOURS"); hours != "" {
		n, err := strconv.Atoi(hours)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid CART_TTL_HOURS %q", hours)
		}
		ttl = time.Duration(n) * time.Hour
	}
	controller.SessionCookieTTL = ttl

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Printf("⚠️ REDIS_URL not set, carts are kept in memory")
		return repository.NewCartMemoryRepository(), nil
	}
	client, err := repository.NewRedisClient(ctx, redisURL)
	if err != nil {
		return nil, err
	}
	return repository.NewCartRedisRepository(client, ttl), nil
}

// newImageService enables Drive uploads when GOOGLE_APPLICATION_CREDENTIALS and DRIVE_FOLDER_ID are set
func newImageService(ctx context.Context) (*service.ImageService, error) {
	cache, err := service.NewImageCache(imageCacheDir)
	if err != nil {
		return nil, err
	}

	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	folderID := os.Getenv("DRIVE_FOLDER_ID")
	if credentialsPath == "" || folderID == "" {
		log.Printf("⚠️ GOOGLE_APPLICATION_CREDENTIALS or DRIVE_FOLDER_ID not set, image uploads disabled")
		return service.NewImageService(nil, cache), nil
	}

	driveService, err := service.NewDriveService(ctx, credentialsPath, folderID)
	if err != nil {
		return nil, err
	}
	return service.NewImageService(driveService, cache), nil
}

// sweepSessions drops idle configurators and in-memory carts; persisted carts are reloaded on demand
func sweepSessions(ctx context.Context, configurators *configurator.Sessions, carts *cart.Sessions) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			configurators.Sweep(configuratorMaxIdle)
			carts.Sweep(cartMaxIdle)
		}
	}
}
