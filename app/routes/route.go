package routes

import (
	"net/http"

	"github.com/Rakhulsr/go-catalog/app/handlers"
	"github.com/Rakhulsr/go-catalog/app/handlers/admin"
	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/middlewares"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/Rakhulsr/go-catalog/app/services/storage"
	"github.com/Rakhulsr/go-catalog/app/utils/logger"
	"github.com/Rakhulsr/go-catalog/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type Deps struct {
	DB           *gorm.DB
	Render       *render.Render
	Assets       storage.AssetStore
	SessionStore sessions.SessionStore
	CSRFKey      []byte
	Secure       bool
	MediaRoot    string
	MediaURL     string
	StaticDir    string
	Registry     *prometheus.Registry
}

// NewRouter wires repositories, services and handlers into the HTTP routes.
// The returned handler applies method overriding before route matching.
func NewRouter(deps Deps) http.Handler {
	categoryRepo := repositories.NewCategoryRepository(deps.DB)
	productRepo := repositories.NewProductRepository(deps.DB)
	galleryRepo := repositories.NewGalleryRepository(deps.DB)
	contactRepo := repositories.NewContactInfoRepository(deps.DB)
	adminRepo := repositories.NewAdminUserRepository(deps.DB)

	catalogSvc := services.NewCatalogService(productRepo)
	contactSvc := services.NewContactService(contactRepo)
	siteProvider := services.NewSiteContextProvider(categoryRepo, contactRepo)

	productHandler := handlers.NewProductHandler(catalogSvc, deps.Render)
	adminHandler := admin.NewAdminHandler(
		deps.Render,
		helpers.NewValidator(),
		categoryRepo,
		productRepo,
		galleryRepo,
		adminRepo,
		contactSvc,
		deps.Assets,
		deps.SessionStore,
	)

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := middlewares.NewMetrics(registry)

	router := mux.NewRouter().StrictSlash(true)
	router.Use(middlewares.RequestLogger)
	router.Use(metrics.Middleware)
	router.Use(middlewares.SiteContextMiddleware(siteProvider))

	router.NotFoundHandler = middlewares.RequestLogger(
		middlewares.SiteContextMiddleware(siteProvider)(handlers.NotFoundHandler(deps.Render)),
	)

	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.HandleFunc("/health", healthCheck(deps)).Methods(http.MethodGet)

	if deps.StaticDir != "" {
		router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(deps.StaticDir))))
	}
	if deps.MediaRoot != "" && deps.MediaURL != "" && deps.MediaURL[0] == '/' {
		router.PathPrefix(deps.MediaURL).Handler(http.StripPrefix(deps.MediaURL, http.FileServer(http.Dir(deps.MediaRoot))))
	}

	router.HandleFunc("/", handlers.Home).Methods(http.MethodGet)
	router.HandleFunc("/catalog/", productHandler.Products).Methods(http.MethodGet)
	router.HandleFunc("/catalog/category/{category_slug}/", productHandler.Products).Methods(http.MethodGet)
	router.HandleFunc("/catalog/product/{slug}/", productHandler.ProductDetail).Methods(http.MethodGet)

	adminRouter := router.PathPrefix("/admin").Subrouter()
	if deps.CSRFKey != nil {
		adminRouter.Use(csrf.Protect(deps.CSRFKey,
			csrf.Secure(deps.Secure),
			csrf.Path("/admin"),
			csrf.FieldName("csrf_token"),
		))
	} else {
		logger.Logger.Warn().Msg("CSRF_KEY not set, admin forms are not CSRF protected")
	}

	adminRouter.HandleFunc("/login", adminHandler.LoginPage).Methods(http.MethodGet)
	adminRouter.HandleFunc("/login", adminHandler.LoginPost).Methods(http.MethodPost)

	protected := adminRouter.NewRoute().Subrouter()
	protected.Use(middlewares.AdminAuthMiddleware(deps.SessionStore, adminRepo))

	protected.HandleFunc("/", adminHandler.Dashboard).Methods(http.MethodGet)
	protected.HandleFunc("/logout", adminHandler.Logout).Methods(http.MethodPost)

	protected.HandleFunc("/categories", adminHandler.GetCategoriesPage).Methods(http.MethodGet)
	protected.HandleFunc("/categories/add", adminHandler.AddCategoryPage).Methods(http.MethodGet)
	protected.HandleFunc("/categories/add", adminHandler.AddCategoryPost).Methods(http.MethodPost)
	protected.HandleFunc("/categories/edit/{id}", adminHandler.EditCategoryPage).Methods(http.MethodGet)
	protected.HandleFunc("/categories/edit/{id}", adminHandler.EditCategoryPost).Methods(http.MethodPost)
	protected.HandleFunc("/categories/{id}", adminHandler.DeleteCategory).Methods(http.MethodDelete)

	protected.HandleFunc("/products", adminHandler.GetProductsPage).Methods(http.MethodGet)
	protected.HandleFunc("/products/add", adminHandler.AddProductPage).Methods(http.MethodGet)
	protected.HandleFunc("/products/add", adminHandler.AddProductPost).Methods(http.MethodPost)
	protected.HandleFunc("/products/edit/{id}", adminHandler.EditProductPage).Methods(http.MethodGet)
	protected.HandleFunc("/products/edit/{id}", adminHandler.EditProductPost).Methods(http.MethodPost)
	protected.HandleFunc("/products/{id}/price", adminHandler.UpdateProductPrice).Methods(http.MethodPost)
	protected.HandleFunc("/products/{id}", adminHandler.DeleteProduct).Methods(http.MethodDelete)

	protected.HandleFunc("/contact", adminHandler.GetContactPage).Methods(http.MethodGet)
	protected.HandleFunc("/contact/add", adminHandler.AddContactPage).Methods(http.MethodGet)
	protected.HandleFunc("/contact/add", adminHandler.AddContactPost).Methods(http.MethodPost)
	protected.HandleFunc("/contact/edit", adminHandler.EditContactPage).Methods(http.MethodGet)
	protected.HandleFunc("/contact/edit", adminHandler.EditContactPost).Methods(http.MethodPost)
	protected.HandleFunc("/contact", adminHandler.DeleteContact).Methods(http.MethodDelete)

	return middlewares.MethodOverrideMiddleware(router)
}

func healthCheck(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			logger.Error(r.Context()).Err(err).Msg("Health check: database unavailable")
			_ = deps.Render.JSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"success": false,
				"error":   "Database unavailable",
			})
			return
		}
		_ = deps.Render.JSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Catalog service is healthy",
		})
	}
}
