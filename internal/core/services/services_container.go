package services

import (
	"github.com/SscSPs/invoice_form_app/internal/adapters/catalog"
	portsrepo "github.com/SscSPs/invoice_form_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_form_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_form_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// catalogClient may be nil, in which case picked products resolve as lookup failures and
// the type-ahead returns nothing.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, catalogClient portssvc.ProductCatalogClient) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The catalog service only exists when there is a database to serve it from
	if repos.ProductRepo != nil {
		container.Catalog = NewCatalogService(repos.ProductRepo)
	}

	options := []FormServiceOption{
		WithFormLookupTimeout(cfg.CatalogTimeout),
		WithFormIdleTimeout(cfg.FormIdleTimeout),
	}
	if cfg.SearchDebounce > 0 {
		options = append(options, WithSearchDecorator(func(next portssvc.ProductSearchSvc) portssvc.ProductSearchSvc {
			return catalog.NewDebouncedSearcher(next, cfg.SearchDebounce)
		}))
	}
	formService := NewFormService(catalogClient, options...)
	container.Form = formService
	container.OnShutdown(formService.Shutdown)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.FormSvcFacade    = (*formService)(nil)
	_ portssvc.CatalogSvcFacade = (*catalogService)(nil)
)
