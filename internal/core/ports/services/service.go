package services

// ServiceContainer holds instances of all the application services.
// It is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Form    FormSvcFacade
	Catalog CatalogSvcFacade // Nil when no catalog database is configured

	shutdown []func()
}

// OnShutdown registers fn to run when the container shuts down.
func (c *ServiceContainer) OnShutdown(fn func()) {
	c.shutdown = append(c.shutdown, fn)
}

// Shutdown releases service resources in reverse registration order.
func (c *ServiceContainer) Shutdown() {
	for i := len(c.shutdown) - 1; i >= 0; i-- {
		c.shutdown[i]()
	}
	c.shutdown = nil
}
