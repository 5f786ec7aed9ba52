// Package catalog is the data access layer for products and categories.
//
// A caller opens a store once with database.Open, binds a Service to it with
// NewStoreService and closes the store on shutdown:
//
//	store, err := database.Open(ctx, database.MemoryConfig(true))
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	svc := catalog.NewStoreService(store)
//	page, err := svc.ListProducts(ctx, &model.ProductQuery{Search: "lamp"})
package catalog
