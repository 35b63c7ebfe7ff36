// Package datalayer builds structured analytics events and appends them to
// an in-page event queue consumed by a tag-management platform.
//
// The package gives application code one validated, framework-agnostic way
// to emit page, product, cart, checkout, account, wishlist, and order
// events without each call site re-deriving event shape, string
// normalization, or site/user context injection.
//
// The stateful core is the Sequencer: it assembles the outgoing envelope,
// injects site and user context exactly once per session, and reconciles
// each event against the previously emitted one so that fields present
// before but absent now are explicitly nulled. Consumers of the queue can
// therefore treat every envelope as current state instead of diffing
// against history themselves.
//
// Basic usage:
//
//	dl := datalayer.New(
//		datalayer.WithEnvironment(&datalayer.StaticEnvironment{
//			Path:  "/products/air-x",
//			Title: "Air X",
//			URL:   "https://www.example.com/products/air-x",
//		}),
//	)
//	if err := dl.Init(config.SiteInfo{
//		Name:       "example-store",
//		Experience: "desktop",
//		Currency:   "AUD",
//		Division:   "retail",
//		Domain:     "www.example.com",
//		Env:        "prod",
//		Version:    "1.0",
//	}); err != nil {
//		return err
//	}
//
//	dl.Page.Home(ctx)
//	dl.Display.View(ctx, product)
//
// Domain module operations return the emitted envelope and an error. Setup
// errors (missing site info, emit before Init) must be handled by the
// integrator; per-event validation failures are logged and suppressed so
// analytics can never break the host application's primary flow.
package datalayer
