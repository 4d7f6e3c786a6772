// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// A sync run flows through the stages in this order:
//
//	Fetcher -> Classifier -> Resolver -> Enricher -> Extractor -> IndexSync
//
// Services are pure Go with no CGO. They only talk to the outside world
// through the ports in internal/core/ports/driven.
package services
