package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/leadai/readiness/internal/api/v1"
	"github.com/leadai/readiness/internal/store/postgres"
)

// AuditService is the audit pipeline surface the API handlers call.
type AuditService = v1.AuditService

func registerAPIRoutes(api huma.API, store *postgres.Store, audits AuditService) {
	v1.RegisterAuditRoutes(api, audits)
	v1.RegisterProfileRoutes(api, store)
}
