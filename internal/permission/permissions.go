package permission

// Permission strings understood by the external authorization service.
// Each resource family (ADMIN, REQUEST) carries VIEW and EDIT actions at
// system, tenant, and subtenant scope.
const (
	AdminViewSystem    = "ADMIN_VIEW_SYSTEM"
	AdminViewTenant    = "ADMIN_VIEW_TENANT"
	AdminViewSubtenant = "ADMIN_VIEW_SUBTENANT"
	AdminEditSystem    = "ADMIN_EDIT_SYSTEM"
	AdminEditTenant    = "ADMIN_EDIT_TENANT"
	AdminEditSubtenant = "ADMIN_EDIT_SUBTENANT"

	RequestViewSystem    = "REQUEST_VIEW_SYSTEM"
	RequestViewTenant    = "REQUEST_VIEW_TENANT"
	RequestViewSubtenant = "REQUEST_VIEW_SUBTENANT"
	RequestEditSystem    = "REQUEST_EDIT_SYSTEM"
	RequestEditTenant    = "REQUEST_EDIT_TENANT"
	RequestEditSubtenant = "REQUEST_EDIT_SUBTENANT"
)

// ViewSensitive is the set that unlocks the sensitive request view.
// Holding any one of these at any scope is sufficient.
var ViewSensitive = []string{
	AdminViewSystem, AdminViewTenant, AdminViewSubtenant,
	RequestViewSystem, RequestViewTenant, RequestViewSubtenant,
}

// EditRequests gates staff updates to stored requests.
var EditRequests = []string{
	AdminEditSystem, AdminEditTenant, AdminEditSubtenant,
	RequestEditSystem, RequestEditTenant, RequestEditSubtenant,
}

// EditCatalog gates service/attribute/boundary administration.
var EditCatalog = []string{
	AdminEditSystem, AdminEditTenant, AdminEditSubtenant,
}
