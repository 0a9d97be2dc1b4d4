package app

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

type lookupSeed struct {
	Code        string
	Name        string
	Description string
	SortOrder   int
}

var roomTypeSeeds = []lookupSeed{
	{"ICU", "Intensive Care Unit", "Critical care rooms", 1},
	{"MICU", "Medical ICU", "Medical intensive care", 2},
	{"NICU", "Neonatal ICU", "Neonatal intensive care", 3},
	{"OT", "Operation Theatre", "Surgical suites", 4},
	{"LAB", "Laboratory", "Clinical laboratories", 5},
	{"RAD", "Radiology", "Imaging rooms", 6},
	{"WARD", "General Ward", "General patient wards", 7},
	{"OPD", "Outpatient", "Consultation rooms", 8},
	{"ER", "Emergency Room", "Emergency / trauma rooms", 10},
	{"UTILITY", "Utility Room", "Plant and utility rooms", 20},
}

var locationLevelSeeds = []lookupSeed{
	{"BUILDING", "Building", "", 1},
	{"FLOOR", "Floor", "", 2},
	{"ROOM", "Room", "", 3},
	{"BED", "Bed", "", 4},
}

type actionSeed struct{ Key, Name string }

var actionSeeds = []actionSeed{
	{"VIEW", "View"},
	{"CREATE", "Create"},
	{"UPDATE", "Update"},
	{"DELETE", "Delete"},
	{"APPROVE", "Approve"},
	{"ASSIGN", "Assign"},
	{"CLOSE", "Close"},
	{"CANCEL", "Cancel"},
	{"IMPORT", "Import"},
	{"EXPORT", "Export"},
	{"PRINT", "Print"},
	{"CONFIGURE", "Configure"},
}

type resourceSeed struct {
	Key, Name string
	Parent    string // empty for top-level groups
	SortOrder int
	Actions   []string
}

var crud = []string{"VIEW", "CREATE", "UPDATE", "DELETE", "EXPORT"}

var resourceSeeds = []resourceSeed{
	{Key: "ADMINISTRATION", Name: "Administration", SortOrder: 1},
	{Key: "USER", Name: "User", Parent: "ADMINISTRATION", SortOrder: 1, Actions: crud},
	{Key: "ROLE", Name: "Role", Parent: "ADMINISTRATION", SortOrder: 2, Actions: append(crud, "ASSIGN")},
	{Key: "AUDIT_LOG", Name: "Audit Log", Parent: "ADMINISTRATION", SortOrder: 3, Actions: []string{"VIEW", "EXPORT"}},
	{Key: "TENANT_SETTINGS", Name: "Tenant Settings", Parent: "ADMINISTRATION", SortOrder: 4, Actions: []string{"VIEW", "CONFIGURE"}},

	{Key: "ASSET_MANAGEMENT", Name: "Asset Management", SortOrder: 2},
	{Key: "ASSET", Name: "Asset", Parent: "ASSET_MANAGEMENT", SortOrder: 1, Actions: append(crud, "IMPORT", "PRINT")},
	{Key: "LOCATION", Name: "Location", Parent: "ASSET_MANAGEMENT", SortOrder: 2, Actions: append(crud, "IMPORT")},
	{Key: "DEVICE_MASTER", Name: "Device Master", Parent: "ASSET_MANAGEMENT", SortOrder: 3, Actions: crud},

	{Key: "MAINTENANCE", Name: "Maintenance", SortOrder: 3},
	{Key: "MAINTENANCE_PLAN", Name: "Maintenance Plan (PM)", Parent: "MAINTENANCE", SortOrder: 1, Actions: append(crud, "APPROVE")},
	{Key: "WORK_ORDER", Name: "Work Order", Parent: "MAINTENANCE", SortOrder: 2, Actions: append(crud, "ASSIGN", "CLOSE", "CANCEL", "PRINT")},

	{Key: "INVENTORY", Name: "Inventory", SortOrder: 4},
	{Key: "STORE_MASTER", Name: "Store Master", Parent: "INVENTORY", SortOrder: 1, Actions: crud},
	{Key: "ITEM_MASTER", Name: "Item Master", Parent: "INVENTORY", SortOrder: 2, Actions: append(crud, "IMPORT")},
	{Key: "STOCK_MOVEMENT", Name: "Stock Movement", Parent: "INVENTORY", SortOrder: 3, Actions: append(crud, "APPROVE")},

	{Key: "REPORTS_COMPLIANCE", Name: "Reports & Compliance", SortOrder: 5},
	{Key: "REPORTS", Name: "Reports / Dashboard", Parent: "REPORTS_COMPLIANCE", SortOrder: 1, Actions: []string{"VIEW", "EXPORT", "PRINT"}},
}

type roleSeed struct{ Code, Name, Scope string }

// System roles carry a NULL tenant and are visible to every tenant.
var systemRoleSeeds = []roleSeed{
	{"TENANT_GROUP_ADMIN", "Tenant Group Admin", "TENANT"},
	{"ORG_ADMIN", "Organization Admin", "ORG"},
	{"BIOMED_ENGINEER", "Biomedical Engineer", "ORG"},
	{"STORE_KEEPER", "Store Keeper", "ORG"},
	{"VIEWER", "Viewer", "ORG"},
}

// Seed loads the lookup rows for tenantID and the shared RBAC catalog.
// Every insert is ON CONFLICT DO NOTHING, so re-running it is harmless.
func Seed(ctx context.Context, db repositories.DB, tenantID int64) error {
	tx := repositories.NewTxRunner(db)
	return tx.WithTx(ctx, func(ctx context.Context) error {
		conn := repositories.Conn(ctx, db)

		for _, s := range roomTypeSeeds {
			if _, err := conn.Exec(ctx, `
				INSERT INTO room_type (tenant_id, code, name, description, sort_order, status)
				VALUES ($1,$2,$3,$4,$5,'ACTIVE')
				ON CONFLICT (tenant_id, code) DO NOTHING
			`, tenantID, s.Code, s.Name, utils.Ptr(s.Description), s.SortOrder); err != nil {
				return fmt.Errorf("seed room type %s: %w", s.Code, err)
			}
		}

		for _, s := range locationLevelSeeds {
			if _, err := conn.Exec(ctx, `
				INSERT INTO location_level (tenant_id, code, name, sort_order, status)
				VALUES ($1,$2,$3,$4,'ACTIVE')
				ON CONFLICT (tenant_id, code) DO NOTHING
			`, tenantID, s.Code, s.Name, s.SortOrder); err != nil {
				return fmt.Errorf("seed location level %s: %w", s.Code, err)
			}
		}

		for _, a := range actionSeeds {
			if _, err := conn.Exec(ctx, `
				INSERT INTO actions (action_key, action_name) VALUES ($1,$2)
				ON CONFLICT (action_key) DO NOTHING
			`, a.Key, a.Name); err != nil {
				return fmt.Errorf("seed action %s: %w", a.Key, err)
			}
		}

		// Groups first so children can resolve parent_id by key.
		groups, children := lo.FilterReject(resourceSeeds, func(r resourceSeed, _ int) bool { return r.Parent == "" })
		for _, r := range append(groups, children...) {
			if _, err := conn.Exec(ctx, `
				INSERT INTO resources (resource_key, resource_name, parent_id, sort_order)
				VALUES ($1, $2, (SELECT id FROM resources WHERE resource_key = NULLIF($3, '')), $4)
				ON CONFLICT (resource_key) DO NOTHING
			`, r.Key, r.Name, r.Parent, r.SortOrder); err != nil {
				return fmt.Errorf("seed resource %s: %w", r.Key, err)
			}
			for _, action := range lo.Uniq(r.Actions) {
				if _, err := conn.Exec(ctx, `
					INSERT INTO resource_actions (resource_id, action_id)
					SELECT res.id, a.id FROM resources res, actions a
					WHERE res.resource_key = $1 AND a.action_key = $2
					ON CONFLICT DO NOTHING
				`, r.Key, action); err != nil {
					return fmt.Errorf("seed resource action %s/%s: %w", r.Key, action, err)
				}
			}
		}

		for _, ro := range systemRoleSeeds {
			if _, err := conn.Exec(ctx, `
				INSERT INTO roles (tenant_id, name, code, scope) VALUES (NULL, $1, $2, $3)
				ON CONFLICT (COALESCE(tenant_id, 0), code) DO NOTHING
			`, ro.Name, ro.Code, ro.Scope); err != nil {
				return fmt.Errorf("seed role %s: %w", ro.Code, err)
			}
		}

		utils.Logger.Infof("Seeded lookups for tenant %d and %d RBAC resources", tenantID, len(resourceSeeds))
		return nil
	})
}
