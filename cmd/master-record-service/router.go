package main

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/samber/lo"

	"github.com/vishnuvarthan48/biomedical-cms/internal/config"
	"github.com/vishnuvarthan48/biomedical-cms/internal/controllers"
	"github.com/vishnuvarthan48/biomedical-cms/internal/middleware"
	"github.com/vishnuvarthan48/biomedical-cms/internal/routes"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

var routeMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

type handlers struct {
	health          *controllers.HealthController
	building        *controllers.BuildingController
	floor           *controllers.FloorController
	room            *controllers.RoomController
	bed             *controllers.BedController
	lookup          *controllers.LookupController
	inletPower      *controllers.InletPowerController
	voltage         *controllers.VoltageOptionController
	equipmentClass  *controllers.EquipmentOptionController
	equipmentType   *controllers.EquipmentOptionController
	riskType        *controllers.DeviceRiskTypeController
	rolePermission  *controllers.RolePermissionController
	storeItemConfig *controllers.StoreItemConfigController
}

// mutationRoutes is the create/update/delete/toggle quartet every record
// kind except store-item-config exposes.
type mutationRoutes interface {
	CreateHandler(http.ResponseWriter, *http.Request)
	UpdateHandler(http.ResponseWriter, *http.Request)
	DeleteHandler(http.ResponseWriter, *http.Request)
	ToggleStatusHandler(http.ResponseWriter, *http.Request)
}

func registerMutations(r *mux.Router, c mutationRoutes) {
	r.HandleFunc(routes.Create, c.CreateHandler).Methods(http.MethodPost)
	r.HandleFunc(routes.Update, c.UpdateHandler).Methods(http.MethodPut)
	r.HandleFunc(routes.Delete, c.DeleteHandler).Methods(http.MethodDelete)
	r.HandleFunc(routes.ToggleStatus, c.ToggleStatusHandler).Methods(http.MethodPatch)
}

type facilityRoutes interface {
	mutationRoutes
	GetAllHandler(http.ResponseWriter, *http.Request)
	GetAllActiveHandler(http.ResponseWriter, *http.Request)
	GetByIDHandler(http.ResponseWriter, *http.Request)
}

func registerFacility(api *mux.Router, base string, c facilityRoutes) *mux.Router {
	r := api.PathPrefix(base).Subrouter()
	registerMutations(r, c)
	r.HandleFunc(routes.GetAll, c.GetAllHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.GetAllActive, c.GetAllActiveHandler).Methods(http.MethodPost)
	r.HandleFunc(routes.GetByID, c.GetByIDHandler).Methods(http.MethodGet)
	return r
}

// Device dropdowns list with GET on both lists and fetch by path id.
func registerDevice(api *mux.Router, base string, c facilityRoutes) {
	r := api.PathPrefix(base).Subrouter()
	registerMutations(r, c)
	r.HandleFunc(routes.GetAll, c.GetAllHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.GetAllActive, c.GetAllActiveHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.DeviceGet, c.GetByIDHandler).Methods(http.MethodGet)
}

// unmatchedHandler answers 405 with an Allow header when the path is routed
// under another method, else 404. mux drops a method mismatch as soon as a
// later route shares the matched subrouter prefix, so it serves both cases.
func unmatchedHandler(router *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed := lo.Filter(routeMethods, func(method string, _ int) bool {
			alt := r.Clone(r.Context())
			alt.Method = method
			var match mux.RouteMatch
			return router.Match(alt, &match) && match.MatchErr == nil
		})
		if len(allowed) == 0 {
			utils.RespondErrorWithCode(w, r, http.StatusNotFound, utils.ErrCodeNotFound, "Route not found", nil)
			return
		}
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		utils.RespondErrorWithCode(w, r, http.StatusMethodNotAllowed, utils.ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})
}

func newRouter(cfg *config.Config, h handlers) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = unmatchedHandler(router)
	router.MethodNotAllowedHandler = router.NotFoundHandler
	router.Use(middleware.RequestID, middleware.RequestLogger)

	// Public routes
	router.HandleFunc(routes.Health, h.health.HealthCheckHandler).Methods(http.MethodGet)
	router.Handle(routes.Metrics, promhttp.Handler()).Methods(http.MethodGet)

	// Tenant-authenticated routes
	api := router.PathPrefix(routes.APIBase).Subrouter()
	api.Use(
		middleware.IPRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window),
		middleware.TenantAuthMiddleware(cfg.RSAPublicKey, cfg.Auth.Issuer),
	)

	registerFacility(api, routes.BuildingBase, h.building)
	floor := registerFacility(api, routes.FloorBase, h.floor)
	floor.HandleFunc(routes.CreateBulk, h.floor.CreateBulkHandler).Methods(http.MethodPost)
	room := registerFacility(api, routes.RoomBase, h.room)
	room.HandleFunc(routes.CreateBulk, h.room.CreateBulkHandler).Methods(http.MethodPost)
	bed := registerFacility(api, routes.BedBase, h.bed)
	bed.HandleFunc(routes.CreateBulk, h.bed.CreateBulkHandler).Methods(http.MethodPost)
	bed.HandleFunc(routes.BedAutoGenerate, h.bed.AutoGenerateHandler).Methods(http.MethodPost)

	api.HandleFunc(routes.RoomTypeGetAll, h.lookup.RoomTypesHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.LocationLevelGetAll, h.lookup.LocationLevelsHandler).Methods(http.MethodGet)

	registerDevice(api, routes.InletPowerBase, h.inletPower)
	registerDevice(api, routes.VoltageOptionBase, h.voltage)
	registerDevice(api, routes.EquipmentClassBase, h.equipmentClass)
	registerDevice(api, routes.EquipmentTypeBase, h.equipmentType)
	registerDevice(api, routes.RiskTypeBase, h.riskType)

	rp := api.PathPrefix(routes.RolePermissionBase).Subrouter()
	rp.HandleFunc(routes.Create, h.rolePermission.CreateHandler).Methods(http.MethodPost)
	rp.HandleFunc(routes.Update, h.rolePermission.UpdateHandler).Methods(http.MethodPut)
	rp.HandleFunc(routes.Delete, h.rolePermission.DeleteHandler).Methods(http.MethodDelete)
	rp.HandleFunc(routes.GetAll, h.rolePermission.GetAllHandler).Methods(http.MethodGet)
	rp.HandleFunc(routes.GetByID, h.rolePermission.GetByIDHandler).Methods(http.MethodGet)
	rp.HandleFunc(routes.GetByRole, h.rolePermission.GetByRoleHandler).Methods(http.MethodGet)
	rp.HandleFunc(routes.BulkSave, h.rolePermission.BulkSaveHandler).Methods(http.MethodPost)
	rp.HandleFunc(routes.Matrix, h.rolePermission.MatrixHandler).Methods(http.MethodGet)

	sic := api.PathPrefix(routes.StoreItemConfigBase).Subrouter()
	sic.HandleFunc("", h.storeItemConfig.CreateHandler).Methods(http.MethodPost)
	sic.HandleFunc("/", h.storeItemConfig.CreateHandler).Methods(http.MethodPost)
	sic.HandleFunc(routes.StoreItemConfigByStore, h.storeItemConfig.GetByStoreHandler).Methods(http.MethodGet)
	sic.HandleFunc(routes.StoreItemConfigLowStock, h.storeItemConfig.LowStockHandler).Methods(http.MethodGet)
	sic.HandleFunc(routes.StoreItemConfigToggle, h.storeItemConfig.ToggleStatusHandler).Methods(http.MethodPatch)
	sic.HandleFunc(routes.StoreItemConfigByID, h.storeItemConfig.GetByIDHandler).Methods(http.MethodGet)
	sic.HandleFunc(routes.StoreItemConfigByID, h.storeItemConfig.UpdateHandler).Methods(http.MethodPut)
	sic.HandleFunc(routes.StoreItemConfigByID, h.storeItemConfig.DeleteHandler).Methods(http.MethodDelete)

	co := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	return co.Handler(router)
}
