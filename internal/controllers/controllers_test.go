package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/middleware"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

var testCaller = models.Caller{TenantID: 1, OrgID: 7, UserID: 10, HospitalID: uuid.New()}

type envelope struct {
	RequestID   string            `json:"requestId"`
	StatusCode  int               `json:"statusCode"`
	Message     string            `json:"message"`
	Data        json.RawMessage   `json:"data"`
	ErrorCode   string            `json:"errorCode"`
	FieldErrors map[string]string `json:"fieldErrors"`
}

func newRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := utils.WithRequestID(middleware.WithCaller(req.Context(), testCaller), "req-1")
	return req.WithContext(ctx)
}

func serve(t *testing.T, h http.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, req)
	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

// ----- stubs -----

type stubBuildings struct {
	created  dtos.CreateBuildingRequest
	toggled  dtos.ToggleStatusRequest
	deleted  int64
	parentID int64
	expand   bool
	page     repositories.PageRequest
	err      error
}

func (s *stubBuildings) Create(_ context.Context, _ models.Caller, req dtos.CreateBuildingRequest) (*models.Building, error) {
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Building{ID: 1, OrgID: req.OrgID, BuildingName: req.BuildingName}, nil
}

func (s *stubBuildings) Update(_ context.Context, _ models.Caller, req dtos.UpdateBuildingRequest) (*models.Building, error) {
	return &models.Building{ID: req.BuildingID, BuildingName: req.BuildingName}, s.err
}

func (s *stubBuildings) Delete(_ context.Context, _ models.Caller, id int64) error {
	s.deleted = id
	return s.err
}

func (s *stubBuildings) ToggleStatus(_ context.Context, _ models.Caller, req dtos.ToggleStatusRequest) (*models.Building, error) {
	s.toggled = req
	return &models.Building{ID: req.ID}, s.err
}

func (s *stubBuildings) GetAll(_ context.Context, _ models.Caller, parentID int64, expand bool, page repositories.PageRequest) (any, error) {
	s.parentID, s.expand, s.page = parentID, expand, page
	return dtos.NewPageResponse([]*models.Building{}, 0, page.Page, page.Size), s.err
}

func (s *stubBuildings) GetAllActive(_ context.Context, _ models.Caller, parentID int64, page repositories.PageRequest) (any, error) {
	s.parentID, s.page = parentID, page
	return dtos.NewPageResponse([]*models.Building{}, 0, page.Page, page.Size), s.err
}

func (s *stubBuildings) GetByID(_ context.Context, _ models.Caller, id int64, expand bool) (any, error) {
	s.expand = expand
	if s.err != nil {
		return nil, s.err
	}
	return &models.Building{ID: id}, nil
}

type stubBeds struct {
	stubFacility
	generated dtos.AutoGenerateBedsRequest
}

// stubFacility covers the parts of BedService the tests do not inspect.
type stubFacility struct{}

func (stubFacility) Create(context.Context, models.Caller, dtos.CreateBedRequest) (*models.Bed, error) {
	return &models.Bed{}, nil
}
func (stubFacility) Update(context.Context, models.Caller, dtos.UpdateBedRequest) (*models.Bed, error) {
	return &models.Bed{}, nil
}
func (stubFacility) Delete(context.Context, models.Caller, int64) error { return nil }
func (stubFacility) ToggleStatus(context.Context, models.Caller, dtos.ToggleStatusRequest) (*models.Bed, error) {
	return &models.Bed{}, nil
}
func (stubFacility) GetAll(context.Context, models.Caller, int64, bool, repositories.PageRequest) (any, error) {
	return nil, nil
}
func (stubFacility) GetAllActive(context.Context, models.Caller, int64, repositories.PageRequest) (any, error) {
	return nil, nil
}
func (stubFacility) GetByID(context.Context, models.Caller, int64, bool) (any, error) {
	return nil, nil
}
func (stubFacility) CreateBulk(context.Context, models.Caller, dtos.BulkCreateBedsRequest) ([]*models.Bed, error) {
	return nil, nil
}

func (s *stubBeds) AutoGenerate(_ context.Context, _ models.Caller, req dtos.AutoGenerateBedsRequest) ([]*models.Bed, error) {
	s.generated = req
	return []*models.Bed{{ID: 1, BedNo: "1"}, {ID: 2, BedNo: "2"}}, nil
}

type stubVoltages struct {
	inletPowerID *int64
	activeOnly   bool
}

func (s *stubVoltages) Create(context.Context, models.Caller, dtos.CreateVoltageOptionRequest) (*models.VoltageOption, error) {
	return &models.VoltageOption{}, nil
}
func (s *stubVoltages) Update(context.Context, models.Caller, dtos.UpdateVoltageOptionRequest) (*models.VoltageOption, error) {
	return &models.VoltageOption{}, nil
}
func (s *stubVoltages) Delete(context.Context, models.Caller, int64) error { return nil }
func (s *stubVoltages) ToggleStatus(context.Context, models.Caller, dtos.ToggleStatusRequest) (*models.VoltageOption, error) {
	return &models.VoltageOption{}, nil
}
func (s *stubVoltages) GetAll(_ context.Context, _ models.Caller, inletPowerID *int64, activeOnly bool) ([]*models.VoltageOption, error) {
	s.inletPowerID, s.activeOnly = inletPowerID, activeOnly
	return []*models.VoltageOption{{ID: 1, DisplayLabel: "230V"}}, nil
}
func (s *stubVoltages) GetByID(_ context.Context, _ models.Caller, id int64) (*models.VoltageOption, error) {
	return nil, utils.NotFoundError("Voltage option not found with ID: %d", id)
}

type stubStoreItems struct {
	deleted uuid.UUID
	target  string
}

func (s *stubStoreItems) Create(context.Context, models.Caller, dtos.CreateStoreItemConfigRequest) (*models.StoreItemConfig, error) {
	return &models.StoreItemConfig{ID: uuid.New()}, nil
}
func (s *stubStoreItems) Update(_ context.Context, _ models.Caller, id uuid.UUID, _ dtos.UpdateStoreItemConfigRequest) (*models.StoreItemConfig, error) {
	return &models.StoreItemConfig{ID: id}, nil
}
func (s *stubStoreItems) Delete(_ context.Context, _ models.Caller, id uuid.UUID) error {
	s.deleted = id
	return nil
}
func (s *stubStoreItems) ToggleStatus(_ context.Context, _ models.Caller, id uuid.UUID, target string) (*models.StoreItemConfig, error) {
	s.target = target
	return &models.StoreItemConfig{ID: id}, nil
}
func (s *stubStoreItems) GetByID(_ context.Context, _ models.Caller, id uuid.UUID) (*models.StoreItemConfig, error) {
	return &models.StoreItemConfig{ID: id}, nil
}
func (s *stubStoreItems) GetByStore(context.Context, models.Caller, uuid.UUID) ([]*models.StoreItemConfig, error) {
	return nil, utils.ForbiddenError("No hospital selected for this session")
}
func (s *stubStoreItems) LowStock(context.Context, models.Caller, uuid.UUID) ([]*models.StoreItemConfig, error) {
	return []*models.StoreItemConfig{}, nil
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

// ----- tests -----

func TestCreateBuilding(t *testing.T) {
	svc := &stubBuildings{}
	c := NewBuildingController(svc)

	rec, env := serve(t, c.CreateHandler, newRequest(http.MethodPost, "/api/building/create",
		`{"orgId":7,"buildingName":"Main Block"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Building created", env.Message)
	assert.Equal(t, "req-1", env.RequestID)
	assert.Equal(t, http.StatusCreated, env.StatusCode)
	assert.JSONEq(t, `"Main Block"`, string(mustField(t, env.Data, "buildingName")))
	assert.Equal(t, "Main Block", svc.created.BuildingName)
}

func mustField(t *testing.T, raw json.RawMessage, key string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	v, ok := m[key]
	require.True(t, ok, "missing %s", key)
	return v
}

func TestCreateRejectsBadInput(t *testing.T) {
	c := NewBuildingController(&stubBuildings{})

	t.Run("no caller", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/building/create", strings.NewReader(`{}`))
		rec, env := serve(t, c.CreateHandler, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, utils.ErrCodeUnauthorized, env.ErrorCode)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec, env := serve(t, c.CreateHandler, newRequest(http.MethodPost, "/", `{"orgId":`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, utils.ErrCodeInvalidPayload, env.ErrorCode)
	})

	t.Run("missing name", func(t *testing.T) {
		rec, env := serve(t, c.CreateHandler, newRequest(http.MethodPost, "/", `{"orgId":7}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, utils.ErrCodeValidation, env.ErrorCode)
		assert.Equal(t, "Validation failed", env.Message)
		assert.Equal(t, map[string]string{"buildingName": "buildingName is required"}, env.FieldErrors)
	})
}

func TestServiceErrorsKeepTheirStatus(t *testing.T) {
	c := NewBuildingController(&stubBuildings{err: utils.NotFoundError("Building not found with ID: %d", 9)})

	rec, env := serve(t, c.GetByIDHandler, newRequest(http.MethodGet, "/api/building/get-by-id?id=9", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, utils.ErrCodeNotFound, env.ErrorCode)
	assert.Equal(t, "Building not found with ID: 9", env.Message)

	c = NewBuildingController(&stubBuildings{err: errors.New("connection reset")})
	rec, env = serve(t, c.GetByIDHandler, newRequest(http.MethodGet, "/api/building/get-by-id?id=9", ""))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "An unexpected error occurred", env.Message)
}

func TestToggleStatusNeedsID(t *testing.T) {
	svc := &stubBuildings{}
	c := NewBuildingController(svc)

	rec, env := serve(t, c.ToggleStatusHandler, newRequest(http.MethodPatch, "/", `{"isActive":"INACTIVE"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]string{"id": "id is required"}, env.FieldErrors)

	rec, env = serve(t, c.ToggleStatusHandler, newRequest(http.MethodPatch, "/", `{"id":3,"isActive":"INACTIVE"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Building status updated", env.Message)
	assert.Equal(t, dtos.ToggleStatusRequest{ID: 3, IsActive: "INACTIVE"}, svc.toggled)
}

func TestDeleteReadsPathID(t *testing.T) {
	svc := &stubBuildings{}
	c := NewBuildingController(svc)

	router := mux.NewRouter()
	router.HandleFunc("/api/building/delete/{id}", c.DeleteHandler).Methods(http.MethodDelete)

	rec, env := serve(t, router.ServeHTTP, newRequest(http.MethodDelete, "/api/building/delete/12", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Building soft-deleted", env.Message)
	assert.Empty(t, env.Data)
	assert.Equal(t, int64(12), svc.deleted)

	rec, env = serve(t, router.ServeHTTP, newRequest(http.MethodDelete, "/api/building/delete/abc", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodeInvalidPayload, env.ErrorCode)
}

func TestGetAllPaging(t *testing.T) {
	svc := &stubBuildings{}
	c := NewBuildingController(svc)

	rec, env := serve(t, c.GetAllHandler, newRequest(http.MethodGet, "/api/building/get-all?orgId=7&expand=true", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Buildings retrieved", env.Message)
	assert.Equal(t, int64(7), svc.parentID)
	assert.True(t, svc.expand)
	assert.Equal(t, repositories.PageRequest{Page: 0, Size: 20}, svc.page)

	_, _ = serve(t, c.GetAllActiveHandler, newRequest(http.MethodPost, "/api/building/get-all-active?orgId=7&page=2&size=9000", ""))
	assert.Equal(t, repositories.PageRequest{Page: 2, Size: 500}, svc.page)

	rec, env = serve(t, c.GetAllHandler, newRequest(http.MethodGet, "/api/building/get-all", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required parameter: orgId", env.Message)

	rec, _ = serve(t, c.GetAllHandler, newRequest(http.MethodGet, "/api/building/get-all?orgId=7&page=-1", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBedAutoGenerate(t *testing.T) {
	svc := &stubBeds{}
	c := NewBedController(svc)

	rec, env := serve(t, c.AutoGenerateHandler, newRequest(http.MethodPost, "/api/bed/auto-generate",
		`{"orgId":7,"roomId":3,"count":2,"prefix":"ER-B"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Beds auto-generated", env.Message)
	assert.Equal(t, 2, svc.generated.Count)

	rec, env = serve(t, c.AutoGenerateHandler, newRequest(http.MethodPost, "/api/bed/auto-generate",
		`{"orgId":7,"roomId":3,"count":201}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "count must be at most 200", env.FieldErrors["count"])
}

func TestVoltageListFilters(t *testing.T) {
	svc := &stubVoltages{}
	c := NewVoltageOptionController(svc)

	rec, env := serve(t, c.GetAllActiveHandler, newRequest(http.MethodGet, "/api/device/voltage-option/get-all-active?inletPowerId=4", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Active voltage options fetched", env.Message)
	require.NotNil(t, svc.inletPowerID)
	assert.Equal(t, int64(4), *svc.inletPowerID)
	assert.True(t, svc.activeOnly)

	_, env = serve(t, c.GetAllHandler, newRequest(http.MethodGet, "/api/device/voltage-option/get-all", ""))
	assert.Equal(t, "Voltage options fetched", env.Message)
	assert.Nil(t, svc.inletPowerID)
	assert.False(t, svc.activeOnly)

	req := mux.SetURLVars(newRequest(http.MethodGet, "/api/device/voltage-option/get/5", ""), map[string]string{"id": "5"})
	rec, env = serve(t, c.GetByIDHandler, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Voltage option not found with ID: 5", env.Message)
}

func TestStoreItemConfigRoutes(t *testing.T) {
	svc := &stubStoreItems{}
	c := NewStoreItemConfigController(svc)
	id := uuid.New()

	req := mux.SetURLVars(newRequest(http.MethodDelete, "/api/store-item-config/"+id.String(), ""), map[string]string{"id": id.String()})
	rec, _ := serve(t, c.DeleteHandler, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
	assert.Equal(t, id, svc.deleted)

	req = mux.SetURLVars(newRequest(http.MethodPatch, "/", `{"isActive":"INACTIVE"}`), map[string]string{"id": id.String()})
	rec, env := serve(t, c.ToggleStatusHandler, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Configuration status updated", env.Message)
	assert.Equal(t, "INACTIVE", svc.target)

	req = mux.SetURLVars(newRequest(http.MethodGet, "/", ""), map[string]string{"id": "not-a-uuid"})
	rec, _ = serve(t, c.GetByIDHandler, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = mux.SetURLVars(newRequest(http.MethodGet, "/", ""), map[string]string{"storeId": uuid.NewString()})
	rec, env = serve(t, c.GetByStoreHandler, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, utils.ErrCodeForbidden, env.ErrorCode)
}

func TestHealthCheck(t *testing.T) {
	rec, env := serve(t, NewHealthController(pinger{}).HealthCheckHandler, newRequest(http.MethodGet, "/health", ""))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", env.Message)

	rec, env = serve(t, NewHealthController(pinger{err: errors.New("down")}).HealthCheckHandler, newRequest(http.MethodGet, "/health", ""))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, utils.ErrCodeServiceUnavailable, env.ErrorCode)
}
