package api

import (
	"delivery-dashboard-service/internal/api/dto"
	"delivery-dashboard-service/internal/domain"
	"delivery-dashboard-service/internal/services"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestRouter(records []domain.Delivery) http.Handler {
	ds := domain.NewDataset(records, domain.DefaultOnTimeLabels)
	return NewRouter(services.NewViewBinder(ds, 10))
}

func scenarioRecords() []domain.Delivery {
	return []domain.Delivery{
		{VehicleType: "Truck", DeliveryCost: 10, DeliveryTimeMin: 30, OnTime: true},
		{VehicleType: "Truck", DeliveryCost: 20, DeliveryTimeMin: 40, OnTime: false},
		{VehicleType: "Van", DeliveryCost: 15, DeliveryTimeMin: 20, OnTime: true},
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestRouter(nil), "/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected a request id header")
	}
}

func TestDashboardJSON(t *testing.T) {
	tests := []struct {
		target string
		want   dto.KPIResponse
		groups int
	}{
		{target: "/api/dashboard", want: dto.KPIResponse{AvgDeliveryCost: 15, AvgDeliveryTimeMin: 30, OnTimePct: 66.67, TotalDeliveries: 3}, groups: 2},
		{target: "/api/dashboard?vehicle_type=Van", want: dto.KPIResponse{AvgDeliveryCost: 15, AvgDeliveryTimeMin: 20, OnTimePct: 100, TotalDeliveries: 1}, groups: 1},
		{target: "/api/dashboard?vehicle_type=Bike", want: dto.KPIResponse{}, groups: 0},
	}

	h := newTestRouter(scenarioRecords())
	for _, tt := range tests {
		rec := get(t, h, tt.target)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, body = %s", tt.target, rec.Code, rec.Body.String())
		}

		var res dto.DashboardResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("%s: decode: %v", tt.target, err)
		}
		if res.KPIs != tt.want {
			t.Errorf("%s: kpis = %+v, want %+v", tt.target, res.KPIs, tt.want)
		}
		if len(res.CostByVehicle) != tt.groups {
			t.Errorf("%s: cost groups = %d, want %d", tt.target, len(res.CostByVehicle), tt.groups)
		}

		total := 0
		for _, b := range res.TimeDistribution.Bins {
			total += b.Total
		}
		if total != tt.want.TotalDeliveries {
			t.Errorf("%s: histogram total = %d, want %d", tt.target, total, tt.want.TotalDeliveries)
		}
	}
}

func TestDashboardJSONIncludesBoxSummary(t *testing.T) {
	rec := get(t, newTestRouter(scenarioRecords()), "/api/dashboard?vehicle_type=Truck")

	var res dto.DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.CostByVehicle) != 1 || res.CostByVehicle[0].Summary == nil {
		t.Fatalf("expected one truck group with summary: %+v", res.CostByVehicle)
	}
	s := res.CostByVehicle[0].Summary
	if s.Min != 10 || s.Median != 15 || s.Max != 20 {
		t.Fatalf("summary = %+v", s)
	}
}

func TestDashboardComputeFaultReturns500(t *testing.T) {
	h := newTestRouter([]domain.Delivery{{VehicleType: "", DeliveryCost: 1}})

	rec := get(t, h, "/api/dashboard")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("json status = %d, want 500", rec.Code)
	}

	rec = get(t, h, "/dashboard")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("panel status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Could not compute dashboard.") {
		t.Fatalf("panel body = %s", rec.Body.String())
	}

	// The server keeps serving after a failed recompute.
	if rec := get(t, h, "/health"); rec.Code != http.StatusOK {
		t.Fatalf("health after fault = %d", rec.Code)
	}
}

func TestVehicleTypes(t *testing.T) {
	rec := get(t, newTestRouter(scenarioRecords()), "/api/vehicle-types")

	var res dto.VehicleTypesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Join(res.Options, ",") != "Truck,Van,All" || res.Default != "All" {
		t.Fatalf("options = %+v", res)
	}
}

func TestPageAndPanel(t *testing.T) {
	h := newTestRouter(scenarioRecords())

	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("page status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Delivery Dashboard", `<option value="All" selected>`, "$ 15.00", "66.67%"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	rec = get(t, h, "/dashboard?vehicle_type=Van")
	if rec.Code != http.StatusOK {
		t.Fatalf("panel status = %d", rec.Code)
	}
	body = rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("panel should be a fragment")
	}
	if !strings.Contains(body, "100.00%") || !strings.Contains(body, "20.00 minutes") {
		t.Errorf("panel body = %s", body)
	}
}

func TestPageServesPanelToHTMX(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?vehicle_type=Van", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	newTestRouter(scenarioRecords()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<html") || !strings.Contains(body, "kpi-cards") {
		t.Fatalf("expected panel fragment, got %s", body)
	}
}

func TestUnknownPathIs404(t *testing.T) {
	rec := get(t, newTestRouter(nil), "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/dashboard", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if rec.Header().Get("Allow") != http.MethodGet {
		t.Fatalf("allow = %q", rec.Header().Get("Allow"))
	}
}

func TestCharts(t *testing.T) {
	h := newTestRouter(scenarioRecords())

	for _, target := range []string{
		"/charts/cost-by-vehicle.svg",
		"/charts/delivery-time.svg?vehicle_type=Van",
		"/charts/delivery-time.svg?vehicle_type=Bike",
	} {
		rec := get(t, h, target)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, body = %s", target, rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
			t.Errorf("%s: content type = %q", target, ct)
		}
		if !strings.Contains(rec.Body.String(), "<svg") {
			t.Errorf("%s: body is not svg", target)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(scenarioRecords())
	get(t, h, "/api/dashboard")

	rec := get(t, h, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "dashboard_recomputes_total") {
		t.Fatal("expected dashboard metrics in exposition")
	}
}

func readFrame(t *testing.T, c *websocket.Conn) dto.LiveFrame {
	t.Helper()

	if err := c.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	var f dto.LiveFrame
	if err := c.ReadJSON(&f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

func TestLiveSession(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(scenarioRecords()))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	first := readFrame(t, c)
	if first.Type != dto.LiveFrameDashboard || first.Data == nil || first.Data.KPIs.TotalDeliveries != 3 {
		t.Fatalf("initial frame = %+v", first)
	}
	if first.Data.VehicleType != domain.FilterAll {
		t.Fatalf("initial selection = %q", first.Data.VehicleType)
	}

	if err := c.WriteJSON(dto.LiveRequest{VehicleType: "Van"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	van := readFrame(t, c)
	if van.Data == nil || van.Data.KPIs.TotalDeliveries != 1 || van.Data.KPIs.OnTimePct != 100 {
		t.Fatalf("van frame = %+v", van)
	}

	if err := c.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	bad := readFrame(t, c)
	if bad.Type != dto.LiveFrameError {
		t.Fatalf("expected error frame, got %+v", bad)
	}

	if err := c.WriteJSON(dto.LiveRequest{VehicleType: "Bike"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	bike := readFrame(t, c)
	if bike.Type != dto.LiveFrameDashboard || bike.Data.KPIs.TotalDeliveries != 0 {
		t.Fatalf("bike frame = %+v", bike)
	}
}

func TestLiveSessionComputeFaultKeepsSession(t *testing.T) {
	records := []domain.Delivery{
		{VehicleType: "Van", DeliveryCost: 1, DeliveryTimeMin: 2, OnTime: true},
		{VehicleType: "", DeliveryCost: 1},
	}
	srv := httptest.NewServer(newTestRouter(records))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	first := readFrame(t, c)
	if first.Type != dto.LiveFrameError {
		t.Fatalf("expected error frame for faulty dataset, got %+v", first)
	}

	if err := c.WriteJSON(dto.LiveRequest{VehicleType: "Van"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	next := readFrame(t, c)
	if next.Type != dto.LiveFrameError {
		t.Fatalf("expected another error frame, got %+v", next)
	}
}
