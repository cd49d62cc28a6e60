package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/openfan/openfand/internal/api"
	"github.com/openfan/openfand/internal/board"
	"github.com/openfan/openfand/internal/config"
	"github.com/openfan/openfand/internal/registry"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg := registry.New()
	if err := reg.Register(registry.Entry{ID: "default", Board: board.Standard(), Description: "mock rig"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	boards := map[string]board.Descriptor{"default": board.Standard()}
	rc, err := config.LoadRuntimeConfig(filepath.Join(t.TempDir(), "data"), boards)
	if err != nil {
		t.Fatalf("LoadRuntimeConfig: %v", err)
	}
	return New(api.New(reg, rc, "default", nil), nil)
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListControllers_ScenarioE2(t *testing.T) {
	h := newTestServer(t).Handler()
	rec := doRequest(t, h, "GET", "/controllers", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var infos []api.ControllerInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(infos) != 1 || infos[0].FanCount != 10 || !infos[0].MockMode {
		t.Fatalf("infos = %+v", infos)
	}
}

// TestGetFanStatus_MockSynthesis_ScenarioE1 drives the daemon's mock
// synthesis rule through the full HTTP stack.
func TestGetFanStatus_MockSynthesis_ScenarioE1(t *testing.T) {
	h := newTestServer(t).Handler()
	rec := doRequest(t, h, "GET", "/controllers/default/fans", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var status map[string]api.FanStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(status) != 10 || status["3"].RPM != 1800 || status["3"].PWM != 65 {
		t.Fatalf("status = %+v", status)
	}
}

func TestForceReconnect_RefusesMockController(t *testing.T) {
	h := newTestServer(t).Handler()
	rec := doRequest(t, h, "POST", "/controllers/default/reconnect", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestGetControllerInfo_UnknownControllerIs404(t *testing.T) {
	h := newTestServer(t).Handler()
	rec := doRequest(t, h, "GET", "/controllers/ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestSetAndListAlias(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doRequest(t, h, "PUT", "/controllers/default/aliases/0", aliasRequest{Name: "Front Top"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, h, "PUT", "/controllers/default/aliases/1", aliasRequest{Name: "bad!name"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, h, "GET", "/controllers/default/aliases", nil)
	var aliases map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &aliases); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if aliases["0"] != "Front Top" {
		t.Fatalf("aliases = %+v", aliases)
	}
}

func TestSetProfileAndApply(t *testing.T) {
	h := newTestServer(t).Handler()

	prof := profileRequest{Mode: "pwm", Values: []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}}
	rec := doRequest(t, h, "PUT", "/controllers/default/profiles/custom", prof)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("SetProfile status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Applying a profile to a mock controller fails fan-by-fan (no
	// device to dispatch to) but the operation itself never aborts.
	rec = doRequest(t, h, "POST", "/controllers/default/profiles/custom/apply", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("ApplyProfileTo status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

// TestCurveInterpolate_ScenarioE5 follows end-to-end scenario E5
// through the full HTTP stack.
func TestCurveInterpolate_ScenarioE5(t *testing.T) {
	h := newTestServer(t).Handler()

	curve := curveRequest{Points: []curvePointRequest{{TempC: 30, PWM: 25}, {TempC: 50, PWM: 50}, {TempC: 80, PWM: 100}}}
	rec := doRequest(t, h, "PUT", "/controllers/default/curves/C", curve)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("SetCurve status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, h, "GET", "/controllers/default/curves/C/interpolate?temp=65", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result["percent"] != 75 {
		t.Fatalf("percent = %d, want 75", result["percent"])
	}
}

func TestZoneCRUDAndApply(t *testing.T) {
	h := newTestServer(t).Handler()

	zone := zoneRequest{Fans: []fanRefRequest{{Controller: "default", FanID: 0}, {Controller: "default", FanID: 1}}}
	rec := doRequest(t, h, "PUT", "/zones/front", zone)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("SetZone status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, h, "GET", "/zones", nil)
	var zones map[string]config.Zone
	if err := json.Unmarshal(rec.Body.Bytes(), &zones); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := zones["front"]; !ok {
		t.Fatalf("zones = %+v", zones)
	}

	rec = doRequest(t, h, "DELETE", "/zones/front", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DeleteZone status = %d", rec.Code)
	}
}

func TestCFMSetAndEstimate(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doRequest(t, h, "PUT", "/controllers/default/cfm/0", cfmRequest{CFMAt100: 100})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("SetCFM status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, h, "GET", "/controllers/default/cfm/0/estimate?pwm=50", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result map[string]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result["cfm"] != 50 {
		t.Fatalf("cfm = %v, want 50", result["cfm"])
	}
}

func TestPathInt_RejectsNonInteger(t *testing.T) {
	h := newTestServer(t).Handler()
	rec := doRequest(t, h, "GET", "/controllers/default/fans/notanumber/pwm", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}
