package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DrHac-GH/firstrade-tax-app/src/config"
	"github.com/DrHac-GH/firstrade-tax-app/src/logger"
	"github.com/DrHac-GH/firstrade-tax-app/src/models"
	"github.com/DrHac-GH/firstrade-tax-app/src/parsers"
	"github.com/DrHac-GH/firstrade-tax-app/src/security"
	"github.com/DrHac-GH/firstrade-tax-app/src/services"
)

const testGainLossCSV = "Symbol,Description,Quantity,Date Acquired,Date Sold,Sales Proceeds,Adjust Cost,WS Loss Disallowed,Wash Sales\n" +
	"AAPL,APPLE INC,10,1/15/2023,3/10/2023,1500.00,1000.00,0.00,\n"

const testHistoryCSV = "Symbol,Action,Description,TradeDate,Amount\n" +
	"AAPL,Dividend,\"AAPL CASH DIV Tax Withheld $1.50\",3/15/2023,8.50\n"

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	config.Cfg = &config.AppConfig{
		MaxUploadSizeBytes: 10 * 1024 * 1024,
	}
	os.Exit(m.Run())
}

// setupTestRouter wires the full route tree against real services and a
// fake rate provider.
func setupTestRouter(t *testing.T, rateProvider http.HandlerFunc) http.Handler {
	t.Helper()
	if rateProvider == nil {
		rateProvider = func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"base":"USD","rates":{
				"2023-01-13": {"JPY": 130.0},
				"2023-03-10": {"JPY": 140.0},
				"2023-03-15": {"JPY": 145.2}
			}}`))
		}
	}
	server := httptest.NewServer(rateProvider)
	t.Cleanup(server.Close)

	authService := security.NewAuthService("0123456789abcdef0123456789abcdef", time.Hour)
	store := services.NewSessionStore(time.Minute, time.Minute)
	rateService := services.NewRateService(server.URL, 5*time.Second)
	uploadService := services.NewUploadService(parsers.NewFirstradeParser(), rateService)

	return NewRouter(RouterDeps{
		AuthService:    authService,
		SessionStore:   store,
		UploadService:  uploadService,
		AllowedOrigins: []string{"*"},
	})
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func createSession(t *testing.T, router http.Handler) string {
	t.Helper()
	rr := doRequest(t, router, http.MethodPost, "/api/session", "", nil, "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("session creation returned %d: %s", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding session response: %v", err)
	}
	if resp["token"] == "" {
		t.Fatal("session response carries no token")
	}
	return resp["token"]
}

func uploadFile(t *testing.T, router http.Handler, token, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("building multipart body: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("writing multipart body: %v", err)
	}
	w.Close()
	return doRequest(t, router, http.MethodPost, "/api/upload", token, &buf, w.FormDataContentType())
}

func TestEndToEndFlow(t *testing.T) {
	rateJSON := `{"base":"USD","rates":{
		"2023-01-13": {"JPY": 130.0},
		"2023-01-15": {"JPY": 130.0},
		"2023-03-10": {"JPY": 140.0},
		"2023-03-15": {"JPY": 145.2}
	}}`
	router := setupTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rateJSON))
	})
	token := createSession(t, router)

	rr := uploadFile(t, router, token, "gains.csv", testGainLossCSV)
	if rr.Code != http.StatusOK {
		t.Fatalf("gain/loss upload returned %d: %s", rr.Code, rr.Body.String())
	}
	var uploadResp services.UploadResult
	if err := json.Unmarshal(rr.Body.Bytes(), &uploadResp); err != nil {
		t.Fatalf("decoding upload response: %v", err)
	}
	if uploadResp.Schema != models.SchemaGainLoss || uploadResp.GainLossRows != 1 {
		t.Errorf("upload result = %+v", uploadResp)
	}

	rr = uploadFile(t, router, token, "history.csv", testHistoryCSV)
	if rr.Code != http.StatusOK {
		t.Fatalf("history upload returned %d: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, router, http.MethodPost, "/api/rates/fetch", token, nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("rate fetch returned %d: %s", rr.Code, rr.Body.String())
	}
	var fetchResp services.RateFetchResult
	if err := json.Unmarshal(rr.Body.Bytes(), &fetchResp); err != nil {
		t.Fatalf("decoding fetch response: %v", err)
	}
	if fetchResp.RateCount != 4 || fetchResp.Stale {
		t.Errorf("fetch result = %+v", fetchResp)
	}

	rr = doRequest(t, router, http.MethodGet, "/api/summary?year=2023", token, nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("summary returned %d: %s", rr.Code, rr.Body.String())
	}
	var summary models.Summary
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if summary.Year != 2023 || summary.CapitalGainTotals.GainLossJPY != 80000 {
		t.Errorf("summary totals wrong: %+v", summary.CapitalGainTotals)
	}
	if summary.DividendTotals.NetJPY != 1234 || summary.DividendTotals.TaxJPY != 217 {
		t.Errorf("dividend totals wrong: %+v", summary.DividendTotals)
	}

	etag := rr.Header().Get("ETag")
	if etag == "" {
		t.Error("summary response carries no ETag")
	} else {
		req := httptest.NewRequest(http.MethodGet, "/api/summary?year=2023", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("If-None-Match", etag)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotModified {
			t.Errorf("conditional summary request returned %d, want 304", rec.Code)
		}
	}

	rr = doRequest(t, router, http.MethodGet, "/api/years", token, nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("years returned %d", rr.Code)
	}
	var yearsResp map[string][]int
	if err := json.Unmarshal(rr.Body.Bytes(), &yearsResp); err != nil {
		t.Fatalf("decoding years: %v", err)
	}
	if len(yearsResp["years"]) != 1 || yearsResp["years"][0] != 2023 {
		t.Errorf("years = %v, want [2023]", yearsResp["years"])
	}

	rr = doRequest(t, router, http.MethodGet, "/api/export/capital-gains?year=2023", token, nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("export returned %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("export Content-Type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "capital-gains-2023.csv") {
		t.Errorf("export Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("export body must start with a UTF-8 byte-order mark")
	}

	rr = doRequest(t, router, http.MethodGet, "/api/report?year=2023", token, nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("report returned %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("report Content-Type = %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "Tax Year 2023") {
		t.Error("report missing the tax year heading")
	}
}

func TestAuthRequired(t *testing.T) {
	router := setupTestRouter(t, nil)

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodPost, "/api/upload"},
		{http.MethodPost, "/api/rates/fetch"},
		{http.MethodGet, "/api/summary"},
		{http.MethodGet, "/api/years"},
		{http.MethodGet, "/api/export/dividends"},
		{http.MethodGet, "/api/report"},
	} {
		rr := doRequest(t, router, tc.method, tc.path, "", nil, "")
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token returned %d, want 401", tc.method, tc.path, rr.Code)
		}
	}

	rr := doRequest(t, router, http.MethodGet, "/api/summary", "not-a-jwt", nil, "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("garbage token returned %d, want 401", rr.Code)
	}
}

func TestUploadValidation(t *testing.T) {
	router := setupTestRouter(t, nil)
	token := createSession(t, router)

	rr := uploadFile(t, router, token, "empty.csv", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("empty file upload returned %d, want 400", rr.Code)
	}

	rr = uploadFile(t, router, token, "noheader.csv", "just,some,data\n")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("headerless upload returned %d, want 400", rr.Code)
	}

	rr = uploadFile(t, router, token, "odd.csv", "Symbol,Price,Volume\nAAPL,150.00,100\n")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown schema upload returned %d, want 400", rr.Code)
	}
}

func TestFetchRatesWithoutData(t *testing.T) {
	router := setupTestRouter(t, nil)
	token := createSession(t, router)

	rr := doRequest(t, router, http.MethodPost, "/api/rates/fetch", token, nil, "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("fetch without transactions returned %d, want 400", rr.Code)
	}
}

func TestFetchRatesProviderFailure(t *testing.T) {
	router := setupTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})
	token := createSession(t, router)
	uploadFile(t, router, token, "gains.csv", testGainLossCSV)

	rr := doRequest(t, router, http.MethodPost, "/api/rates/fetch", token, nil, "")
	if rr.Code != http.StatusBadGateway {
		t.Errorf("provider failure returned %d, want 502", rr.Code)
	}
}

func TestBadQueryParams(t *testing.T) {
	router := setupTestRouter(t, nil)
	token := createSession(t, router)

	rr := doRequest(t, router, http.MethodGet, "/api/summary?year=abc", token, nil, "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("non-numeric year returned %d, want 400", rr.Code)
	}

	rr = doRequest(t, router, http.MethodGet, "/api/summary?year=1492", token, nil, "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("out-of-range year returned %d, want 400", rr.Code)
	}

	rr = doRequest(t, router, http.MethodGet, "/api/export/bonds", token, nil, "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown export category returned %d, want 400", rr.Code)
	}
}
