package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"croprec/crop"
	"croprec/db"
	"croprec/inference"
	"croprec/ml/mltest"
	"croprec/translate"
)

type fakeRuns struct {
	runs  []db.TrainingRun
	err   error
	limit int
}

func (f *fakeRuns) ListTrainingRuns(_ context.Context, limit int) ([]db.TrainingRun, error) {
	f.limit = limit
	return f.runs, f.err
}

func newTestRouter(t *testing.T, translator translate.Translator, runs RunLister) http.Handler {
	t.Helper()
	modelPath, manifestPath := mltest.WriteArtifacts(t, t.TempDir())
	predictor, err := inference.LoadPredictor(modelPath, manifestPath)
	if err != nil {
		t.Fatalf("load predictor: %v", err)
	}
	service := inference.NewService(predictor, crop.NewResolver(translator, time.Second, nil), nil)
	return NewRouter(DefaultServerConfig(), NewHandler(service, runs, nil), nil)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var payload map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("invalid json %q: %v", w.Body.String(), err)
		}
	}
	return w, payload
}

func TestHealthHandler(t *testing.T) {
	h := newTestRouter(t, nil, nil)
	w, payload := do(t, h, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if payload["status"] != "ok" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a request id header")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected security headers")
	}
}

func TestHandlePredict(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	tests := []struct {
		name string
		body string
		crop string
	}{
		{"rice", `{"nitrogen":90,"phosphorus":42,"potassium":43,"temperature":20.87,"humidity":82,"ph":6.5,"rainfall":202.93}`, "rice"},
		{"apple with dataset names", `{"N":50,"P":25,"K":20,"temperature":25.61,"humidity":71.48,"ph":5.98,"rainfall":64.55,"language":"en"}`, "apple"},
		{"numeric strings", `{"nitrogen":"90","phosphorus":"42","potassium":"43","temperature":"20.87","humidity":"82","ph":"6.5","rainfall":"202.93"}`, "rice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, payload := do(t, h, http.MethodPost, "/predict", tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			if payload["success"] != true || payload["crop"] != tt.crop || payload["language"] != "en" {
				t.Fatalf("unexpected payload: %v", payload)
			}
			info, ok := payload["info"].(map[string]any)
			if !ok {
				t.Fatalf("missing info: %v", payload)
			}
			for _, key := range []string{"name", "description", "season", "soil_type", "tips"} {
				if s, _ := info[key].(string); s == "" {
					t.Fatalf("info.%s is empty: %v", key, info)
				}
			}
		})
	}
}

func TestHandlePredictTranslates(t *testing.T) {
	translator := translate.TranslatorFunc(func(ctx context.Context, text, source, target string) translate.Result {
		return translate.Success("[" + target + "] " + text)
	})
	h := newTestRouter(t, translator, nil)

	body := `{"nitrogen":90,"phosphorus":42,"potassium":43,"temperature":20.87,"humidity":82,"ph":6.5,"rainfall":202.93,"language":"hi"}`
	w, payload := do(t, h, http.MethodPost, "/predict", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	info := payload["info"].(map[string]any)
	if info["name"] != "धान" {
		t.Fatalf("expected curated Hindi name, got %v", info["name"])
	}
	if s, _ := info["season"].(string); !strings.HasPrefix(s, "[hi] ") {
		t.Fatalf("expected translated season, got %q", s)
	}
	if payload["language"] != "hi" {
		t.Fatalf("unexpected language: %v", payload["language"])
	}
}

func TestHandlePredictBadInput(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{"nitrogen":`, "invalid JSON"},
		{"missing feature", `{"nitrogen":90,"phosphorus":42,"potassium":43,"temperature":20.87,"humidity":82,"ph":6.5}`, "rainfall"},
		{"non numeric", `{"nitrogen":"lots","phosphorus":42,"potassium":43,"temperature":20.87,"humidity":82,"ph":6.5,"rainfall":200}`, "N"},
		{"unknown field", `{"nitrogen":90,"phosphorus":42,"potassium":43,"temperature":20.87,"humidity":82,"ph":6.5,"rainfall":200,"soil":"clay"}`, "soil"},
		{"language not a string", `{"nitrogen":90,"phosphorus":42,"potassium":43,"temperature":20.87,"humidity":82,"ph":6.5,"rainfall":200,"language":3}`, "language"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, payload := do(t, h, http.MethodPost, "/predict", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			if payload["success"] != false {
				t.Fatalf("expected success=false: %v", payload)
			}
			if msg, _ := payload["error"].(string); !strings.Contains(msg, tt.want) {
				t.Fatalf("error %q should mention %q", msg, tt.want)
			}
		})
	}
}

func TestHandlePredictUnknownLanguageFallsBack(t *testing.T) {
	h := newTestRouter(t, nil, nil)
	source, _ := crop.LookupInfo(crop.Rice)

	for _, code := range []string{"xx", "fr", "not a tag"} {
		t.Run(code, func(t *testing.T) {
			body := `{"nitrogen":90,"phosphorus":42,"potassium":43,"temperature":20.87,"humidity":82,"ph":6.5,"rainfall":202.93,"language":"` + code + `"}`
			w, payload := do(t, h, http.MethodPost, "/predict", body)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			if payload["crop"] != "rice" || payload["language"] != code {
				t.Fatalf("unexpected response: %v", payload)
			}
			info := payload["info"].(map[string]any)
			if info["name"] != source.Name || info["description"] != source.Description {
				t.Fatalf("expected source text, got %v", info)
			}
		})
	}
}

func TestHandleTranslate(t *testing.T) {
	translator := translate.TranslatorFunc(func(ctx context.Context, text, source, target string) translate.Result {
		if target != "hi" {
			return translate.Failure(errors.New("upstream down"))
		}
		return translate.Success(strings.ToUpper(text))
	})
	h := newTestRouter(t, translator, nil)

	w, payload := do(t, h, http.MethodPost, "/translate", `{"text":"loamy soil","target_lang":"hi"}`)
	if w.Code != http.StatusOK || payload["translated"] != "LOAMY SOIL" {
		t.Fatalf("unexpected response %d: %v", w.Code, payload)
	}

	w, payload = do(t, h, http.MethodPost, "/translate", `{"text":"loamy soil","target_lang":"ta"}`)
	if w.Code != http.StatusOK || payload["translated"] != "loamy soil" {
		t.Fatalf("failed translation should fall back to source text, got %d: %v", w.Code, payload)
	}

	w, _ = do(t, h, http.MethodPost, "/translate", `{"text":"  ","target_lang":"hi"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty text, got %d", w.Code)
	}

	w, payload = do(t, h, http.MethodPost, "/translate", `{"text":"rice","target_lang":"klingon"}`)
	if w.Code != http.StatusOK || payload["translated"] != "rice" {
		t.Fatalf("unknown language should fall back to source text, got %d: %v", w.Code, payload)
	}
}

func TestHandleLanguages(t *testing.T) {
	h := newTestRouter(t, nil, nil)
	w, payload := do(t, h, http.MethodGet, "/languages", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(payload) != len(crop.SupportedLanguages()) || payload["en"] == nil || payload["hi"] == nil {
		t.Fatalf("unexpected languages: %v", payload)
	}
}

func TestHandleTrainingRuns(t *testing.T) {
	runs := &fakeRuns{runs: []db.TrainingRun{{RunID: "r1", Accuracy: 0.99}}}
	h := newTestRouter(t, nil, runs)

	w, payload := do(t, h, http.MethodGet, "/api/training/runs?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if runs.limit != 5 {
		t.Fatalf("expected limit 5, got %d", runs.limit)
	}
	list, _ := payload["runs"].([]any)
	if len(list) != 1 || list[0].(map[string]any)["run_id"] != "r1" {
		t.Fatalf("unexpected runs: %v", payload)
	}

	if w, _ := do(t, h, http.MethodGet, "/api/training/runs?limit=zero", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", w.Code)
	}

	runs.err = errors.New("database is locked")
	w, payload = do(t, h, http.MethodGet, "/api/training/runs", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if msg, _ := payload["error"].(string); strings.Contains(msg, "locked") {
		t.Fatalf("internal error leaked to client: %q", msg)
	}
}

func TestHandleTrainingRunsDisabled(t *testing.T) {
	h := newTestRouter(t, nil, nil)
	if w, _ := do(t, h, http.MethodGet, "/api/training/runs", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, nil, nil)
	do(t, h, http.MethodPost, "/predict", `{"nitrogen":90,"phosphorus":42,"potassium":43,"temperature":20.87,"humidity":82,"ph":6.5,"rainfall":202.93}`)

	w, _ := do(t, h, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "croprec_predictions_total") {
		t.Fatal("expected prediction counter in exposition")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestRouter(t, nil, nil)
	if w, _ := do(t, h, http.MethodGet, "/predict", ""); w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
