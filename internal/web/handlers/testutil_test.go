package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"

	"github.com/fotokiosk/kiosk/internal/db"
	"github.com/fotokiosk/kiosk/internal/dispatch"
	"github.com/fotokiosk/kiosk/internal/formats"
	"github.com/fotokiosk/kiosk/internal/model"
	"github.com/fotokiosk/kiosk/internal/render"
)

// testEnv wires the handlers' collaborators against temp directories and an
// in-memory database.
type testEnv struct {
	orders      *OrdersHandler
	dispatcher  *dispatch.Dispatcher
	printBase   string
	tempUploads string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	registry, err := formats.Load()
	if err != nil {
		t.Fatalf("loading registry: %v", err)
	}
	database := db.NewTestDB(t)
	printBase := t.TempDir()
	tempUploads := t.TempDir()

	dispatcher := &dispatch.Dispatcher{
		DB:            database,
		Registry:      registry,
		Renderer:      render.New(),
		PrintBasePath: printBase,
		TempUploadDir: tempUploads,
	}
	return &testEnv{
		orders:      NewOrdersHandler(database, registry, dispatcher),
		dispatcher:  dispatcher,
		printBase:   printBase,
		tempUploads: tempUploads,
	}
}

// requestWithChiParams attaches chi URL parameters to a request.
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// postJSON builds a JSON POST request.
func postJSON(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request body: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeJSON unmarshals a recorded response body.
func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

// jpegBytes returns an encoded JPEG of the given size.
func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 80, G: 130, B: 80, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

// multipartBody builds a multipart request body with the given file parts
// and form fields, returning the body and its content type.
func multipartBody(t *testing.T, files map[string][]byte, fields map[string]string, fileField string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("writing field %s: %v", name, err)
		}
	}
	for name, data := range files {
		part, err := writer.CreateFormFile(fileField, name)
		if err != nil {
			t.Fatalf("creating form file %s: %v", name, err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("writing form file %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

// cartItem is a convenience builder for a single-photo cart item backed by a
// photo in the temp upload directory.
func cartItem(sku string, photos ...model.Photo) model.CartItem {
	return model.CartItem{SKU: sku, Photos: photos}
}
