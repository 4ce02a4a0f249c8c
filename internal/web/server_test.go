package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/dwstyles/internal/adapters/memory"
	"github.com/emiliopalmerini/dwstyles/internal/adapters/otel"
	"github.com/emiliopalmerini/dwstyles/internal/adapters/storage"
	"github.com/emiliopalmerini/dwstyles/internal/contrast"
	"github.com/emiliopalmerini/dwstyles/internal/distance"
	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/infrastructure/config"
	"github.com/emiliopalmerini/dwstyles/internal/reconcile"
)

const beechyLayer = `layerinfo "redist_uniq" = "bases/beechy";
set color_entry_background = "#e6e6e6";
set color_entry_text = "#333333";
set color_page_link = "#336699";`

type fixture struct {
	server *Server
	repos  *memory.Repositories
	theme  *domain.Theme
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())

	layout := &domain.Layout{Name: "Base", Codename: "bases"}
	if err := repos.Layouts.Create(ctx, layout); err != nil {
		t.Fatalf("create layout: %v", err)
	}
	theme := &domain.Theme{LayoutID: layout.ID, Name: "Beechy", LabelID: "bases/beechy"}
	if err := repos.Themes.Create(ctx, theme); err != nil {
		t.Fatalf("create theme: %v", err)
	}
	for _, g := range []*domain.ColorGroup{
		{Codename: "blue", Label: "Blue", Category: domain.ColorGroupColor, DisplayColor: "#0000ff"},
		{Codename: "favorites", Label: "Favorites", Category: domain.ColorGroupCharacteristic, DisplayColor: "#ffcc00"},
	} {
		if err := repos.Groups.Create(ctx, g); err != nil {
			t.Fatalf("create group: %v", err)
		}
	}

	archive, err := storage.NewLayerArchiveAt(t.TempDir())
	if err != nil {
		t.Fatalf("archive: %v", err)
	}

	metrics := otel.NewNoOpExporter()
	logger := zerolog.Nop()
	svc := Services{
		Colors:     repos.Colors,
		Groups:     repos.Groups,
		Themes:     repos.Themes,
		Reconciler: reconcile.NewService(repos.Colors, repos.Themes, repos.ThemeColors, metrics, logger),
		Contrast:   contrast.NewClassifier(repos.Themes, repos.ThemeColors, repos.Colors, repos.Properties, logger),
		Distances:  distance.NewIndex(repos.Colors, repos.ThemeColors, repos.Distances, metrics, logger, distance.WithWorkers(2)),
		Archive:    archive,
	}
	cfg := config.Server{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second}
	return &fixture{server: NewServer(cfg, svc, logger), repos: repos, theme: theme}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestColor_Computed(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/colors/F00", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got colorDetailJSON
	decode(t, rec, &got)
	if got.Hex != "ff0000" || got.Catalog {
		t.Errorf("unexpected color %+v", got)
	}
	if got.R != 255 || got.H != 0 || got.S != 100 || got.V != 100 {
		t.Errorf("unexpected channels %+v", got.colorJSON)
	}
	want := map[string]bool{"red": true, "bright": true}
	for _, g := range got.Groups {
		delete(want, g)
	}
	if len(want) != 0 {
		t.Errorf("groups %v missing %v", got.Groups, want)
	}
}

func TestColor_InvalidHex(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/colors/12345", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestNearby_InvalidMax(t *testing.T) {
	f := newFixture(t)
	for _, v := range []string{"far", "0", "-1"} {
		rec := f.do(t, http.MethodGet, "/api/colors/336699/nearby?max="+v, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("max=%s: expected 400, got %d", v, rec.Code)
		}
	}
}

func TestNearby_NoRepresentative(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/colors/336699/nearby", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []neighborJSON
	decode(t, rec, &got)
	if len(got) != 0 {
		t.Errorf("expected no neighbors, got %v", got)
	}
}

func TestGroups_SplitByCategory(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/groups", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got map[string][]groupJSON
	decode(t, rec, &got)
	if len(got["colors"]) != 1 || got["colors"][0].Codename != "blue" || !got["colors"][0].Automatic {
		t.Errorf("unexpected colors %+v", got["colors"])
	}
	if len(got["characteristics"]) != 1 || got["characteristics"][0].Automatic {
		t.Errorf("unexpected characteristics %+v", got["characteristics"])
	}
}

func TestGroupColors_UnknownGroup(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/groups/teal/colors", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestImportLayer(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/layers?archive=1", beechyLayer)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got importJSON
	decode(t, rec, &got)
	if got.Label != "bases/beechy" || got.Theme == nil || got.Theme.ID != f.theme.ID {
		t.Errorf("unexpected theme in %+v", got)
	}
	if got.Colors != 3 || got.ThemeColorsCreated != 3 || len(got.ColorsCreated) != 3 {
		t.Errorf("unexpected counts %+v", got)
	}
	if strings.Join(got.TagsAdded, ",") != "dark-on-light,high-contrast" {
		t.Errorf("unexpected tags %v", got.TagsAdded)
	}
	if got.Archive == "" {
		t.Error("expected archive path")
	}

	rec = f.do(t, http.MethodGet, "/api/themes/"+f.theme.ID+"/colors", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var palette paletteJSON
	decode(t, rec, &palette)
	if len(palette.Features) != 1 || palette.Features[0].Hex != "e6e6e6" {
		t.Errorf("unexpected features %+v", palette.Features)
	}
	if len(palette.Accents) != 2 {
		t.Errorf("unexpected accents %+v", palette.Accents)
	}
}

func TestImportLayer_UnresolvedTheme(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/layers", `layerinfo "redist_uniq" = "bases/unknown";
set color_page_link = "#336699";`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var got errorJSON
	decode(t, rec, &got)
	if got.Label != "bases/unknown" {
		t.Errorf("expected label in error, got %+v", got)
	}

	c, err := f.repos.Colors.GetByHex(context.Background(), "336699")
	if err != nil || c == nil {
		t.Errorf("expected color to be recorded, got %v, %v", c, err)
	}
}

func TestThemeColors_UnknownTheme(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/themes/missing/colors", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidColorFormat, http.StatusBadRequest},
		{domain.ErrUnresolvedTheme, http.StatusNotFound},
		{domain.ErrConstraintConflict, http.StatusConflict},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
