package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/emiliopalmerini/dwstyles/internal/categorizer"
	"github.com/emiliopalmerini/dwstyles/internal/distance"
	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/layer"
)

// maxLayerBytes bounds the body of a layer upload.
const maxLayerBytes = 4 << 20

const reconcileAttempts = 3

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := domain.NewColor(chi.URLParam(r, "hex"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	stored, err := s.svc.Colors.GetByHex(ctx, c.Hex)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if stored != nil {
		c = stored
	}

	detail := colorDetailJSON{
		colorJSON: toColorJSON(c),
		Catalog:   stored != nil,
		Groups:    []string{},
		Similar:   []colorJSON{},
	}

	if stored != nil {
		groups, err := s.svc.Groups.Memberships(ctx, c.Hex)
		if err != nil {
			s.writeError(w, err)
			return
		}
		for _, g := range groups {
			detail.Groups = append(detail.Groups, g.Codename)
		}
	} else {
		detail.Groups = append(detail.Groups, categorizer.Match(c.HSV)...)
	}

	similar, err := s.svc.Distances.Similar(ctx, c.Hex)
	if err != nil {
		s.writeError(w, err)
		return
	}
	for _, sc := range similar {
		detail.Similar = append(detail.Similar, toColorJSON(sc))
	}

	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	hex := chi.URLParam(r, "hex")
	if _, err := domain.NewColor(hex); err != nil {
		s.writeError(w, err)
		return
	}

	maxDistance := distance.DefaultMaxDistance
	if v := r.URL.Query().Get("max"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, errorJSON{Error: fmt.Sprintf("invalid max distance %q", v)})
			return
		}
		maxDistance = parsed
	}

	neighbors, err := s.svc.Distances.Nearby(r.Context(), hex, maxDistance)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toNeighborsJSON(neighbors))
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.svc.Groups.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := map[string][]groupJSON{
		"colors":          {},
		"characteristics": {},
	}
	for _, g := range groups {
		_, auto := categorizer.Lookup(g.Codename)
		j := groupJSON{
			ID:           g.ID,
			Codename:     g.Codename,
			Label:        g.Label,
			Description:  g.Description,
			Category:     string(g.Category),
			DisplayColor: g.DisplayColor,
			Automatic:    auto,
		}
		if g.Category == domain.ColorGroupCharacteristic {
			resp["characteristics"] = append(resp["characteristics"], j)
		} else {
			resp["colors"] = append(resp["colors"], j)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGroupColors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	group, err := s.svc.Groups.GetByCodename(ctx, chi.URLParam(r, "codename"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if group == nil {
		notFound(w, "color group")
		return
	}

	colors, err := s.svc.Groups.ListColors(ctx, group.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]colorJSON, len(colors))
	for i, c := range colors {
		out[i] = toColorJSON(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := s.svc.Themes.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]themeJSON, len(themes))
	for i, t := range themes {
		out[i] = toThemeJSON(t)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleThemeColors(w http.ResponseWriter, r *http.Request) {
	palette, err := s.svc.Reconciler.Palette(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if palette == nil {
		notFound(w, "theme")
		return
	}
	writeJSON(w, http.StatusOK, toPaletteJSON(palette))
}

// handleImportLayer reconciles a layer posted as the raw request body and
// updates the theme's contrast tags. ?archive=1 keeps a copy of the text.
func (s *Server) handleImportLayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxLayerBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorJSON{Error: err.Error()})
		return
	}
	text := string(body)
	l := layer.Parse(text)

	result, err := s.svc.Reconciler.ReconcileWithRetry(ctx, l, reconcileAttempts)
	if errors.Is(err, domain.ErrUnresolvedTheme) {
		writeJSON(w, http.StatusNotFound, errorJSON{Error: err.Error(), Label: l.LabelOrEmpty()})
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	theme := toThemeJSON(result.Theme)
	resp := importJSON{
		Label:              l.LabelOrEmpty(),
		Theme:              &theme,
		Colors:             len(l.Colors),
		ColorsCreated:      result.ColorsCreated,
		ThemeColorsCreated: len(result.Created),
		ThemeColorsUpdated: len(result.Updated),
		Rejected:           len(l.Rejected),
	}
	if resp.ColorsCreated == nil {
		resp.ColorsCreated = []string{}
	}

	outcome, err := s.svc.Contrast.Classify(ctx, result.Theme.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp.TagsAdded = outcome.Added
	resp.TagsRemoved = outcome.Removed

	if r.URL.Query().Get("archive") == "1" && s.svc.Archive != nil {
		path, err := s.svc.Archive.Store(ctx, l.LabelOrEmpty(), text)
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.Archive = path
	}

	writeJSON(w, http.StatusOK, resp)
}
