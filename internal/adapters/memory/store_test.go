package memory_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/emiliopalmerini/dwstyles/internal/adapters/memory"
	"github.com/emiliopalmerini/dwstyles/internal/domain"
)

func newRepos(t *testing.T) *memory.Repositories {
	t.Helper()
	return memory.NewRepositories(memory.NewStore())
}

func addColor(t *testing.T, repos *memory.Repositories, hex string) *domain.Color {
	t.Helper()
	c, err := domain.NewColor(hex)
	if err != nil {
		t.Fatalf("NewColor(%s) failed: %v", hex, err)
	}
	if err := repos.Colors.Create(context.Background(), c); err != nil {
		t.Fatalf("Create(%s) failed: %v", hex, err)
	}
	return c
}

func addTheme(t *testing.T, repos *memory.Repositories, label string) *domain.Theme {
	t.Helper()
	ctx := context.Background()
	layout, err := repos.Layouts.GetByCodename(ctx, "bases")
	if err != nil {
		t.Fatalf("GetByCodename failed: %v", err)
	}
	if layout == nil {
		layout = &domain.Layout{Name: "Base", Codename: "bases"}
		if err := repos.Layouts.Create(ctx, layout); err != nil {
			t.Fatalf("create layout: %v", err)
		}
	}
	theme := &domain.Theme{LayoutID: layout.ID, Name: label, LabelID: label}
	if err := repos.Themes.Create(ctx, theme); err != nil {
		t.Fatalf("create theme: %v", err)
	}
	return theme
}

func TestColors_CreateConflict(t *testing.T) {
	repos := newRepos(t)
	addColor(t, repos, "112233")

	dup, err := domain.NewColor("123")
	if err != nil {
		t.Fatalf("NewColor failed: %v", err)
	}
	dup.Hex = "112233"
	if err := repos.Colors.Create(context.Background(), dup); !errors.Is(err, domain.ErrConstraintConflict) {
		t.Errorf("expected ErrConstraintConflict, got %v", err)
	}
}

func TestColors_GetMissing(t *testing.T) {
	repos := newRepos(t)
	c, err := repos.Colors.GetByHex(context.Background(), "abcdef")
	if err != nil {
		t.Fatalf("GetByHex failed: %v", err)
	}
	if c != nil {
		t.Errorf("expected nil, got %+v", c)
	}
}

func TestColors_ListRoundAndBucket(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	for _, hex := range []string{"202020", "212121", "000000", "1f1f1f"} {
		addColor(t, repos, hex)
	}

	round, err := repos.Colors.ListRound(ctx)
	if err != nil {
		t.Fatalf("ListRound failed: %v", err)
	}
	var hexes []string
	for _, c := range round {
		hexes = append(hexes, c.Hex)
	}
	if want := []string{"000000", "202020"}; !reflect.DeepEqual(hexes, want) {
		t.Errorf("expected %v, got %v", want, hexes)
	}

	bucket, err := repos.Colors.ListByRoundedHex(ctx, "202020")
	if err != nil {
		t.Fatalf("ListByRoundedHex failed: %v", err)
	}
	if len(bucket) != 3 {
		t.Errorf("expected 3 colors in bucket 202020, got %d", len(bucket))
	}
}

func TestThemeColors_GetPrefersFeature(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	theme := addTheme(t, repos, "bases/foo")
	addColor(t, repos, "ffffff")

	for _, tc := range []*domain.ThemeColor{
		{ThemeID: theme.ID, ColorHex: "ffffff", Category: domain.CategoryAccent, Variables: "color_page_text"},
		{ThemeID: theme.ID, ColorHex: "ffffff", Category: domain.CategoryFeature, Variables: "color_entry_background"},
	} {
		if err := repos.ThemeColors.Create(ctx, tc); err != nil {
			t.Fatalf("create theme color: %v", err)
		}
	}

	tc, err := repos.ThemeColors.Get(ctx, theme.ID, "ffffff")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if tc == nil || tc.Category != domain.CategoryFeature {
		t.Errorf("expected the feature row, got %+v", tc)
	}

	err = repos.ThemeColors.Create(ctx, &domain.ThemeColor{ThemeID: theme.ID, ColorHex: "ffffff", Category: domain.CategoryFeature})
	if !errors.Is(err, domain.ErrConstraintConflict) {
		t.Errorf("expected ErrConstraintConflict, got %v", err)
	}

	list, err := repos.ThemeColors.ListByTheme(ctx, theme.ID)
	if err != nil {
		t.Fatalf("ListByTheme failed: %v", err)
	}
	if len(list) != 2 || list[0].Category != domain.CategoryFeature {
		t.Errorf("expected feature row first of 2, got %+v", list)
	}

	n, err := repos.ThemeColors.CountByRoundedHex(ctx, "ffffff")
	if err != nil {
		t.Fatalf("CountByRoundedHex failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}

func TestThemeColors_RejectsUnknownReferences(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	theme := addTheme(t, repos, "bases/foo")

	if err := repos.ThemeColors.Create(ctx, &domain.ThemeColor{ThemeID: theme.ID, ColorHex: "ffffff", Category: domain.CategoryAccent}); err == nil {
		t.Error("expected error for an unknown color")
	}

	addColor(t, repos, "ffffff")
	if err := repos.ThemeColors.Create(ctx, &domain.ThemeColor{ThemeID: theme.ID, ColorHex: "ffffff", Category: "background"}); err == nil {
		t.Error("expected error for an unknown category")
	}
}

func TestDistances_CanonicalAndNear(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	n, err := repos.Distances.SaveIfAbsent(ctx, []*domain.ColorDistance{
		{HexA: "bbbbbb", HexB: "aaaaaa", Distance: 4},
		{HexA: "aaaaaa", HexB: "cccccc", Distance: 2},
		{HexA: "dddddd", HexB: "aaaaaa", Distance: 12},
	})
	if err != nil {
		t.Fatalf("SaveIfAbsent failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 written, got %d", n)
	}

	n, err = repos.Distances.SaveIfAbsent(ctx, []*domain.ColorDistance{{HexA: "aaaaaa", HexB: "bbbbbb", Distance: 99}})
	if err != nil {
		t.Fatalf("SaveIfAbsent failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected existing pair kept, got %d written", n)
	}

	d, err := repos.Distances.Get(ctx, "bbbbbb", "aaaaaa")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if d == nil || d.HexA != "aaaaaa" || d.Distance != 4 {
		t.Errorf("expected aaaaaa/bbbbbb at 4, got %+v", d)
	}

	near, err := repos.Distances.ListNear(ctx, "aaaaaa", 10)
	if err != nil {
		t.Fatalf("ListNear failed: %v", err)
	}
	if len(near) != 2 || near[0].Other("aaaaaa") != "cccccc" || near[1].Other("aaaaaa") != "bbbbbb" {
		t.Errorf("expected cccccc then bbbbbb, got %+v", near)
	}

	partners, err := repos.Distances.ListPartners(ctx, "aaaaaa")
	if err != nil {
		t.Fatalf("ListPartners failed: %v", err)
	}
	if want := []string{"bbbbbb", "cccccc", "dddddd"}; !reflect.DeepEqual(partners, want) {
		t.Errorf("expected %v, got %v", want, partners)
	}

	if _, err := repos.Distances.SaveIfAbsent(ctx, []*domain.ColorDistance{{HexA: "aaaaaa", HexB: "aaaaaa"}}); err == nil {
		t.Error("expected error for an identical pair")
	}
}

func TestGroups_Memberships(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	addColor(t, repos, "ff0000")

	red := &domain.ColorGroup{Codename: "red", Label: "Red", Category: domain.ColorGroupColor}
	bright := &domain.ColorGroup{Codename: "bright", Label: "Bright", Category: domain.ColorGroupCharacteristic}
	for _, g := range []*domain.ColorGroup{red, bright} {
		if err := repos.Groups.Create(ctx, g); err != nil {
			t.Fatalf("create group: %v", err)
		}
	}
	if err := repos.Groups.Create(ctx, &domain.ColorGroup{Codename: "red"}); !errors.Is(err, domain.ErrConstraintConflict) {
		t.Errorf("expected ErrConstraintConflict, got %v", err)
	}

	for _, id := range []string{bright.ID, red.ID} {
		if err := repos.Groups.AddMembership(ctx, "ff0000", id); err != nil {
			t.Fatalf("AddMembership failed: %v", err)
		}
	}
	if err := repos.Groups.AddMembership(ctx, "000000", red.ID); err == nil {
		t.Error("expected error for an unknown color")
	}

	groups, err := repos.Groups.Memberships(ctx, "ff0000")
	if err != nil {
		t.Fatalf("Memberships failed: %v", err)
	}
	if len(groups) != 2 || groups[0].Codename != "bright" || groups[1].Codename != "red" {
		t.Errorf("expected bright then red, got %+v", groups)
	}

	colors, err := repos.Groups.ListColors(ctx, red.ID)
	if err != nil {
		t.Fatalf("ListColors failed: %v", err)
	}
	if len(colors) != 1 {
		t.Errorf("expected 1 red color, got %d", len(colors))
	}

	if err := repos.Groups.RemoveMembership(ctx, "ff0000", red.ID); err != nil {
		t.Fatalf("RemoveMembership failed: %v", err)
	}
	groups, err = repos.Groups.Memberships(ctx, "ff0000")
	if err != nil {
		t.Fatalf("Memberships failed: %v", err)
	}
	if len(groups) != 1 {
		t.Errorf("expected 1 group left, got %d", len(groups))
	}
}

func TestThemes_Tags(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	theme := addTheme(t, repos, "bases/foo")

	p := &domain.StyleProperty{Codename: domain.PropertyDarkOnLight, Label: "Dark on light", ThemeUse: true}
	if err := repos.Properties.Create(ctx, p); err != nil {
		t.Fatalf("create property: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := repos.Themes.AddTag(ctx, theme.ID, p.ID); err != nil {
			t.Fatalf("AddTag failed: %v", err)
		}
	}

	tags, err := repos.Themes.ListTags(ctx, theme.ID)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 1 || tags[0].Codename != domain.PropertyDarkOnLight {
		t.Errorf("expected one dark-on-light tag, got %+v", tags)
	}

	if err := repos.Themes.RemoveTag(ctx, theme.ID, p.ID); err != nil {
		t.Fatalf("RemoveTag failed: %v", err)
	}
	tags, err = repos.Themes.ListTags(ctx, theme.ID)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected no tags, got %+v", tags)
	}

	err = repos.Themes.Create(ctx, &domain.Theme{LayoutID: theme.LayoutID, LabelID: "bases/foo"})
	if !errors.Is(err, domain.ErrConstraintConflict) {
		t.Errorf("expected ErrConstraintConflict, got %v", err)
	}
}
