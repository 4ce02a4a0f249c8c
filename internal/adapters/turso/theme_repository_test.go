package turso_test

import (
	"context"
	"errors"
	"testing"

	"github.com/emiliopalmerini/dwstyles/internal/adapters/turso"
	"github.com/emiliopalmerini/dwstyles/internal/domain"
)

func TestThemeRepository(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repos := turso.NewRepositories(db)

	theme := seedTheme(t, repos, "bases/foo")

	got, err := repos.Themes.GetByLabel(ctx, "bases/foo")
	if err != nil {
		t.Fatalf("GetByLabel failed: %v", err)
	}
	if got == nil || got.ID != theme.ID || !got.Official {
		t.Fatalf("unexpected theme %+v", got)
	}

	missing, err := repos.Themes.GetByLabel(ctx, "bases/none")
	if err != nil {
		t.Fatalf("GetByLabel failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil, got %+v", missing)
	}

	dup := &domain.Theme{LayoutID: theme.LayoutID, Name: "Again", LabelID: "bases/foo"}
	if err := repos.Themes.Create(ctx, dup); !errors.Is(err, domain.ErrConstraintConflict) {
		t.Errorf("expected ErrConstraintConflict, got %v", err)
	}
}

func TestThemeRepository_Tags(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repos := turso.NewRepositories(db)
	theme := seedTheme(t, repos, "bases/foo")

	// seeded by migration
	prop, err := repos.Properties.GetByCodename(ctx, domain.PropertyDarkOnLight)
	if err != nil {
		t.Fatalf("GetByCodename failed: %v", err)
	}
	if prop == nil {
		t.Fatal("expected seeded dark-on-light property")
	}

	if err := repos.Themes.AddTag(ctx, theme.ID, prop.ID); err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}
	if err := repos.Themes.AddTag(ctx, theme.ID, prop.ID); err != nil {
		t.Fatalf("second AddTag failed: %v", err)
	}

	tags, err := repos.Themes.ListTags(ctx, theme.ID)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 1 || tags[0].Codename != domain.PropertyDarkOnLight {
		t.Fatalf("unexpected tags %+v", tags)
	}

	if err := repos.Themes.RemoveTag(ctx, theme.ID, prop.ID); err != nil {
		t.Fatalf("RemoveTag failed: %v", err)
	}
	tags, _ = repos.Themes.ListTags(ctx, theme.ID)
	if len(tags) != 0 {
		t.Errorf("expected no tags, got %+v", tags)
	}
}

func TestThemeColorRepository(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repos := turso.NewRepositories(db)
	theme := seedTheme(t, repos, "bases/foo")
	seedColor(t, repos, "ffffff", false)
	seedColor(t, repos, "202040", false)
	seedColor(t, repos, "112233", false)

	accent := &domain.ThemeColor{ThemeID: theme.ID, ColorHex: "ffffff", Category: domain.CategoryAccent, Variables: "color_link"}
	feature := &domain.ThemeColor{ThemeID: theme.ID, ColorHex: "ffffff", Category: domain.CategoryFeature, Variables: "color_page_background"}
	for _, tc := range []*domain.ThemeColor{accent, feature} {
		if err := repos.ThemeColors.Create(ctx, tc); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := repos.ThemeColors.Get(ctx, theme.ID, "ffffff")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.ID != feature.ID {
		t.Errorf("expected feature row, got %+v", got)
	}

	dup := &domain.ThemeColor{ThemeID: theme.ID, ColorHex: "ffffff", Category: domain.CategoryFeature}
	if err := repos.ThemeColors.Create(ctx, dup); !errors.Is(err, domain.ErrConstraintConflict) {
		t.Errorf("expected ErrConstraintConflict, got %v", err)
	}

	if err := repos.ThemeColors.UpdateVariables(ctx, accent.ID, "color_link, color_link_visited"); err != nil {
		t.Fatalf("UpdateVariables failed: %v", err)
	}

	if err := repos.ThemeColors.Create(ctx, &domain.ThemeColor{ThemeID: theme.ID, ColorHex: "112233", Category: domain.CategoryAccent}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	list, err := repos.ThemeColors.ListByTheme(ctx, theme.ID)
	if err != nil {
		t.Fatalf("ListByTheme failed: %v", err)
	}
	if len(list) != 3 || list[0].Category != domain.CategoryFeature {
		t.Fatalf("expected feature first, got %+v", list)
	}
	if list[2].Variables != "color_link, color_link_visited" {
		t.Errorf("expected updated variables, got %q", list[2].Variables)
	}

	n, err := repos.ThemeColors.CountByRoundedHex(ctx, "202040")
	if err != nil {
		t.Fatalf("CountByRoundedHex failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 theme color in bucket 202040, got %d", n)
	}
}

func TestColorGroupRepository(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repos := turso.NewRepositories(db)
	seedColor(t, repos, "ff0000", true)

	groups, err := repos.Groups.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(groups) != 15 {
		t.Fatalf("expected 15 seeded groups, got %d", len(groups))
	}
	if groups[0].Category != domain.ColorGroupCharacteristic {
		t.Errorf("expected characteristics first, got %s", groups[0].Category)
	}

	red, err := repos.Groups.GetByCodename(ctx, "red")
	if err != nil || red == nil {
		t.Fatalf("GetByCodename(red) = %+v, %v", red, err)
	}

	if err := repos.Groups.AddMembership(ctx, "ff0000", red.ID); err != nil {
		t.Fatalf("AddMembership failed: %v", err)
	}
	if err := repos.Groups.AddMembership(ctx, "ff0000", red.ID); err != nil {
		t.Fatalf("repeated AddMembership failed: %v", err)
	}

	members, err := repos.Groups.Memberships(ctx, "ff0000")
	if err != nil {
		t.Fatalf("Memberships failed: %v", err)
	}
	if len(members) != 1 || members[0].Codename != "red" {
		t.Errorf("unexpected memberships %+v", members)
	}

	colors, err := repos.Groups.ListColors(ctx, red.ID)
	if err != nil {
		t.Fatalf("ListColors failed: %v", err)
	}
	if len(colors) != 1 || colors[0].Hex != "ff0000" {
		t.Errorf("unexpected group colors %v", hexes(colors))
	}

	if err := repos.Groups.RemoveMembership(ctx, "ff0000", red.ID); err != nil {
		t.Fatalf("RemoveMembership failed: %v", err)
	}
	members, _ = repos.Groups.Memberships(ctx, "ff0000")
	if len(members) != 0 {
		t.Errorf("expected no memberships, got %+v", members)
	}

	desc := "picked by hand"
	teal := &domain.ColorGroup{Codename: "teal", Label: "Teal", Description: &desc, Category: domain.ColorGroupColor}
	if err := repos.Groups.Create(ctx, teal); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	got, _ := repos.Groups.GetByCodename(ctx, "teal")
	if got == nil || got.Description == nil || *got.Description != desc {
		t.Errorf("unexpected group %+v", got)
	}
}
