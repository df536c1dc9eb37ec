package portfolio

import (
	"testing"
)

func TestUpdateFieldSingleton(t *testing.T) {
	doc := DefaultDocument()

	updated, err := UpdateField(doc, SectionHero, "name", "Jordan")
	if err != nil {
		t.Fatalf("UpdateField failed: %v", err)
	}
	if updated.Hero.Name != "Jordan" {
		t.Errorf("expected updated name, got %q", updated.Hero.Name)
	}
	if doc.Hero.Name == "Jordan" {
		t.Error("input document was mutated")
	}
}

func TestUpdateFieldGithubSettings(t *testing.T) {
	doc := DefaultDocument()
	doc.Settings.GitHub = nil

	updated, err := UpdateField(doc, SectionSettings, "github.username", "jane")
	if err != nil {
		t.Fatalf("UpdateField failed: %v", err)
	}
	if updated.Settings.GitHub == nil || updated.Settings.GitHub.Username != "jane" {
		t.Errorf("expected github.username set, got %+v", updated.Settings.GitHub)
	}

	updated, err = UpdateField(updated, SectionSettings, "github.pat", "tok")
	if err != nil {
		t.Fatalf("UpdateField failed: %v", err)
	}
	if updated.Settings.GitHub.PAT != "tok" || updated.Settings.GitHub.Username != "jane" {
		t.Errorf("expected both github fields kept, got %+v", updated.Settings.GitHub)
	}
}

func TestUpdateFieldRejectsUnknown(t *testing.T) {
	doc := DefaultDocument()

	if _, err := UpdateField(doc, "nonsense", "x", "y"); err == nil {
		t.Error("expected error for unknown section")
	}
	if _, err := UpdateField(doc, SectionHero, "nonsense", "y"); err == nil {
		t.Error("expected error for unknown field")
	}
	if _, err := UpdateField(doc, SectionEducation, "degree", "y"); err == nil {
		t.Error("expected error for collection section")
	}
}

func TestUpdateListItem(t *testing.T) {
	doc := DefaultDocument()

	updated, err := UpdateListItem(doc, SectionSkills, "2", "percentage", float64(99))
	if err != nil {
		t.Fatalf("UpdateListItem failed: %v", err)
	}
	if updated.Skills[1].Percentage != 99 {
		t.Errorf("expected percentage 99, got %d", updated.Skills[1].Percentage)
	}
	if doc.Skills[1].Percentage == 99 {
		t.Error("input document was mutated")
	}
}

func TestUpdateListItemMissingIDIsNoop(t *testing.T) {
	doc := DefaultDocument()

	updated, err := UpdateListItem(doc, SectionWorks, "no-such-id", "title", "ghost")
	if err != nil {
		t.Fatalf("UpdateListItem failed: %v", err)
	}
	if !Equal(updated, doc) {
		t.Error("document changed for a missing id")
	}
}

func TestAddListItemGeneratesUniqueIDs(t *testing.T) {
	doc := DefaultDocument()

	var ids []string
	for i := 0; i < 25; i++ {
		var id string
		var err error
		doc, id, err = AddListItem(doc, SectionServices, map[string]any{
			"icon":        "code",
			"title":       "New Service",
			"description": "Description",
		})
		if err != nil {
			t.Fatalf("AddListItem failed: %v", err)
		}
		ids = append(ids, id)
	}

	seen := make(map[string]bool)
	for _, service := range doc.Services {
		if seen[service.ID] {
			t.Fatalf("duplicate id %q in services", service.ID)
		}
		seen[service.ID] = true
	}
	for _, id := range ids {
		if !seen[id] {
			t.Errorf("returned id %q not found in section", id)
		}
	}
}

func TestAddRemoveKeepsIDsDistinct(t *testing.T) {
	doc := DefaultDocument()

	for i := 0; i < 10; i++ {
		var id string
		var err error
		doc, id, err = AddListItem(doc, SectionEducation, map[string]any{"degree": "New Degree"})
		if err != nil {
			t.Fatalf("AddListItem failed: %v", err)
		}
		if i%2 == 0 {
			doc, err = RemoveListItem(doc, SectionEducation, id)
			if err != nil {
				t.Fatalf("RemoveListItem failed: %v", err)
			}
		}
	}

	seen := make(map[string]bool)
	for _, item := range doc.Education {
		if seen[item.ID] {
			t.Fatalf("duplicate id %q after add/remove sequence", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestRemoveListItemMissingIDIsNoop(t *testing.T) {
	doc := DefaultDocument()
	before := len(doc.Works)

	updated, err := RemoveListItem(doc, SectionWorks, "no-such-id")
	if err != nil {
		t.Fatalf("RemoveListItem failed: %v", err)
	}
	if len(updated.Works) != before {
		t.Errorf("expected %d works, got %d", before, len(updated.Works))
	}
	if !Equal(updated, doc) {
		t.Error("section contents changed for a missing id")
	}
}

func TestRemoveCategoryLeavesWorksDangling(t *testing.T) {
	doc := DefaultDocument()

	updated, err := RemoveListItem(doc, SectionCategories, "cat-1")
	if err != nil {
		t.Fatalf("RemoveListItem failed: %v", err)
	}
	if len(updated.Categories) != len(doc.Categories)-1 {
		t.Fatalf("expected one category removed")
	}
	if len(updated.Works) != len(doc.Works) {
		t.Errorf("works must not cascade, got %d of %d", len(updated.Works), len(doc.Works))
	}
	found := false
	for _, work := range updated.Works {
		if work.CategoryID == "cat-1" {
			found = true
		}
	}
	if !found {
		t.Error("expected dangling categoryId references to survive")
	}
}

func TestUpdateAboutFeature(t *testing.T) {
	doc := DefaultDocument()

	updated, err := UpdateAboutFeature(doc, 1, "title", "Fresh Ideas")
	if err != nil {
		t.Fatalf("UpdateAboutFeature failed: %v", err)
	}
	if updated.About.Features[1].Title != "Fresh Ideas" {
		t.Errorf("expected updated feature title, got %q", updated.About.Features[1].Title)
	}

	// out of range is a no-op
	same, err := UpdateAboutFeature(doc, 99, "title", "x")
	if err != nil {
		t.Fatalf("UpdateAboutFeature failed: %v", err)
	}
	if !Equal(same, doc) {
		t.Error("out-of-range index changed the document")
	}
}

func TestStamp(t *testing.T) {
	doc := DefaultDocument()

	stamped := doc.Stamp("https://forms.example.dev/submit")
	if stamped.Contact.FormActionURL != "https://forms.example.dev/submit" {
		t.Errorf("expected stamped form url, got %q", stamped.Contact.FormActionURL)
	}
	if doc.Contact.FormActionURL == stamped.Contact.FormActionURL {
		t.Error("input document was mutated")
	}
}
