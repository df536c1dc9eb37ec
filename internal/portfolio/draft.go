package portfolio

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	// ErrUnknownSection is returned for a section name the document does not have.
	ErrUnknownSection = errors.New("portfolio: unknown section")
	// ErrUnknownField is returned for a field name the section does not have.
	ErrUnknownField = errors.New("portfolio: unknown field")
	// ErrBadValue is returned when a value has the wrong type for its field.
	ErrBadValue = errors.New("portfolio: bad field value")
)

// The transformations below are pure: each returns a new document and leaves
// its input untouched, so the owning controller can swap the current draft
// atomically and tests need no live state.

// UpdateField replaces one field of a singleton section. GitHub publish
// settings are addressed as "github.username", "github.repo", "github.pat"
// and "github.branch" under the settings section.
func UpdateField(doc Document, section, field string, value any) (Document, error) {
	out := doc.Clone()
	var err error
	switch section {
	case SectionSettings:
		err = updateSettingsField(&out.Settings, field, value)
	case SectionHero:
		err = updateHeroField(&out.Hero, field, value)
	case SectionAbout:
		err = updateAboutField(&out.About, field, value)
	case SectionContact:
		err = updateContactField(&out.Contact, field, value)
	default:
		return doc, fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	if err != nil {
		return doc, err
	}
	return out, nil
}

// UpdateAboutFeature replaces one field of a feature entry by position.
// Out-of-range indexes are a silent no-op.
func UpdateAboutFeature(doc Document, index int, field string, value any) (Document, error) {
	if index < 0 || index >= len(doc.About.Features) {
		return doc, nil
	}
	text, ok := stringValue(value)
	if !ok {
		return doc, fmt.Errorf("%w: feature %s", ErrBadValue, field)
	}
	out := doc.Clone()
	switch field {
	case "title":
		out.About.Features[index].Title = text
	case "description":
		out.About.Features[index].Description = text
	default:
		return doc, fmt.Errorf("%w: feature %s", ErrUnknownField, field)
	}
	return out, nil
}

// UpdateListItem replaces one field of the collection record with the given
// id. A missing id is a silent no-op.
func UpdateListItem(doc Document, section, id, field string, value any) (Document, error) {
	out := doc.Clone()
	var err error
	switch section {
	case SectionEducation:
		for i := range out.Education {
			if out.Education[i].ID == id {
				err = updateEducationField(&out.Education[i], field, value)
				break
			}
		}
	case SectionExperience:
		for i := range out.Experience {
			if out.Experience[i].ID == id {
				err = updateExperienceField(&out.Experience[i], field, value)
				break
			}
		}
	case SectionSkills:
		for i := range out.Skills {
			if out.Skills[i].ID == id {
				err = updateSkillField(&out.Skills[i], field, value)
				break
			}
		}
	case SectionServices:
		for i := range out.Services {
			if out.Services[i].ID == id {
				err = updateServiceField(&out.Services[i], field, value)
				break
			}
		}
	case SectionCategories:
		for i := range out.Categories {
			if out.Categories[i].ID == id {
				err = updateCategoryField(&out.Categories[i], field, value)
				break
			}
		}
	case SectionWorks:
		for i := range out.Works {
			if out.Works[i].ID == id {
				err = updateWorkField(&out.Works[i], field, value)
				break
			}
		}
	default:
		return doc, fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	if err != nil {
		return doc, err
	}
	return out, nil
}

// AddListItem appends a record built from template plus a freshly generated
// id and returns the new document along with that id. Ids derive from the
// millisecond clock and are bumped until unique within the section.
func AddListItem(doc Document, section string, template map[string]any) (Document, string, error) {
	out := doc.Clone()
	var id string
	switch section {
	case SectionEducation:
		id = newItemID(educationIDs(out.Education))
		out.Education = append(out.Education, Education{
			ID:     id,
			Degree: templateString(template, "degree"),
			School: templateString(template, "school"),
			Year:   templateString(template, "year"),
		})
	case SectionExperience:
		id = newItemID(experienceIDs(out.Experience))
		out.Experience = append(out.Experience, Experience{
			ID:      id,
			Role:    templateString(template, "role"),
			Company: templateString(template, "company"),
			Year:    templateString(template, "year"),
		})
	case SectionSkills:
		id = newItemID(skillIDs(out.Skills))
		percentage, _ := intValue(template["percentage"])
		out.Skills = append(out.Skills, Skill{
			ID:         id,
			Name:       templateString(template, "name"),
			Percentage: percentage,
		})
	case SectionServices:
		id = newItemID(serviceIDs(out.Services))
		out.Services = append(out.Services, Service{
			ID:          id,
			Icon:        templateString(template, "icon"),
			Title:       templateString(template, "title"),
			Description: templateString(template, "description"),
		})
	case SectionCategories:
		id = newItemID(categoryIDs(out.Categories))
		out.Categories = append(out.Categories, Category{
			ID:          id,
			Name:        templateString(template, "name"),
			FilterClass: templateString(template, "filterClass"),
		})
	case SectionWorks:
		id = newItemID(workIDs(out.Works))
		out.Works = append(out.Works, Work{
			ID:         id,
			Title:      templateString(template, "title"),
			Subtitle:   templateString(template, "subtitle"),
			CategoryID: templateString(template, "categoryId"),
			Image:      templateString(template, "image"),
			LargeImage: templateString(template, "largeImage"),
		})
	default:
		return doc, "", fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	return out, id, nil
}

// RemoveListItem removes the first record with the given id. A missing id is
// a silent no-op. Removing a category leaves works referencing it dangling.
func RemoveListItem(doc Document, section, id string) (Document, error) {
	out := doc.Clone()
	switch section {
	case SectionEducation:
		out.Education = removeByID(out.Education, id, func(item Education) string { return item.ID })
	case SectionExperience:
		out.Experience = removeByID(out.Experience, id, func(item Experience) string { return item.ID })
	case SectionSkills:
		out.Skills = removeByID(out.Skills, id, func(item Skill) string { return item.ID })
	case SectionServices:
		out.Services = removeByID(out.Services, id, func(item Service) string { return item.ID })
	case SectionCategories:
		out.Categories = removeByID(out.Categories, id, func(item Category) string { return item.ID })
	case SectionWorks:
		out.Works = removeByID(out.Works, id, func(item Work) string { return item.ID })
	default:
		return doc, fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	return out, nil
}

// IsCollection reports whether the section is an ordered id-keyed list.
func IsCollection(section string) bool {
	switch section {
	case SectionEducation, SectionExperience, SectionSkills, SectionServices, SectionCategories, SectionWorks:
		return true
	}
	return false
}

func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	for i, item := range items {
		if idOf(item) == id {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

// newItemID returns a millisecond-clock id, bumped past any collision with
// the ids already in the section.
func newItemID(existing map[string]bool) string {
	base := time.Now().UnixMilli()
	for {
		id := strconv.FormatInt(base, 10)
		if !existing[id] {
			return id
		}
		base++
	}
}

func educationIDs(items []Education) map[string]bool {
	ids := make(map[string]bool, len(items))
	for _, item := range items {
		ids[item.ID] = true
	}
	return ids
}

func experienceIDs(items []Experience) map[string]bool {
	ids := make(map[string]bool, len(items))
	for _, item := range items {
		ids[item.ID] = true
	}
	return ids
}

func skillIDs(items []Skill) map[string]bool {
	ids := make(map[string]bool, len(items))
	for _, item := range items {
		ids[item.ID] = true
	}
	return ids
}

func serviceIDs(items []Service) map[string]bool {
	ids := make(map[string]bool, len(items))
	for _, item := range items {
		ids[item.ID] = true
	}
	return ids
}

func categoryIDs(items []Category) map[string]bool {
	ids := make(map[string]bool, len(items))
	for _, item := range items {
		ids[item.ID] = true
	}
	return ids
}

func workIDs(items []Work) map[string]bool {
	ids := make(map[string]bool, len(items))
	for _, item := range items {
		ids[item.ID] = true
	}
	return ids
}

func updateSettingsField(settings *Settings, field string, value any) error {
	if field == "github.username" || field == "github.repo" || field == "github.pat" || field == "github.branch" {
		text, ok := stringValue(value)
		if !ok {
			return fmt.Errorf("%w: %s", ErrBadValue, field)
		}
		if settings.GitHub == nil {
			settings.GitHub = &GitHubConfig{}
		}
		switch field {
		case "github.username":
			settings.GitHub.Username = text
		case "github.repo":
			settings.GitHub.Repo = text
		case "github.pat":
			settings.GitHub.PAT = text
		case "github.branch":
			settings.GitHub.Branch = text
		}
		return nil
	}

	text, ok := stringValue(value)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBadValue, field)
	}
	switch field {
	case "siteTitle":
		settings.SiteTitle = text
	case "logo":
		settings.Logo = text
	case "favicon":
		settings.Favicon = text
	case "metaDescription":
		settings.MetaDescription = text
	case "metaKeywords":
		settings.MetaKeywords = text
	case "metaAuthor":
		settings.MetaAuthor = text
	default:
		return fmt.Errorf("%w: settings.%s", ErrUnknownField, field)
	}
	return nil
}

func updateHeroField(hero *Hero, field string, value any) error {
	text, ok := stringValue(value)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBadValue, field)
	}
	switch field {
	case "title":
		hero.Title = text
	case "name":
		hero.Name = text
	case "subtitle":
		hero.Subtitle = text
	case "backgroundImage":
		hero.BackgroundImage = text
	default:
		return fmt.Errorf("%w: hero.%s", ErrUnknownField, field)
	}
	return nil
}

func updateAboutField(about *About, field string, value any) error {
	text, ok := stringValue(value)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBadValue, field)
	}
	switch field {
	case "mainTitle":
		about.MainTitle = text
	case "mainDescription":
		about.MainDescription = text
	case "image":
		about.Image = text
	default:
		return fmt.Errorf("%w: about.%s", ErrUnknownField, field)
	}
	return nil
}

func updateContactField(contact *Contact, field string, value any) error {
	text, ok := stringValue(value)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBadValue, field)
	}
	switch field {
	case "address":
		contact.Address = text
	case "phone":
		contact.Phone = text
	case "email":
		contact.Email = text
	case "formActionUrl":
		contact.FormActionURL = text
	default:
		return fmt.Errorf("%w: contact.%s", ErrUnknownField, field)
	}
	return nil
}

func updateEducationField(item *Education, field string, value any) error {
	text, ok := stringValue(value)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBadValue, field)
	}
	switch field {
	case "degree":
		item.Degree = text
	case "school":
		item.School = text
	case "year":
		item.Year = text
	default:
		return fmt.Errorf("%w: education.%s", ErrUnknownField, field)
	}
	return nil
}

func updateExperienceField(item *Experience, field string, value any) error {
	text, ok := stringValue(value)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBadValue, field)
	}
	switch field {
	case "role":
		item.Role = text
	case "company":
		item.Company = text
	case "year":
		item.Year = text
	default:
		return fmt.Errorf("%w: experience.%s", ErrUnknownField, field)
	}
	return nil
}

func updateSkillField(item *Skill, field string, value any) error {
	switch field {
	case "name":
		text, ok := stringValue(value)
		if !ok {
			return fmt.Errorf("%w: %s", ErrBadValue, field)
		}
		item.Name = text
	case "percentage":
		percentage, ok := intValue(value)
		if !ok {
			return fmt.Errorf("%w: %s", ErrBadValue, field)
		}
		item.Percentage = percentage
	default:
		return fmt.Errorf("%w: skills.%s", ErrUnknownField, field)
	}
	return nil
}

func updateServiceField(item *Service, field string, value any) error {
	text, ok := stringValue(value)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBadValue, field)
	}
	switch field {
	case "icon":
		item.Icon = text
	case "title":
		item.Title = text
	case "description":
		item.Description = text
	default:
		return fmt.Errorf("%w: services.%s", ErrUnknownField, field)
	}
	return nil
}

func updateCategoryField(item *Category, field string, value any) error {
	text, ok := stringValue(value)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBadValue, field)
	}
	switch field {
	case "name":
		item.Name = text
	case "filterClass":
		item.FilterClass = text
	default:
		return fmt.Errorf("%w: categories.%s", ErrUnknownField, field)
	}
	return nil
}

func updateWorkField(item *Work, field string, value any) error {
	text, ok := stringValue(value)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBadValue, field)
	}
	switch field {
	case "title":
		item.Title = text
	case "subtitle":
		item.Subtitle = text
	case "categoryId":
		item.CategoryID = text
	case "image":
		item.Image = text
	case "largeImage":
		item.LargeImage = text
	default:
		return fmt.Errorf("%w: works.%s", ErrUnknownField, field)
	}
	return nil
}

func templateString(template map[string]any, key string) string {
	text, _ := stringValue(template[key])
	return text
}

// stringValue and intValue accept what encoding/json hands back for untyped
// request bodies.
func stringValue(value any) (string, bool) {
	text, ok := value.(string)
	return text, ok
}

func intValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
