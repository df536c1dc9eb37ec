package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// SchemaVersion stamps every persisted payload so a reading context can
// reject shapes it does not understand instead of crashing on them.
const SchemaVersion = 1

// ErrSchema indicates a persisted payload with an incompatible schema stamp.
var ErrSchema = errors.New("portfolio: incompatible schema version")

// Envelope wraps the document for persistence.
type Envelope struct {
	Schema int      `json:"schema"`
	Data   Document `json:"data"`
}

// EncodeEnvelope serializes a document under the current schema version.
func EncodeEnvelope(doc Document) ([]byte, error) {
	payload, err := json.Marshal(Envelope{Schema: SchemaVersion, Data: doc})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return payload, nil
}

// Merge hydrates a document from a persisted envelope: the saved snapshot is
// merged over def, field by field for singleton sections and wholesale for
// collection sections. Unknown keys are dropped; a key that fails to decode
// keeps its default. A body that is not the expected envelope at all is an
// error and the caller falls back to def.
func Merge(def Document, raw []byte) (Document, error) {
	var envelope struct {
		Schema int             `json:"schema"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return def, fmt.Errorf("decode envelope: %w", err)
	}
	if envelope.Schema != SchemaVersion {
		return def, fmt.Errorf("%w: got %d, want %d", ErrSchema, envelope.Schema, SchemaVersion)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Data, &sections); err != nil {
		return def, fmt.Errorf("decode document: %w", err)
	}

	merged := def.Clone()
	if raw, ok := sections[SectionSettings]; ok {
		merged.Settings = mergeSettings(merged.Settings, raw)
	}
	if raw, ok := sections[SectionHero]; ok {
		merged.Hero = mergeHero(merged.Hero, raw)
	}
	if raw, ok := sections[SectionAbout]; ok {
		merged.About = mergeAbout(merged.About, raw)
	}
	if raw, ok := sections[SectionContact]; ok {
		merged.Contact = mergeContact(merged.Contact, raw)
	}
	replaceCollection(sections, SectionEducation, &merged.Education)
	replaceCollection(sections, SectionExperience, &merged.Experience)
	replaceCollection(sections, SectionSkills, &merged.Skills)
	replaceCollection(sections, SectionServices, &merged.Services)
	replaceCollection(sections, SectionCategories, &merged.Categories)
	replaceCollection(sections, SectionWorks, &merged.Works)
	return merged, nil
}

// replaceCollection swaps in the saved sequence wholesale when present. No
// per-entry merging: the persisted list is the list.
func replaceCollection[T any](sections map[string]json.RawMessage, name string, target *[]T) {
	raw, ok := sections[name]
	if !ok {
		return
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("portfolio: drop unreadable %s section: %v", name, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	*target = items
}

// sectionFields decodes a singleton section into its present keys. A section
// that is not an object keeps its defaults entirely.
func sectionFields(name string, raw json.RawMessage) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		log.Printf("portfolio: drop unreadable %s section: %v", name, err)
		return nil
	}
	return fields
}

func setString(fields map[string]json.RawMessage, key string, target *string) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return
	}
	*target = value
}

func mergeSettings(def Settings, raw json.RawMessage) Settings {
	fields := sectionFields(SectionSettings, raw)
	if fields == nil {
		return def
	}
	merged := def
	setString(fields, "siteTitle", &merged.SiteTitle)
	setString(fields, "logo", &merged.Logo)
	setString(fields, "favicon", &merged.Favicon)
	setString(fields, "metaDescription", &merged.MetaDescription)
	setString(fields, "metaKeywords", &merged.MetaKeywords)
	setString(fields, "metaAuthor", &merged.MetaAuthor)
	if ghRaw, ok := fields["github"]; ok {
		var gh GitHubConfig
		if err := json.Unmarshal(ghRaw, &gh); err == nil {
			merged.GitHub = &gh
		}
	}
	return merged
}

func mergeHero(def Hero, raw json.RawMessage) Hero {
	fields := sectionFields(SectionHero, raw)
	if fields == nil {
		return def
	}
	merged := def
	setString(fields, "title", &merged.Title)
	setString(fields, "name", &merged.Name)
	setString(fields, "subtitle", &merged.Subtitle)
	setString(fields, "backgroundImage", &merged.BackgroundImage)
	return merged
}

func mergeAbout(def About, raw json.RawMessage) About {
	fields := sectionFields(SectionAbout, raw)
	if fields == nil {
		return def
	}
	merged := def
	setString(fields, "mainTitle", &merged.MainTitle)
	setString(fields, "mainDescription", &merged.MainDescription)
	setString(fields, "image", &merged.Image)
	if featRaw, ok := fields["features"]; ok {
		var features []Feature
		if err := json.Unmarshal(featRaw, &features); err == nil {
			if features == nil {
				features = []Feature{}
			}
			merged.Features = features
		}
	}
	return merged
}

func mergeContact(def Contact, raw json.RawMessage) Contact {
	fields := sectionFields(SectionContact, raw)
	if fields == nil {
		return def
	}
	merged := def
	setString(fields, "address", &merged.Address)
	setString(fields, "phone", &merged.Phone)
	setString(fields, "email", &merged.Email)
	setString(fields, "formActionUrl", &merged.FormActionURL)
	return merged
}
