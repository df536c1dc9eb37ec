// Package portfolio holds the editable site document: its typed sections,
// the compiled-in defaults, the persisted-over-default merge, and the pure
// draft transformations the console applies to it.
package portfolio

import "encoding/json"

// Section names match the keys of the stored JSON document.
const (
	SectionSettings   = "settings"
	SectionHero       = "hero"
	SectionAbout      = "about"
	SectionEducation  = "education"
	SectionExperience = "experience"
	SectionSkills     = "skills"
	SectionServices   = "services"
	SectionCategories = "categories"
	SectionWorks      = "works"
	SectionContact    = "contact"
)

// GitHubConfig describes the publish target. Its completeness gates deploys.
type GitHubConfig struct {
	Username string `json:"username"`
	Repo     string `json:"repo"`
	PAT      string `json:"pat"`
	Branch   string `json:"branch"`
}

type Settings struct {
	SiteTitle       string        `json:"siteTitle"`
	Logo            string        `json:"logo"`
	Favicon         string        `json:"favicon"`
	MetaDescription string        `json:"metaDescription"`
	MetaKeywords    string        `json:"metaKeywords"`
	MetaAuthor      string        `json:"metaAuthor"`
	GitHub          *GitHubConfig `json:"github,omitempty"`
}

type Hero struct {
	Title           string `json:"title"`
	Name            string `json:"name"`
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"backgroundImage"`
}

// Feature entries carry no id; they are addressed by position.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type About struct {
	MainTitle       string    `json:"mainTitle"`
	MainDescription string    `json:"mainDescription"`
	Image           string    `json:"image"`
	Features        []Feature `json:"features"`
}

type Education struct {
	ID     string `json:"id"`
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

type Experience struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Year    string `json:"year"`
}

type Skill struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

type Service struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FilterClass string `json:"filterClass"`
}

// Work.CategoryID is a soft reference to Category.ID; removing a category is
// allowed to leave works dangling, and the preview renders them unfiltered.
type Work struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	CategoryID string `json:"categoryId"`
	Image      string `json:"image"`
	LargeImage string `json:"largeImage"`
}

type Contact struct {
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	FormActionURL string `json:"formActionUrl"`
}

// Document is the full editable content tree. Singleton sections are always
// present; collection sections are ordered and never nil after hydration.
type Document struct {
	Settings   Settings     `json:"settings"`
	Hero       Hero         `json:"hero"`
	About      About        `json:"about"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Skills     []Skill      `json:"skills"`
	Services   []Service    `json:"services"`
	Categories []Category   `json:"categories"`
	Works      []Work       `json:"works"`
	Contact    Contact      `json:"contact"`
}

// Clone returns a deep copy. Slices are the only shared state; the element
// types themselves are value types.
func (d Document) Clone() Document {
	out := d
	if d.Settings.GitHub != nil {
		gh := *d.Settings.GitHub
		out.Settings.GitHub = &gh
	}
	out.About.Features = append([]Feature(nil), d.About.Features...)
	out.Education = append([]Education(nil), d.Education...)
	out.Experience = append([]Experience(nil), d.Experience...)
	out.Skills = append([]Skill(nil), d.Skills...)
	out.Services = append([]Service(nil), d.Services...)
	out.Categories = append([]Category(nil), d.Categories...)
	out.Works = append([]Work(nil), d.Works...)
	return out
}

// Stamp returns the document with the contact form wired to the configured
// submission endpoint. Both preview and deploy publish stamped documents.
func (d Document) Stamp(formActionURL string) Document {
	out := d.Clone()
	out.Contact.FormActionURL = formActionURL
	return out
}

// Equal compares two documents structurally via their JSON encoding.
func Equal(a, b Document) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}
