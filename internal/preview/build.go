package preview

import "myself/console/internal/portfolio"

// Build flattens a document into template data. Works keep their document
// order; a work whose category no longer exists is rendered anyway.
func Build(doc portfolio.Document) TemplateData {
	categoryNames := make(map[string]string, len(doc.Categories))
	categories := make([]string, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		categoryNames[c.ID] = c.Name
		categories = append(categories, c.Name)
	}

	works := make([]WorkView, 0, len(doc.Works))
	for _, w := range doc.Works {
		works = append(works, WorkView{
			Title:        w.Title,
			Subtitle:     w.Subtitle,
			CategoryName: categoryNames[w.CategoryID],
			Image:        w.Image,
			LargeImage:   w.LargeImage,
		})
	}

	features := make([]FeatureView, 0, len(doc.About.Features))
	for _, f := range doc.About.Features {
		features = append(features, FeatureView{Title: f.Title, Description: f.Description})
	}

	education := make([]EntryView, 0, len(doc.Education))
	for _, e := range doc.Education {
		education = append(education, EntryView{Heading: e.Degree, Subheading: e.School, Year: e.Year})
	}

	experience := make([]EntryView, 0, len(doc.Experience))
	for _, e := range doc.Experience {
		experience = append(experience, EntryView{Heading: e.Role, Subheading: e.Company, Year: e.Year})
	}

	skills := make([]SkillView, 0, len(doc.Skills))
	for _, s := range doc.Skills {
		skills = append(skills, SkillView{Name: s.Name, Percentage: s.Percentage})
	}

	services := make([]ServiceView, 0, len(doc.Services))
	for _, s := range doc.Services {
		services = append(services, ServiceView{Icon: s.Icon, Title: s.Title, Description: s.Description})
	}

	return TemplateData{
		SiteTitle:       doc.Settings.SiteTitle,
		MetaDescription: doc.Settings.MetaDescription,
		MetaAuthor:      doc.Settings.MetaAuthor,
		Logo:            doc.Settings.Logo,

		HeroTitle:    doc.Hero.Title,
		HeroName:     doc.Hero.Name,
		HeroSubtitle: doc.Hero.Subtitle,
		HeroImage:    doc.Hero.BackgroundImage,

		AboutTitle:       doc.About.MainTitle,
		AboutDescription: doc.About.MainDescription,
		AboutImage:       doc.About.Image,
		Features:         features,

		Education:  education,
		Experience: experience,
		Skills:     skills,
		Services:   services,
		Categories: categories,
		Works:      works,

		ContactAddress: doc.Contact.Address,
		ContactPhone:   doc.Contact.Phone,
		ContactEmail:   doc.Contact.Email,
		FormActionURL:  doc.Contact.FormActionURL,
	}
}

// Render builds and renders a document in one step.
func Render(doc portfolio.Document) (string, error) {
	return RenderHTML(Build(doc))
}
