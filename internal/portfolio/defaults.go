package portfolio

// DefaultDocument returns the compiled-in seed content. Hydration merges the
// persisted snapshot over this; Reset restores it.
func DefaultDocument() Document {
	return Document{
		Settings: Settings{
			SiteTitle:       "MYSELF - Resume or portfolio HTML Template",
			Logo:            "img/logo.png",
			Favicon:         "img/favicon.png",
			MetaDescription: "Professional portfolio and resume",
			MetaKeywords:    "portfolio, resume, developer, designer",
			MetaAuthor:      "Awesome Themez",
			GitHub: &GitHubConfig{
				Branch: "main",
			},
		},
		Hero: Hero{
			Title:           "HELLO HI,",
			Name:            "lalina",
			Subtitle:        "Front end Developer",
			BackgroundImage: "img/hero-bg.jpg",
		},
		About: About{
			MainTitle:       "Web Designer & Developer",
			MainDescription: "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod set tempor incididunt ut labore et dolore magna aliqua.",
			Image:           "img/about-img.jpg",
			Features: []Feature{
				{Title: "New Ideas", Description: "Lorem ipsum dolor sit amet more consectetur adipiscing elit, sed do eiusmod."},
				{Title: "Clean Design", Description: "Lorem ipsum dolor sit amet more consectetur adipiscing elit, sed do eiusmod."},
				{Title: "Easy Code", Description: "Lorem ipsum dolor sit amet more consectetur adipiscing elit, sed do eiusmod."},
				{Title: "Awesome Product", Description: "Lorem ipsum dolor sit amet more consectetur adipiscing elit, sed do eiusmod."},
			},
		},
		Education: []Education{
			{ID: "1", Degree: "Bachelor In Web Technology", School: "University Of Florida", Year: "2005-2008"},
			{ID: "2", Degree: "Masters In Graphic Design", School: "University Of Coventry", Year: "2009-2010"},
			{ID: "3", Degree: "Diploma In Motion Graphic", School: "University Of Florida", Year: "2008-2011"},
		},
		Experience: []Experience{
			{ID: "1", Role: "Project Manager", Company: "Awesome Themez", Year: "2005-2008"},
			{ID: "2", Role: "Senior Graphic Designer", Company: "Web Tech", Year: "2009-2010"},
			{ID: "3", Role: "Word Press Developer", Company: "Perfect IT", Year: "2008-2011"},
		},
		Skills: []Skill{
			{ID: "1", Name: "Photoshop", Percentage: 90},
			{ID: "2", Name: "Html / css", Percentage: 80},
			{ID: "3", Name: "Adobe muse", Percentage: 85},
			{ID: "4", Name: "Python", Percentage: 80},
		},
		Services: []Service{
			{ID: "1", Icon: "paint-brush", Title: "Web Design", Description: "Sed ut perspiciatis unde omnis iste error sit voluptatem accusantium doloremque laudantium."},
			{ID: "2", Icon: "laptop", Title: "App Showcase", Description: "Sed ut perspiciatis unde omnis iste error sit voluptatem accusantium doloremque laudantium."},
			{ID: "3", Icon: "code", Title: "Web Programming", Description: "Sed ut perspiciatis unde omnis iste error sit voluptatem accusantium doloremque laudantium."},
		},
		Categories: []Category{
			{ID: "cat-1", Name: "PHOTOGRAPHY", FilterClass: "item-1"},
			{ID: "cat-2", Name: "WEB DESIGN", FilterClass: "item-2"},
			{ID: "cat-3", Name: "DEVELOPMENT", FilterClass: "item-3"},
		},
		Works: []Work{
			{ID: "1", Title: "GRAPHIC DESIGN", Subtitle: "Info Graphic", CategoryID: "cat-2", Image: "img/work-01.jpg", LargeImage: "img/work-l-01.jpg"},
			{ID: "2", Title: "BOTTLE DESIGN", Subtitle: "Branding", CategoryID: "cat-1", Image: "img/work-02.jpg", LargeImage: "img/work-l-02.jpg"},
			{ID: "3", Title: "BRAND LOGO", Subtitle: "Branding", CategoryID: "cat-2", Image: "img/work-03.jpg", LargeImage: "img/work-l-03.jpg"},
			{ID: "4", Title: "ANIMATOR", Subtitle: "Monster", CategoryID: "cat-1", Image: "img/work-04.jpg", LargeImage: "img/work-l-04.jpg"},
		},
		Contact: Contact{
			Address: "4995 Collins Avenue,London",
			Phone:   "002-333-8471",
			Email:   "mail.lalin@gmail.com",
		},
	}
}
