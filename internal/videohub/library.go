package videohub

// Category is a training focus with its curated video links.
type Category struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Links []string `json:"links"`
}

type Library []Category

func (l Library) Category(id string) (Category, bool) {
	for _, c := range l {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Links returns every distinct link of the library, in library order.
func (l Library) Links() []string {
	seen := make(map[string]bool)
	var links []string
	for _, c := range l {
		for _, link := range c.Links {
			if seen[link] {
				continue
			}
			seen[link] = true
			links = append(links, link)
		}
	}
	return links
}

// DefaultLibrary is the curated pt-BR training library.
func DefaultLibrary() Library {
	return Library{
		{
			ID:   "cardio-hiit",
			Name: "🔥 Cardio & HIIT",
			Links: []string{
				"https://www.youtube.com/watch?v=ml6cT4AZdqI", "https://www.youtube.com/watch?v=W4eKCKMxknk",
				"https://www.youtube.com/watch?v=Mvo2gqZ8uPc", "https://www.youtube.com/watch?v=gC_L9qAHVJ8",
				"https://www.youtube.com/watch?v=SubvK6bU41w", "https://www.youtube.com/watch?v=GS_z6P_-h_k",
				"https://www.youtube.com/watch?v=sPG49d1N-KY", "https://www.youtube.com/watch?v=VRfXCSbU6Mk",
			},
		},
		{
			ID:   "strength",
			Name: "💪 Musculação",
			Links: []string{
				"https://www.youtube.com/watch?v=VfM6d7sA4_U", "https://www.youtube.com/watch?v=UItWltVZZmE",
				"https://www.youtube.com/watch?v=XyLzC2WwFhg", "https://www.youtube.com/watch?v=5uVaKjWrkoc",
				"https://www.youtube.com/watch?v=qjJqC_i2J9k", "https://www.youtube.com/watch?v=0dsL9QjFz7c",
				"https://www.youtube.com/watch?v=3tX8W_Z8_X8", "https://www.youtube.com/watch?v=nyJ2X_yJq_c",
			},
		},
		{
			ID:   "yoga",
			Name: "🧘 Yoga & Flexibilidade",
			Links: []string{
				"https://www.youtube.com/watch?v=hJbRpHZR_d0", "https://www.youtube.com/watch?v=s-7lyvQbFfw",
				"https://www.youtube.com/watch?v=4pKly2JojMw", "https://www.youtube.com/watch?v=inpok4MKVHM",
				"https://www.youtube.com/watch?v=E-nN6_OqiuE", "https://www.youtube.com/watch?v=v7AYKMP6rOE",
			},
		},
		{
			ID:   "dance",
			Name: "💃 Dança & Ritmos",
			Links: []string{
				"https://www.youtube.com/watch?v=dj3a4D2a1yA", "https://www.youtube.com/watch?v=y9L1H6WkH9o",
				"https://www.youtube.com/watch?v=5b5c9b_6bGA", "https://www.youtube.com/watch?v=vQxW4pQk6qE",
				"https://www.youtube.com/watch?v=zO0Y-2_W7jM", "https://www.youtube.com/watch?v=It3s2l2Jg_k",
			},
		},
		{
			ID:   "abs",
			Name: "🍫 Abdominais",
			Links: []string{
				"https://www.youtube.com/watch?v=1f8yoFFdkcY", "https://www.youtube.com/watch?v=AnYl6Nk9GOA",
				"https://www.youtube.com/watch?v=QLOJ16GqCZY", "https://www.youtube.com/watch?v=835E6t7kKZM",
				"https://www.youtube.com/watch?v=UYH2fTkyR_s", "https://www.youtube.com/watch?v=P1m7W_3J7F8",
			},
		},
		{
			ID:   "calisthenics",
			Name: "🦍 Calistenia",
			Links: []string{
				"https://www.youtube.com/watch?v=PODn8X7_7_7", "https://www.youtube.com/watch?v=0dsL9QjFz7c",
				"https://www.youtube.com/watch?v=qjJqC_i2J9k", "https://www.youtube.com/watch?v=UItWltVZZmE",
			},
		},
	}
}
