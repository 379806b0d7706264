package card

// SampleCards returns representative render requests used by the demo
// form and tests. Paths are relative to the host's source and output
// directories.
func SampleCards() []*Card {
	return []*Card{
		{
			SourcePath: "timeless/s1e1.jpg",
			OutputPath: "timeless-s1e1.jpg",
			Title:      "Pilot",
			Series:     "Timeless",
			Season:     1,
			Episode:    1,
		},
		{
			SourcePath: "timeless/s1e2.jpg",
			OutputPath: "timeless-s1e2.jpg",
			Title:      "The Assassination of Abraham Lincoln",
			Series:     "Timeless",
			Season:     1,
			Episode:    2,
		},
		{
			SourcePath: "timeless/s1e12.jpg",
			OutputPath: "timeless-s1e12.jpg",
			Title:      "The Murder of Jesse James",
			Series:     "Timeless",
			Season:     1,
			Episode:    12,
			Blur:       true,
		},
		{
			SourcePath:     "timeless/s0e1.jpg",
			OutputPath:     "timeless-s0e1.jpg",
			Title:          "The Miracle of Christmas",
			Series:         "Timeless",
			Season:         0,
			Episode:        1,
			AbsoluteNumber: 29,
		},
		{
			SourcePath:      "timeless/s2e3.jpg",
			OutputPath:      "timeless-s2e3.jpg",
			Title:           "Hollywoodland",
			Series:          "Timeless",
			Season:          2,
			Episode:         3,
			HideSeasonText:  true,
			HideEpisodeText: true,
		},
	}
}
