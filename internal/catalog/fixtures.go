// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package catalog

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tomtom215/theatrum/internal/models"
)

// fixtureSeed makes generated rating values reproducible across runs.
// Changing it reshuffles every seeded community rating, which breaks
// snapshot expectations in downstream UI tests - bump deliberately.
const fixtureSeed = 0x7E47

const loremDescription = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. " +
	"Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. " +
	"Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris " +
	"nisi ut aliquip ex ea commodo consequat."

// entry is the compact fixture form expanded into a ContentRecord.
type entry struct {
	id          int
	title       string
	genres      []string
	playbackRef string
}

// generate expands an entry with seeded pseudo-random rating values:
// community rating in [3.5, 5.0] to one decimal, rating count in
// [500, 2500).
func generate(rng *rand.Rand, e entry) *models.ContentRecord {
	rating := math.Round((rng.Float64()*1.5+3.5)*10) / 10
	count := rng.Intn(2000) + 500

	return &models.ContentRecord{
		ID:              e.id,
		Title:           e.title,
		Description:     loremDescription,
		PosterRef:       fmt.Sprintf("https://picsum.photos/seed/%d/400/600", e.id),
		BackdropRef:     fmt.Sprintf("https://picsum.photos/seed/%d/1280/720", e.id),
		Classification:  "G",
		ReleaseYear:     2023,
		Genres:          e.genres,
		PlaybackRef:     e.playbackRef,
		CommunityRating: rating,
		RatingCount:     count,
	}
}

// fixtureSet builds the full catalog: the featured record, the category
// rows, and the flattened record list in catalog order.
func fixtureSet() (records []*models.ContentRecord, order []int, categories []Category, featuredID int) {
	rng := rand.New(rand.NewSource(fixtureSeed))

	featured := &models.ContentRecord{
		ID:              100,
		Title:           "Dune: Part Two",
		Description:     "Paul Atreides unites with Chani and the Fremen while seeking revenge against the conspirators who destroyed his family.",
		PosterRef:       "https://picsum.photos/seed/dune2/400/600",
		BackdropRef:     "https://picsum.photos/seed/dune2/1920/1080",
		Classification:  "PG-13",
		ReleaseYear:     2024,
		Genres:          []string{"Sci-Fi", "Adventure", "Action"},
		PlaybackRef:     "1di4DWNIUuw",
		CommunityRating: 4.8,
		RatingCount:     12500,
	}
	featuredID = featured.ID

	trending := []entry{
		{1, "Cyber City", []string{"Sci-Fi", "Action"}, "U_qZg_d7k_E"},
		{2, "The Last Stand", []string{"Action", "Thriller"}, ""},
		{3, "Ocean's Depths", []string{"Documentary", "Nature"}, ""},
		{4, "Forgotten Kingdom", []string{"Fantasy", "Adventure"}, ""},
		{5, "Echoes of Time", []string{"Mystery", "Drama"}, ""},
		{6, "Zero Gravity", []string{"Sci-Fi", "Thriller"}, ""},
		{7, "The Baker's Dozen", []string{"Comedy", "Family"}, ""},
		{8, "Crimson Peak", []string{"Horror", "Mystery"}, ""},
	}

	action := []entry{
		{9, "Rogue Agent", []string{"Action", "Spy"}, ""},
		{10, "Final Pursuit", []string{"Action", "Crime"}, ""},
		{11, "Desert Fury", []string{"Action", "War"}, ""},
		{12, "Steel Fortress", []string{"Action", "Sci-Fi"}, ""},
		{13, "Crossfire", []string{"Action", "Thriller"}, ""},
		{14, "Vengeance Trail", []string{"Action", "Western"}, ""},
		{15, "Tidal Wave", []string{"Action", "Disaster"}, ""},
		{16, "Shadow Strike", []string{"Action", "Stealth"}, ""},
	}

	comedy := []entry{
		{17, "Just Kidding", []string{"Comedy"}, ""},
		{18, "Family Reunion", []string{"Comedy", "Family"}, ""},
		{19, "Mishap Island", []string{"Comedy", "Adventure"}, ""},
		{20, "The Wrong Switch", []string{"Comedy", "Romance"}, ""},
		{21, "Professor Goofball", []string{"Comedy", "Slapstick"}, ""},
		{22, "Weekend Warriors", []string{"Comedy", "Buddy"}, ""},
		{23, "Holiday Hijinks", []string{"Comedy", "Holiday"}, ""},
		{24, "Office Pranks", []string{"Comedy", "Workplace"}, ""},
	}

	sciFi := []entry{
		{25, "Galaxy Quest 2", []string{"Sci-Fi", "Comedy"}, ""},
		{26, "Starfall", []string{"Sci-Fi", "Adventure"}, ""},
		{27, "The Void", []string{"Sci-Fi", "Horror"}, ""},
		{28, "Chrono Shift", []string{"Sci-Fi", "Time Travel"}, "aWtcWut46dE"},
		{29, "Android Dreams", []string{"Sci-Fi", "Drama"}, ""},
		{30, "Planet X", []string{"Sci-Fi", "Exploration"}, ""},
		{31, "The Grid", []string{"Sci-Fi", "Cyberpunk"}, ""},
		{32, "Alien Code", []string{"Sci-Fi", "Mystery"}, ""},
	}

	strangerThings := &models.ContentRecord{
		ID:              33,
		Title:           "Stranger Things",
		Description:     "When a young boy vanishes, a small town uncovers a mystery involving secret experiments, terrifying supernatural forces and one strange little girl.",
		PosterRef:       "https://picsum.photos/seed/strangerthings/400/600",
		BackdropRef:     "https://picsum.photos/seed/strangerthings/1280/720",
		Classification:  "TV-14",
		ReleaseYear:     2016,
		Genres:          []string{"Sci-Fi", "Horror", "Drama"},
		PlaybackRef:     "b9EkMc79ZSU",
		CommunityRating: 4.7,
		RatingCount:     25000,
	}

	whisperingWoods := &models.ContentRecord{
		ID:              34,
		Title:           "Whispering Woods",
		Description:     "A calming journey through a lush, green forest, showcasing the serene beauty of nature.",
		PosterRef:       "https://picsum.photos/seed/plants_video/400/600",
		BackdropRef:     "https://picsum.photos/seed/plants_video/1280/720",
		Classification:  "G",
		ReleaseYear:     2024,
		Genres:          []string{"Nature", "Relaxation"},
		PlaybackRef:     "nature:yLz5_12k3_g",
		CommunityRating: 4.9,
		RatingCount:     5600,
	}

	nature := []entry{
		{35, "Coral Dreams", []string{"Nature", "Documentary"}, ""},
		{36, "Mountain Majesty", []string{"Nature", "Travel"}, ""},
	}

	expand := func(entries []entry) []*models.ContentRecord {
		out := make([]*models.ContentRecord, len(entries))
		for i, e := range entries {
			out[i] = generate(rng, e)
		}
		return out
	}

	trendingRecs := expand(trending)
	natureRecs := append([]*models.ContentRecord{whisperingWoods}, expand(nature)...)
	actionRecs := expand(action)
	comedyRecs := expand(comedy)
	sciFiRecs := append(expand(sciFi), strangerThings)

	rows := []struct {
		id, title string
		recs      []*models.ContentRecord
	}{
		{"trending", "Trending Now", trendingRecs},
		{"nature", "Nature's Serenity", natureRecs},
		{"action", "Action Packed", actionRecs},
		{"comedy", "Top Comedies", comedyRecs},
		{"scifi", "Sci-Fi Worlds", sciFiRecs},
	}

	records = append(records, featured)
	order = append(order, featured.ID)

	for _, row := range rows {
		cat := Category{ID: row.id, Title: row.title}
		for _, r := range row.recs {
			records = append(records, r)
			order = append(order, r.ID)
			cat.ItemIDs = append(cat.ItemIDs, r.ID)
		}
		categories = append(categories, cat)
	}

	return records, order, categories, featuredID
}
