package places

import "strings"

// pjCategory maps directory category keywords onto the class and
// subclass names used by the OSM taxonomy, so that the front end can
// reuse the same icons whatever the source.
type pjCategory struct {
	keywords []string
	class    string
	subclass string
}

// Matching is done by keyword containment on the lowercased category,
// first entry wins.
var pjCategories = []pjCategory{
	{keywords: []string{"restaurant"}, class: "restaurant", subclass: "restaurant"},
	{keywords: []string{"hôtel"}, class: "lodging", subclass: "lodging"},
	{keywords: []string{"musée"}, class: "museum", subclass: "museum"},
	{keywords: []string{"salles de cinéma"}, class: "cinema", subclass: "cinema"},
	{keywords: []string{"salles de concerts", "de spectacles"}, class: "theatre", subclass: "theatre"},
	{keywords: []string{"pharmacie"}, class: "pharmacy", subclass: "pharmacy"},
	{keywords: []string{"supermarché", "hypermarché"}, class: "grocery", subclass: "grocery"},
	{keywords: []string{"banque"}, class: "bank", subclass: "bank"},
	{keywords: []string{"café", "bars"}, class: "bar", subclass: "bar"},
	{keywords: []string{"écoles ", "collèges ", "lycées "}, class: "school", subclass: "school"},
	{keywords: []string{"enseignement supérieur"}, class: "college", subclass: "college"},
	{keywords: []string{"médecin", "psychologue", "infirmier", "dentiste"}, class: "doctors", subclass: "doctors"},
	{keywords: []string{"vétérinaire"}, class: "veterinary", subclass: "veterinary"},
	{keywords: []string{"garages automobiles"}, class: "car", subclass: "car_repair"},
}

// classifyPjCategories returns the (class, subclass) pair for a set of
// raw directory categories, or empty strings when none match.
func classifyPjCategories(rawCategories []string) (class, subclass string) {
	lowered := make([]string, 0, len(rawCategories))
	for _, c := range rawCategories {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(c)))
	}
	for _, entry := range pjCategories {
		for _, category := range lowered {
			for _, keyword := range entry.keywords {
				if strings.Contains(category, keyword) {
					return entry.class, entry.subclass
				}
			}
		}
	}
	return "", ""
}
