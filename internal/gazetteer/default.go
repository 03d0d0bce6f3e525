package gazetteer

// Thoothukudi district reference data as used by the district control room
// sheet. Declaration order matters: it breaks fuzzy-match ties and sets
// classification priority.

var defaultStations = []Station{
	{"AWPS Thoothukudi", "Thoothukudi Town"},
	{"Muthiahpuram", "Thoothukudi Town"},
	{"Thazhamuthunagar", "Thoothukudi Town"},
	{"Thermalnagar", "Thoothukudi Town"},
	{"Thoothukudi Central", "Thoothukudi Town"},
	{"Thoothukudi North", "Thoothukudi Town"},
	{"Thoothukudi South", "Thoothukudi Town"},

	{"AWPS Pudukotai Thoothukudi", "Thoothukudi Rural"},
	{"Murappanadu", "Thoothukudi Rural"},
	{"Pudukottai Thoothukudi", "Thoothukudi Rural"},
	{"Puthiamputhur", "Thoothukudi Rural"},
	{"SIPCOT Thoothukudi", "Thoothukudi Rural"},
	{"Thattparai", "Thoothukudi Rural"},

	{"AWPS Kadambur", "Maniyachi"},
	{"Kadambur", "Maniyachi"},
	{"Maniyachi", "Maniyachi"},
	{"Naraikinaru", "Maniyachi"},
	{"Ottapidaram", "Maniyachi"},
	{"Pasuvanthanai", "Maniyachi"},
	{"Puliyampatti", "Maniyachi"},

	{"AWPS Kovilapatti", "Kovilpatti"},
	{"Kalugumalai", "Kovilpatti"},
	{"Kayathar", "Kovilpatti"},
	{"Koppampatti", "Kovilpatti"},
	{"Kovilpatti East", "Kovilpatti"},
	{"Kovilpatti West", "Kovilpatti"},
	{"Nalatinpudur", "Kovilpatti"},

	{"AWPS Vilathikulam", "Vilathikulam"},
	{"Eppodumvendran", "Vilathikulam"},
	{"Ettayapuram", "Vilathikulam"},
	{"Kadalkudi", "Vilathikulam"},
	{"Kulathur", "Vilathikulam"},
	{"Masarpatti", "Vilathikulam"},
	{"Pudur", "Vilathikulam"},
	{"Sankaralingapuram", "Vilathikulam"},
	{"Soorankudi", "Vilathikulam"},
	{"Tharuvaikulam", "Vilathikulam"},
	{"Vilathikulam", "Vilathikulam"},

	{"Alwarthirunagari", "Srivaikundam"},
	{"AWPS Srivaikundam", "Srivaikundam"},
	{"Eral", "Srivaikundam"},
	{"Kurumbur", "Srivaikundam"},
	{"Sawyerpuram", "Srivaikundam"},
	{"Sedunganallur", "Srivaikundam"},
	{"Serakulam", "Srivaikundam"},
	{"Srivaikundam", "Srivaikundam"},

	{"Arumuganeri", "Tiruchendur"},
	{"Authoor", "Tiruchendur"},
	{"AWPS Tiruchendur", "Tiruchendur"},
	{"Kulasekarapatinam", "Tiruchendur"},
	{"Tiruchendur Taluk", "Tiruchendur"},
	{"Tiruchendur Temple", "Tiruchendur"},

	{"AWPS Sathankulam", "Sathankulam"},
	{"Meiganapuram", "Sathankulam"},
	{"Nazareth", "Sathankulam"},
	{"Sathankulam", "Sathankulam"},
	{"Thattarmadam", "Sathankulam"},
}

// Station codes used by control room operators.
var defaultAliases = map[string]string{
	"tut/north":     "Thoothukudi North",
	"tut/south":     "Thoothukudi South",
	"west/kvp":      "Kovilpatti West",
	"east/kvp":      "Kovilpatti East",
	"taluk/tdr":     "Tiruchendur Taluk",
	"temple/tdr":    "Tiruchendur Temple",
	"awps/tut":      "AWPS Thoothukudi",
	"awps/vkm":      "AWPS Vilathikulam",
	"awps/tdr":      "AWPS Tiruchendur",
	"awps/skm":      "AWPS Sathankulam",
	"awps/kvp":      "AWPS Kovilapatti",
	"awps/svm":      "AWPS Srivaikundam",
	"awps/kadambur": "AWPS Kadambur",
	"sipcot":        "SIPCOT Thoothukudi",
}

// DefaultFallback is the catch-all event category.
const DefaultFallback = "Others"

var defaultCategories = []Category{
	{"Fighting / Threatening", []string{"Fighting", "Fight", "Threatening", "Drunken Brawl"}},
	{"Family Dispute", []string{"Family Dispute", "Family Fighting"}},
	{"Road Accident", []string{"Road Accident"}},
	{"Fire Accident", []string{"Fire Accident", "Fire"}},
	{"Woman & Child Related", []string{"Woman and child Related", "Woman Related", "Child Related"}},
	{"Theft / Robbery", []string{"Theft", "Robbery"}},
	{"Civil Dispute", []string{"Civil Dispute", "Encroachment"}},
	{"Complaint Against Police", []string{"Complaint Against Police"}},
	{"Prohibition Related", []string{"Prohibition"}},
	{"Others", []string{"Others", "Disturbance", "Cheating", "Missing Person", "Cyber Crime", "Rescue Works"}},
}

// Default returns the built-in gazetteer.
func Default() *Gazetteer {
	g, err := New(defaultStations, defaultAliases, defaultCategories, DefaultFallback)
	if err != nil {
		// The built-in tables are covered by tests; a failure here is a programming error.
		panic(err)
	}
	return g
}
