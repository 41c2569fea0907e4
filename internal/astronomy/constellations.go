package astronomy

// Constellation pairs a display name with its three-letter chart code.
type Constellation struct {
	Name string
	Code string
}

// Constellations lists the zodiac constellations (plus Andromeda) supported
// by the star-chart workflow, in menu order.
var Constellations = []Constellation{
	{"Andromeda", "and"},
	{"Aquarius", "aqr"},
	{"Aries", "ari"},
	{"Cancer", "cnc"},
	{"Capricornus", "cap"},
	{"Gemini", "gem"},
	{"Leo", "leo"},
	{"Libra", "lib"},
	{"Pisces", "psc"},
	{"Sagittarius", "sgr"},
	{"Scorpius", "sco"},
	{"Taurus", "tau"},
	{"Virgo", "vir"},
}
