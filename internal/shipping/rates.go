// Package shipping resolves delivery rate options for a destination country.
// The resolver is a pure lookup against a static zone table; callers re-invoke
// it whenever the destination changes and re-select a default rate (the first
// of the returned list).
package shipping

type Rate struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Days    string  `json:"days"`
	Price   float64 `json:"price"`
	Carrier string  `json:"carrier"`
}

type Zone string

const (
	ZoneDomestic      Zone = "domestic"
	ZoneBalkans       Zone = "balkans"
	ZoneEurope        Zone = "europe"
	ZoneInternational Zone = "international"
)

type Country struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Zone  Zone   `json:"zone"`
	Rates []Rate `json:"rates"`
}

var countries = []Country{
	{Code: "AL", Name: "Albania", Zone: ZoneDomestic, Rates: []Rate{
		{ID: "al-std", Name: "Standard", Days: "1-2 days", Price: 3.99, Carrier: "Albanian Post"},
		{ID: "al-exp", Name: "Express", Days: "Next day", Price: 6.99, Carrier: "DHL Express"},
	}},
	{Code: "XK", Name: "Kosovo", Zone: ZoneBalkans, Rates: []Rate{
		{ID: "xk-std", Name: "Standard", Days: "2-3 days", Price: 5.99, Carrier: "DHL"},
		{ID: "xk-exp", Name: "Express", Days: "1-2 days", Price: 9.99, Carrier: "DHL Express"},
	}},
	{Code: "MK", Name: "N. Macedonia", Zone: ZoneBalkans, Rates: []Rate{
		{ID: "mk-std", Name: "Standard", Days: "2-4 days", Price: 6.99, Carrier: "DHL"},
		{ID: "mk-exp", Name: "Express", Days: "1-2 days", Price: 12.99, Carrier: "DHL Express"},
	}},
	{Code: "GR", Name: "Greece", Zone: ZoneBalkans, Rates: []Rate{
		{ID: "gr-std", Name: "Standard", Days: "3-5 days", Price: 7.99, Carrier: "DHL"},
		{ID: "gr-exp", Name: "Express", Days: "2-3 days", Price: 14.99, Carrier: "DHL Express"},
	}},
	{Code: "IT", Name: "Italy", Zone: ZoneEurope, Rates: []Rate{
		{ID: "it-std", Name: "Standard", Days: "5-7 days", Price: 9.99, Carrier: "DHL"},
		{ID: "it-exp", Name: "Express", Days: "3-4 days", Price: 18.99, Carrier: "DHL Express"},
	}},
	{Code: "DE", Name: "Germany", Zone: ZoneEurope, Rates: []Rate{
		{ID: "de-std", Name: "Standard", Days: "5-7 days", Price: 11.99, Carrier: "DHL"},
		{ID: "de-exp", Name: "Express", Days: "3-4 days", Price: 21.99, Carrier: "DHL Express"},
	}},
	{Code: "FR", Name: "France", Zone: ZoneEurope, Rates: []Rate{
		{ID: "fr-std", Name: "Standard", Days: "5-8 days", Price: 12.99, Carrier: "DHL"},
		{ID: "fr-exp", Name: "Express", Days: "3-5 days", Price: 23.99, Carrier: "DHL Express"},
	}},
	{Code: "GB", Name: "UK", Zone: ZoneEurope, Rates: []Rate{
		{ID: "gb-std", Name: "Standard", Days: "7-10 days", Price: 15.99, Carrier: "DHL"},
		{ID: "gb-exp", Name: "Express", Days: "4-5 days", Price: 27.99, Carrier: "DHL Express"},
	}},
	{Code: "US", Name: "USA", Zone: ZoneInternational, Rates: []Rate{
		{ID: "us-std", Name: "Standard", Days: "10-15 days", Price: 24.99, Carrier: "DHL Intl"},
		{ID: "us-exp", Name: "Express", Days: "5-7 days", Price: 44.99, Carrier: "DHL Express"},
	}},
}

// RatesFor returns the rate options for a country code, ordered standard
// before express. Unknown codes fall back to the generic international pair.
func RatesFor(countryCode string) []Rate {
	for _, c := range countries {
		if c.Code == countryCode {
			out := make([]Rate, len(c.Rates))
			copy(out, c.Rates)
			return out
		}
	}
	return []Rate{
		{ID: "intl-std", Name: "International", Days: "10-15 days", Price: 19.99, Carrier: "DHL"},
		{ID: "intl-exp", Name: "Express", Days: "5-7 days", Price: 39.99, Carrier: "DHL Express"},
	}
}

// Countries lists the supported destinations with their zones.
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}
