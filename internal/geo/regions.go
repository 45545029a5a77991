// Package geo maps ISO 3166-1 alpha-2 country codes to coarse regions for
// the regional rollups. Unknown or missing codes fall back to RegionUnknown.
package geo

import "strings"

const (
	RegionAfrica     = "Africa"
	RegionAmericas   = "Americas"
	RegionAntarctica = "Antarctica"
	RegionAsia       = "Asia"
	RegionEurope     = "Europe"
	RegionOceania    = "Oceania"
	RegionUnknown    = "Unknown"
)

// UnknownCountry is the placeholder country code used when the client did
// not report one.
const UnknownCountry = "xx"

var regionByCountry = map[string]string{
	"ad": RegionEurope, "ae": RegionAsia, "af": RegionAsia, "ag": RegionAmericas,
	"al": RegionEurope, "am": RegionAsia, "ao": RegionAfrica, "aq": RegionAntarctica,
	"ar": RegionAmericas, "at": RegionEurope, "au": RegionOceania, "az": RegionAsia,
	"ba": RegionEurope, "bd": RegionAsia, "be": RegionEurope, "bf": RegionAfrica,
	"bg": RegionEurope, "bh": RegionAsia, "bi": RegionAfrica, "bj": RegionAfrica,
	"bn": RegionAsia, "bo": RegionAmericas, "br": RegionAmericas, "bs": RegionAmericas,
	"bt": RegionAsia, "bw": RegionAfrica, "by": RegionEurope, "bz": RegionAmericas,
	"ca": RegionAmericas, "cd": RegionAfrica, "cf": RegionAfrica, "cg": RegionAfrica,
	"ch": RegionEurope, "ci": RegionAfrica, "cl": RegionAmericas, "cm": RegionAfrica,
	"cn": RegionAsia, "co": RegionAmericas, "cr": RegionAmericas, "cu": RegionAmericas,
	"cv": RegionAfrica, "cy": RegionEurope, "cz": RegionEurope, "de": RegionEurope,
	"dj": RegionAfrica, "dk": RegionEurope, "dm": RegionAmericas, "do": RegionAmericas,
	"dz": RegionAfrica, "ec": RegionAmericas, "ee": RegionEurope, "eg": RegionAfrica,
	"er": RegionAfrica, "es": RegionEurope, "et": RegionAfrica, "fi": RegionEurope,
	"fj": RegionOceania, "fm": RegionOceania, "fr": RegionEurope, "ga": RegionAfrica,
	"gb": RegionEurope, "gd": RegionAmericas, "ge": RegionAsia, "gh": RegionAfrica,
	"gm": RegionAfrica, "gn": RegionAfrica, "gq": RegionAfrica, "gr": RegionEurope,
	"gt": RegionAmericas, "gw": RegionAfrica, "gy": RegionAmericas, "hk": RegionAsia,
	"hn": RegionAmericas, "hr": RegionEurope, "ht": RegionAmericas, "hu": RegionEurope,
	"id": RegionAsia, "ie": RegionEurope, "il": RegionAsia, "in": RegionAsia,
	"iq": RegionAsia, "ir": RegionAsia, "is": RegionEurope, "it": RegionEurope,
	"jm": RegionAmericas, "jo": RegionAsia, "jp": RegionAsia, "ke": RegionAfrica,
	"kg": RegionAsia, "kh": RegionAsia, "ki": RegionOceania, "km": RegionAfrica,
	"kn": RegionAmericas, "kp": RegionAsia, "kr": RegionAsia, "kw": RegionAsia,
	"kz": RegionAsia, "la": RegionAsia, "lb": RegionAsia, "lc": RegionAmericas,
	"li": RegionEurope, "lk": RegionAsia, "lr": RegionAfrica, "ls": RegionAfrica,
	"lt": RegionEurope, "lu": RegionEurope, "lv": RegionEurope, "ly": RegionAfrica,
	"ma": RegionAfrica, "mc": RegionEurope, "md": RegionEurope, "me": RegionEurope,
	"mg": RegionAfrica, "mh": RegionOceania, "mk": RegionEurope, "ml": RegionAfrica,
	"mm": RegionAsia, "mn": RegionAsia, "mr": RegionAfrica, "mt": RegionEurope,
	"mu": RegionAfrica, "mv": RegionAsia, "mw": RegionAfrica, "mx": RegionAmericas,
	"my": RegionAsia, "mz": RegionAfrica, "na": RegionAfrica, "ne": RegionAfrica,
	"ng": RegionAfrica, "ni": RegionAmericas, "nl": RegionEurope, "no": RegionEurope,
	"np": RegionAsia, "nr": RegionOceania, "nz": RegionOceania, "om": RegionAsia,
	"pa": RegionAmericas, "pe": RegionAmericas, "pg": RegionOceania, "ph": RegionAsia,
	"pk": RegionAsia, "pl": RegionEurope, "pt": RegionEurope, "pw": RegionOceania,
	"py": RegionAmericas, "qa": RegionAsia, "ro": RegionEurope, "rs": RegionEurope,
	"ru": RegionEurope, "rw": RegionAfrica, "sa": RegionAsia, "sb": RegionOceania,
	"sc": RegionAfrica, "sd": RegionAfrica, "se": RegionEurope, "sg": RegionAsia,
	"si": RegionEurope, "sk": RegionEurope, "sl": RegionAfrica, "sm": RegionEurope,
	"sn": RegionAfrica, "so": RegionAfrica, "sr": RegionAmericas, "ss": RegionAfrica,
	"st": RegionAfrica, "sv": RegionAmericas, "sy": RegionAsia, "sz": RegionAfrica,
	"td": RegionAfrica, "tg": RegionAfrica, "th": RegionAsia, "tj": RegionAsia,
	"tl": RegionAsia, "tm": RegionAsia, "tn": RegionAfrica, "to": RegionOceania,
	"tr": RegionAsia, "tt": RegionAmericas, "tv": RegionOceania, "tw": RegionAsia,
	"tz": RegionAfrica, "ua": RegionEurope, "ug": RegionAfrica, "us": RegionAmericas,
	"uy": RegionAmericas, "uz": RegionAsia, "va": RegionEurope, "vc": RegionAmericas,
	"ve": RegionAmericas, "vn": RegionAsia, "vu": RegionOceania, "ws": RegionOceania,
	"ye": RegionAsia, "za": RegionAfrica, "zm": RegionAfrica, "zw": RegionAfrica,
}

// Region returns the region for a country code, or RegionUnknown.
func Region(countryCode string) string {
	if r, ok := regionByCountry[strings.ToLower(strings.TrimSpace(countryCode))]; ok {
		return r
	}
	return RegionUnknown
}

// NormalizeCountry lowercases a country code, substituting UnknownCountry
// when the code is empty.
func NormalizeCountry(countryCode string) string {
	c := strings.ToLower(strings.TrimSpace(countryCode))
	if c == "" {
		return UnknownCountry
	}
	return c
}
