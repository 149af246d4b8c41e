package geofeed

import "strings"

// ISO 3166-1 alpha-2 assigned codes plus the user-assigned extensions that
// show up in real-world routing data (XK for Kosovo, EU and AP from RIR
// allocations). RFC 8805 consumers expect exactly this set, not "any two
// letters".
var alpha2Codes = buildAlpha2Set(
	"AD AE AF AG AI AL AM AO AQ AR AS AT AU AW AX AZ",
	"BA BB BD BE BF BG BH BI BJ BL BM BN BO BQ BR BS BT BV BW BY BZ",
	"CA CC CD CF CG CH CI CK CL CM CN CO CR CU CV CW CX CY CZ",
	"DE DJ DK DM DO DZ",
	"EC EE EG EH ER ES ET",
	"FI FJ FK FM FO FR",
	"GA GB GD GE GF GG GH GI GL GM GN GP GQ GR GS GT GU GW GY",
	"HK HM HN HR HT HU",
	"ID IE IL IM IN IO IQ IR IS IT",
	"JE JM JO JP",
	"KE KG KH KI KM KN KP KR KW KY KZ",
	"LA LB LC LI LK LR LS LT LU LV LY",
	"MA MC MD ME MF MG MH MK ML MM MN MO MP MQ MR MS MT MU MV MW MX MY MZ",
	"NA NC NE NF NG NI NL NO NP NR NU NZ",
	"OM",
	"PA PE PF PG PH PK PL PM PN PR PS PT PW PY",
	"QA",
	"RE RO RS RU RW",
	"SA SB SC SD SE SG SH SI SJ SK SL SM SN SO SR SS ST SV SX SY SZ",
	"TC TD TF TG TH TJ TK TL TM TN TO TR TT TV TW TZ",
	"UA UG UM US UY UZ",
	"VA VC VE VG VI VN VU",
	"WF WS",
	"YE YT",
	"ZA ZM ZW",
	"XK EU AP",
)

func buildAlpha2Set(groups ...string) map[string]struct{} {
	set := make(map[string]struct{}, 256)
	for _, group := range groups {
		for _, code := range strings.Fields(group) {
			set[code] = struct{}{}
		}
	}
	return set
}

// NormalizeAlpha2Code trims and uppercases a country code. "UK" is a common
// input for Great Britain and is mapped to the assigned code GB; codes
// outside the reference table pass through uppercased and fail validation
// later.
func NormalizeAlpha2Code(code string) string {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "UK" {
		return "GB"
	}
	return normalized
}

// IsValidAlpha2Code reports whether code is in the reference table. The
// caller is expected to normalize first.
func IsValidAlpha2Code(code string) bool {
	_, ok := alpha2Codes[strings.TrimSpace(code)]
	return ok
}
