package targeting

import "strings"

// regionCodes maps metropolitan/provincial names to administrative codes.
var regionCodes = map[string]string{
	"서울":      "11",
	"서울특별시":   "11",
	"부산":      "26",
	"부산광역시":   "26",
	"대구":      "27",
	"대구광역시":   "27",
	"인천":      "28",
	"인천광역시":   "28",
	"광주":      "29",
	"광주광역시":   "29",
	"대전":      "30",
	"대전광역시":   "30",
	"울산":      "31",
	"울산광역시":   "31",
	"세종":      "36",
	"세종특별자치시": "36",
	"경기":      "41",
	"경기도":     "41",
	"강원":      "51",
	"강원도":     "51",
	"강원특별자치도": "51",
	"충북":      "43",
	"충청북도":    "43",
	"충남":      "44",
	"충청남도":    "44",
	"전북":      "52",
	"전라북도":    "52",
	"전북특별자치도": "52",
	"전남":      "46",
	"전라남도":    "46",
	"경북":      "47",
	"경상북도":    "47",
	"경남":      "48",
	"경상남도":    "48",
	"제주":      "50",
	"제주도":     "50",
	"제주특별자치도": "50",
}

// RegionCode looks up the administrative code of a region name.
func RegionCode(name string) (string, bool) {
	code, ok := regionCodes[strings.TrimSpace(name)]
	return code, ok
}
