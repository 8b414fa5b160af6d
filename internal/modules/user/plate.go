// README: Brazilian license plate validation (legacy and Mercosul).
package user

import (
	"regexp"
	"strings"
)

// Accepts the legacy format AAA-1234 (dash optional) and the Mercosul
// format ABC1D23.
var plateRegexp = regexp.MustCompile(`^[A-Z]{3}-?\d{4}$|^[A-Z]{3}\d[A-Z]\d{2}$`)

// NormalizePlate upper-cases and trims a raw plate before validation.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func ValidPlate(plate string) bool {
	return plateRegexp.MatchString(plate)
}
