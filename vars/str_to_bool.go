package vars

import "strings"

func StrToBool(str string) bool {
	switch strings.ToLower(str) {
	case "true", "t", "yes", "y", "1":
		return true
	}
	return false
}
