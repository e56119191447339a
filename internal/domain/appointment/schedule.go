package appointment

import (
	"strings"
	"time"
)

// DateLayout is the stored appointment date format.
const DateLayout = "2006-01-02"

// Browser time inputs send "15:04" or "15:04:05"; older clients and seed
// data use 12h clock forms. Input is upper-cased first so "am"/"pm" match.
var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
	"3:04:05PM",
}

func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(s))
	return err == nil
}

func ValidTime(s string) bool {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func ValidateDateTime(date, tm string) error {
	if !ValidDate(date) || !ValidTime(tm) {
		return ErrInvalidDateOrTime
	}
	return nil
}
