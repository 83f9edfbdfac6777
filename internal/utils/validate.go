package utils

import (
	"regexp"
	"time"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// ValidEmail reports whether s looks like an email address. The check is
// deliberately loose; deliverability is not verified.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidTimeOfDay reports whether s parses as HH:MM or HH:MM:SS.
func ValidTimeOfDay(s string) bool {
	if _, err := time.Parse("15:04:05", s); err == nil {
		return true
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// ValidDate reports whether s parses as YYYY-MM-DD.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// PastDate reports whether the YYYY-MM-DD date lies strictly before today
// (UTC). Callers must validate the format first.
func PastDate(s string) bool {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return false
	}
	today, _ := time.Parse("2006-01-02", time.Now().UTC().Format("2006-01-02"))
	return d.Before(today)
}
