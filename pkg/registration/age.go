package registration

import "time"

// MinimumAge is the youngest age accepted at registration.
const MinimumAge = 18

// Age returns the whole years between dob and now, comparing years and
// months only. The day of month is not considered.
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() {
		age--
	}
	return age
}

// MeetsMinimumAge reports whether a person born on dob is old enough at now.
func MeetsMinimumAge(dob, now time.Time) bool {
	return Age(dob, now) >= MinimumAge
}
