// Copyright (c) 2026 SafeCampus. All rights reserved.

/*
Package directory serves the campus emergency services roster.

The roster is compiled into the binary: it changes with campus operations,
not with user activity, so a code change plus deploy is the editorial flow.
*/
package directory

// Entry is one campus emergency service.
type Entry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Description  string `json:"description"`
	Availability string `json:"availability"`
}

// Entries returns the campus emergency services roster in display order.
func Entries() []Entry {
	return []Entry{
		{
			ID:           "security",
			Name:         "Campus Security",
			Phone:        "+1-555-0911",
			Description:  "24/7 emergency response and patrols",
			Availability: "24/7",
		},
		{
			ID:           "medical",
			Name:         "Medical Center",
			Phone:        "+1-555-0912",
			Description:  "On-campus urgent care and first aid",
			Availability: "Mon-Sun 07:00-23:00",
		},
		{
			ID:           "counseling",
			Name:         "Counseling Services",
			Phone:        "+1-555-0913",
			Description:  "Confidential crisis and mental health support",
			Availability: "Mon-Fri 09:00-18:00, crisis line 24/7",
		},
		{
			ID:           "facilities",
			Name:         "Facilities Operations",
			Phone:        "+1-555-0914",
			Description:  "Hazards, outages, and building emergencies",
			Availability: "24/7 on-call",
		},
	}
}
