package timetable

// The "-Wednesday" row is part of the historical schedule and is kept as is:
// it is never shown on a Wednesday.
var defaultSchedule = []Entry{
	{Day: "Monday", Position: 1, Subject: "ML"},
	{Day: "Monday", Position: 2, Subject: "CSS"},
	{Day: "Monday", Position: 3, Subject: "IVP"},
	{Day: "Monday", Position: 4, Subject: "DAV"},

	{Day: "Tuesday", Position: 1, Subject: "CSS"},
	{Day: "Tuesday", Position: 2, Subject: "IVP"},
	{Day: "Tuesday", Position: 3, Subject: "SEPM LAB"},
	{Day: "Tuesday", Position: 4, Subject: "CCL LAB"},

	{Day: "Wednesday", Position: 1, Subject: "SEPM"},
	{Day: "Wednesday", Position: 2, Subject: "DAV"},
	{Day: "Wednesday", Position: 3, Subject: "CCL LAB"},
	{Day: "-Wednesday", Position: 4, Subject: "IVP"},
	{Day: "Wednesday", Position: 5, Subject: "CSS"},
	{Day: "Wednesday", Position: 6, Subject: "MINI PROJECT"},

	{Day: "Thursday", Position: 1, Subject: "DAV"},
	{Day: "Thursday", Position: 2, Subject: "ML"},
	{Day: "Thursday", Position: 3, Subject: "DAV LAB"},
	{Day: "Thursday", Position: 4, Subject: "SEPM"},

	{Day: "Friday", Position: 1, Subject: "ML"},
	{Day: "Friday", Position: 2, Subject: "SEPM"},
	{Day: "Friday", Position: 3, Subject: "CSS LAB"},
	{Day: "Friday", Position: 4, Subject: "ML LAB"},
	{Day: "Friday", Position: 5, Subject: "MINI PROJECT"},
}

// DefaultSchedule returns a copy of the built-in weekly schedule, in seeding order.
func DefaultSchedule() []Entry {
	entries := make([]Entry, len(defaultSchedule))
	copy(entries, defaultSchedule)
	return entries
}
