// Package domain normalizes police incident reports from the district control
// room spreadsheet.
//
// # Data Source
//
// Control room operators log incidents into a shared Google Sheet which is
// exported as CSV. The first line of every export is a banner row that is not
// part of the table; the header follows on the second line. Exports sometimes
// contain NUL bytes from pasted content.
//
// # Sheet Conventions
//
// Column names drift between exports ("Latitude", "LAT", "Lat ", "Event type "
// with a trailing space). [NewSchema] resolves them once per export:
//
//	latitude   first header containing "lat"
//	longitude  first header containing "lon" (also covers "long")
//	location   first header containing "location" or "coords" ("8.76, 78.13")
//	date       "date", else first header containing "date"
//	station    "police station", else first header containing "station"
//	event      "event type", else first header containing "event"
//	complaint  first header containing "complaint"
//
// Coordinates:
//
//	Entered by hand. Either two columns or one combined "lat, lon" column.
//	Lat/lon are frequently transposed; a pair that only fits the district
//	bounding box when swapped is swapped back. Bounding box (exclusive):
//	8.0 < lat < 9.5, 77.5 < lon < 78.5.
//
// Dates:
//
//	Day first (DD/MM/YYYY) as is usual in India; normalized to YYYY-MM-DD.
//
// Police stations:
//
//	Free text such as "Kovilpatti East PS", "kovilpati east", or operator
//	codes such as "tut/north". Resolved against the gazetteer by alias, then
//	by Levenshtein similarity with an 80% acceptance threshold. Rows whose
//	station cannot be placed in a subdivision are dropped.
//
// Event types:
//
//	Free text classified by ordered keyword substring match into a fixed
//	taxonomy; "Others" absorbs the rest. Substring matching means a keyword
//	inside an unrelated word still matches ("Fire" in "Firecracker").
//
// # ID Generation
//
// Record IDs are short SHA-256 hashes of station|date|lat|lon|event so a
// downstream consumer can de-duplicate the same incident across refreshes.
// See [generateID].
package domain
