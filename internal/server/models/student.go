package models

// Student is a single student record, keyed by roll number.
type Student struct {
	RollNum int64  `json:"roll_num"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Course  string `json:"course"`
}

// CourseStats is one row of the per-course aggregation.
type CourseStats struct {
	Course     string  `json:"course"`
	Students   int64   `json:"students"`
	AverageAge float64 `json:"average_age"`
}
