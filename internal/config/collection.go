package config

// CollectionStruct names the document store collections.
type CollectionStruct struct {
	Institutions string
	Faculties    string
	Courses      string
	Companies    string
	Users        string
	Admissions   string
}

var Collection = &CollectionStruct{
	Institutions: "institutions",
	Faculties:    "faculties",
	Courses:      "courses",
	Companies:    "companies",
	Users:        "users",
	Admissions:   "admissions",
}
