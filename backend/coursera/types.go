package coursera

// RawCourse is one element of the courses.v1 response.
type RawCourse struct {
	ID                     string      `json:"id"`
	Name                   string      `json:"name"`
	Slug                   string      `json:"slug"`
	Description            string      `json:"description"`
	ShortDescription       string      `json:"shortDescription"`
	InstructorIDs          []string    `json:"instructorIds"`
	S12nPrice              interface{} `json:"s12nPrice"`
	AverageFiveStarLog     float64     `json:"averageFiveStarLog"`
	EnrolledCount          int64       `json:"enrolledCount"`
	PhotoURL               string      `json:"photoUrl"`
	Categories             []string    `json:"categories"`
	EstimatedClassWorkload string      `json:"estimatedClassWorkload"`
	PrimaryLanguages       []string    `json:"primaryLanguages"`
	Level                  string      `json:"level"`
	CertificateAvailable   bool        `json:"certificateAvailable"`
	StartDate              interface{} `json:"startDate"`
	EndDate                interface{} `json:"endDate"`
}

type Paging struct {
	Next  string `json:"next,omitempty"`
	Total int    `json:"total"`
}

// Page is a courses.v1 list response.
type Page struct {
	Elements []RawCourse `json:"elements"`
	Paging   Paging      `json:"paging"`
}

// Course is the platform-neutral shape served to the frontend.
type Course struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Instructor  string      `json:"instructor"`
	Price       string      `json:"price"`
	Rating      float64     `json:"rating"`
	Students    int64       `json:"students"`
	Image       string      `json:"image"`
	URL         string      `json:"url"`
	Platform    string      `json:"platform"`
	Category    string      `json:"category"`
	Duration    string      `json:"duration"`
	Language    string      `json:"language"`
	Level       string      `json:"level"`
	Certificate bool        `json:"certificate"`
	StartDate   interface{} `json:"startDate"`
	EndDate     interface{} `json:"endDate"`
}

// LegacyCourse is the reduced shape of the old /api/coursera-courses route.
type LegacyCourse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Instructor  string  `json:"instructor"`
	Price       string  `json:"price"`
	Rating      float64 `json:"rating"`
	Students    int64   `json:"students"`
	Image       string  `json:"image"`
	URL         string  `json:"url"`
	Platform    string  `json:"platform"`
	Category    string  `json:"category"`
	Duration    string  `json:"duration"`
	Language    string  `json:"language"`
	Level       string  `json:"level"`
}

type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages,omitempty"`
	TotalResults int `json:"totalResults"`
}

type SearchResult struct {
	Courses    []Course   `json:"courses"`
	Pagination Pagination `json:"pagination"`
}

type Stats struct {
	TotalCourses     int      `json:"totalCourses"`
	TotalEnrollments int64    `json:"totalEnrollments"`
	AverageRating    float64  `json:"averageRating"`
	Languages        []string `json:"languages"`
	Categories       []string `json:"categories"`
	Levels           []string `json:"levels"`
}
