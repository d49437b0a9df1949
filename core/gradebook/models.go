package gradebook

import "encoding/xml"

// Credentials authenticate a student against the portal.
type Credentials struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

// Gradebook is one reporting period's worth of courses, mapped attribute for
// attribute from the portal's gradebook XML.
type Gradebook struct {
	XMLName         xml.Name `xml:"Gradebook"`
	ReportingPeriod int      `xml:"-"`
	Courses         []Course `xml:"Courses>Course"`
}

type Course struct {
	Title  string `xml:"Title,attr"`
	Room   string `xml:"Room,attr"`
	Staff  string `xml:"Staff,attr"`
	Period string `xml:"Period,attr"`
	Marks  []Mark `xml:"Marks>Mark"`
}

type Mark struct {
	Name            string       `xml:"MarkName,attr"`
	CalculatedScore string       `xml:"CalculatedScoreString,attr"`
	Assignments     []Assignment `xml:"Assignments>Assignment"`
}

type Assignment struct {
	Measure string `xml:"Measure,attr"`
	Type    string `xml:"Type,attr"`
	Date    string `xml:"Date,attr"`
	DueDate string `xml:"DueDate,attr"`
	Score   string `xml:"Score,attr"`
	Points  string `xml:"Points,attr"`
	Notes   string `xml:"Notes,attr"`
}

// CSVHeader is the fixed column layout of the export: one row per assignment,
// the mark name doubling as the Quarter column.
var CSVHeader = []string{
	"Quarter", "Course Title", "Room", "Teacher", "Period", "Overall Score",
	"Mark", "Assignment", "Type", "Date Assigned", "Date Due", "Score",
	"Points", "Notes",
}

const naValue = "N/A"

// Rows flattens the gradebook into CSV records. A mark without assignments
// still yields one row so the course and its overall score are not lost.
func (gb Gradebook) Rows() [][]string {
	var rows [][]string
	for _, course := range gb.Courses {
		for _, mark := range course.Marks {
			prefix := []string{
				mark.Name, course.Title, course.Room, course.Staff,
				course.Period, mark.CalculatedScore, mark.Name,
			}
			if len(mark.Assignments) == 0 {
				row := append(prefix, naValue, naValue, naValue, naValue, naValue, naValue, naValue)
				rows = append(rows, row)
				continue
			}
			for _, a := range mark.Assignments {
				row := make([]string, 0, len(CSVHeader))
				row = append(row, prefix...)
				row = append(row, a.Measure, a.Type, a.Date, a.DueDate, a.Score, a.Points, a.Notes)
				rows = append(rows, row)
			}
		}
	}
	return rows
}
