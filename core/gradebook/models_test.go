package gradebook

import (
	"encoding/xml"
	"reflect"
	"testing"
)

const sampleGradebookXML = `<Gradebook Type="Traditional">
  <Courses>
    <Course Period="1" Title="Algebra 2" Room="214" Staff="J. Doe">
      <Marks>
        <Mark MarkName="Q1" CalculatedScoreString="A" CalculatedScoreRaw="94">
          <Assignments>
            <Assignment Measure="Unit 1 Test" Type="Assessment" Date="9/12/2025" DueDate="9/12/2025" Score="47 out of 50" Points="47/50" Notes=""/>
            <Assignment Measure="Homework 3" Type="Practice" Date="9/15/2025" DueDate="9/16/2025" Score="10 out of 10" Points="10/10" Notes="late"/>
          </Assignments>
        </Mark>
      </Marks>
    </Course>
    <Course Period="2" Title="AP Biology" Room="108" Staff="J. Roe">
      <Marks>
        <Mark MarkName="Q1" CalculatedScoreString="B+">
          <Assignments/>
        </Mark>
      </Marks>
    </Course>
  </Courses>
</Gradebook>`

func TestGradebook_unmarshal(t *testing.T) {
	var gb Gradebook
	if err := xml.Unmarshal([]byte(sampleGradebookXML), &gb); err != nil {
		t.Fatalf("xml.Unmarshal() failed: %v", err)
	}

	if len(gb.Courses) != 2 {
		t.Fatalf("len(Courses) = %d, want 2", len(gb.Courses))
	}

	alg := gb.Courses[0]
	if alg.Title != "Algebra 2" || alg.Room != "214" || alg.Staff != "J. Doe" || alg.Period != "1" {
		t.Errorf("unexpected course attributes: %+v", alg)
	}
	if len(alg.Marks) != 1 {
		t.Fatalf("len(Marks) = %d, want 1", len(alg.Marks))
	}
	mark := alg.Marks[0]
	if mark.Name != "Q1" || mark.CalculatedScore != "A" {
		t.Errorf("unexpected mark attributes: %+v", mark)
	}
	if len(mark.Assignments) != 2 {
		t.Fatalf("len(Assignments) = %d, want 2", len(mark.Assignments))
	}
	want := Assignment{
		Measure: "Unit 1 Test",
		Type:    "Assessment",
		Date:    "9/12/2025",
		DueDate: "9/12/2025",
		Score:   "47 out of 50",
		Points:  "47/50",
	}
	if got := mark.Assignments[0]; got != want {
		t.Errorf("Assignments[0] = %+v, want %+v", got, want)
	}

	if bio := gb.Courses[1]; len(bio.Marks[0].Assignments) != 0 {
		t.Errorf("expected no assignments for %q", bio.Title)
	}
}

func TestGradebook_Rows(t *testing.T) {
	var gb Gradebook
	if err := xml.Unmarshal([]byte(sampleGradebookXML), &gb); err != nil {
		t.Fatalf("xml.Unmarshal() failed: %v", err)
	}

	rows := gb.Rows()
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	for i, row := range rows {
		if len(row) != len(CSVHeader) {
			t.Errorf("rows[%d] has %d columns, want %d", i, len(row), len(CSVHeader))
		}
	}

	want := []string{"Q1", "Algebra 2", "214", "J. Doe", "1", "A", "Q1", "Homework 3", "Practice", "9/15/2025", "9/16/2025", "10 out of 10", "10/10", "late"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("rows[1] = %v, want %v", rows[1], want)
	}

	// a mark without assignments keeps its course/overall score row
	wantNA := []string{"Q1", "AP Biology", "108", "J. Roe", "2", "B+", "Q1", "N/A", "N/A", "N/A", "N/A", "N/A", "N/A", "N/A"}
	if !reflect.DeepEqual(rows[2], wantNA) {
		t.Errorf("rows[2] = %v, want %v", rows[2], wantNA)
	}
}

func TestGradebook_Rows_empty(t *testing.T) {
	if rows := (Gradebook{}).Rows(); len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}
