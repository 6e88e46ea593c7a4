package types

import (
	"encoding/json"
	"testing"
)

func TestFlexAmountUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int64
	}{
		{"decimal string", `"125.00"`, 12500},
		{"string with fraction", `"89.99"`, 8999},
		{"integer string", `"200"`, 20000},
		{"number", `137.5`, 13750},
		{"integer number", `65`, 6500},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"rounds half up", `"0.125"`, 13},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f FlexAmount
			if err := json.Unmarshal([]byte(tc.input), &f); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tc.input, err)
			}
			if f.Cents() != tc.want {
				t.Errorf("Unmarshal(%s) = %d cents, want %d", tc.input, f.Cents(), tc.want)
			}
		})
	}
}

func TestFlexAmountUnmarshalRejectsGarbage(t *testing.T) {
	var f FlexAmount
	if err := json.Unmarshal([]byte(`"not-a-price"`), &f); err == nil {
		t.Error("Expected error for non-numeric string")
	}
	if err := json.Unmarshal([]byte(`{"amount": 1}`), &f); err == nil {
		t.Error("Expected error for object input")
	}
}

func TestFlexAmountOrDefault(t *testing.T) {
	var absent FlexAmount
	if got := absent.OrDefault(12500); got != 12500 {
		t.Errorf("OrDefault on absent value = %d, want 12500", got)
	}
	if got := FlexAmount(9900).OrDefault(12500); got != 9900 {
		t.Errorf("OrDefault on set value = %d, want 9900", got)
	}
}

func TestFlexIntUnmarshal(t *testing.T) {
	cases := []struct {
		input string
		want  int64
	}{
		{`25`, 25},
		{`"25"`, 25},
		{`null`, 0},
		{`""`, 0},
	}

	for _, tc := range cases {
		var f FlexInt
		if err := json.Unmarshal([]byte(tc.input), &f); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", tc.input, err)
		}
		if f.Int64() != tc.want {
			t.Errorf("Unmarshal(%s) = %d, want %d", tc.input, f.Int64(), tc.want)
		}
	}

	var f FlexInt
	if err := json.Unmarshal([]byte(`"12.5"`), &f); err == nil {
		t.Error("Expected error for non-integer string")
	}
}

func TestFlexListUnmarshal(t *testing.T) {
	var single FlexList[string]
	if err := json.Unmarshal([]byte(`"FL"`), &single); err != nil {
		t.Fatalf("Unmarshal single failed: %v", err)
	}
	if len(single) != 1 || single[0] != "FL" {
		t.Errorf("Unmarshal single = %v, want [FL]", single)
	}

	var many FlexList[string]
	if err := json.Unmarshal([]byte(`["FL","GA"]`), &many); err != nil {
		t.Fatalf("Unmarshal array failed: %v", err)
	}
	if len(many) != 2 || many[0] != "FL" || many[1] != "GA" {
		t.Errorf("Unmarshal array = %v, want [FL GA]", many)
	}
}

func TestApplicationStatus(t *testing.T) {
	valid := []ApplicationStatus{ApplicationPending, ApplicationUnderReview, ApplicationApproved, ApplicationRejected}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if ApplicationStatus("archived").Valid() {
		t.Error("archived should not be a valid status")
	}

	if ApplicationPending.Terminal() || ApplicationUnderReview.Terminal() {
		t.Error("pending and under_review are not terminal")
	}
	if !ApplicationApproved.Terminal() || !ApplicationRejected.Terminal() {
		t.Error("approved and rejected are terminal")
	}
}

func TestJobStatus(t *testing.T) {
	for _, s := range []JobStatus{JobOpen, JobFilled, JobInProgress, JobCompleted, JobCancelled} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if JobStatus("paused").Valid() {
		t.Error("paused should not be a valid job status")
	}
}
