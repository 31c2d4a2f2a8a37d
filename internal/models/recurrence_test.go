package models

import (
	"reflect"
	"testing"
	"time"
)

func TestRecurrenceString(t *testing.T) {
	tests := []struct {
		name string
		rec  Recurrence
		want string
	}{
		{name: "none", rec: Recurrence{}, want: ""},
		{name: "daily", rec: Recurrence{Frequency: FrequencyDaily}, want: "Every day"},
		{name: "weekly", rec: Recurrence{Frequency: FrequencyWeekly}, want: "Every week"},
		{name: "monthly", rec: Recurrence{Frequency: FrequencyMonthly}, want: "Every month"},
		{
			name: "weekly with days in iso order",
			rec:  Recurrence{Frequency: FrequencyWeekly, Weekdays: []time.Weekday{time.Sunday, time.Thursday, time.Wednesday}},
			want: "Every week on Wed, Thu, Sun",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRecurrence(t *testing.T) {
	tests := []struct {
		in      string
		want    Recurrence
		wantErr bool
	}{
		{in: "", want: Recurrence{}},
		{in: "Every day", want: Recurrence{Frequency: FrequencyDaily}},
		{in: "every month", want: Recurrence{Frequency: FrequencyMonthly}},
		{in: "Every week", want: Recurrence{Frequency: FrequencyWeekly}},
		{in: "Every week on Wed, Thu", want: Recurrence{Frequency: FrequencyWeekly, Weekdays: []time.Weekday{time.Wednesday, time.Thursday}}},
		{in: "Every fortnight", wantErr: true},
		{in: "Every week on Funday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRecurrence(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRecurrence() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRecurrence() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRecurrenceRoundTrip(t *testing.T) {
	rec := Recurrence{Frequency: FrequencyWeekly, Weekdays: []time.Weekday{time.Monday, time.Friday}}
	got, err := ParseRecurrence(rec.String())
	if err != nil {
		t.Fatalf("ParseRecurrence() error: %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("round trip = %+v, want %+v", got, rec)
	}
}

func TestParseWeekdays(t *testing.T) {
	got, err := ParseWeekdays("mon, Tuesday,6,mon")
	if err != nil {
		t.Fatalf("ParseWeekdays() error: %v", err)
	}
	want := []time.Weekday{time.Monday, time.Tuesday, time.Saturday}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseWeekdays() = %v, want %v", got, want)
	}

	if _, err := ParseWeekdays("7"); err == nil {
		t.Error("ParseWeekdays(7) should fail")
	}
}

func TestParseFrequency(t *testing.T) {
	if f, err := ParseFrequency(" Weekly "); err != nil || f != FrequencyWeekly {
		t.Errorf("ParseFrequency() = %q, %v", f, err)
	}
	if _, err := ParseFrequency("hourly"); err == nil {
		t.Error("ParseFrequency(hourly) should fail")
	}
}

func TestHabitsByDateClone(t *testing.T) {
	orig := HabitsByDate{"2024-02-15": {{ID: "1", Completed: false}}}
	c := orig.Clone()
	c["2024-02-15"][0].Completed = true
	c["2024-02-16"] = []Habit{{ID: "2"}}

	if orig["2024-02-15"][0].Completed {
		t.Error("mutating clone changed the original")
	}
	if _, ok := orig["2024-02-16"]; ok {
		t.Error("adding a key to clone changed the original")
	}
	if c.Count() != 2 {
		t.Errorf("Count() = %d, want 2", c.Count())
	}
}
