package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStatusTransitions(t *testing.T) {
	apps := []struct {
		from, to ApplicationStatus
		want     bool
	}{
		{ApplicationPending, ApplicationApproved, true},
		{ApplicationPending, ApplicationDenied, true},
		{ApplicationPending, ApplicationPending, false},
		{ApplicationApproved, ApplicationDenied, false},
		{ApplicationDenied, ApplicationPending, false},
	}
	for _, tc := range apps {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("application %s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}

	bookings := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingAccepted, true},
		{BookingPending, BookingRejected, true},
		{BookingAccepted, BookingRejected, false},
		{BookingRejected, BookingPending, false},
	}
	for _, tc := range bookings {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("booking %s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleCompany} {
		if !r.Valid() {
			t.Errorf("%q should be valid", r)
		}
	}
	for _, r := range []Role{"", "user", "Admin"} {
		if r.Valid() {
			t.Errorf("%q should be invalid", r)
		}
	}
}

func TestSkillListUnmarshal(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    SkillList
		wantErr bool
	}{
		{name: "array", input: `[" go ", "", "sql"]`, want: SkillList{"go", "sql"}},
		{name: "comma string", input: `"go, sql,,react "`, want: SkillList{"go", "sql", "react"}},
		{name: "empty string", input: `""`, want: SkillList{}},
		{name: "number", input: `42`, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got SkillList
			err := json.Unmarshal([]byte(tc.input), &got)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("skills mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBookingLine(t *testing.T) {
	b := &Booking{CartItems: []BookingLine{{ID: "l1", CandidateID: "c1"}, {ID: "l2", CandidateID: "c2"}}}
	line, ok := b.Line("l2")
	if !ok || line.CandidateID != "c2" {
		t.Fatalf("Line(l2) = %+v, %v", line, ok)
	}
	line.Status = BookingAccepted
	if b.CartItems[1].Status != BookingAccepted {
		t.Error("Line should return a pointer into the booking")
	}
	if _, ok := b.Line("missing"); ok {
		t.Error("Line(missing) should report false")
	}
}
