package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"nexta-backend-go/internal/models"
)

func person(id, name string, profiles ...models.FreelancerProfile) *models.Person {
	return &models.Person{User: models.User{ID: id, Name: name}, Profiles: profiles}
}

func ids(people []*models.Person) []string {
	var out []string
	for _, p := range people {
		out = append(out, p.ID)
	}
	return out
}

func ptr(v float64) *float64 { return &v }

func TestFilterPeople(t *testing.T) {
	people := []*models.Person{
		person("a", "Ann", models.FreelancerProfile{HourlyRate: 20, Experience: 1, Skills: "Go"},
			models.FreelancerProfile{HourlyRate: 80, Experience: 10, Qualification: "PhD"}),
		person("b", "Ben", models.FreelancerProfile{HourlyRate: 50, Experience: 5, Skills: "Python"}),
		person("c", "Cat"),
	}

	testCases := []struct {
		name   string
		filter models.PeopleFilter
		want   []string
	}{
		{name: "no predicates", want: []string{"a", "b", "c"}},
		{name: "text on name", filter: models.PeopleFilter{Query: "BEN"}, want: []string{"b"}},
		{name: "text on qualification", filter: models.PeopleFilter{Query: "phd"}, want: []string{"a"}},
		{name: "min fee any profile", filter: models.PeopleFilter{MinFee: ptr(60)}, want: []string{"a"}},
		{name: "max fee any profile", filter: models.PeopleFilter{MaxFee: ptr(30)}, want: []string{"a"}},
		{name: "experience window", filter: models.PeopleFilter{MinExperience: ptr(4), MaxExperience: ptr(6)}, want: []string{"a", "b"}},
		{name: "experience floor", filter: models.PeopleFilter{MinExperience: ptr(6)}, want: []string{"a"}},
		{name: "conjunctive", filter: models.PeopleFilter{Query: "python", MinFee: ptr(60)}, want: nil},
		{name: "bounds exclude profileless", filter: models.PeopleFilter{MinFee: ptr(0)}, want: []string{"a", "b"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(FilterPeople(people, tc.filter))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("FilterPeople (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortPeopleIsStable(t *testing.T) {
	newList := func() []*models.Person {
		return []*models.Person{
			person("1", "bea", models.FreelancerProfile{HourlyRate: 40, Experience: 3}),
			person("2", "Al", models.FreelancerProfile{HourlyRate: 40, Experience: 7}),
			person("3", "Bea", models.FreelancerProfile{HourlyRate: 10, Experience: 3}),
			person("4", "Cy"),
		}
	}

	testCases := []struct {
		key  string
		want []string
	}{
		{key: models.SortAlphabetical, want: []string{"2", "1", "3", "4"}},
		{key: models.SortExperience, want: []string{"2", "1", "3", "4"}},
		{key: models.SortFee, want: []string{"3", "1", "2", "4"}},
		{key: "", want: []string{"1", "2", "3", "4"}},
		{key: "rating", want: []string{"1", "2", "3", "4"}},
	}
	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			people := newList()
			SortPeople(people, tc.key)
			if diff := cmp.Diff(tc.want, ids(people)); diff != "" {
				t.Errorf("SortPeople(%q) (-want +got):\n%s", tc.key, diff)
			}
		})
	}
}
