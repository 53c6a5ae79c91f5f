package models

import "testing"

func TestDisplayName(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		in   string
		want string
	}{
		"multi word":         {in: "ak47 dragon fire", want: "Ak47 Dragon Fire"},
		"keeps remainder":    {in: "m4a1 hIGH noon", want: "M4a1 HIGH Noon"},
		"collapses spaces":   {in: "usp   night  ops", want: "Usp Night Ops"},
		"single token as is": {in: "karambit", want: "karambit"},
		"empty":              {in: "", want: ""},
		"invalid utf8 kept":  {in: "\xffoo bar", want: "\xffoo Bar"},
	}

	for name, tt := range cases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := DisplayName(tt.in); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNameSlug(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"ak47 dragon fire": "ak47-dragon-fire",
		"usp  night\tops":  "usp-night-ops",
		"karambit":         "karambit",
		"":                 "",
	}
	for in, want := range cases {
		if got := NameSlug(in); got != want {
			t.Errorf("NameSlug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestChangeDirection(t *testing.T) {
	t.Parallel()

	cases := map[string]Change{
		"":      ChangeNeutral,
		"N/A":   ChangeNeutral,
		"-5%":   ChangeDown,
		"+12%":  ChangeUp,
		"1.2k":  ChangeUp,
		"-100k": ChangeDown,
	}
	for in, want := range cases {
		if got := ChangeDirection(in); got != want {
			t.Errorf("ChangeDirection(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultFilter(t *testing.T) {
	t.Parallel()

	f := DefaultFilter()
	if f.SortBy != SortByCategory {
		t.Errorf("SortBy = %q, want %q", f.SortBy, SortByCategory)
	}
	for _, typ := range ItemTypes {
		if !f.Type[typ] {
			t.Errorf("type %q should be enabled", typ)
		}
	}
	for _, tr := range Trends {
		if !f.Status[tr] {
			t.Errorf("trend %q should be enabled", tr)
		}
	}
	if f.Search != "" || f.ValueRange != (ValueRange{}) {
		t.Errorf("unexpected non-empty search or range: %+v", f)
	}
}
