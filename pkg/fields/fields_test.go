package fields_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/form"
)

type profile struct {
	Name     string
	Plan     string
	Team     string
	Agree    bool
	Country  fields.Option
	Contact  contact
	Password string
}

type contact struct {
	Email string
	Phone string
}

type signup struct {
	Name    string
	Plan    string
	Team    string
	Agree   bool
	Country string
}

var plans = []fields.Option{{Value: "free", Label: "Free"}, {Value: "team", Label: "Team"}}

func nameInput() form.Form[profile, string, fields.Field[profile]] {
	return fields.Text(form.FieldConfig[fields.TextAttributes, string, profile, string]{
		Parser:     fields.Identity[string],
		Value:      func(p profile) string { return p.Name },
		Update:     func(in string, p profile) profile { p.Name = in; return p },
		Attributes: fields.TextAttributes{Name: "name", Label: "Name"},
	})
}

func planSelect() form.Form[profile, string, fields.Field[profile]] {
	return fields.Select(form.FieldConfig[fields.ChoiceAttributes, string, profile, string]{
		Parser:     fields.OneOf(plans),
		Value:      func(p profile) string { return p.Plan },
		Update:     func(in string, p profile) profile { p.Plan = in; return p },
		Attributes: fields.ChoiceAttributes{Name: "plan", Label: "Plan", Options: plans},
	})
}

func teamInput() form.Form[profile, string, fields.Field[profile]] {
	return fields.Text(form.FieldConfig[fields.TextAttributes, string, profile, string]{
		Parser:     fields.Identity[string],
		Value:      func(p profile) string { return p.Team },
		Update:     func(in string, p profile) profile { p.Team = in; return p },
		Attributes: fields.TextAttributes{Name: "team", Label: "Team name"},
	})
}

func agreeBox() form.Form[profile, bool, fields.Field[profile]] {
	return fields.Checkbox(form.FieldConfig[fields.CheckboxAttributes, bool, profile, bool]{
		Parser:     fields.MustBeChecked("you must accept the terms"),
		Value:      func(p profile) bool { return p.Agree },
		Update:     func(in bool, p profile) profile { p.Agree = in; return p },
		Attributes: fields.CheckboxAttributes{Name: "agree", Text: "I accept the terms"},
	})
}

func countrySearch() form.Form[profile, fields.Option, fields.Field[profile]] {
	return fields.SearchSelect(form.FieldConfig[fields.SearchAttributes, fields.Option, profile, fields.Option]{
		Parser:     fields.RequireSelection,
		Value:      func(p profile) fields.Option { return p.Country },
		Update:     func(in fields.Option, p profile) profile { p.Country = in; return p },
		Attributes: fields.SearchAttributes{Name: "country", Label: "Country"},
	})
}

// signupForm shows the team name only once the team plan is chosen.
func signupForm() form.Form[profile, signup, fields.Field[profile]] {
	planThenTeam := form.AndThen(func(plan string) form.Form[profile, func(string) string, fields.Field[profile]] {
		if plan != "team" {
			return form.Succeed[profile, func(string) string, fields.Field[profile]](func(string) string { return "" })
		}
		return form.Map(func(team string) func(string) string {
			return func(string) string { return team }
		}, teamInput())
	}, planSelect())

	withPlan := form.Meta(func(p profile) form.Form[profile, [2]string, fields.Field[profile]] {
		return form.Append(form.Map(func(fn func(string) string) func(string) [2]string {
			return func(plan string) [2]string { return [2]string{plan, fn(plan)} }
		}, planThenTeam), form.Succeed[profile, string, fields.Field[profile]](p.Plan))
	})

	seed := form.Succeed[profile, func(string) func([2]string) func(bool) func(fields.Option) signup, fields.Field[profile]](
		func(name string) func([2]string) func(bool) func(fields.Option) signup {
			return func(plan [2]string) func(bool) func(fields.Option) signup {
				return func(agree bool) func(fields.Option) signup {
					return func(country fields.Option) signup {
						return signup{Name: name, Plan: plan[0], Team: plan[1], Agree: agree, Country: country.Value}
					}
				}
			}
		},
	)
	return form.Append(form.Append(form.Append(form.Append(seed, nameInput()), withPlan), agreeBox()), countrySearch())
}

func names(filled []form.FilledField[fields.Field[profile]]) []string {
	var out []string
	fields.Walk(filled, func(field form.FilledField[fields.Field[profile]]) bool {
		out = append(out, string(field.State.Kind())+":"+field.State.Name())
		return true
	})
	return out
}

func TestBuilders_Kinds(t *testing.T) {
	cfg := form.FieldConfig[fields.TextAttributes, string, profile, string]{
		Parser: fields.Identity[string],
		Value:  func(p profile) string { return p.Password },
	}
	cases := []struct {
		build form.Form[profile, string, fields.Field[profile]]
		want  fields.Kind
	}{
		{fields.Text(cfg), fields.KindText},
		{fields.Password(cfg), fields.KindPassword},
		{fields.Email(cfg), fields.KindEmail},
		{fields.TextArea(cfg), fields.KindTextArea},
		{fields.Input(fields.KindTel, cfg), fields.KindTel},
	}
	for _, tc := range cases {
		got := form.Fill(tc.build, profile{Password: "x"}).Fields[0].State.Kind()
		if got != tc.want {
			t.Fatalf("kind = %q, want %q", got, tc.want)
		}
	}
	if got := (fields.TextField[profile]{}).Kind(); got != fields.KindText {
		t.Fatalf("zero text kind = %q", got)
	}
}

func TestCheckbox_NeverEmpty(t *testing.T) {
	filled := form.Fill(agreeBox(), profile{})
	if filled.IsEmpty {
		t.Fatalf("an unchecked box is a value, not an empty field")
	}
	want := form.Fail[bool](form.Invalid("you must accept the terms"))
	if diff := cmp.Diff(want, filled.Result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchSelect_RequiredViaParser(t *testing.T) {
	filled := form.Fill(form.Optional(countrySearch()), profile{})
	if filled.IsEmpty {
		t.Fatalf("search select is never empty, so optional must not swallow its error")
	}
	if diff := cmp.Diff(form.Fail[*fields.Option](form.Invalid(fields.ErrNoSelection.Error())), filled.Result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestSignup_ConditionalFields(t *testing.T) {
	free := form.Fill(signupForm(), profile{Name: "Ada", Plan: "free", Agree: true, Country: fields.Option{Value: "pt", Label: "Portugal"}})
	if diff := cmp.Diff([]string{"text:name", "select:plan", "checkbox:agree", "search-select:country"}, names(free.Fields)); diff != "" {
		t.Fatalf("free plan fields (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(form.Ok(signup{Name: "Ada", Plan: "free", Agree: true, Country: "pt"}), free.Result); diff != "" {
		t.Fatalf("free plan result (-want +got):\n%s", diff)
	}

	team := form.Fill(signupForm(), profile{Name: "Ada", Plan: "team"})
	if diff := cmp.Diff([]string{"text:name", "select:plan", "text:team", "checkbox:agree", "search-select:country"}, names(team.Fields)); diff != "" {
		t.Fatalf("team plan fields (-want +got):\n%s", diff)
	}
	wantErr := form.Fail[signup](form.ErrRequired, form.Invalid("you must accept the terms"), form.Invalid(fields.ErrNoSelection.Error()))
	if diff := cmp.Diff(wantErr, team.Result); diff != "" {
		t.Fatalf("team plan result (-want +got):\n%s", diff)
	}
}

func TestSection_WrapsNestedFields(t *testing.T) {
	section := fields.Section("Account", form.Append(form.Map(func(n string) func(string) string {
		return func(p string) string { return n + "/" + p }
	}, nameInput()), planSelect()))

	filled := form.Fill(section, profile{Name: "Ada", Plan: "gold"})
	if len(filled.Fields) != 1 {
		t.Fatalf("section renders as one field, got %d", len(filled.Fields))
	}
	sec, ok := filled.Fields[0].State.(fields.SectionField[profile])
	if !ok {
		t.Fatalf("expected a section, got %T", filled.Fields[0].State)
	}
	if sec.Title != "Account" || len(sec.Fields) != 2 {
		t.Fatalf("unexpected section %+v", sec)
	}
	if diff := cmp.Diff(form.Fail[string](form.Invalid("invalid option")), filled.Result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(form.Invalid("invalid option"), *filled.Fields[0].Error); diff != "" {
		t.Fatalf("section error mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"section:", "text:name", "select:plan"}, names(filled.Fields)); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_EmptyMarksRequired(t *testing.T) {
	filled := form.Fill(fields.Group(nameInput()), profile{})
	if !filled.IsEmpty {
		t.Fatalf("group of empty fields is empty")
	}
	if diff := cmp.Diff(form.ErrRequired, *filled.Fields[0].Error); diff != "" {
		t.Fatalf("group error mismatch (-want +got):\n%s", diff)
	}
}

func TestMapValues_RetargetsSetters(t *testing.T) {
	emailInput := fields.Email(form.FieldConfig[fields.TextAttributes, string, contact, string]{
		Parser:     fields.ParseEmail,
		Value:      func(c contact) string { return c.Email },
		Update:     func(in string, c contact) contact { c.Email = in; return c },
		Attributes: fields.TextAttributes{Name: "email", Label: "Email"},
	})
	embedded := fields.MapValues(
		func(p profile) contact { return p.Contact },
		func(c contact, p profile) profile { p.Contact = c; return p },
		fields.Section("Contact", emailInput),
	)

	values := profile{Name: "Ada", Contact: contact{Phone: "123"}}
	filled := form.Fill(embedded, values)
	sec := filled.Fields[0].State.(fields.SectionField[profile])
	text := sec.Fields[0].State.(fields.TextField[profile])

	next := text.Set("ada@example.com")
	want := profile{Name: "Ada", Contact: contact{Email: "ada@example.com", Phone: "123"}}
	if diff := cmp.Diff(want, next); diff != "" {
		t.Fatalf("retargeted setter mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(form.Ok("ada@example.com"), form.Fill(embedded, next).Result); diff != "" {
		t.Fatalf("result after update (-want +got):\n%s", diff)
	}
}

func TestDecode_AppliesSubmissionInOrder(t *testing.T) {
	submitted := url.Values{
		"name":          {"Ada"},
		"plan":          {"team"},
		"team":          {"Analytical Engines"},
		"country":       {"pt"},
		"country_label": {"Portugal"},
	}
	values := fields.Decode(signupForm(), profile{Agree: true}, submitted)

	want := profile{
		Name:    "Ada",
		Plan:    "team",
		Team:    "Analytical Engines",
		Country: fields.Option{Value: "pt", Label: "Portugal"},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("decoded values mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_CheckboxOn(t *testing.T) {
	values := fields.Decode(agreeBox(), profile{}, url.Values{"agree": {"on"}})
	if !values.Agree {
		t.Fatalf("checkbox should be checked")
	}
}

func TestParseEmail(t *testing.T) {
	cases := map[string]bool{
		"ada@example.com":  true,
		" ada@example.io ": true,
		"not-an-email":     false,
		"@example.com":     false,
		"ada@":             false,
		"ada@localhost":    false,
		"ada@.com":         false,
		"a da@example.com": false,
	}
	for input, valid := range cases {
		_, err := fields.ParseEmail(input)
		if (err == nil) != valid {
			t.Fatalf("ParseEmail(%q) err=%v, want valid=%v", input, err, valid)
		}
	}
}
