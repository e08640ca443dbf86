package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/form"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	selectOpts   [][]string
	inputErr     error
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.selectOpts = append(s.selectOpts, cfg.Options)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type signup struct {
	Name  string
	Plan  string
	Agree bool
	City  fields.Option
}

var plans = []fields.Option{{Value: "free", Label: "Free"}, {Value: "pro", Label: "Pro"}}

func loadCities(_ context.Context, query string) ([]fields.Option, error) {
	all := []fields.Option{{Value: "ber", Label: "Berlin"}, {Value: "bcn", Label: "Barcelona"}, {Value: "lis", Label: "Lisbon"}}
	var out []fields.Option
	for _, city := range all {
		if strings.HasPrefix(strings.ToLower(city.Label), strings.ToLower(query)) {
			out = append(out, city)
		}
	}
	return out, nil
}

func signupForm() form.Form[signup, signup, fields.Field[signup]] {
	name := fields.Text(form.FieldConfig[fields.TextAttributes, string, signup, string]{
		Parser:     fields.Identity[string],
		Value:      func(v signup) string { return v.Name },
		Update:     func(in string, v signup) signup { v.Name = in; return v },
		Attributes: fields.TextAttributes{Name: "name", Label: "Name"},
	})
	plan := fields.Select(form.FieldConfig[fields.ChoiceAttributes, string, signup, string]{
		Parser:     fields.OneOf(plans),
		Value:      func(v signup) string { return v.Plan },
		Update:     func(in string, v signup) signup { v.Plan = in; return v },
		Attributes: fields.ChoiceAttributes{Name: "plan", Label: "Plan", Options: plans},
	})
	agree := fields.Checkbox(form.FieldConfig[fields.CheckboxAttributes, bool, signup, bool]{
		Parser:     fields.MustBeChecked("you must accept the terms"),
		Value:      func(v signup) bool { return v.Agree },
		Update:     func(in bool, v signup) signup { v.Agree = in; return v },
		Attributes: fields.CheckboxAttributes{Name: "agree", Text: "Accept terms"},
	})
	city := fields.SearchSelect(form.FieldConfig[fields.SearchAttributes, fields.Option, signup, fields.Option]{
		Parser:     fields.RequireSelection,
		Value:      func(v signup) fields.Option { return v.City },
		Update:     func(in fields.Option, v signup) signup { v.City = in; return v },
		Attributes: fields.SearchAttributes{Name: "city", Label: "City", Load: loadCities},
	})

	build := func(n string) func(string) func(bool) func(fields.Option) signup {
		return func(p string) func(bool) func(fields.Option) signup {
			return func(a bool) func(fields.Option) signup {
				return func(c fields.Option) signup { return signup{Name: n, Plan: p, Agree: a, City: c} }
			}
		}
	}
	seed := form.Succeed[signup, func(string) func(string) func(bool) func(fields.Option) signup, fields.Field[signup]](build)
	return form.Append(form.Append(form.Append(form.Append(seed, name), plan), agree), city)
}

func TestRun_CompletesInOnePass(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "b"},
		selectIdx: []int{1, 0},
		confirm:   []bool{true},
	}

	got, err := Run(context.Background(), signupForm(), signup{}, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := signup{Name: "Ada", Plan: "pro", Agree: true, City: fields.Option{Value: "ber", Label: "Berlin"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	wantOptions := [][]string{{"Free", "Pro"}, {"Berlin", "Barcelona"}}
	if diff := cmp.Diff(wantOptions, driver.selectOpts); diff != "" {
		t.Fatalf("select options mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_RetriesOnlyInvalidFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "lis", "Ada"},
		selectIdx: []int{0, 0},
		confirm:   []bool{false, true, true},
	}

	got, err := Run(context.Background(), signupForm(), signup{}, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.Name != "Ada" || !got.Agree || got.Plan != "free" || got.City.Value != "lis" {
		t.Fatalf("unexpected output %+v", got)
	}

	wantInfo := []string{"✗ this field is required", "✗ you must accept the terms"}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
	if driver.selectPos != 2 {
		t.Fatalf("valid fields should not be asked again, select prompts = %d", driver.selectPos)
	}
}

func TestRun_DeclinedRetryReturnsFailure(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "ber"},
		selectIdx: []int{0, 0},
		confirm:   []bool{true, false},
	}

	_, err := Run(context.Background(), signupForm(), signup{}, WithPromptDriver(driver))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	var failure form.Failure
	if !errors.As(err, &failure) {
		t.Fatalf("expected wrapped form.Failure, got %v", err)
	}
	if !form.IsRequired(failure.First) {
		t.Fatalf("headline error = %v, want required", failure.First)
	}
}

func TestRun_MaxRounds(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "ber"},
		selectIdx: []int{0, 0},
		confirm:   []bool{true},
	}

	_, err := Run(context.Background(), signupForm(), signup{}, WithPromptDriver(driver), WithMaxRounds(1))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if driver.confirmPos != 1 {
		t.Fatalf("no retry prompt expected on the last round, confirms = %d", driver.confirmPos)
	}
}

func TestRun_Aborted(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}

	_, err := Run(context.Background(), signupForm(), signup{}, WithPromptDriver(driver))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

type subscription struct {
	Plan string
	Team string
}

func TestRun_PromptsFieldsRevealedByAnswers(t *testing.T) {
	options := []fields.Option{{Value: "solo", Label: "Solo"}, {Value: "team", Label: "Team"}}
	choose := fields.Radio(form.FieldConfig[fields.ChoiceAttributes, string, subscription, string]{
		Parser:     fields.OneOf(options),
		Value:      func(v subscription) string { return v.Plan },
		Update:     func(in string, v subscription) subscription { v.Plan = in; return v },
		Attributes: fields.ChoiceAttributes{Name: "plan", Options: options},
	})
	team := fields.Text(form.FieldConfig[fields.TextAttributes, string, subscription, string]{
		Parser:     fields.Identity[string],
		Value:      func(v subscription) string { return v.Team },
		Update:     func(in string, v subscription) subscription { v.Team = in; return v },
		Attributes: fields.TextAttributes{Name: "team"},
	})
	f := form.Meta(func(v subscription) form.Form[subscription, subscription, fields.Field[subscription]] {
		if v.Plan != "team" {
			return form.Map(func(p string) subscription { return subscription{Plan: p} }, choose)
		}
		withPlan := form.Map(func(p string) func(string) subscription {
			return func(name string) subscription { return subscription{Plan: p, Team: name} }
		}, choose)
		return form.Append(withPlan, team)
	})

	driver := &stubDriver{selectIdx: []int{1}, inputs: []string{"Rockets"}}
	got, err := Run(context.Background(), f, subscription{}, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff(subscription{Plan: "team", Team: "Rockets"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_TextVariants(t *testing.T) {
	type account struct {
		Password string
		Bio      string
	}
	password := fields.Password(form.FieldConfig[fields.TextAttributes, string, account, string]{
		Parser:     fields.Identity[string],
		Value:      func(v account) string { return v.Password },
		Update:     func(in string, v account) account { v.Password = in; return v },
		Attributes: fields.TextAttributes{Name: "password"},
	})
	bio := fields.TextArea(form.FieldConfig[fields.TextAttributes, string, account, string]{
		Parser:     fields.Identity[string],
		Value:      func(v account) string { return v.Bio },
		Update:     func(in string, v account) account { v.Bio = in; return v },
		Attributes: fields.TextAttributes{Name: "bio"},
	})
	seed := form.Succeed[account, func(string) func(string) account, fields.Field[account]](func(p string) func(string) account {
		return func(b string) account { return account{Password: p, Bio: b} }
	})
	f := form.Append(form.Append(seed, password), fields.Section("About", bio))

	driver := &stubDriver{passwords: []string{"s3cret"}, textAreas: []string{"hello\nworld"}}
	got, err := Run(context.Background(), f, account{}, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.Password != "s3cret" || got.Bio != "hello\nworld" {
		t.Fatalf("unexpected output %+v", got)
	}
}
