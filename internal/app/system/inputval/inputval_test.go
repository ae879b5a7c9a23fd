package inputval

import "testing"

type createVolunteerInput struct {
	FirstName   string `validate:"required,max=100" label:"Voornaam"`
	LastName    string `validate:"required,max=100" label:"Achternaam"`
	PhoneNumber string `validate:"required" label:"Telefoonnummer"`
	Email       string `validate:"email" label:"E-mailadres"`
}

func TestValidate_AllValid(t *testing.T) {
	res := Validate(createVolunteerInput{
		FirstName:   "Ali",
		LastName:    "Yilmaz",
		PhoneNumber: "0612345678",
		Email:       "ali@example.com",
	})
	if res.HasErrors() {
		t.Fatalf("expected no errors, got %v", res.Fields)
	}
	if res.First() != "" {
		t.Errorf("First() = %q, want empty", res.First())
	}
}

func TestValidate_RequiredMissing(t *testing.T) {
	res := Validate(createVolunteerInput{
		LastName:    "Yilmaz",
		PhoneNumber: "0612345678",
	})
	if !res.HasErrors() {
		t.Fatal("expected errors for missing first name")
	}
	if got := res.Message("FirstName"); got != "Voornaam is verplicht." {
		t.Errorf("FirstName message = %q", got)
	}
	if res.First() != "Voornaam is verplicht." {
		t.Errorf("First() = %q, want first-declared failure", res.First())
	}
}

func TestValidate_WhitespaceIsMissing(t *testing.T) {
	res := Validate(createVolunteerInput{
		FirstName:   "   ",
		LastName:    "Yilmaz",
		PhoneNumber: "0612345678",
	})
	if got := res.Message("FirstName"); got != "Voornaam is verplicht." {
		t.Errorf("FirstName message = %q", got)
	}
}

func TestValidate_OptionalEmailSkippedWhenEmpty(t *testing.T) {
	res := Validate(createVolunteerInput{
		FirstName:   "Ali",
		LastName:    "Yilmaz",
		PhoneNumber: "0612345678",
	})
	if res.HasErrors() {
		t.Fatalf("empty optional email should pass, got %v", res.Fields)
	}
}

func TestValidate_BadEmail(t *testing.T) {
	res := Validate(createVolunteerInput{
		FirstName:   "Ali",
		LastName:    "Yilmaz",
		PhoneNumber: "0612345678",
		Email:       "not-an-email",
	})
	if got := res.Message("Email"); got != "E-mailadres moet een geldig e-mailadres zijn." {
		t.Errorf("Email message = %q", got)
	}
}

func TestValidate_MinLength(t *testing.T) {
	type registerInput struct {
		Password string `validate:"required,min=8" label:"Wachtwoord"`
	}

	res := Validate(registerInput{Password: "kort"})
	if got := res.Message("Password"); got != "Wachtwoord moet minimaal 8 tekens lang zijn." {
		t.Errorf("Password message = %q", got)
	}

	res = Validate(registerInput{Password: "lang genoeg geheim"})
	if res.HasErrors() {
		t.Errorf("expected no errors, got %v", res.Fields)
	}
}

func TestValidate_Oneof(t *testing.T) {
	type roleInput struct {
		Role string `validate:"required,oneof=admin medewerker" label:"Rol"`
	}

	if res := Validate(roleInput{Role: "admin"}); res.HasErrors() {
		t.Errorf("admin should be allowed, got %v", res.Fields)
	}
	if res := Validate(roleInput{Role: "medewerker"}); res.HasErrors() {
		t.Errorf("medewerker should be allowed, got %v", res.Fields)
	}
	res := Validate(roleInput{Role: "superuser"})
	if got := res.Message("Role"); got != "Rol is ongeldig." {
		t.Errorf("Role message = %q", got)
	}
}

func TestValidate_IntRange(t *testing.T) {
	type equipmentInput struct {
		Number int `validate:"min=1,max=100" label:"Nummer"`
	}

	if res := Validate(equipmentInput{Number: 50}); res.HasErrors() {
		t.Errorf("50 should be in range, got %v", res.Fields)
	}
	if res := Validate(equipmentInput{Number: 0}); res.Message("Number") != "Nummer moet minimaal 1 zijn." {
		t.Errorf("Number=0 message = %q", res.Message("Number"))
	}
	if res := Validate(equipmentInput{Number: 101}); res.Message("Number") != "Nummer mag maximaal 100 zijn." {
		t.Errorf("Number=101 message = %q", res.Message("Number"))
	}
}

func TestValidate_OneFailurePerField(t *testing.T) {
	type in struct {
		Name string `validate:"required,min=3" label:"Naam"`
	}
	res := Validate(in{})
	if got := res.Message("Name"); got != "Naam is verplicht." {
		t.Errorf("expected only the required failure, got %q", got)
	}
	if len(res.Fields) != 1 {
		t.Errorf("expected one failure, got %v", res.Fields)
	}
}
