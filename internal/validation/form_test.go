package validation

import "testing"

func TestFormClearError(t *testing.T) {
	f := NewForm(ForgotPasswordRules, ForgotPasswordMessages)
	if f.Validate(map[string]string{FieldEmail: "bad"}) {
		t.Fatal("expected invalid email")
	}
	if msg, ok := f.Error(FieldEmail); !ok || msg != "Please enter a valid email" {
		t.Fatalf("Error() = %q, %v", msg, ok)
	}

	f.ClearError(FieldEmail)
	f.ClearError(FieldEmail)
	if f.HasErrors() {
		t.Errorf("errors after clear: %v", f.Errors())
	}
}

func TestFormValidateReplacesErrors(t *testing.T) {
	f := NewForm(SignInRules, SignInMessages)
	f.SetErrors(Errors{"server": "boom"})

	ok := f.Validate(map[string]string{FieldEmail: "a@b.co", FieldPassword: "secret1"})
	if !ok {
		t.Fatalf("expected valid form, got %v", f.Errors())
	}
	if f.HasErrors() {
		t.Errorf("stale errors survived revalidation: %v", f.Errors())
	}
}

func TestFormErrorsIsCopy(t *testing.T) {
	f := NewForm(NewTaskRules, NewTaskMessages)
	f.Validate(map[string]string{FieldTaskName: " "})

	errs := f.Errors()
	delete(errs, FieldTaskName)
	if _, ok := f.Error(FieldTaskName); !ok {
		t.Error("mutating the returned map changed the form")
	}
}

func TestFormFieldFunc(t *testing.T) {
	f := NewForm(SignUpRules, SignUpMessages)
	values := map[string]string{FieldPassword: "secret1"}
	confirm := f.FieldFunc(FieldConfirmPassword, func() map[string]string { return values })

	if err := confirm("other"); err == nil || err.Error() != "Passwords do not match" {
		t.Errorf("confirm(other) = %v, want mismatch", err)
	}
	if _, ok := f.Error(FieldConfirmPassword); !ok {
		t.Error("mismatch not recorded on the form")
	}
	if err := confirm("secret1"); err != nil {
		t.Errorf("confirm(secret1) = %v, want nil", err)
	}
	if f.HasErrors() {
		t.Errorf("errors left after a passing check: %v", f.Errors())
	}
}
