package validation

import "errors"

// Form keeps the error map of one form between validation passes.
type Form struct {
	Rules    Rules
	Messages Messages

	errs Errors
}

func NewForm(rules Rules, messages Messages) *Form {
	return &Form{Rules: rules, Messages: messages, errs: make(Errors)}
}

// Validate replaces the current errors with the result of a fresh pass and
// reports whether the form is valid.
func (f *Form) Validate(values map[string]string) bool {
	res := Validate(values, f.Rules, f.Messages)
	f.errs = res.Errors
	return res.Valid
}

// ClearError drops the error recorded for field, if any.
func (f *Form) ClearError(field string) {
	delete(f.errs, field)
}

// Error returns the message recorded for field.
func (f *Form) Error(field string) (string, bool) {
	msg, ok := f.errs[field]
	return msg, ok
}

// Errors returns a copy of the current error map.
func (f *Form) Errors() Errors {
	out := make(Errors, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// SetErrors replaces the error map, e.g. with errors reported by a backend.
func (f *Form) SetErrors(errs Errors) {
	f.errs = make(Errors, len(errs))
	for k, v := range errs {
		f.errs[k] = v
	}
}

// HasErrors reports whether any field currently carries an error.
func (f *Form) HasErrors() bool {
	return len(f.errs) > 0
}

// FieldFunc adapts the form to a per-input validator. values is called on
// every check so that match rules see the other inputs' current contents.
func (f *Form) FieldFunc(field string, values func() map[string]string) func(string) error {
	return func(s string) error {
		all := map[string]string{}
		for k, v := range values() {
			all[k] = v
		}
		all[field] = s
		res := Validate(all, f.Rules, f.Messages)
		if msg, ok := res.Errors[field]; ok {
			f.errs[field] = msg
			return errors.New(msg)
		}
		f.ClearError(field)
		return nil
	}
}
