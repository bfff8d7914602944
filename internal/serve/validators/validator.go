package validators

type Validator struct {
	Errors map[string]any
}

func NewValidator() *Validator {
	return &Validator{
		Errors: make(map[string]any),
	}
}

func (v *Validator) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.addError(key, message)
	}
}

// CheckError is a convenience method for checking if an error is nil
func (v *Validator) CheckError(err error, key, message string) *Validator {
	if err != nil && message == "" {
		message = err.Error()
	}
	v.Check(err == nil, key, message)
	return v
}

// addError keeps the first message reported for a key.
func (v *Validator) addError(key, message string) {
	if _, exists := v.Errors[key]; exists {
		return
	}
	v.Errors[key] = message
}
