package forms

import "net/url"

// ShareInput is a validated "email this post" submission.
type ShareInput struct {
	Name     string `form:"name" validate:"required,max=25"`
	Email    string `form:"email" validate:"required,email"`
	To       string `form:"to" validate:"required,email"`
	Comments string `form:"comments" validate:"max=2000"`
}

// ParseShareForm reads name, email, to and comments from values.
func ParseShareForm(values url.Values) (ShareInput, FieldErrors) {
	input := ShareInput{
		Name:     value(values, "name"),
		Email:    value(values, "email"),
		To:       value(values, "to"),
		Comments: value(values, "comments"),
	}
	if errs := check(input); errs != nil {
		return ShareInput{}, errs
	}
	return input, nil
}
