package forms

import "net/url"

// CommentInput is a validated comment submission. It carries no post
// reference; the post comes from the URL.
type CommentInput struct {
	Name  string `form:"name" validate:"required,max=80"`
	Email string `form:"email" validate:"required,email"`
	Body  string `form:"body" validate:"required,max=5000"`
}

// ParseCommentForm reads name, email and body from values. Other fields,
// post or post_id included, are ignored.
func ParseCommentForm(values url.Values) (CommentInput, FieldErrors) {
	input := CommentInput{
		Name:  value(values, "name"),
		Email: value(values, "email"),
		Body:  value(values, "body"),
	}
	if errs := check(input); errs != nil {
		return CommentInput{}, errs
	}
	return input, nil
}
