package models

// SignupForm carries the fields submitted on the signup page.
type SignupForm struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string

	FirstName string
	LastName  string
	Bio       string
}

// LoginForm carries the fields submitted on the login page.
// Next is the originally requested resource to resume after login.
type LoginForm struct {
	Username string
	Password string
	Next     string
}

// Form field names shared by validators, services and templates.
const (
	FieldUsername             = "username"
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
	FieldFirstName            = "first_name"
	FieldLastName             = "last_name"
	FieldBio                  = "bio"
)

// FieldErrors maps a form field name to the messages of the rules it failed.
type FieldErrors map[string][]string

// Add appends a message for field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Has reports whether field has at least one error.
func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

// Empty reports whether there are no errors at all.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Merge copies every message from other into f.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, messages := range other {
		f[field] = append(f[field], messages...)
	}
}
