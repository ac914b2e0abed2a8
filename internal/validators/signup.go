package validators

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/MKhiriev/go-auth-portal/models"
)

const (
	UsernameMaxLength = 150
	EmailMaxLength    = 254
	NameMaxLength     = 150
	BioMaxLength      = 2000
)

var usernamePattern = regexp.MustCompile(`^[\pL\pN.@+\-_]+$`)

// SignupValidator checks a [models.SignupForm]: field formats, password
// confirmation and the password policy. Uniqueness of username and email is
// checked by the caller against the store.
type SignupValidator struct {
	passwords *PasswordValidator
}

func NewSignupValidator(passwords *PasswordValidator) *SignupValidator {
	return &SignupValidator{passwords: passwords}
}

// Validate collects every failure of the requested fields (all fields when
// none are given) and returns them as *FieldsError.
//
// The password policy runs only once the confirmation matches, so a typo in
// the confirmation is reported on its own.
func (v *SignupValidator) Validate(_ context.Context, obj any, fields ...string) error {
	var form models.SignupForm
	switch value := obj.(type) {
	case models.SignupForm:
		form = value
	case *models.SignupForm:
		form = *value
	default:
		return ErrUnsupportedType
	}

	if len(fields) == 0 {
		fields = []string{
			models.FieldUsername,
			models.FieldEmail,
			models.FieldPasswordConfirmation,
			models.FieldPassword,
			models.FieldFirstName,
			models.FieldLastName,
			models.FieldBio,
		}
	}

	errs := models.FieldErrors{}
	for _, f := range fields {
		switch f {
		case models.FieldUsername:
			if msg := checkUsername(form.Username); msg != "" {
				errs.Add(f, msg)
			}
		case models.FieldEmail:
			if msg := checkEmail(form.Email); msg != "" {
				errs.Add(f, msg)
			}
		case models.FieldPasswordConfirmation:
			if form.PasswordConfirmation == "" {
				errs.Add(f, msgRequired)
			} else if form.Password != form.PasswordConfirmation {
				errs.Add(f, "The two password fields didn't match.")
			}
		case models.FieldPassword:
			if form.Password == "" {
				errs.Add(f, msgRequired)
				continue
			}
			if errs.Has(models.FieldPasswordConfirmation) {
				continue
			}
			for _, msg := range v.passwords.Check(form.Password, userFromSignup(form)) {
				errs.Add(f, msg)
			}
		case models.FieldFirstName, models.FieldLastName:
			value := form.FirstName
			if f == models.FieldLastName {
				value = form.LastName
			}
			if msg := checkMaxLength(value, NameMaxLength); msg != "" {
				errs.Add(f, msg)
			}
		case models.FieldBio:
			if msg := checkMaxLength(form.Bio, BioMaxLength); msg != "" {
				errs.Add(f, msg)
			}
		default:
			return ErrUnknownField
		}
	}

	return fieldsErrorOrNil(errs)
}

// LoginValidator checks that both credentials were supplied.
type LoginValidator struct{}

func NewLoginValidator() *LoginValidator {
	return &LoginValidator{}
}

func (v *LoginValidator) Validate(_ context.Context, obj any, _ ...string) error {
	var form models.LoginForm
	switch value := obj.(type) {
	case models.LoginForm:
		form = value
	case *models.LoginForm:
		form = *value
	default:
		return ErrUnsupportedType
	}

	errs := models.FieldErrors{}
	if strings.TrimSpace(form.Username) == "" {
		errs.Add(models.FieldUsername, msgRequired)
	}
	if form.Password == "" {
		errs.Add(models.FieldPassword, msgRequired)
	}
	return fieldsErrorOrNil(errs)
}

// NormalizeUsername applies NFKC normalization so visually identical
// usernames map to the same stored value.
func NormalizeUsername(username string) string {
	return norm.NFKC.String(strings.TrimSpace(username))
}

// NormalizeEmail trims the address and lower-cases its domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func checkUsername(username string) string {
	switch {
	case username == "":
		return msgRequired
	case utf8.RuneCountInString(username) > UsernameMaxLength:
		return fmt.Sprintf("Ensure this value has at most %d characters (it has %d).",
			UsernameMaxLength, utf8.RuneCountInString(username))
	case !usernamePattern.MatchString(username):
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	}
	return ""
}

func checkEmail(email string) string {
	if email == "" {
		return msgRequired
	}
	if utf8.RuneCountInString(email) > EmailMaxLength {
		return fmt.Sprintf("Ensure this value has at most %d characters (it has %d).",
			EmailMaxLength, utf8.RuneCountInString(email))
	}

	addr, err := mail.ParseAddress(email)
	// Reject display-name forms such as "Alice <a@x.com>".
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "Enter a valid email address."
	}
	return ""
}

func checkMaxLength(value string, limit int) string {
	if n := utf8.RuneCountInString(value); n > limit {
		return fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", limit, n)
	}
	return ""
}
