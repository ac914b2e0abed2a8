package validators

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-auth-portal/internal/config"
	"github.com/MKhiriev/go-auth-portal/models"
)

//go:embed common_passwords.txt
var embeddedCommonPasswords string

// PasswordValidator runs a list of [PasswordRule]s and reports every
// violated rule under the password field.
type PasswordValidator struct {
	rules []PasswordRule
}

// NewPasswordValidator builds the rule set described by cfg:
// minimum length and common-password rules always apply, the numeric and
// similarity rules unless explicitly allowed.
func NewPasswordValidator(cfg config.PasswordPolicy) (*PasswordValidator, error) {
	common, err := loadCommonPasswords(cfg.CommonListPath)
	if err != nil {
		return nil, err
	}

	rules := []PasswordRule{
		MinimumLength{Min: cfg.MinLength},
		common,
	}
	if !cfg.AllowNumeric {
		rules = append(rules, Numeric{})
	}
	if !cfg.AllowSimilar {
		rules = append(rules, UserAttributeSimilarity{})
	}

	return NewPasswordValidatorWithRules(rules...), nil
}

// NewPasswordValidatorWithRules builds a validator from explicit rules.
func NewPasswordValidatorWithRules(rules ...PasswordRule) *PasswordValidator {
	return &PasswordValidator{rules: rules}
}

// Check returns the messages of every rule password violates.
func (v *PasswordValidator) Check(password string, user models.User) []string {
	var messages []string
	for _, rule := range v.rules {
		if msg := rule.Check(password, user); msg != "" {
			messages = append(messages, msg)
		}
	}
	return messages
}

// Validate implements [Validator] for [models.SignupForm]. The field list is
// ignored; only the password is checked.
func (v *PasswordValidator) Validate(_ context.Context, obj any, _ ...string) error {
	var form models.SignupForm
	switch value := obj.(type) {
	case models.SignupForm:
		form = value
	case *models.SignupForm:
		form = *value
	default:
		return ErrUnsupportedType
	}

	fields := models.FieldErrors{}
	for _, msg := range v.Check(form.Password, userFromSignup(form)) {
		fields.Add(models.FieldPassword, msg)
	}
	return fieldsErrorOrNil(fields)
}

func userFromSignup(form models.SignupForm) models.User {
	return models.User{
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}
}

// MinimumLength rejects passwords shorter than Min characters.
type MinimumLength struct {
	Min int
}

func (r MinimumLength) Check(password string, _ models.User) string {
	if utf8.RuneCountInString(password) < r.Min {
		return fmt.Sprintf("This password is too short. It must contain at least %d characters.", r.Min)
	}
	return ""
}

// CommonPassword rejects passwords found in a blocklist. Comparison is
// case-insensitive.
type CommonPassword struct {
	passwords map[string]struct{}
}

// NewCommonPassword reads a newline-separated blocklist. Blank lines and
// lines starting with '#' are skipped.
func NewCommonPassword(r io.Reader) (CommonPassword, error) {
	set := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return CommonPassword{}, fmt.Errorf("read common passwords: %w", err)
	}
	return CommonPassword{passwords: set}, nil
}

func (r CommonPassword) Check(password string, _ models.User) string {
	if _, ok := r.passwords[strings.ToLower(strings.TrimSpace(password))]; ok {
		return "This password is too common."
	}
	return ""
}

// Len returns the size of the blocklist.
func (r CommonPassword) Len() int {
	return len(r.passwords)
}

func loadCommonPasswords(path string) (CommonPassword, error) {
	if path == "" {
		return NewCommonPassword(strings.NewReader(embeddedCommonPasswords))
	}

	f, err := os.Open(path)
	if err != nil {
		return CommonPassword{}, fmt.Errorf("open common passwords list: %w", err)
	}
	defer f.Close()

	return NewCommonPassword(f)
}

// Numeric rejects passwords made only of digits.
type Numeric struct{}

func (Numeric) Check(password string, _ models.User) string {
	if password == "" {
		return ""
	}
	for _, r := range password {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return "This password is entirely numeric."
}

// MaxSimilarity is the similarity ratio at or above which a password is
// considered too close to a user attribute.
const MaxSimilarity = 0.7

// similarityMinLen is the shortest password the similarity rule looks at.
const similarityMinLen = 3

var nonWord = regexp.MustCompile(`\W+`)

// UserAttributeSimilarity rejects passwords whose similarity ratio to the
// username, the names or the email address (or any of their word-separated
// parts) reaches MaxSimilarity.
type UserAttributeSimilarity struct{}

func (UserAttributeSimilarity) Check(password string, user models.User) string {
	pw := []rune(strings.ToLower(password))
	if len(pw) < similarityMinLen {
		return ""
	}

	attributes := []struct {
		name  string
		value string
	}{
		{"username", user.Username},
		{"first name", user.FirstName},
		{"last name", user.LastName},
		{"email address", user.Email},
	}

	for _, attr := range attributes {
		value := strings.ToLower(attr.value)
		if value == "" {
			continue
		}

		parts := append([]string{value}, nonWord.Split(value, -1)...)
		for _, part := range parts {
			if part == "" {
				continue
			}
			if similarity(pw, []rune(part)) >= MaxSimilarity {
				return fmt.Sprintf("The password is too similar to the %s.", attr.name)
			}
		}
	}
	return ""
}

// similarity returns 2*M/T where M is the number of characters in the
// matching blocks of a and b and T the total length of both.
func similarity(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingChars(a, b)) / float64(total)
}

// matchingChars finds the longest common substring, then recurses on the
// pieces left and right of it.
func matchingChars(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	bestA, bestB, bestLen := 0, 0, 0
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > bestLen {
					bestLen = cur[j]
					bestA, bestB = i-bestLen, j-bestLen
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}

	if bestLen == 0 {
		return 0
	}

	return bestLen +
		matchingChars(a[:bestA], b[:bestB]) +
		matchingChars(a[bestA+bestLen:], b[bestB+bestLen:])
}
