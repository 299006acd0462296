package form

// Field names shared by the sign-in and sign-up forms.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
)

// EmailNotAvailable is shown in the sign-up name slot when the backend
// rejects the address.
const EmailNotAvailable = "This email is not available"

func NewSignIn() *Form {
	return New("signin",
		Field{Name: FieldEmail, Label: "Email", Constraints: Constraints{Type: TypeEmail, Required: true, MaxLength: 254}},
		Field{Name: FieldPassword, Label: "Password", Constraints: Constraints{Type: TypePassword, Required: true}},
	)
}

func NewSignUp() *Form {
	return New("signup",
		Field{Name: FieldEmail, Label: "Email", Constraints: Constraints{Type: TypeEmail, Required: true, MinLength: 5, MaxLength: 254}},
		Field{Name: FieldPassword, Label: "Password", Constraints: Constraints{Type: TypePassword, Required: true, MinLength: 8, MaxLength: 72}},
		Field{Name: FieldName, Label: "Username", Constraints: Constraints{Type: TypeText, Required: true, MinLength: 2, MaxLength: 30}},
	)
}
