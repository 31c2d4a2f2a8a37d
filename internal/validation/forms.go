package validation

import "github.com/julianstephens/habithub/internal/constants"

// Field names shared by the auth and task forms.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldTaskName        = "taskName"
)

const (
	msgEmailRequired    = "Email is required"
	msgEmailInvalid     = "Please enter a valid email"
	msgPasswordRequired = "Password is required"
	msgPasswordShort    = "Password must be at least 6 characters"
)

var emailMessages = map[Kind]string{
	KindRequired: msgEmailRequired,
	KindEmail:    msgEmailInvalid,
}

var passwordMessages = map[Kind]string{
	KindRequired:  msgPasswordRequired,
	KindMinLength: msgPasswordShort,
}

var (
	SignInRules = Rules{
		FieldEmail:    {Required(), Email()},
		FieldPassword: {Required(), MinLength(constants.MinPasswordLength)},
	}
	SignInMessages = Messages{
		FieldEmail:    emailMessages,
		FieldPassword: passwordMessages,
	}

	SignUpRules = Rules{
		FieldName:            {Required()},
		FieldEmail:           {Required(), Email()},
		FieldPassword:        {Required(), MinLength(constants.MinPasswordLength)},
		FieldConfirmPassword: {Required(), Matches(FieldPassword)},
	}
	SignUpMessages = Messages{
		FieldName:     {KindRequired: "Full name is required"},
		FieldEmail:    emailMessages,
		FieldPassword: passwordMessages,
		FieldConfirmPassword: {
			KindRequired: "Please confirm your password",
			KindMatch:    "Passwords do not match",
		},
	}

	ForgotPasswordRules = Rules{
		FieldEmail: {Required(), Email()},
	}
	ForgotPasswordMessages = Messages{
		FieldEmail: emailMessages,
	}

	NewTaskRules = Rules{
		FieldTaskName: {Required()},
	}
	NewTaskMessages = Messages{
		FieldTaskName: {KindRequired: "Task name is required"},
	}
)
