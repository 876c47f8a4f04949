package options

import (
	"github.com/spf13/cobra"
)

// AuthOptions captures the credential flags shared by login and
// register.
type AuthOptions struct {
	Username string
	Email    string
	Password string
}

// AddLoginArgs wires the flags a login needs.
func AddLoginArgs(cmd *cobra.Command, o *AuthOptions) {
	cmd.Flags().StringVarP(&o.Email, "email", "e", "",
		"Email address of the account.")
	cmd.Flags().StringVarP(&o.Password, "password", "p", "",
		"Password of the account.")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
}

// AddRegisterArgs wires the login flags plus the username.
func AddRegisterArgs(cmd *cobra.Command, o *AuthOptions) {
	AddLoginArgs(cmd, o)
	cmd.Flags().StringVarP(&o.Username, "username", "u", "",
		"Display name for the new account.")
	_ = cmd.MarkFlagRequired("username")
}
