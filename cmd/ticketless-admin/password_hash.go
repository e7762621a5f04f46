package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

var passwordHashCommand = &cli.Command{
	Name:      "password-hash",
	Usage:     "Generate a bcrypt hash for ADMIN_PASSWORD_HASH",
	ArgsUsage: "<password>",
	Action: func(c *cli.Context) error {
		password := c.Args().First()
		if password == "" {
			return fmt.Errorf("usage: ticketless-admin password-hash <password>")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("generate hash: %w", err)
		}

		fmt.Println(string(hash))
		return nil
	},
}
