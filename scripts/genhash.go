// One-off: go run scripts/genhash.go admin@example.com secret | psql "$PG_DSN"
package main

import (
	"fmt"
	"net/mail"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	email, password := "admin@example.com", "admin"
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid email:", err)
		os.Exit(1)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	email = strings.ToLower(addr.Address)
	fmt.Printf(`INSERT INTO users (email, name, password_hash, role)
VALUES ('%s', 'Administrator', '%s', 'admin')
ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = 'admin';
`, strings.ReplaceAll(email, "'", "''"), h)
}
