// Command hashpassword prints a bcrypt hash for ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/hashpassword 'my admin password'
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"bookingcalendar/internal/adapters/auth"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: hashpassword <password>")
		os.Exit(2)
	}
	hash, err := auth.HashPassword(os.Args[1], bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(hash)
}
