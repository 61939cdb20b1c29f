// Command hashpass prints the bcrypt hash of a password, for creating
// the administradores row by hand:
//
//	INSERT INTO administradores (usuario, password_hash, email)
//	VALUES ('admin', '<hash>', 'admin@example.com');
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <password>", os.Args[0])
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	fmt.Println(string(hash))
}
