// genhash prints a bcrypt hash for manual inserts into usuarios.password_hash.
//
//	go run ./cmd/genhash -cost 12 'contraseña'
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/45061/Hotelregistryapp/internal/service"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", service.BcryptCost, "bcrypt cost")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: genhash [-cost N] <password>")
		os.Exit(2)
	}

	h, err := bcrypt.GenerateFromPassword([]byte(flag.Arg(0)), *cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "genhash:", err)
		os.Exit(1)
	}
	fmt.Println(string(h))
}
