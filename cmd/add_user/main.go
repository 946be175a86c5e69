package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Sandvich/runnersbackend/app/config"
	"github.com/Sandvich/runnersbackend/app/database"
	"github.com/Sandvich/runnersbackend/app/models"
	"github.com/Sandvich/runnersbackend/app/routes/auth"
)

// add_user provisions an account. User creation is deliberately not exposed
// through the API; campaigns hand out accounts out of band.
func main() {
	email := flag.String("email", "", "email address for the new user")
	password := flag.String("password", "", "initial password")
	roles := flag.String("roles", "Player", "comma-separated role names (Player, GM, Campaign Owner, Admin)")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_user -email user@example.com -password secret [-roles \"Player,GM\"]")
		os.Exit(1)
	}

	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		fmt.Printf("Error running migrations: %v\n", err)
		os.Exit(1)
	}

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	var roleNames []string
	for _, name := range strings.Split(*roles, ",") {
		if name = strings.TrimSpace(name); name != "" {
			roleNames = append(roleNames, name)
		}
	}

	user := &models.User{
		Email:    *email,
		Password: hashed,
		Active:   true,
	}
	if err := config.GetStore().CreateUser(user, roleNames); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s (roles: %s)\n", user.Email, strings.Join(roleNames, ", "))
}
