package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			// FK order: leaves first, then employees, then the rest.
			for _, table := range []string{"leave_requests", "leave_balances", "employees", "departments", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		departments := []string{"Engineering", "Human Resources", "Finance"}
		departmentIDs := map[string]int64{}
		for _, name := range departments {
			var id int64
			row := db.Raw("SELECT id FROM departments WHERE name = ?", name).Row()
			if err := row.Scan(&id); err != nil {
				if err := db.Exec("INSERT INTO departments (name, created_at, updated_at) VALUES (?, now(), now())", name).Error; err != nil {
					log.Fatalf("failed to insert department %s: %v", name, err)
				}
				if err := db.Raw("SELECT id FROM departments WHERE name = ?", name).Row().Scan(&id); err != nil {
					log.Fatalf("department not found after insert %s: %v", name, err)
				}
				fmt.Printf("Seeded department: %s\n", name)
			}
			departmentIDs[name] = id
		}

		users := []struct {
			Email      string
			Name       string
			Role       string
			Department string
			ManagedBy  string
		}{
			{"admin@hrcore.dev", "Ada Admin", "Admin", "Human Resources", ""},
			{"manager@hrcore.dev", "Manny Manager", "Manager", "Engineering", ""},
			{"employee@hrcore.dev", "Emil Employee", "Employee", "Engineering", "manager@hrcore.dev"},
		}

		userIDs := map[string]int64{}
		employeeIDs := map[string]int64{}

		for _, u := range users {
			var id int64
			row := db.Raw("SELECT id FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&id); err != nil {
				if err := db.Exec(
					"INSERT INTO users (email, name, role, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
					u.Email, u.Name, u.Role, string(hash),
				).Error; err != nil {
					log.Fatalf("failed to insert user %s: %v", u.Email, err)
				}
				if err := db.Raw("SELECT id FROM users WHERE email = ?", u.Email).Row().Scan(&id); err != nil {
					log.Fatalf("user not found after insert %s: %v", u.Email, err)
				}
				fmt.Printf("Seeded user: %s (%s)\n", u.Email, u.Role)
			}
			userIDs[u.Email] = id
		}

		for _, u := range users {
			var id int64
			row := db.Raw("SELECT id FROM employees WHERE user_id = ?", userIDs[u.Email]).Row()
			if err := row.Scan(&id); err != nil {
				if err := db.Exec(
					"INSERT INTO employees (full_name, email, role, is_active, department_id, user_id, leave_balance, created_at, updated_at) VALUES (?, ?, ?, true, ?, ?, 20, now(), now())",
					u.Name, u.Email, u.Role, departmentIDs[u.Department], userIDs[u.Email],
				).Error; err != nil {
					log.Fatalf("failed to insert employee %s: %v", u.Email, err)
				}
				if err := db.Raw("SELECT id FROM employees WHERE user_id = ?", userIDs[u.Email]).Row().Scan(&id); err != nil {
					log.Fatalf("employee not found after insert %s: %v", u.Email, err)
				}
				fmt.Printf("Seeded employee: %s\n", u.Name)
			}
			employeeIDs[u.Email] = id
		}

		// Second pass once all employee rows exist.
		for _, u := range users {
			if u.ManagedBy == "" {
				continue
			}
			if err := db.Exec(
				"UPDATE employees SET manager_id = ? WHERE id = ? AND manager_id IS NULL",
				employeeIDs[u.ManagedBy], employeeIDs[u.Email],
			).Error; err != nil {
				log.Fatalf("failed to link manager for %s: %v", u.Email, err)
			}
		}

		fmt.Println("Seed data ready; all accounts use password:", password)
	},
}
