package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
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

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"notifications", "review_comments", "documents", "posts", "users", "departments"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		departments := []struct {
			Name string
			Desc string
		}{
			{"Sumber Daya Manusia", "kepegawaian dan rekrutmen"},
			{"Teknologi Informasi", "infrastruktur dan pengembangan sistem"},
			{"Keuangan", "akuntansi dan anggaran"},
			{"Pemasaran", "promosi dan komunikasi"},
		}

		for _, d := range departments {
			var exists int
			row := db.Raw("SELECT 1 FROM departments WHERE name = ?", d.Name).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO departments (name, description, created_at, updated_at) VALUES (?, ?, now(), now())", d.Name, d.Desc).Error; err != nil {
				log.Fatalf("failed to insert department %s: %v", d.Name, err)
			}
			fmt.Printf("Seeded department: %s\n", d.Name)
		}

		var itDeptID int64
		if err := db.Raw("SELECT id FROM departments WHERE name = ?", "Teknologi Informasi").Row().Scan(&itDeptID); err != nil {
			log.Fatalf("failed to lookup department id: %v", err)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		users := []struct {
			Email  string
			Name   string
			Role   string
			DeptID *int64
		}{
			{"admin@mail.com", "Padil Admin", "ADMIN", nil},
			{"kadek@mail.com", "Kadek Kepala TI", "DEPARTMENT_HEAD", &itDeptID},
			{"fadhil@mail.com", "Fadhil", "EMPLOYEE", &itDeptID},
		}

		for _, u := range users {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists; skipping\n", u.Email)
				continue
			}
			if err := db.Exec("INSERT INTO users (email, name, password_hash, role, department_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
				u.Email, u.Name, string(hash), u.Role, u.DeptID).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded user: %s (%s)\n", u.Email, u.Role)
		}

		var adminID, headID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "admin@mail.com").Row().Scan(&adminID); err != nil {
			log.Fatalf("failed to lookup admin user id: %v", err)
		}
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "kadek@mail.com").Row().Scan(&headID); err != nil {
			log.Fatalf("failed to lookup department head id: %v", err)
		}

		posts := []struct {
			Title      string
			Content    string
			AuthorID   int64
			DeptID     *int64
			IsPublic   bool
			Status     string
			ReviewerID *int64
		}{
			{"Pengumuman libur bersama", "Kantor tutup pada tanggal merah minggu depan.", adminID, nil, true, "APPROVED", &adminID},
			{"Jadwal maintenance server", "Server internal akan dimatikan Sabtu malam.", headID, &itDeptID, false, "PENDING", nil},
		}

		for _, p := range posts {
			var exists int
			row := db.Raw("SELECT 1 FROM posts WHERE title = ?", p.Title).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO posts (title, content, author_id, department_id, is_public, status, reviewed_by_id, reviewed_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, CASE WHEN ? IS NULL THEN NULL ELSE now() END, now(), now())",
				p.Title, p.Content, p.AuthorID, p.DeptID, p.IsPublic, p.Status, p.ReviewerID, p.ReviewerID).Error; err != nil {
				log.Fatalf("failed to insert post %s: %v", p.Title, err)
			}
			fmt.Printf("Seeded post: %s\n", p.Title)
		}

		documents := []struct {
			Title      string
			Desc       string
			UploaderID int64
			DeptID     *int64
			IsPublic   bool
			Status     string
			ReviewerID *int64
			FileName   string
			MimeType   string
			FileSize   int64
		}{
			{"Panduan karyawan baru", "Buku panduan onboarding untuk karyawan baru.", adminID, nil, true, "APPROVED", &adminID, "panduan-karyawan.pdf", "application/pdf", 482131},
			{"SOP backup database", "Prosedur backup dan restore database internal.", headID, &itDeptID, false, "PENDING", nil, "sop-backup.pdf", "application/pdf", 120044},
		}

		for _, d := range documents {
			var exists int
			row := db.Raw("SELECT 1 FROM documents WHERE title = ?", d.Title).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO documents (title, description, uploaded_by_id, department_id, is_public, status, reviewed_by_id, reviewed_at, file_name, file_url, file_size, mime_type, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, CASE WHEN ? IS NULL THEN NULL ELSE now() END, ?, ?, ?, ?, now(), now())",
				d.Title, d.Desc, d.UploaderID, d.DeptID, d.IsPublic, d.Status, d.ReviewerID, d.ReviewerID, d.FileName, "/files/"+d.FileName, d.FileSize, d.MimeType).Error; err != nil {
				log.Fatalf("failed to insert document %s: %v", d.Title, err)
			}
			fmt.Printf("Seeded document: %s\n", d.Title)
		}

		fmt.Println("Seeding completed")
	},
}
