// Package main provides a CLI tool for querying course and enrollment
// information from the database. It supports three modes:
// 1. Course mode: displays the course, its capacity and its enrollments
// 2. User mode: displays the enrollments of a user and the courses left
// 3. Migration mode: rolls back the given number of schema migrations
package main

import (
	"encoding/json"
	"fmt"

	"github.com/coursion/backend/db"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.vocdoni.io/dvote/log"
)

func main() {
	// Define command-line flags
	flag.StringP("courseID", "c", "", "Course ID to query (hex format)")
	flag.StringP("email", "e", "", "User email to query")
	flag.Int("migrateDown", 0, "Number of migrations to roll back")
	flag.StringP("mongoURL", "m", "", "MongoDB connection URL")
	flag.StringP("mongoDB", "d", "coursion", "MongoDB database name")

	// Parse flags
	flag.Parse()

	// Initialize Viper for environment variable support
	viper.SetEnvPrefix("COURSION")
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		log.Fatalf("could not bind flags: %v", err)
	}
	viper.AutomaticEnv()

	// Read configuration
	courseID := viper.GetString("courseID")
	email := viper.GetString("email")
	migrateDown := viper.GetInt("migrateDown")
	mongoURL := viper.GetString("mongoURL")
	mongoDB := viper.GetString("mongoDB")
	// Initialize logger
	log.Init("info", "stdout", nil)

	// Validate required parameters
	if courseID == "" && email == "" && migrateDown == 0 {
		log.Fatal("one of courseID, email or migrateDown is required")
	}
	if mongoURL == "" {
		log.Fatal("mongoURL is required")
	}

	// Initialize MongoDB database
	database, err := db.New(db.Options{MongoURL: mongoURL, Database: mongoDB})
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer database.Close()

	if migrateDown > 0 {
		if err := database.RunMigrationsDown(migrateDown); err != nil {
			log.Fatalf("error rolling back migrations: %v", err)
		}
		fmt.Printf("Rolled back %d migration(s)\n", migrateDown)
		return
	}
	if courseID != "" {
		if err := queryCourse(database, courseID); err != nil {
			log.Fatalf("error querying course: %v", err)
		}
	}
	if email != "" {
		if err := queryUser(database, email); err != nil {
			log.Fatalf("error querying user: %v", err)
		}
	}
}

// queryCourse handles the course query mode
func queryCourse(database *db.MongoStorage, courseID string) error {
	course, err := database.Course(courseID)
	if err != nil {
		return fmt.Errorf("failed to get course: %w", err)
	}
	printSectionHeader("COURSE INFORMATION")
	printJSON("Course", course)

	enrolled, err := database.CountCourseEnrollments(courseID)
	if err != nil {
		return fmt.Errorf("failed to count enrollments: %w", err)
	}
	seats := db.TotalSeats(course)
	printSectionHeader("CAPACITY")
	fmt.Printf("Total Seats:    %d\n", seats)
	fmt.Printf("Enrolled:       %d\n", enrolled)
	fmt.Printf("Seats Left:     %d\n", max(seats-enrolled, 0))
	return nil
}

// queryUser handles the user query mode
func queryUser(database *db.MongoStorage, email string) error {
	enrollments, err := database.EnrollmentsByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get enrollments: %w", err)
	}
	printSectionHeader("USER ENROLLMENTS")
	fmt.Printf("Email:          %s\n", email)
	fmt.Printf("Enrollments:    %d of %d\n", len(enrollments), db.MaxEnrollmentsPerUser)
	for i, enrollment := range enrollments {
		title := "(course not found)"
		if course, err := database.Course(enrollment.CourseID); err == nil {
			if t, ok := course["title"].(string); ok {
				title = t
			}
		}
		fmt.Printf("  %d. %s %s (enrolled at %s)\n", i+1, enrollment.CourseID, title,
			enrollment.EnrolledAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// printSectionHeader prints a formatted section header
func printSectionHeader(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("  %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}

// printJSON prints data as formatted JSON
func printJSON(title string, data any) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Printf("Error formatting data: %v\n", err)
		return
	}
	fmt.Printf("%s:\n%s\n", title, string(jsonData))
}
