package service

import (
	"time"

	"github.com/campushub/campus-hub-api/internal/models"
)

// seedVersion identifies the demo dataset. Bump it when the fixtures change
// so a stale marker is reported at boot.
const seedVersion = 1

func demoStudents() []models.Student {
	return []models.Student{
		{FirstName: "Alice", LastName: "Wonder", Email: "alice@example.com", StudentNumber: "S1001", Major: "Literature", DateOfBirth: "2001-03-14", PhoneNumber: "1112223330", Address: "1 Wonderland Ave"},
		{FirstName: "Bob", LastName: "Builder", Email: "bob@example.com", StudentNumber: "S1002", Major: "Engineering", DateOfBirth: "2000-05-20", PhoneNumber: "2223334440", Address: "2 Construction Ln"},
		{FirstName: "Charlie", LastName: "Chaplin", Email: "charlie@example.com", StudentNumber: "S1003", Major: "Film Studies", DateOfBirth: "1999-08-11", PhoneNumber: "3334445550", Address: "3 Silent Rd"},
		{FirstName: "Diana", LastName: "Prince", Email: "diana@example.com", StudentNumber: "S1004", Major: "History", DateOfBirth: "1998-11-01", PhoneNumber: "4445556660", Address: "4 Amazon Trail"},
		{FirstName: "Ethan", LastName: "Hunt", Email: "ethan@example.com", StudentNumber: "S1005", Major: "Espionage", DateOfBirth: "2002-01-25", PhoneNumber: "5556667770", Address: "5 Mission St"},
		{FirstName: "Fiona", LastName: "Shrek", Email: "fiona@example.com", StudentNumber: "S1006", Major: "Biology", DateOfBirth: "2000-07-30", PhoneNumber: "6667778880", Address: "6 Swamp Way"},
		{FirstName: "George", LastName: "Costanza", Email: "george@example.com", StudentNumber: "S1007", Major: "Architecture", DateOfBirth: "1999-04-19", PhoneNumber: "7778889990", Address: "7 Vandelay Apt"},
		{FirstName: "Hermione", LastName: "Granger", Email: "hermione@example.com", StudentNumber: "S1008", Major: "Magical Law", DateOfBirth: "2001-09-19", PhoneNumber: "8889990000", Address: "8 Library Ct"},
		{FirstName: "Indiana", LastName: "Jones", Email: "indy@example.com", StudentNumber: "S1009", Major: "Archaeology", DateOfBirth: "1997-06-12", PhoneNumber: "9990001110", Address: "9 Museum Pl"},
		{FirstName: "Jack", LastName: "Sparrow", Email: "jack@example.com", StudentNumber: "S1010", Major: "Navigation", DateOfBirth: "1996-10-27", PhoneNumber: "0001112220", Address: "10 Pearl Deck"},
	}
}

func demoProfessors() []models.Professor {
	return []models.Professor{
		{ID: "prof_smith", FirstName: "Robert", LastName: "Smith", Department: "Computer Science", Email: "r.smith@example.edu"},
		{ID: "prof_johnson", FirstName: "Emily", LastName: "Johnson", Department: "Mathematics", Email: "e.johnson@example.edu"},
		{ID: "prof_lee", FirstName: "David", LastName: "Lee", Department: "Physics", Email: "d.lee@example.edu"},
		{ID: "prof_davis", FirstName: "Sarah", LastName: "Davis", Department: "English", Email: "s.davis@example.edu"},
		{ID: "prof_khan", FirstName: "Amir", LastName: "Khan", Department: "History", Email: "a.khan@example.edu"},
	}
}

func demoCourses() []models.Course {
	return []models.Course{
		{ID: "CS101", Name: "Introduction to Programming", Description: "Fundamentals of programming using Python.", Credits: 3, ProfessorID: "prof_smith"},
		{ID: "MA101", Name: "Calculus I", Description: "Limits, derivatives and integrals of functions of one variable.", Credits: 4, ProfessorID: "prof_johnson"},
		{ID: "PH201", Name: "University Physics I", Description: "Mechanics, waves and thermodynamics with calculus.", Credits: 4, ProfessorID: "prof_lee"},
		{ID: "EN102", Name: "College Composition II", Description: "Research-driven academic writing.", Credits: 3, ProfessorID: "prof_davis"},
		{ID: "HI105", Name: "World History Since 1500", Description: "Global history from the early modern period to today.", Credits: 3, ProfessorID: "prof_khan"},
	}
}

func demoNotifications(now time.Time) []models.Notification {
	return []models.Notification{
		{Sender: "Registrar", Message: "Welcome to the new semester!", Type: models.NotificationAnnouncement, Timestamp: now.Add(-48 * time.Hour)},
		{Sender: "Library", Message: "Your reserved book is ready for pickup.", Type: models.NotificationInfo, Timestamp: now.Add(-24 * time.Hour)},
		{Sender: "Grades Office", Message: "Midterm grades will be posted by Friday.", Type: models.NotificationInfo, Timestamp: now.Add(-2 * time.Hour)},
	}
}
