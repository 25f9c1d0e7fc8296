package repository

import (
	"encoding/json"
	"fmt"

	"github.com/campushub/campus-hub-api/pkg/docstore"
)

// Collection names in the backing document store.
const (
	CollectionStudents      = "students"
	CollectionProfessors    = "professors"
	CollectionCourses       = "courses"
	CollectionEnrollments   = "enrollments"
	CollectionGrades        = "grades"
	CollectionNotifications = "notifications"
	CollectionCalendar      = "calendar_events"
	CollectionMeta          = "meta"
)

// Document field names shared across repositories.
const (
	fieldStudentNumber = "studentId" // business key on student documents
	fieldStudentRef    = "studentId" // foreign key on enrollments/grades
	fieldCourseRef     = "courseId"
	fieldGrade         = "grade"
	fieldDate          = "date"
	fieldTimestamp     = "timestamp"
	fieldRead          = "read"
	fieldStart         = "start"
)

// encode converts a model into a document payload. The storage key travels
// outside the payload, so the id field is stripped.
func encode(v interface{}) (docstore.Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc docstore.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	delete(doc, "id")
	return doc, nil
}

// decode materialises a keyed document into a model, tagging it with its
// storage key.
func decode[T any](key string, data docstore.Document) (T, error) {
	var out T
	merged := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		merged[k] = v
	}
	merged["id"] = key
	raw, err := json.Marshal(merged)
	if err != nil {
		return out, fmt.Errorf("decode document %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode document %s: %w", key, err)
	}
	return out, nil
}

// decodeAll maps decode over a list result, preserving order.
func decodeAll[T any](docs []docstore.Keyed) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		item, err := decode[T](d.Key, d.Data)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
