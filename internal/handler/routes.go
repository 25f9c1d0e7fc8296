package handler

import "github.com/gin-gonic/gin"

// Handlers bundles the route handlers for registration.
type Handlers struct {
	Students      *StudentHandler
	Professors    *ProfessorHandler
	Courses       *CourseHandler
	Enrollments   *EnrollmentHandler
	Grades        *GradeHandler
	Notifications *NotificationHandler
	Schedule      *ScheduleHandler
	Dashboard     *DashboardHandler
	Metrics       *MetricsHandler
}

// RegisterRoutes wires the API surface under /api/v1 plus the ops endpoints
// at the root.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/status", h.Metrics.Status)
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	v1 := r.Group("/api/v1")

	students := v1.Group("/students")
	students.GET("", h.Students.List)
	students.GET("/export", h.Students.Export)
	students.GET("/:id", h.Students.Get)
	students.POST("", h.Students.Create)
	students.PUT("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)

	professors := v1.Group("/professors")
	professors.GET("", h.Professors.List)
	professors.GET("/:id", h.Professors.Get)
	professors.POST("", h.Professors.Create)
	professors.PUT("/:id", h.Professors.Update)
	professors.DELETE("/:id", h.Professors.Delete)

	courses := v1.Group("/courses")
	courses.GET("", h.Courses.List)
	courses.GET("/:id", h.Courses.Get)
	courses.GET("/:id/detail", h.Courses.Detail)
	courses.POST("", h.Courses.Create)
	courses.PUT("/:id", h.Courses.Update)
	courses.DELETE("/:id", h.Courses.Delete)

	enrollments := v1.Group("/enrollments")
	enrollments.GET("", h.Enrollments.List)
	enrollments.POST("", h.Enrollments.Create)
	enrollments.DELETE("/:id", h.Enrollments.Delete)

	grades := v1.Group("/grades")
	grades.GET("", h.Grades.List)
	grades.GET("/:id", h.Grades.Get)
	grades.POST("", h.Grades.Create)
	grades.PUT("/:id", h.Grades.Update)

	notifications := v1.Group("/notifications")
	notifications.GET("", h.Notifications.List)
	notifications.POST("", h.Notifications.Create)
	notifications.PATCH("/:id/read", h.Notifications.MarkRead)
	notifications.POST("/:id/reply", h.Notifications.Reply)

	schedule := v1.Group("/schedule")
	schedule.GET("", h.Schedule.List)
	schedule.POST("", h.Schedule.Create)
	schedule.PUT("/:id", h.Schedule.Update)
	schedule.DELETE("/:id", h.Schedule.Delete)

	v1.GET("/dashboard", h.Dashboard.Summary)
}
