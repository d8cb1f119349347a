package service

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAssignmentsByTeacher(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewNotificationRepository(db),
		repository.NewUserRepository(db),
		NewEventHub(nil),
	)

	deadline := time.Now().AddDate(0, 0, 7)
	require.NoError(t, db.Create(&model.Assignment{TeacherID: 1, Title: "Mine", Deadline: deadline}).Error)
	require.NoError(t, db.Create(&model.Assignment{TeacherID: 2, Title: "Theirs", Deadline: deadline}).Error)

	assignments, err := svc.ListByTeacher(1)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "Mine", assignments[0].Title)
}
