package services

import (
	"testing"

	"github.com/omkar-107/opine-bot-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStudentByEmail(t *testing.T) {
	db := newTestDB(t)
	fix := newQuizFixture(t, db, []QuestionInput{fourOptions("A")}, 30)

	roster := NewRosterService(db, NewAuthService(db, "test-secret"))

	student, err := roster.GetStudentByEmail(fix.student.Email)
	require.NoError(t, err)
	assert.Equal(t, fix.student.ID, student.ID)
	require.Len(t, student.Courses, 1)
	assert.Equal(t, "CS301", student.Courses[0].Code)

	_, err = roster.GetStudentByEmail("nobody@university.edu")
	requireKind(t, err, KindNotFound)
}

func TestGetFacultyByEmail(t *testing.T) {
	db := newTestDB(t)
	newQuizFixture(t, db, []QuestionInput{fourOptions("A")}, 30)

	roster := NewRosterService(db, NewAuthService(db, "test-secret"))

	faculty, err := roster.GetFacultyByEmail("prof@university.edu")
	require.NoError(t, err)
	assert.Equal(t, "Prof", faculty.Name)

	_, err = roster.GetFacultyByEmail("nobody@university.edu")
	requireKind(t, err, KindNotFound)
}

func TestCreateStudentRollsBackOnDuplicateUser(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, "test-secret")
	roster := NewRosterService(db, auth)

	_, err := auth.CreateUser(nil, "stu@university.edu", "Existing", "password123", models.RoleStudent)
	require.NoError(t, err)

	_, err = roster.CreateStudent(StudentInput{
		Email:    "stu@university.edu",
		Name:     "Student",
		Password: "password456",
	})
	requireKind(t, err, KindConflict)

	var count int64
	db.Model(&models.Student{}).Count(&count)
	assert.Zero(t, count, "failed registration must not leave a student row")
}

func TestDeleteStudentRemovesLogin(t *testing.T) {
	db := newTestDB(t)
	roster := NewRosterService(db, NewAuthService(db, "test-secret"))

	student, err := roster.CreateStudent(StudentInput{
		Email:    "stu@university.edu",
		Name:     "Student",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, roster.DeleteStudent(student.ID))

	var users, students int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Student{}).Count(&students)
	assert.Zero(t, users)
	assert.Zero(t, students)
}
