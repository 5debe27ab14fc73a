package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circussync/backend/internal/domain"
)

func TestTasksGetByUserOrdersByDueDate(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	addTask := func(desc, user string, due time.Time) {
		_, err := services.Tasks.Add(ctx, &domain.Task{
			Description: desc,
			DueDate:     due,
			AssignedTo:  user,
		})
		require.NoError(t, err)
	}

	addTask("later", "user-1", time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC))
	addTask("sooner", "user-1", time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC))
	addTask("not mine", "user-2", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))

	tasks, err := services.Tasks.GetByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "sooner", tasks[0].Description)
	assert.Equal(t, "later", tasks[1].Description)
}

func TestTasksGetUpcomingSkipsCompletedAndOutOfWindow(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	addTask := func(desc string, due time.Time, completed bool) {
		_, err := services.Tasks.Add(ctx, &domain.Task{
			Description: desc,
			DueDate:     due,
			Completed:   completed,
			AssignedTo:  "user-1",
		})
		require.NoError(t, err)
	}

	addTask("due soon", time.Now().AddDate(0, 0, 2), false)
	addTask("already done", time.Now().AddDate(0, 0, 2), true)
	addTask("too far out", time.Now().AddDate(0, 0, 20), false)
	addTask("overdue", time.Now().AddDate(0, 0, -2), false)

	tasks, err := services.Tasks.GetUpcoming(ctx, "user-1", 7)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "due soon", tasks[0].Description)
}

func TestNotificationsStartUnread(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	id, err := services.Notifications.Add(ctx, &domain.Notification{
		UserID:  "user-1",
		Message: "New booking inquiry",
		Read:    true, // caller input is ignored
	})
	require.NoError(t, err)

	n, err := services.Notifications.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, n.Read)
}

func TestNotificationsGetForUserFiltersRead(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	unreadID, err := services.Notifications.Add(ctx, &domain.Notification{UserID: "user-1", Message: "unread"})
	require.NoError(t, err)
	readID, err := services.Notifications.Add(ctx, &domain.Notification{UserID: "user-1", Message: "read"})
	require.NoError(t, err)
	_, err = services.Notifications.Add(ctx, &domain.Notification{UserID: "user-2", Message: "other user"})
	require.NoError(t, err)

	require.NoError(t, services.Notifications.MarkAsRead(ctx, readID))

	unread, err := services.Notifications.GetForUser(ctx, "user-1", false)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, unreadID, unread[0].ID)

	all, err := services.Notifications.GetForUser(ctx, "user-1", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUsersCreateDefaultsToReadOnly(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	id, err := services.Users.Create(ctx, &domain.User{
		Email: "new@example.com",
		Name:  "New User",
	})
	require.NoError(t, err)

	user, err := services.Users.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleReadOnly, user.Role)
}

func TestUsersGetByEmail(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	_, err := services.Users.Create(ctx, &domain.User{Email: "a@example.com", Name: "A"})
	require.NoError(t, err)

	user, err := services.Users.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "A", user.Name)

	missing, err := services.Users.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
