package storage

import "github.com/sandeepkv93/dayplan/internal/model"

type taskRow struct {
	ID            string `db:"id"`
	Title         string `db:"title"`
	Description   string `db:"description"`
	Date          string `db:"date"`
	Time          string `db:"time"`
	Priority      string `db:"priority"`
	Status        string `db:"status"`
	Notifications int    `db:"notifications"`
}

func rowFromTask(t model.Task) taskRow {
	return taskRow{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Date:          t.Date,
		Time:          t.Time,
		Priority:      string(t.Priority),
		Status:        string(t.Status),
		Notifications: boolInt(t.Notifications),
	}
}

func (r taskRow) toTask() model.Task {
	return model.Task{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Date:          r.Date,
		Time:          r.Time,
		Priority:      model.Priority(r.Priority),
		Status:        model.Status(r.Status),
		Notifications: r.Notifications == 1,
	}
}

func rowsToTasks(rows []taskRow) []model.Task {
	out := make([]model.Task, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toTask())
	}
	return out
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
