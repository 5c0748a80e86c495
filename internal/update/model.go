// Package update is the bubbletea controller: it owns the selected date and
// its tasks and turns key presses into store commands.
package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/notify"
	"github.com/sandeepkv93/dayplan/internal/reminders"
	"github.com/sandeepkv93/dayplan/internal/scheduler"
)

const (
	storeTimeout      = 5 * time.Second
	maxToasts         = 5
	defaultToastTTL   = 5 * time.Second
	defaultAddTime    = "09:00"
	toastAdded        = "Task added successfully!"
	toastDeleted      = "Task deleted successfully!"
	toastUpdated      = "Task updated"
	toastNotifyGrants = "Notifications enabled!"
)

// TaskService is the subset of planner.Service the controller drives.
type TaskService interface {
	Create(ctx context.Context, draft model.Draft) (model.Task, error)
	Update(ctx context.Context, task model.Task) error
	Remove(ctx context.Context, id string) error
	ListForDate(ctx context.Context, date string) ([]model.Task, error)
	Get(ctx context.Context, id string) (model.Task, error)
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Palette string
	Add     string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type FormField int

const (
	FieldTitle FormField = iota
	FieldDescription
	FieldTime
	FieldPriority
	FieldNotifications
	formFieldCount
)

type FormState struct {
	Active        bool
	Focus         FormField
	Priority      model.Priority
	Notifications bool
	Err           string
}

type Toast struct {
	ID    int
	Text  string
	Level string
	At    time.Time
}

type Model struct {
	SelectedDate time.Time
	Tasks        []model.Task
	Stats        model.DayStats
	Cursor       int
	Loading      bool
	Toasts       []Toast
	Palette      CommandPaletteState
	Form         FormState
	HelpVisible  bool
	Width        int
	Permission   notify.Permission
	ReminderLog  []scheduler.ReminderEvent
	Status       StatusBar
	Keys         GlobalKeyMap
	Quitting     bool
	LastError    error
	svc          TaskService
	reminders    *reminders.Scheduler
	events       <-chan scheduler.ReminderEvent
	notifier     notify.DesktopNotifier
	desktop      bool
	lookPath     notify.LookPathFunc
	loc          *time.Location
	now          func() time.Time
	toastTTL     time.Duration
	nextToastID  int
	log          *zap.Logger
	commandInput textinput.Model
	titleInput   textinput.Model
	timeInput    textinput.Model
	descArea     textarea.Model
	statsBar     progress.Model
	loadSpinner  spinner.Model
	helpModel    help.Model
	detailView   viewport.Model
}

// Deps wires the controller to its collaborators. Service is required.
type Deps struct {
	Service   TaskService
	Reminders *reminders.Scheduler
	Events    <-chan scheduler.ReminderEvent
	Notifier  notify.DesktopNotifier
	// DesktopNotifications asks for desktop permission at startup.
	DesktopNotifications bool
	LookPath             notify.LookPathFunc
	Location             *time.Location
	Now                  func() time.Time
	ToastDuration        time.Duration
	Logger               *zap.Logger
}

type DateSelectedMsg struct {
	Date time.Time
}

type SubmitTaskMsg struct {
	Draft model.Draft
}

type UpdateTaskMsg struct {
	Task model.Task
}

type DeleteTaskMsg struct {
	ID string
}

// TasksLoadedMsg replaces the loaded set when Date is still selected.
// Toast acknowledges the write that preceded the load, if any.
type TasksLoadedMsg struct {
	Date  string
	Tasks []model.Task
	Toast string
}

type OperationFailedMsg struct {
	Op  string
	Err error
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

// ReminderDeliveredMsg reports what happened to a fired reminder. Skipped
// is set when the task is gone, done, or muted.
type ReminderDeliveredMsg struct {
	TaskID       string
	Notification notify.Notification
	Desktop      bool
	Skipped      bool
	Err          error
}

type PermissionMsg struct {
	Permission notify.Permission
	Err        error
}

type toastExpiredMsg struct {
	ID int
}

func NewModel(deps Deps) Model {
	m := Model{
		svc:       deps.Service,
		reminders: deps.Reminders,
		events:    deps.Events,
		notifier:  deps.Notifier,
		desktop:   deps.DesktopNotifications,
		lookPath:  deps.LookPath,
		loc:       deps.Location,
		now:       deps.Now,
		toastTTL:  deps.ToastDuration,
		log:       deps.Logger,
		Keys: GlobalKeyMap{
			Palette: "/",
			Add:     "a",
			Help:    "?",
			Quit:    "q",
		},
	}
	if m.notifier == nil {
		m.notifier = notify.NoopDesktopNotifier{}
	}
	if m.loc == nil {
		m.loc = time.Local
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.toastTTL <= 0 {
		m.toastTTL = defaultToastTTL
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	m.SelectedDate = dateOnly(m.now().In(m.loc))
	m.Loading = true
	m.initBubbleComponents()
	m.resetForm()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "What needs doing?"
	m.titleInput.CharLimit = 200
	m.titleInput.Width = 40

	m.timeInput = textinput.New()
	m.timeInput.Placeholder = "HH:MM"
	m.timeInput.CharLimit = 5
	m.timeInput.Width = 6

	m.descArea = textarea.New()
	m.descArea.SetWidth(44)
	m.descArea.SetHeight(4)
	m.descArea.ShowLineNumbers = false
	m.descArea.Placeholder = "Description (markdown)"

	m.statsBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(28))

	m.loadSpinner = spinner.New()
	m.loadSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.detailView = viewport.New(58, 8)
}

func (m Model) selectedKey() string {
	return model.FormatDate(m.SelectedDate)
}

func (m Model) currentTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return model.Task{}, false
	}
	return m.Tasks[m.Cursor], true
}

func dateOnly(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
